package app

import (
	"context"
	"errors"
	"net/http"
)

// RunBasic prints the API help, looks up a drug by id, and runs a
// substructure search. Each step runs even if an earlier one failed.
func (r *Runner) RunBasic(ctx context.Context) error {
	var failed []error
	for _, step := range []func(context.Context) error{r.help, r.drugByID, r.substructureSearch} {
		err := step(ctx)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrStepFailed) {
			return err
		}
		failed = append(failed, err)
	}
	if err := r.printer.Err(); err != nil {
		return err
	}
	return errors.Join(failed...)
}

func (r *Runner) help(ctx context.Context) error {
	res, err := r.client.Do(ctx, http.MethodGet, "/help", nil, r.cred)
	if err != nil {
		return r.check("help", err)
	}
	r.printer.Status(res.StatusCode)

	var help map[string]any
	if err := res.Decode(&help); err != nil {
		return r.check("help", err)
	}
	r.printer.Help(help)
	return nil
}

func (r *Runner) drugByID(ctx context.Context) error {
	drug, err := r.client.DrugByID(ctx, SampleDrugID, r.cred)
	if err != nil {
		return r.check("drug lookup", err)
	}
	r.printer.Drug(drug)
	return nil
}

func (r *Runner) substructureSearch(ctx context.Context) error {
	drugs, err := r.client.SearchSubstructure(ctx, SampleSearchSMILES, r.cred)
	if err != nil {
		return r.check("substructure search", err)
	}
	r.printer.SearchResults(drugs)
	return nil
}

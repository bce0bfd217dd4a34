package app

import (
	"context"
	"sort"

	"github.com/awamegit/spotrm-api-go/pkg/publishers"
	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

// RunToken obtains an access token, searches the alerts triggered by the
// sample structure, and lists the drugs associated with the first alert.
// The run stops at the first failed step.
func (r *Runner) RunToken(ctx context.Context) error {
	res, token, err := r.client.RequestToken(ctx, r.cred)
	if err != nil {
		return r.check("token", err)
	}
	if err := res.Err(); err != nil {
		return r.check("token", err)
	}

	alerts, err := r.client.SearchAlerts(ctx, SampleAlertSMILES, token)
	if err != nil {
		return r.check("alert search", err)
	}
	r.printer.Alerts(alerts)

	evt := publishers.NewEvent(r.client.BaseURL(), SampleAlertSMILES, alerts)
	if len(alerts) == 0 {
		r.log.InfoObj("no alerts found", "smiles", SampleAlertSMILES)
		r.publish(ctx, evt)
		return r.printer.Err()
	}

	first := alerts[0]
	drugs, err := r.client.DrugsForAlert(ctx, first.ID, token)
	if err != nil {
		return r.check("drugs for alert", err)
	}
	r.printer.DrugNames(drugs)

	evt.AddDrugs(first.ID, drugNames(drugs))
	r.publish(ctx, evt)
	return r.printer.Err()
}

// publish fans the report out to configured sinks. Delivery errors are
// logged and never fail the run.
func (r *Runner) publish(ctx context.Context, evt publishers.Event) {
	if r.fanout.Size() == 0 {
		return
	}
	delivered, err := r.fanout.Publish(ctx, evt)
	if err != nil {
		r.log.ErrorObj("alert report publish failed", "publish_error", map[string]any{
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	r.log.InfoObj("alert report published", "publish_meta", map[string]any{
		"delivered": delivered,
		"alerts":    len(evt.Alerts),
	})
}

func drugNames(drugs map[string]spotrm.Drug) []string {
	names := make([]string, 0, len(drugs))
	for _, k := range sortedKeys(drugs) {
		if name := drugs[k].Name(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func sortedKeys(m map[string]spotrm.Drug) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

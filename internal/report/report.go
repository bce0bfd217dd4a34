// Package report prints example results to the console.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

// Supported structured output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Printer renders results to w. Write errors are sticky and returned by Err.
type Printer struct {
	w      io.Writer
	format string
	err    error
}

// NewPrinter returns a Printer; unknown formats fall back to JSON.
func NewPrinter(w io.Writer, format string) *Printer {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatYAML {
		format = FormatJSON
	}
	return &Printer{w: w, format: format}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error { return p.err }

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Status prints the HTTP status line of an exchange.
func (p *Printer) Status(code int) {
	p.printf("%d\n", code)
}

// Help prints each help entry as "key: value" in key order.
func (p *Printer) Help(help map[string]any) {
	for _, k := range sortedKeys(help) {
		p.printf("%s: %s\n", k, scalar(help[k]))
	}
}

// Drug prints a drug record unformatted, formatted, and as key = value lines.
func (p *Printer) Drug(d spotrm.Drug) {
	p.printf("\n---- JSON output unformatted -----\n")
	raw, err := json.Marshal(d)
	if err != nil {
		p.err = err
		return
	}
	p.printf("%s\n", raw)

	p.printf("\n---- JSON output formatted 1 -----\n")
	p.Structured(d)

	p.printf("\n---- JSON output formatted 2 -----\n")
	for _, k := range sortedKeys(d) {
		p.printf("%s  =  %s\n", k, scalar(d[k]))
	}
}

// SearchResults prints the drugs matched by a substructure search.
func (p *Printer) SearchResults(drugs []spotrm.Drug) {
	p.printf("\nJSON formatted results from SMILES search\n")
	if drugs == nil {
		drugs = []spotrm.Drug{}
	}
	p.Structured(drugs)
}

// Alerts prints every alert triggered by a structure.
func (p *Printer) Alerts(alerts []spotrm.Alert) {
	p.printf("\nThe following alert was found for your structure:\n")
	for _, a := range alerts {
		p.printf("Alert ID: %s is \"%s\"\n", a.ID, a.Description)
	}
}

// DrugNames prints the names of drugs associated with an alert.
func (p *Printer) DrugNames(drugs map[string]spotrm.Drug) {
	p.printf("\nThe following drugs are associated with this alert:\n")
	for _, k := range sortedKeys(drugs) {
		p.printf("%s\n", drugs[k].Name())
	}
}

// ImageSaved reports where an image was written.
func (p *Printer) ImageSaved(path string) {
	p.printf("Image saved to %s\n", path)
}

// Failure prints a failed exchange the way the examples always have.
func (p *Printer) Failure(err error) {
	msg := err.Error()
	var f *spotrm.Failure
	if errors.As(err, &f) {
		msg = f.Message
	}
	p.printf("There was an error: %s\n", msg)
}

// Structured prints v as indented JSON or YAML.
func (p *Printer) Structured(v any) {
	if p.err != nil {
		return
	}
	switch p.format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			p.err = err
			return
		}
		p.err = enc.Close()
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			p.err = err
			return
		}
		p.printf("%s\n", out)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	}
}

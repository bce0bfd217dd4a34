package publishers

import (
	"time"

	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

// Event is the alert report published downstream after a structure search.
type Event struct {
	Source       string              `json:"source"`
	SMILES       string              `json:"smiles"`
	Alerts       []spotrm.Alert      `json:"alerts"`
	DrugsByAlert map[string][]string `json:"drugs_by_alert"`
	CollectedAt  time.Time           `json:"collected_at"`
}

// NewEvent constructs an Event for the given query structure and its alerts.
func NewEvent(source, smiles string, alerts []spotrm.Alert) Event {
	if alerts == nil {
		alerts = []spotrm.Alert{}
	}
	return Event{
		Source:       source,
		SMILES:       smiles,
		Alerts:       alerts,
		DrugsByAlert: map[string][]string{},
		CollectedAt:  time.Now().UTC(),
	}
}

// AddDrugs records the drug names associated with alertID.
func (e *Event) AddDrugs(alertID string, names []string) {
	if e.DrugsByAlert == nil {
		e.DrugsByAlert = map[string][]string{}
	}
	e.DrugsByAlert[alertID] = append(e.DrugsByAlert[alertID], names...)
}

// attributes are the message attributes every sink attaches.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{"smiles": e.SMILES}
	if len(e.Alerts) > 0 {
		attrs["first_alert_id"] = e.Alerts[0].ID
	}
	return attrs
}

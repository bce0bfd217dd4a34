package spotrm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Drug is a drug record as returned by the API. Its fields are owned by the
// remote service, so the record is kept as decoded JSON.
type Drug map[string]any

// Name returns the DrugName field, or "" when absent.
func (d Drug) Name() string {
	if v, ok := d["DrugName"].(string); ok {
		return v
	}
	return ""
}

// Alert is a structural alert triggered by a query structure.
type Alert struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// UnmarshalJSON decodes the API's [alertId, description] pair. The id may be
// a JSON string or number. The object form produced by json.Marshal is also
// accepted.
func (a *Alert) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type plain Alert
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("alert: %w", err)
		}
		*a = Alert(p)
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("alert: %w", err)
	}
	if len(pair) < 2 {
		return fmt.Errorf("alert: expected [id, description], got %d elements", len(pair))
	}

	id, err := scalarString(pair[0])
	if err != nil {
		return fmt.Errorf("alert id: %w", err)
	}
	desc, err := scalarString(pair[1])
	if err != nil {
		return fmt.Errorf("alert description: %w", err)
	}
	a.ID, a.Description = id, desc
	return nil
}

// ImageQuery is the body of the image endpoint.
type ImageQuery struct {
	SMILES   string `json:"smiles"`
	SmartsID int    `json:"smarts_id"`
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", strings.TrimSpace(string(raw)))
	}
	return n.String(), nil
}

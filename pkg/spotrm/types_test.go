package spotrm

import (
	"encoding/json"
	"testing"
)

func TestAlertUnmarshalPairs(t *testing.T) {
	var alerts []Alert
	raw := `[["3", "Anilines"], [17, "Furans"], [2.5e1, "Thiophenes", "extra"]]`
	if err := json.Unmarshal([]byte(raw), &alerts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Alert{
		{ID: "3", Description: "Anilines"},
		{ID: "17", Description: "Furans"},
		{ID: "2.5e1", Description: "Thiophenes"},
	}
	if len(alerts) != len(want) {
		t.Fatalf("expected %d alerts, got %d", len(want), len(alerts))
	}
	for i := range want {
		if alerts[i] != want[i] {
			t.Fatalf("alert[%d] = %#v, want %#v", i, alerts[i], want[i])
		}
	}
}

func TestAlertUnmarshalRejectsShortPair(t *testing.T) {
	var a Alert
	if err := json.Unmarshal([]byte(`["3"]`), &a); err == nil {
		t.Fatalf("expected error for single-element pair")
	}
	if err := json.Unmarshal([]byte(`{}`), &a); err != nil {
		t.Fatalf("object form: %v", err)
	}
}

func TestAlertObjectRoundTrip(t *testing.T) {
	in := Alert{ID: "12", Description: "Aniline"}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Alert
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	if out != in {
		t.Fatalf("round trip = %#v, want %#v", out, in)
	}
}

func TestDrugName(t *testing.T) {
	if got := (Drug{"DrugName": "Aspirin"}).Name(); got != "Aspirin" {
		t.Fatalf("Name() = %q", got)
	}
	if got := (Drug{"DrugName": 1}).Name(); got != "" {
		t.Fatalf("Name() for non-string = %q", got)
	}
}

func TestParseTokenScheme(t *testing.T) {
	for in, want := range map[string]TokenScheme{"": TokenSchemeBearer, "bearer": TokenSchemeBearer, "basic": TokenSchemeBasic} {
		got, ok := ParseTokenScheme(in)
		if !ok || got != want {
			t.Fatalf("ParseTokenScheme(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseTokenScheme("digest"); ok {
		t.Fatalf("expected digest to be rejected")
	}
}

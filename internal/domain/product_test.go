package domain

import (
	"encoding/json"
	"testing"
)

func TestPrice_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		price Price
		want  string
	}{
		{"known", KnownPrice(39.99), "39.99"},
		{"unknown", Price{}, `"Unknown Price"`},
		{"zero is a real price", KnownPrice(0), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.price)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, data)
			}
		})
	}
}

func TestVariant_OptionValue(t *testing.T) {
	v := Variant{Option1: "M", Option2: "Red"}

	if got := v.OptionValue(1); got != "M" {
		t.Errorf("position 1: expected M, got %q", got)
	}
	if got := v.OptionValue(2); got != "Red" {
		t.Errorf("position 2: expected Red, got %q", got)
	}
	if got := v.OptionValue(3); got != "" {
		t.Errorf("position 3: expected empty, got %q", got)
	}
	if got := v.OptionValue(4); got != "" {
		t.Errorf("position 4: expected empty, got %q", got)
	}
}

package domain

import (
	"encoding/json"
	"testing"
)

func TestNullableString_DistinguishesAbsentAndNull(t *testing.T) {
	type payload struct {
		BankName NullableString `json:"bank_name,omitempty"`
	}

	var absent payload
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if absent.BankName.Set {
		t.Fatal("expected absent field to stay unset")
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"bank_name":null}`), &null); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !null.BankName.Set || null.BankName.Value != nil {
		t.Fatalf("expected explicit null to set with nil value, got set=%t", null.BankName.Set)
	}

	var present payload
	if err := json.Unmarshal([]byte(`{"bank_name":"Chase"}`), &present); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !present.BankName.Set || present.BankName.Value == nil || *present.BankName.Value != "Chase" {
		t.Fatal("expected value to round-trip through NullableString")
	}
}

package models

import (
	"encoding/json"
	"testing"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Amount
	}{
		{"number", `123.45`, 123.45},
		{"integer", `100`, 100},
		{"quoted number", `"250.50"`, 250.50},
		{"quoted with spaces", `" 42 "`, 42},
		{"empty string", `""`, 0},
		{"non-numeric string", `"abc"`, 0},
		{"null", `null`, 0},
		{"boolean", `true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.json), &a); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.json, err)
			}
			if a != tt.want {
				t.Errorf("unmarshal %s = %v, want %v", tt.json, a, tt.want)
			}
		})
	}
}

func TestAmount_InInvoice(t *testing.T) {
	body := `[
		{"invoiceId":"I001","amount":100},
		{"invoiceId":"I002","amount":"200.5"},
		{"invoiceId":"I003","amount":"oops"}
	]`

	var invoices []Invoice
	if err := json.Unmarshal([]byte(body), &invoices); err != nil {
		t.Fatalf("unmarshal invoices: %v", err)
	}

	want := []Amount{100, 200.5, 0}
	for i, inv := range invoices {
		if inv.Amount != want[i] {
			t.Errorf("invoice %s: amount %v, want %v", inv.InvoiceID, inv.Amount, want[i])
		}
	}
}

func TestFilterState_IsZero(t *testing.T) {
	if !(FilterState{}).IsZero() {
		t.Error("empty state should be zero")
	}
	if (FilterState{Category: "Grocery"}).IsZero() {
		t.Error("state with a set field should not be zero")
	}
	// An inert range still counts as a set filter for UI purposes
	if (FilterState{StartDate: "2025-06-01"}).IsZero() {
		t.Error("state with startDate should not be zero")
	}
}

func TestBucketed_JSONShape(t *testing.T) {
	body := `{"allTime":120,"last7Days":14,"today":3,"custom":null}`

	var b Bucketed
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		t.Fatalf("unmarshal bucketed: %v", err)
	}
	if b.AllTime != 120 || b.Last7Days != 14 || b.Today != 3 {
		t.Errorf("unexpected buckets: %+v", b)
	}
	if b.Custom != nil {
		t.Error("custom should stay nil when upstream sends null")
	}
}

func TestKpiCard_ScalarSerialization(t *testing.T) {
	card := KpiCard{Label: "Total Revenue", Value: Scalar(600), Icon: "money"}

	out, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal card: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if decoded["value"] != float64(600) {
		t.Errorf("scalar should serialize as a bare number, got %v", decoded["value"])
	}
}

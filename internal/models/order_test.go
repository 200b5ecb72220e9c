package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestOrderSubmission_DecodeTolerantScalars(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantQty   Quantity
		wantPrice Money
		wantCore  Money
	}{
		{
			name:      "plain numbers",
			body:      `{"items":[{"quantity":2,"price":10.5,"core_charge":3}]}`,
			wantQty:   2,
			wantPrice: 10.5,
			wantCore:  3,
		},
		{
			name:      "numeric strings",
			body:      `{"items":[{"quantity":"4","price":"12.25","core_charge":"0.75"}]}`,
			wantQty:   4,
			wantPrice: 12.25,
			wantCore:  0.75,
		},
		{
			name:      "null values",
			body:      `{"items":[{"quantity":null,"price":null,"core_charge":null}]}`,
			wantQty:   0,
			wantPrice: 0,
			wantCore:  0,
		},
		{
			name:      "garbage values coerce to zero",
			body:      `{"items":[{"quantity":true,"price":"abc","core_charge":{"x":1}}]}`,
			wantQty:   0,
			wantPrice: 0,
			wantCore:  0,
		},
		{
			name:      "missing fields",
			body:      `{"items":[{"part_number":"A1"}]}`,
			wantQty:   0,
			wantPrice: 0,
			wantCore:  0,
		},
		{
			name:      "non-finite strings coerce to zero",
			body:      `{"items":[{"quantity":"NaN","price":"Inf","core_charge":"-Inf"}]}`,
			wantQty:   0,
			wantPrice: 0,
			wantCore:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub OrderSubmission
			if err := json.Unmarshal([]byte(tt.body), &sub); err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if len(sub.Items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(sub.Items))
			}

			item := sub.Items[0]
			if item.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", item.Quantity, tt.wantQty)
			}
			if item.Price != tt.wantPrice {
				t.Errorf("price = %v, want %v", item.Price, tt.wantPrice)
			}
			if item.CoreCharge != tt.wantCore {
				t.Errorf("core_charge = %v, want %v", item.CoreCharge, tt.wantCore)
			}
		})
	}
}

func TestOrderSubmission_DecodeMalformedJSON(t *testing.T) {
	var sub OrderSubmission
	if err := json.Unmarshal([]byte(`{"subject": `), &sub); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestOrderSubmission_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		item    LineItem
		wantQty Quantity
	}{
		{name: "missing quantity clamps to 1", item: LineItem{}, wantQty: 1},
		{name: "zero quantity clamps to 1", item: LineItem{Quantity: 0}, wantQty: 1},
		{name: "negative quantity clamps to 1", item: LineItem{Quantity: -3}, wantQty: 1},
		{name: "positive quantity unchanged", item: LineItem{Quantity: 5}, wantQty: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := OrderSubmission{Subject: "x", Items: []LineItem{tt.item}}
			got := sub.Normalize()
			if got.Items[0].Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", got.Items[0].Quantity, tt.wantQty)
			}
		})
	}
}

func TestOrderSubmission_NormalizeNonFiniteAmounts(t *testing.T) {
	sub := OrderSubmission{
		Subject: "Order #7",
		Items: []LineItem{
			{PartNumber: "A1", Quantity: 1, Price: Money(math.NaN()), CoreCharge: Money(math.Inf(1))},
		},
		Totals: Totals{Subtotal: Money(math.Inf(-1)), CoreTotal: Money(math.NaN())},
	}

	got := sub.Normalize()

	if got.Items[0].Price != 0 {
		t.Errorf("NaN price = %v, want 0", got.Items[0].Price)
	}
	if got.Items[0].CoreCharge != 0 {
		t.Errorf("Inf core charge = %v, want 0", got.Items[0].CoreCharge)
	}
	if got.Totals.Subtotal != 0 {
		t.Errorf("-Inf subtotal = %v, want 0", got.Totals.Subtotal)
	}
	if got.Totals.CoreTotal != 0 {
		t.Errorf("NaN core total = %v, want 0", got.Totals.CoreTotal)
	}
}

func TestOrderSubmission_NormalizeDoesNotMutate(t *testing.T) {
	sub := OrderSubmission{
		Subject: "  Order #9  ",
		Items:   []LineItem{{Quantity: 0, Price: -5}},
		Customer: CustomerInfo{
			Email: " jane@x.com ",
		},
	}

	got := sub.Normalize()

	if got.Subject != "Order #9" {
		t.Errorf("subject = %q, want trimmed", got.Subject)
	}
	if got.Customer.Email != "jane@x.com" {
		t.Errorf("email = %q, want trimmed", got.Customer.Email)
	}
	if got.Items[0].Price != 0 {
		t.Errorf("negative price not zeroed: %v", got.Items[0].Price)
	}

	// Original stays untouched
	if sub.Items[0].Quantity != 0 || sub.Subject != "  Order #9  " {
		t.Error("Normalize mutated its receiver")
	}
}

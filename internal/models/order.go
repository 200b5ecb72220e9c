package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Money is a monetary amount that tolerates sloppy input: JSON numbers,
// numeric strings, null, or anything else all decode without error, with
// non-numeric values coerced to 0. Malformed JSON remains the only way a
// submission fails to parse.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*m = Money(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		// ParseFloat accepts "NaN" and "Inf"; those are not money
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			*m = Money(f)
			return nil
		}
	}

	*m = 0
	return nil
}

// Quantity decodes like Money but truncates to an integer. Clamping to a
// minimum of 1 happens in Normalize, not here, so the raw value stays
// inspectable.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var m Money
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	*q = Quantity(m)
	return nil
}

// OrderSubmission represents an incoming checkout submission
type OrderSubmission struct {
	Subject  string       `json:"subject"`
	Items    []LineItem   `json:"items"`
	Totals   Totals       `json:"totals"`
	Customer CustomerInfo `json:"customer"`
	Payment  PaymentInfo  `json:"payment"`
	TextBody string       `json:"textBody,omitempty"`
}

// LineItem represents a single line in an order
type LineItem struct {
	PartNumber  string   `json:"part_number,omitempty"`
	Description string   `json:"description,omitempty"`
	Quantity    Quantity `json:"quantity"`
	Price       Money    `json:"price"`
	CoreCharge  Money    `json:"core_charge,omitempty"`
}

// Totals carries the caller-computed order totals
type Totals struct {
	Subtotal  Money `json:"subtotal"`
	CoreTotal Money `json:"coreTotal"`
}

// CustomerInfo holds the customer contact block; every field is optional
type CustomerInfo struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Country      string `json:"country,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// PaymentInfo describes how the customer intends to pay
type PaymentInfo struct {
	Method string `json:"method,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Normalize returns a fully-defaulted copy of the submission: quantities
// clamped to a minimum of 1, negative amounts zeroed, a non-nil items slice,
// and trimmed subject/email. Rendering operates only on normalized
// submissions so it never defaults on access.
func (s OrderSubmission) Normalize() OrderSubmission {
	out := s
	out.Subject = strings.TrimSpace(s.Subject)
	out.Customer.Email = strings.TrimSpace(s.Customer.Email)
	out.Totals.Subtotal = sanitizeMoney(s.Totals.Subtotal)
	out.Totals.CoreTotal = sanitizeMoney(s.Totals.CoreTotal)

	out.Items = make([]LineItem, len(s.Items))
	for i, item := range s.Items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		item.Price = sanitizeMoney(item.Price)
		item.CoreCharge = sanitizeMoney(item.CoreCharge)
		out.Items[i] = item
	}

	return out
}

// sanitizeMoney zeroes amounts no renderable order can carry: negatives,
// NaN, and infinities. NaN in particular slips past ordinary < comparisons.
func sanitizeMoney(m Money) Money {
	f := float64(m)
	if m < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return m
}

package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/limitless-llc/checkout-relay/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rendered holds both representations of an order email.
type Rendered struct {
	Text string
	HTML string
}

var usd = message.NewPrinter(language.AmericanEnglish)

// currency formats an amount as a US-locale currency string with thousands
// grouping and exactly two decimals, e.g. $1,234.50.
func currency(m models.Money) string {
	return usd.Sprintf("$%.2f", float64(m))
}

// coreOrDash renders a core charge, with zero shown as "-" so the column
// stays readable for the common no-core case.
func coreOrDash(m models.Money) string {
	if m == 0 {
		return "-"
	}
	return currency(m)
}

// escape is the single escaping point for user-supplied strings interpolated
// into HTML. It covers &, <, >, " and '.
func escape(s string) string {
	return html.EscapeString(s)
}

// Render produces the plain-text and HTML representations of an order
// submission. It is a pure function: same submission in, byte-identical
// output out. The submission must already be normalized.
func Render(sub models.OrderSubmission) Rendered {
	return Rendered{
		Text: renderText(sub),
		HTML: renderHTML(sub),
	}
}

func renderText(sub models.OrderSubmission) string {
	// A caller-supplied plain-text body wins over the generated one.
	if sub.TextBody != "" {
		return sub.TextBody
	}

	var b strings.Builder

	b.WriteString(sub.Subject)
	b.WriteString("\n\n")

	b.WriteString("Part | Description | Qty | Unit | Core | Line\n")
	for _, item := range sub.Items {
		line := item.Price * models.Money(item.Quantity)
		fields := []string{
			item.PartNumber,
			item.Description,
			fmt.Sprintf("%d", item.Quantity),
			currency(item.Price),
			coreOrDash(item.CoreCharge),
			currency(line),
		}
		b.WriteString(strings.Join(fields, " | "))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Subtotal: " + currency(sub.Totals.Subtotal) + "\n")
	if sub.Totals.CoreTotal != 0 {
		b.WriteString("Core Total: " + currency(sub.Totals.CoreTotal) + "\n")
	}
	b.WriteString("\n")

	c := sub.Customer
	b.WriteString(strings.Join([]string{c.Name, c.Email, c.Phone}, " | "))
	b.WriteString("\n")
	if c.Company != "" {
		b.WriteString(c.Company + "\n")
	}
	if c.Address1 != "" {
		b.WriteString(c.Address1 + "\n")
	}
	if c.Address2 != "" {
		b.WriteString(c.Address2 + "\n")
	}
	if loc := joinNonEmpty(", ", c.City, c.State, c.Zip, c.Country); loc != "" {
		b.WriteString(loc + "\n")
	}
	if c.Instructions != "" {
		b.WriteString("Instructions: " + c.Instructions + "\n")
	}
	if sub.Payment.Method != "" {
		b.WriteString("Payment: " + sub.Payment.Method)
		if sub.Payment.Note != "" {
			b.WriteString(" (" + sub.Payment.Note + ")")
		}
		b.WriteString("\n")
	}

	return b.String()
}

const (
	tableStyle  = `border-collapse:collapse;width:100%;font-size:14px`
	cellStyle   = `border:1px solid #ccc;padding:6px 8px;text-align:left`
	headerStyle = `border:1px solid #ccc;padding:6px 8px;text-align:left;background:#f4f4f4`
)

func renderHTML(sub models.OrderSubmission) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;color:#222">`)
	b.WriteString(`<h2>` + escape(sub.Subject) + `</h2>`)

	b.WriteString(`<table style="` + tableStyle + `">`)
	b.WriteString(`<tr>`)
	for _, h := range []string{"Part", "Description", "Qty", "Unit", "Core", "Line"} {
		b.WriteString(`<th style="` + headerStyle + `">` + h + `</th>`)
	}
	b.WriteString(`</tr>`)

	for _, item := range sub.Items {
		line := item.Price * models.Money(item.Quantity)
		cells := []string{
			escape(item.PartNumber),
			escape(item.Description),
			fmt.Sprintf("%d", item.Quantity),
			currency(item.Price),
			coreOrDash(item.CoreCharge),
			currency(line),
		}
		b.WriteString(`<tr>`)
		for _, cell := range cells {
			b.WriteString(`<td style="` + cellStyle + `">` + cell + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</table>`)

	b.WriteString(`<p>Subtotal: <strong>` + currency(sub.Totals.Subtotal) + `</strong>`)
	if sub.Totals.CoreTotal != 0 {
		b.WriteString(`<br>Core Total: <strong>` + currency(sub.Totals.CoreTotal) + `</strong>`)
	}
	b.WriteString(`</p>`)

	c := sub.Customer
	b.WriteString(`<h3>Customer</h3><p>`)
	b.WriteString(escape(c.Name) + ` | ` + escape(c.Email) + ` | ` + escape(c.Phone))
	if c.Company != "" {
		b.WriteString(`<br>` + escape(c.Company))
	}
	if c.Address1 != "" {
		b.WriteString(`<br>` + escape(c.Address1))
	}
	if c.Address2 != "" {
		b.WriteString(`<br>` + escape(c.Address2))
	}
	if loc := joinNonEmpty(", ", c.City, c.State, c.Zip, c.Country); loc != "" {
		b.WriteString(`<br>` + escape(loc))
	}
	b.WriteString(`</p>`)

	if c.Instructions != "" {
		b.WriteString(`<p>Instructions: ` + escape(c.Instructions) + `</p>`)
	}

	if sub.Payment.Method != "" {
		b.WriteString(`<p>Payment: ` + escape(sub.Payment.Method))
		if sub.Payment.Note != "" {
			b.WriteString(` (` + escape(sub.Payment.Note) + `)`)
		}
		b.WriteString(`</p>`)
	}

	b.WriteString(`</div>`)

	return b.String()
}

// joinNonEmpty joins the non-empty parts with sep, so missing fields never
// leave dangling separators.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Package contact holds the payload for identifier dimensions: email,
// phone number, URL and credit card number.
package contact

import (
	"strings"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
)

// Data is a normalized identifier
type Data struct {
	Dim    dimension.Kind
	Value  string
	Domain string
	Issuer string
}

func (d Data) Kind() dimension.Kind { return d.Dim }

func (d Data) Key() string { return d.Value + "|" + d.Domain + "|" + d.Issuer }

// Resolve produces the final value
func (d Data) Resolve() dimension.ContactValue {
	return dimension.ContactValue(d)
}

// From extracts contact data from a token
func From(t *engine.Token) (Data, bool) {
	d, ok := t.Payload.(Data)
	return d, ok
}

// Digits keeps ASCII digits, mapping Arabic-Indic digits to ASCII
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + r - '٠')
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + r - '۰')
		}
	}
	return b.String()
}

// Luhn validates a card number checksum over its digits
func Luhn(number string) bool {
	digits := Digits(number)
	if len(digits) < 13 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// Issuer names the card network from the number prefix, "" when unknown
func Issuer(number string) string {
	d := Digits(number)
	if len(d) < 13 {
		return ""
	}
	switch {
	case d[0] == '4':
		return "visa"
	case d[0] == '5' && d[1] >= '1' && d[1] <= '5':
		return "mastercard"
	case strings.HasPrefix(d, "34"), strings.HasPrefix(d, "37"):
		return "amex"
	case strings.HasPrefix(d, "6011"), strings.HasPrefix(d, "65"), strings.HasPrefix(d, "64"):
		return "discover"
	case strings.HasPrefix(d, "36"), strings.HasPrefix(d, "38"), strings.HasPrefix(d, "300"), strings.HasPrefix(d, "305"):
		return "diners club"
	}
	return ""
}

// Phone normalizes a matched phone number: an optional country code, the
// body digits and an optional extension. Bodies outside 7..15 digits are
// rejected.
func Phone(country, body, ext string) (string, bool) {
	digits := Digits(body)
	if len(digits) < 7 || len(digits) > 15 {
		return "", false
	}
	var b strings.Builder
	if c := Digits(country); c != "" {
		b.WriteString("(+")
		b.WriteString(c)
		b.WriteString(") ")
	}
	b.WriteString(digits)
	if e := Digits(ext); e != "" {
		b.WriteString(" ext ")
		b.WriteString(e)
	}
	return b.String(), true
}

// SpelledEmail rewrites " dot " spellings into dots
func SpelledEmail(local, domain string) string {
	fix := func(s string) string {
		fields := strings.Fields(s)
		var b strings.Builder
		for i, f := range fields {
			if strings.EqualFold(f, "dot") && i > 0 && i < len(fields)-1 {
				b.WriteByte('.')
				continue
			}
			b.WriteString(f)
		}
		return b.String()
	}
	return fix(local) + "@" + fix(domain)
}

package en

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/contact"
	"github.com/teranos/qntx-dims/engine"
)

const urlTail = `(?::\d+)?(?:/[^?\s#]*)?(?:\?[^\s#]+)?(?:#[-,*=&a-z0-9]+)?`

func contactRules() []*engine.Rule {
	return []*engine.Rule{
		rule("email", dimension.Email, func(c []*engine.Token) (engine.Payload, bool) {
			return contact.Data{Dim: dimension.Email, Value: c[0].Group(1)}, true
		}, re(`([\w.+-]+@[\w-]+(?:\.[\w-]+)+)`)),

		rule("email spelled out", dimension.Email, func(c []*engine.Token) (engine.Payload, bool) {
			return contact.Data{Dim: dimension.Email, Value: contact.SpelledEmail(c[0].Group(1), c[0].Group(2))}, true
		}, re(`([\w.+-]+) at ([\w-]+(?:(?:\.| dot )[\w-]+)+)`)),

		{
			Name:     "phone number",
			Dim:      dimension.PhoneNumber,
			Priority: -1,
			Pattern:  []engine.Item{re(`(?:\(?\+(\d{1,3})\)?[\s.-]*)?(\(?\d{2,4}\)?(?:[\s.-]?\d{2,4}){1,4})(?:\s*(?:ext|x)\.?\s*(\d{1,6}))?`)},
			Produce: func(c []*engine.Token) (engine.Payload, bool) {
				v, ok := contact.Phone(c[0].Group(1), c[0].Group(2), c[0].Group(3))
				return contact.Data{Dim: dimension.PhoneNumber, Value: v}, ok
			},
		},

		rule("url", dimension.URL, func(c []*engine.Token) (engine.Payload, bool) {
			return contact.Data{Dim: dimension.URL, Value: c[0].Group(1), Domain: group(c[0], 2)}, true
		}, re(`((?:[a-z]+://)?(?:w{2,3}\d*\.)?((?:[\w-]+\.)+[a-z]{2,4})`+urlTail+`)`)),

		rule("localhost", dimension.URL, func(c []*engine.Token) (engine.Payload, bool) {
			return contact.Data{Dim: dimension.URL, Value: c[0].Group(1), Domain: "localhost"}, true
		}, re(`((?:[a-z]+://)?localhost`+urlTail+`)`)),

		rule("local url", dimension.URL, func(c []*engine.Token) (engine.Payload, bool) {
			return contact.Data{Dim: dimension.URL, Value: c[0].Group(1), Domain: group(c[0], 2)}, true
		}, re(`((?:[a-z]+://)([\w-]+)`+urlTail+`)`)),

		{
			Name:     "credit card number",
			Dim:      dimension.CreditCardNumber,
			Priority: 1,
			Pattern:  []engine.Item{re(`(\d{4}(?:[ -]\d{4}){3}|\d{4}[ -]\d{6}[ -]\d{4,5}|\d{13,19})`)},
			Produce: func(c []*engine.Token) (engine.Payload, bool) {
				number := contact.Digits(c[0].Group(1))
				if !contact.Luhn(number) {
					return nil, false
				}
				issuer := contact.Issuer(number)
				if issuer == "" {
					issuer = "other"
				}
				return contact.Data{Dim: dimension.CreditCardNumber, Value: number, Issuer: issuer}, true
			},
		},
	}
}

package core

import (
	"strings"
)

// mapNativePaymentMethod converts the sheet-side payload into the public
// payment-method schema. The platform packs multi-line streets into one
// field separated by line breaks; they are split into discrete address
// lines here so downstream consumers never see embedded newlines.
func mapNativePaymentMethod(native NativePaymentMethod) PaymentMethod {
	line1, line2 := splitAddressLines(native.Street)

	methodType := strings.TrimSpace(native.Type)
	if methodType == "" {
		methodType = "card"
	}

	return PaymentMethod{
		ID:   strings.TrimSpace(native.TokenID),
		Type: methodType,
		Card: native.Card,
		BillingDetails: BillingDetails{
			Name:  strings.TrimSpace(native.Name),
			Email: strings.TrimSpace(native.Email),
			Phone: strings.TrimSpace(native.Phone),
			Address: PostalAddress{
				Name:       strings.TrimSpace(native.Name),
				Line1:      line1,
				Line2:      line2,
				City:       strings.TrimSpace(native.City),
				State:      strings.TrimSpace(native.State),
				PostalCode: strings.TrimSpace(native.Postal),
				Country:    strings.TrimSpace(native.Country),
			},
		},
		CreatedAt: native.IssuedAt,
	}
}

// splitAddressLines splits a street field on line breaks: first line becomes
// line1, anything after folds into line2.
func splitAddressLines(street string) (string, string) {
	street = strings.ReplaceAll(street, "\r\n", "\n")
	street = strings.TrimSpace(street)
	if street == "" {
		return "", ""
	}
	parts := strings.Split(street, "\n")
	line1 := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return line1, ""
	}
	rest := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part != "" {
			rest = append(rest, part)
		}
	}
	return line1, strings.Join(rest, " ")
}

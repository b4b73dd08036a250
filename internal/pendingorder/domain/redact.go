package domain

import "strings"

const maskRune = '*'

// maskText replaces every character with the mask. Redacted output keeps
// the original length so list layouts stay stable.
func maskText(s string) string {
	if s == "" {
		return s
	}
	return strings.Repeat(string(maskRune), len([]rune(s)))
}

// maskEmail hides everything before the final '@' and keeps the domain.
// Strings without an '@' are masked entirely.
func maskEmail(s string) string {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return maskText(s)
	}
	return maskText(s[:at]) + s[at:]
}

// RedactAddress hides the fields a privacy rule protects: the location
// fields entirely and the email's local part.
func RedactAddress(a Address) Address {
	a.Place = maskText(a.Place)
	a.Street = maskText(a.Street)
	a.ZipCode = maskText(a.ZipCode)
	a.Country = maskText(a.Country)
	a.Email = maskEmail(a.Email)
	return a
}

func redactAddresses(addrs []Address) []Address {
	if len(addrs) == 0 {
		return addrs
	}
	redacted := make([]Address, len(addrs))
	for i, a := range addrs {
		redacted[i] = RedactAddress(a)
	}
	return redacted
}

// Redact returns a copy of the order with the shipping and billing address
// snapshots redacted. The stored record is never modified.
func Redact(order PendingOrder) PendingOrder {
	order.ShippingAddresses = redactAddresses(order.ShippingAddresses)
	order.BillingAddresses = redactAddresses(order.BillingAddresses)
	return order
}

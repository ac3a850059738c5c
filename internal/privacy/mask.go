package privacy

import (
	"strings"

	"github.com/opsdeck/backoffice/internal/records"
)

// The masking output is consumed by existing UI clients and must keep its
// exact shape.

// MaskEmail keeps the first and last character of the local part. A string
// without both a local part and a domain is returned unchanged.
func MaskEmail(addr string) string {
	at := strings.Index(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return addr
	}

	user := []rune(addr[:at])
	domain := addr[at+1:]

	if len(user) <= 2 {
		return "••••@" + domain
	}
	return string(user[0]) + "••••" + string(user[len(user)-1]) + "@" + domain
}

// MaskPhone keeps the first and last two characters of numbers longer than
// four digits.
func MaskPhone(digits string) string {
	runes := []rune(digits)
	if len(runes) <= 4 {
		return "••••"
	}
	return string(runes[:2]) + "••••" + string(runes[len(runes)-2:])
}

// MaskAddress masks street, pincode and landmark; city and state pass
// through unmasked.
func MaskAddress(a records.Address) records.Address {
	masked := records.Address{
		City:  a.City,
		State: a.State,
	}
	if a.Street != "" {
		street := []rune(a.Street)
		tail := street
		if len(tail) > 2 {
			tail = tail[len(tail)-2:]
		}
		masked.Street = string(street[0]) + "•••••" + string(tail)
	}
	if a.Pincode != "" {
		masked.Pincode = "••••••"
	}
	if a.Landmark != "" {
		masked.Landmark = "•••••"
	}
	return masked
}

// MaskDateOfBirth hides the day of a DD/MM/YYYY date; anything else becomes
// a fully masked token.
func MaskDateOfBirth(dateStr string) string {
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 {
		return "••/••/••••"
	}
	return "••/" + parts[1] + "/" + parts[2]
}

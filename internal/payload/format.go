package payload

import "strings"

// DefaultCountryCode is the prefix applied to phone numbers when none is configured.
const DefaultCountryCode = "91"

// PhoneNormalizer reduces a phone number to digits with a country-code prefix.
type PhoneNormalizer struct {
	CountryCode string
}

// Normalize strips every non-digit and prepends the country code unless the
// digits already start with it. Input without digits normalizes to "".
func (n PhoneNormalizer) Normalize(phone string) string {
	var b strings.Builder
	b.Grow(len(n.CountryCode) + len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	digits := b.String()
	if strings.HasPrefix(digits, n.CountryCode) {
		return digits
	}
	return n.CountryCode + digits
}

// Formatter formats payloads with a fixed phone normalization policy.
// The zero value uses no country code; use NewFormatter for the default.
type Formatter struct {
	phone PhoneNormalizer
}

// NewFormatter returns a Formatter prefixing phone numbers with countryCode.
// Non-digit characters in countryCode are dropped.
func NewFormatter(countryCode string) *Formatter {
	cc := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, countryCode)
	return &Formatter{phone: PhoneNormalizer{CountryCode: cc}}
}

// CountryCode returns the prefix used during phone normalization.
func (f *Formatter) CountryCode() string { return f.phone.CountryCode }

// Format returns the encodable string for t built from fields.
func (f *Formatter) Format(t Type, fields Fields) string {
	return FromFields(t, fields).Encode(f.phone)
}

// Encode returns the encodable string for an already built payload.
func (f *Formatter) Encode(p Payload) string {
	return p.Encode(f.phone)
}

var defaultFormatter = NewFormatter(DefaultCountryCode)

// Format formats with DefaultCountryCode.
func Format(t Type, fields Fields) string {
	return defaultFormatter.Format(t, fields)
}

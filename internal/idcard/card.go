// Package idcard renders a mock identity card with an embedded QR code and exports it.
package idcard

import (
	"regexp"
	"strings"
	"time"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
)

// Gender values accepted on a card.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Font size bounds for the detail text on the back side, in CSS pixels.
const (
	MinFontSize     = 8
	MaxFontSize     = 16
	DefaultFontSize = 10
)

// DateLayout is the day-first date format printed on the card.
const DateLayout = "02/01/2006"

var genderHindi = map[string]string{
	GenderMale:   "पुरुष",
	GenderFemale: "महिला",
	GenderOther:  "अन्य",
}

// Card is the record shown on the card.
type Card struct {
	Name         string    `json:"name"`
	NameHindi    string    `json:"nameHindi"`
	DOB          time.Time `json:"dob"`
	Gender       string    `json:"gender"`
	Number       string    `json:"adharNumber"`
	VID          string    `json:"vid,omitempty"`
	Address      string    `json:"address"`
	AddressHindi string    `json:"addressHindi"`
	FontSize     int       `json:"fontSize,omitempty"`
	ShowQRCode   *bool     `json:"showQrCode,omitempty"`
}

// WithDefaults fills the optional presentation fields and clamps the font size.
func (c Card) WithDefaults() Card {
	switch {
	case c.FontSize == 0:
		c.FontSize = DefaultFontSize
	case c.FontSize < MinFontSize:
		c.FontSize = MinFontSize
	case c.FontSize > MaxFontSize:
		c.FontSize = MaxFontSize
	}
	if c.ShowQRCode == nil {
		show := true
		c.ShowQRCode = &show
	}
	return c
}

// QRVisible reports whether the QR code is drawn. Unset means visible.
func (c Card) QRVisible() bool {
	return c.ShowQRCode == nil || *c.ShowQRCode
}

// FormattedDOB returns the date of birth as dd/mm/yyyy, or "" when unset.
func (c Card) FormattedDOB() string {
	if c.DOB.IsZero() {
		return ""
	}
	return c.DOB.Format(DateLayout)
}

// QRText is the text encoded into the card's QR code.
func QRText(c Card) string {
	var b strings.Builder
	b.WriteString("Name: ")
	b.WriteString(c.Name)
	b.WriteString("\nDOB: ")
	b.WriteString(c.FormattedDOB())
	b.WriteString("\nGender: ")
	b.WriteString(c.Gender)
	b.WriteString("\nAadhaar: ")
	b.WriteString(c.Number)
	b.WriteString("\nAddress: ")
	b.WriteString(c.Address)
	return b.String()
}

// CheckQRText rejects a card whose QR text is longer than maxLen bytes.
// Cards with the QR code hidden always pass.
func CheckQRText(c Card, maxLen int) error {
	if maxLen <= 0 || !c.QRVisible() {
		return nil
	}
	if n := len(QRText(c)); n > maxLen {
		return apperr.Invalid("card details are too long for the QR code: %d bytes, limit %d", n, maxLen)
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s`)

// FileName returns the download name for an export with the given extension.
func FileName(c Card, ext string) string {
	base := whitespace.ReplaceAllString(c.Name, "_")
	if base == "" {
		base = "adhar"
	}
	return base + "_card." + strings.TrimPrefix(ext, ".")
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

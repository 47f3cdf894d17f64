// Package payload turns structured form input into the exact text a QR encoder should encode.
//
// Each payload type has its own variant struct carrying only the fields it reads. Formatting
// never fails: absent fields become empty substitutions and the caller decides whether the
// result is worth encoding.
package payload

import "strings"

// Fields holds raw form values keyed by field name. Absent and empty are equivalent.
type Fields map[string]string

// Get returns the value stored under key, or "" when absent.
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Payload is one variant of the payload union.
type Payload interface {
	Type() Type
	Encode(n PhoneNormalizer) string
}

type Text struct{ Text string }

type URL struct{ URL string }

type WhatsApp struct {
	Phone   string
	Message string
}

type Phone struct{ Phone string }

type Email struct{ Address string }

type Instagram struct{ Handle string }

type VCard struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Company   string
}

type SMS struct {
	Phone   string
	Message string
}

type WiFi struct {
	SSID       string
	Password   string
	Encryption string
}

type Bitcoin struct {
	Address string
	Amount  string
}

type Twitter struct{ Handle string }

// Link covers the payload types that are a bare URL (facebook, pdf, mp3, image).
type Link struct {
	Kind Type
	URL  string
}

type AppStore struct {
	IOS     string
	Android string
}

func (Text) Type() Type      { return TypeText }
func (URL) Type() Type       { return TypeURL }
func (WhatsApp) Type() Type  { return TypeWhatsApp }
func (Phone) Type() Type     { return TypePhone }
func (Email) Type() Type     { return TypeEmail }
func (Instagram) Type() Type { return TypeInstagram }
func (VCard) Type() Type     { return TypeVCard }
func (SMS) Type() Type       { return TypeSMS }
func (WiFi) Type() Type      { return TypeWiFi }
func (Bitcoin) Type() Type   { return TypeBitcoin }
func (Twitter) Type() Type   { return TypeTwitter }
func (l Link) Type() Type    { return l.Kind }
func (AppStore) Type() Type  { return TypeAppStore }

func (p Text) Encode(PhoneNormalizer) string { return p.Text }

func (p URL) Encode(PhoneNormalizer) string { return p.URL }

func (p WhatsApp) Encode(n PhoneNormalizer) string {
	out := "https://wa.me/" + n.Normalize(p.Phone)
	if p.Message != "" {
		out += "?text=" + escapeComponent(p.Message)
	}
	return out
}

func (p Phone) Encode(n PhoneNormalizer) string { return "tel:" + n.Normalize(p.Phone) }

func (p Email) Encode(PhoneNormalizer) string { return "mailto:" + p.Address }

func (p Instagram) Encode(PhoneNormalizer) string {
	return "https://instagram.com/" + strings.TrimPrefix(p.Handle, "@")
}

func (p VCard) Encode(n PhoneNormalizer) string {
	lines := [...]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + p.LastName + ";" + p.FirstName,
		"FN:" + p.FirstName + " " + p.LastName,
		"TEL;TYPE=CELL:" + n.Normalize(p.Phone),
		"EMAIL:" + p.Email,
		"ORG:" + p.Company,
		"END:VCARD",
	}
	return strings.Join(lines[:], "\n")
}

func (p SMS) Encode(n PhoneNormalizer) string {
	return "smsto:" + n.Normalize(p.Phone) + ":" + escapeComponent(p.Message)
}

func (p WiFi) Encode(PhoneNormalizer) string {
	enc := p.Encryption
	if enc == "" {
		enc = EncryptionWPA
	}
	return "WIFI:T:" + enc + ";S:" + p.SSID + ";P:" + p.Password + ";;"
}

func (p Bitcoin) Encode(PhoneNormalizer) string {
	return "bitcoin:" + p.Address + "?amount=" + p.Amount
}

func (p Twitter) Encode(PhoneNormalizer) string {
	return "https://twitter.com/" + strings.TrimPrefix(p.Handle, "@")
}

func (p Link) Encode(PhoneNormalizer) string { return p.URL }

func (p AppStore) Encode(PhoneNormalizer) string {
	if p.IOS != "" {
		return p.IOS
	}
	return p.Android
}

// FromFields builds the variant for t, reading only the fields t uses.
// An unknown type yields an empty Text payload.
func FromFields(t Type, f Fields) Payload {
	switch t {
	case TypeText:
		return Text{Text: f.Get(FieldText)}
	case TypeURL:
		return URL{URL: f.Get(FieldURL)}
	case TypeWhatsApp:
		return WhatsApp{Phone: f.Get(FieldWhatsApp), Message: f.Get(FieldMessage)}
	case TypePhone:
		return Phone{Phone: f.Get(FieldPhone)}
	case TypeEmail:
		return Email{Address: f.Get(FieldEmail)}
	case TypeInstagram:
		return Instagram{Handle: f.Get(FieldInstagram)}
	case TypeVCard:
		return VCard{
			FirstName: f.Get(FieldVCardFirstName),
			LastName:  f.Get(FieldVCardLastName),
			Phone:     f.Get(FieldVCardPhone),
			Email:     f.Get(FieldVCardEmail),
			Company:   f.Get(FieldVCardCompany),
		}
	case TypeSMS:
		return SMS{Phone: f.Get(FieldSMSPhone), Message: f.Get(FieldSMSMessage)}
	case TypeWiFi:
		return WiFi{
			SSID:       f.Get(FieldWiFiSSID),
			Password:   f.Get(FieldWiFiPassword),
			Encryption: f.Get(FieldWiFiEncryption),
		}
	case TypeBitcoin:
		return Bitcoin{Address: f.Get(FieldBitcoinAddress), Amount: f.Get(FieldBitcoinAmount)}
	case TypeTwitter:
		return Twitter{Handle: f.Get(FieldTwitter)}
	case TypeFacebook:
		return Link{Kind: TypeFacebook, URL: f.Get(FieldFacebookURL)}
	case TypePDF:
		return Link{Kind: TypePDF, URL: f.Get(FieldPDFURL)}
	case TypeMP3:
		return Link{Kind: TypeMP3, URL: f.Get(FieldMP3URL)}
	case TypeImage:
		return Link{Kind: TypeImage, URL: f.Get(FieldImageURL)}
	case TypeAppStore:
		return AppStore{IOS: f.Get(FieldAppStoreIOS), Android: f.Get(FieldAppStoreAndroid)}
	default:
		return Text{}
	}
}

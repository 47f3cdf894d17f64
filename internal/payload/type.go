package payload

import (
	"fmt"
	"strings"
)

// Type is the semantic category of the data encoded into a QR code.
type Type string

const (
	TypeText      Type = "text"
	TypeURL       Type = "url"
	TypeWhatsApp  Type = "whatsapp"
	TypePhone     Type = "phone"
	TypeEmail     Type = "email"
	TypeInstagram Type = "instagram"
	TypeVCard     Type = "vcard"
	TypeSMS       Type = "sms"
	TypeWiFi      Type = "wifi"
	TypeBitcoin   Type = "bitcoin"
	TypeTwitter   Type = "twitter"
	TypeFacebook  Type = "facebook"
	TypePDF       Type = "pdf"
	TypeMP3       Type = "mp3"
	TypeImage     Type = "image"
	TypeAppStore  Type = "app_store"
)

// Field keys accepted in Fields, grouped by the type that reads them.
const (
	FieldText = "text"
	FieldURL  = "url"

	FieldWhatsApp = "whatsapp"
	FieldMessage  = "message"

	FieldPhone = "phone"
	FieldEmail = "email"

	FieldInstagram = "instagram"
	FieldTwitter   = "twitter"

	FieldVCardFirstName = "vcard_firstname"
	FieldVCardLastName  = "vcard_lastname"
	FieldVCardPhone     = "vcard_phone"
	FieldVCardEmail     = "vcard_email"
	FieldVCardCompany   = "vcard_company"

	FieldSMSPhone   = "sms_phone"
	FieldSMSMessage = "sms_message"

	FieldWiFiSSID       = "wifi_ssid"
	FieldWiFiPassword   = "wifi_password"
	FieldWiFiEncryption = "wifi_encryption"

	FieldBitcoinAddress = "bitcoin_address"
	FieldBitcoinAmount  = "bitcoin_amount"

	FieldFacebookURL = "facebook_url"
	FieldPDFURL      = "pdf_url"
	FieldMP3URL      = "mp3_url"
	FieldImageURL    = "image_url"

	FieldAppStoreIOS     = "appstore_ios"
	FieldAppStoreAndroid = "appstore_android"
)

// WiFi encryption modes understood by scanners.
const (
	EncryptionWPA    = "WPA"
	EncryptionWEP    = "WEP"
	EncryptionNoPass = "nopass"
)

var types = []Type{
	TypeText, TypeURL, TypeWhatsApp, TypePhone, TypeEmail, TypeInstagram, TypeVCard, TypeSMS,
	TypeWiFi, TypeBitcoin, TypeTwitter, TypeFacebook, TypePDF, TypeMP3, TypeImage, TypeAppStore,
}

var typeFields = map[Type][]string{
	TypeText:      {FieldText},
	TypeURL:       {FieldURL},
	TypeWhatsApp:  {FieldWhatsApp, FieldMessage},
	TypePhone:     {FieldPhone},
	TypeEmail:     {FieldEmail},
	TypeInstagram: {FieldInstagram},
	TypeVCard:     {FieldVCardFirstName, FieldVCardLastName, FieldVCardPhone, FieldVCardEmail, FieldVCardCompany},
	TypeSMS:       {FieldSMSPhone, FieldSMSMessage},
	TypeWiFi:      {FieldWiFiSSID, FieldWiFiPassword, FieldWiFiEncryption},
	TypeBitcoin:   {FieldBitcoinAddress, FieldBitcoinAmount},
	TypeTwitter:   {FieldTwitter},
	TypeFacebook:  {FieldFacebookURL},
	TypePDF:       {FieldPDFURL},
	TypeMP3:       {FieldMP3URL},
	TypeImage:     {FieldImageURL},
	TypeAppStore:  {FieldAppStoreIOS, FieldAppStoreAndroid},
}

// Types returns every payload type in display order.
func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

// FieldsOf returns the field keys read by t.
func FieldsOf(t Type) []string {
	f := typeFields[t]
	out := make([]string, len(f))
	copy(out, f)
	return out
}

// Valid reports whether t is one of the known payload types.
func (t Type) Valid() bool {
	_, ok := typeFields[t]
	return ok
}

func (t Type) String() string { return string(t) }

// ParseType converts user input (case-insensitive, "-" accepted for "_") into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if t == "appstore" {
		t = TypeAppStore
	}
	if !t.Valid() {
		return "", fmt.Errorf("unknown payload type %q", s)
	}
	return t, nil
}

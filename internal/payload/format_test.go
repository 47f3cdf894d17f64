package payload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Examples(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		fields Fields
		want   string
	}{
		{
			name:   "url pass-through",
			typ:    TypeURL,
			fields: Fields{FieldURL: "https://example.com"},
			want:   "https://example.com",
		},
		{
			name:   "phone gets country prefix",
			typ:    TypePhone,
			fields: Fields{FieldPhone: "9876543210"},
			want:   "tel:919876543210",
		},
		{
			name:   "whatsapp with prefixed number and message",
			typ:    TypeWhatsApp,
			fields: Fields{FieldWhatsApp: "919876543210", FieldMessage: "hi"},
			want:   "https://wa.me/919876543210?text=hi",
		},
		{
			name:   "whatsapp message is url-encoded",
			typ:    TypeWhatsApp,
			fields: Fields{FieldWhatsApp: "+91 98765-43210", FieldMessage: "hello there & bye!"},
			want:   "https://wa.me/919876543210?text=hello%20there%20%26%20bye!",
		},
		{
			name:   "whatsapp without message has no query",
			typ:    TypeWhatsApp,
			fields: Fields{FieldWhatsApp: "9876543210"},
			want:   "https://wa.me/919876543210",
		},
		{
			name:   "wifi with explicit encryption",
			typ:    TypeWiFi,
			fields: Fields{FieldWiFiSSID: "Home", FieldWiFiPassword: "secret", FieldWiFiEncryption: "WEP"},
			want:   "WIFI:T:WEP;S:Home;P:secret;;",
		},
		{
			name:   "wifi defaults to WPA",
			typ:    TypeWiFi,
			fields: Fields{FieldWiFiSSID: "Home", FieldWiFiPassword: "secret"},
			want:   "WIFI:T:WPA;S:Home;P:secret;;",
		},
		{
			name:   "email",
			typ:    TypeEmail,
			fields: Fields{FieldEmail: "a@b.com"},
			want:   "mailto:a@b.com",
		},
		{
			name:   "instagram strips at sign",
			typ:    TypeInstagram,
			fields: Fields{FieldInstagram: "@gopher"},
			want:   "https://instagram.com/gopher",
		},
		{
			name:   "twitter strips at sign",
			typ:    TypeTwitter,
			fields: Fields{FieldTwitter: "@golang"},
			want:   "https://twitter.com/golang",
		},
		{
			name:   "sms",
			typ:    TypeSMS,
			fields: Fields{FieldSMSPhone: "(987) 654-3210", FieldSMSMessage: "call me"},
			want:   "smsto:919876543210:call%20me",
		},
		{
			name:   "bitcoin",
			typ:    TypeBitcoin,
			fields: Fields{FieldBitcoinAddress: "1BoatSLRHtKNngkdXEeobR76b53LETtpyT", FieldBitcoinAmount: "0.5"},
			want:   "bitcoin:1BoatSLRHtKNngkdXEeobR76b53LETtpyT?amount=0.5",
		},
		{
			name:   "facebook link",
			typ:    TypeFacebook,
			fields: Fields{FieldFacebookURL: "https://facebook.com/page"},
			want:   "https://facebook.com/page",
		},
		{
			name:   "pdf link",
			typ:    TypePDF,
			fields: Fields{FieldPDFURL: "https://example.com/a.pdf"},
			want:   "https://example.com/a.pdf",
		},
		{
			name:   "mp3 link",
			typ:    TypeMP3,
			fields: Fields{FieldMP3URL: "https://example.com/a.mp3"},
			want:   "https://example.com/a.mp3",
		},
		{
			name:   "image link",
			typ:    TypeImage,
			fields: Fields{FieldImageURL: "https://example.com/a.png"},
			want:   "https://example.com/a.png",
		},
		{
			name:   "app store prefers ios",
			typ:    TypeAppStore,
			fields: Fields{FieldAppStoreIOS: "https://apps.apple.com/x", FieldAppStoreAndroid: "https://play.google.com/x"},
			want:   "https://apps.apple.com/x",
		},
		{
			name:   "app store falls back to android",
			typ:    TypeAppStore,
			fields: Fields{FieldAppStoreAndroid: "https://play.google.com/x"},
			want:   "https://play.google.com/x",
		},
		{
			name:   "irrelevant fields are ignored",
			typ:    TypeText,
			fields: Fields{FieldText: "hello", FieldURL: "not a url", FieldPhone: "abc"},
			want:   "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.typ, tt.fields))
		})
	}
}

func TestFormat_VCard(t *testing.T) {
	got := Format(TypeVCard, Fields{
		FieldVCardFirstName: "A",
		FieldVCardLastName:  "B",
		FieldVCardPhone:     "9876543210",
		FieldVCardEmail:     "a@b.com",
		FieldVCardCompany:   "Co",
	})

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:B;A",
		"FN:A B",
		"TEL;TYPE=CELL:919876543210",
		"EMAIL:a@b.com",
		"ORG:Co",
		"END:VCARD",
	}, lines)
}

func TestFormat_EmptyFieldsNeverPanics(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			for _, fields := range []Fields{nil, {}} {
				var got string
				require.NotPanics(t, func() { got = Format(typ, fields) })
				assert.NotContains(t, got, "undefined")
				assert.NotContains(t, got, "null")
				assert.NotContains(t, got, "<nil>")
			}
		})
	}
}

func TestFormat_EmptyFieldsShape(t *testing.T) {
	assert.Equal(t, "", Format(TypeText, nil))
	assert.Equal(t, "tel:", Format(TypePhone, nil))
	assert.Equal(t, "mailto:", Format(TypeEmail, nil))
	assert.Equal(t, "https://wa.me/", Format(TypeWhatsApp, nil))
	assert.Equal(t, "smsto::", Format(TypeSMS, nil))
	assert.Equal(t, "WIFI:T:WPA;S:;P:;;", Format(TypeWiFi, nil))
	assert.Equal(t, "bitcoin:?amount=", Format(TypeBitcoin, nil))
}

func TestFormat_Idempotent(t *testing.T) {
	f := NewFormatter("91")
	fields := Fields{
		FieldWhatsApp:       "98765 43210",
		FieldMessage:        "ping?",
		FieldVCardFirstName: "Asha",
		FieldVCardPhone:     "98765-43210",
	}
	for _, typ := range Types() {
		first := f.Format(typ, fields)
		second := f.Format(typ, fields)
		assert.Equal(t, first, second, typ.String())
	}
	assert.Equal(t, "98765 43210", fields[FieldWhatsApp], "input must not be mutated")
}

func TestFormatter_CountryCodeIsConfigurable(t *testing.T) {
	us := NewFormatter("+1")
	assert.Equal(t, "1", us.CountryCode())
	assert.Equal(t, "tel:15551234567", us.Format(TypePhone, Fields{FieldPhone: "555-123-4567"}))
	assert.Equal(t, "tel:15551234567", us.Format(TypePhone, Fields{FieldPhone: "+1 555 123 4567"}))

	none := NewFormatter("")
	assert.Equal(t, "tel:5551234567", none.Format(TypePhone, Fields{FieldPhone: "555 123 4567"}))
}

func TestPhoneNormalizer(t *testing.T) {
	n := PhoneNormalizer{CountryCode: "91"}
	tests := []struct {
		in, want string
	}{
		{"9876543210", "919876543210"},
		{"919876543210", "919876543210"},
		{"+91 98765 43210", "919876543210"},
		{"(098) 765-4321", "910987654321"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Normalize(tt.in), tt.in)
	}
}

func TestFormatter_EncodeVariant(t *testing.T) {
	f := NewFormatter(DefaultCountryCode)
	p := FromFields(TypeWiFi, Fields{FieldWiFiSSID: "Cafe", FieldWiFiEncryption: EncryptionNoPass})
	assert.Equal(t, TypeWiFi, p.Type())
	assert.Equal(t, "WIFI:T:nopass;S:Cafe;P:;;", f.Encode(p))

	link := FromFields(TypeMP3, nil)
	assert.Equal(t, TypeMP3, link.Type())
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"hi", "hi"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"it's (ok)*!~", "it's%20(ok)*!~"},
		{"x=1&y=2", "x%3D1%26y%3D2"},
		{"नमस्ते", "%E0%A4%A8%E0%A4%AE%E0%A4%B8%E0%A5%8D%E0%A4%A4%E0%A5%87"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeComponent(tt.in), tt.in)
	}
}

func BenchmarkFormat_VCard(b *testing.B) {
	f := NewFormatter(DefaultCountryCode)
	fields := Fields{
		FieldVCardFirstName: "Asha",
		FieldVCardLastName:  "Rao",
		FieldVCardPhone:     "98765 43210",
		FieldVCardEmail:     "asha@example.com",
		FieldVCardCompany:   "Acme",
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.Format(TypeVCard, fields)
	}
}

func BenchmarkFormat_WhatsApp(b *testing.B) {
	f := NewFormatter(DefaultCountryCode)
	fields := Fields{FieldWhatsApp: "98765 43210", FieldMessage: "hello from the form"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.Format(TypeWhatsApp, fields)
	}
}

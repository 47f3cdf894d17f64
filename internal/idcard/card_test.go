package idcard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
)

func validCard() Card {
	return Card{
		Name:         "Asha Verma",
		NameHindi:    "आशा वर्मा",
		DOB:          time.Date(1990, time.March, 7, 0, 0, 0, 0, time.UTC),
		Gender:       GenderFemale,
		Number:       "1234 5678 9012",
		Address:      "12 MG Road, Bengaluru 560001",
		AddressHindi: "12 एमजी रोड, बेंगलुरु 560001",
	}
}

func TestQRText(t *testing.T) {
	got := QRText(validCard())
	assert.Equal(t, "Name: Asha Verma\nDOB: 07/03/1990\nGender: Female\nAadhaar: 1234 5678 9012\nAddress: 12 MG Road, Bengaluru 560001", got)
}

func TestQRTextBlanks(t *testing.T) {
	assert.Equal(t, "Name: \nDOB: \nGender: \nAadhaar: \nAddress: ", QRText(Card{}))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		card Card
		ext  string
		want string
	}{
		{"spaces replaced", Card{Name: "Asha  Verma"}, "pdf", "Asha__Verma_card.pdf"},
		{"empty name", Card{}, "png", "adhar_card.png"},
		{"leading dot", Card{Name: "Ravi"}, ".jpg", "Ravi_card.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.card, tt.ext))
		})
	}
}

func TestWithDefaults(t *testing.T) {
	c := Card{}.WithDefaults()
	assert.Equal(t, DefaultFontSize, c.FontSize)
	require.NotNil(t, c.ShowQRCode)
	assert.True(t, *c.ShowQRCode)

	hidden := false
	c = Card{FontSize: 14, ShowQRCode: &hidden}.WithDefaults()
	assert.Equal(t, 14, c.FontSize)
	assert.False(t, c.QRVisible())

	assert.Equal(t, MinFontSize, Card{FontSize: 3}.WithDefaults().FontSize)
	assert.Equal(t, MaxFontSize, Card{FontSize: 40}.WithDefaults().FontSize)
}

func TestGenderLabel(t *testing.T) {
	assert.Equal(t, "GENDER", genderLabel(Card{}, false))
	assert.Equal(t, "लिंग / GENDER", genderLabel(Card{}, true))
	assert.Equal(t, "MALE", genderLabel(Card{Gender: GenderMale}, false))
	assert.Equal(t, "महिला / FEMALE", genderLabel(Card{Gender: GenderFemale}, true))
}

func TestCheckQRText(t *testing.T) {
	c := validCard()
	assert.NoError(t, CheckQRText(c, 2048))
	assert.NoError(t, CheckQRText(c, 0))

	c.Address = strings.Repeat("a", 3400)
	err := CheckQRText(c, 2048)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	hidden := false
	c.ShowQRCode = &hidden
	assert.NoError(t, CheckQRText(c, 2048))
}

package idcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateAcceptsValidCard(t *testing.T) {
	errs, err := Validate(validCard())
	require.NoError(t, err)
	assert.Empty(t, errs)

	c := validCard()
	c.VID = "1234 5678 9012 3456"
	c.FontSize = 16
	errs, err = Validate(c)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateRejectsFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Card)
		field  string
	}{
		{"short name", func(c *Card) { c.Name = "Al" }, "name"},
		{"short hindi name", func(c *Card) { c.NameHindi = "अ" }, "nameHindi"},
		{"bad number", func(c *Card) { c.Number = "123456789012" }, "adharNumber"},
		{"bad vid", func(c *Card) { c.VID = "1234 5678 9012" }, "vid"},
		{"short address", func(c *Card) { c.Address = "Road" }, "address"},
		{"short hindi address", func(c *Card) { c.AddressHindi = "रोड" }, "addressHindi"},
		{"unknown gender", func(c *Card) { c.Gender = "X" }, "gender"},
		{"font too small", func(c *Card) { c.FontSize = 7 }, "fontSize"},
		{"font too large", func(c *Card) { c.FontSize = 17 }, "fontSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCard()
			tt.mutate(&c)
			errs, err := Validate(c)
			require.NoError(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.NotEmpty(t, errs[0].Message)
		})
	}
}

func TestValidateReportsMissingFields(t *testing.T) {
	errs, err := Validate(Card{})
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "addressHindi", "adharNumber", "dob", "gender", "name", "nameHindi"}, fields(errs))
}

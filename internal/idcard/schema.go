package idcard

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

const cardSchema = `{
  "type": "object",
  "required": ["name", "nameHindi", "dob", "gender", "adharNumber", "address", "addressHindi"],
  "properties": {
    "name":         {"type": "string", "minLength": 3},
    "nameHindi":    {"type": "string", "minLength": 3},
    "dob":          {"type": "string", "format": "date"},
    "gender":       {"type": "string", "enum": ["Male", "Female", "Other"]},
    "adharNumber":  {"type": "string", "pattern": "^\\d{4}\\s\\d{4}\\s\\d{4}$"},
    "vid":          {"type": "string", "pattern": "^(\\d{4}\\s){3}\\d{4}$"},
    "address":      {"type": "string", "minLength": 10},
    "addressHindi": {"type": "string", "minLength": 10},
    "fontSize":     {"type": "integer", "minimum": 8, "maximum": 16}
  }
}`

// InvalidDOBMessage is reported when the date of birth cannot be parsed.
const InvalidDOBMessage = "A valid date of birth is required."

var messages = map[string]string{
	"name":         "English name must be at least 3 characters.",
	"nameHindi":    "Hindi name must be at least 3 characters.",
	"dob":          "A date of birth is required.",
	"gender":       "Gender is required.",
	"adharNumber":  "Invalid Aadhaar format (e.g., 1234 5678 9012).",
	"vid":          "Invalid VID format (e.g., 1234 5678 9012 3456).",
	"address":      "English address must be at least 10 characters long.",
	"addressHindi": "Hindi address must be at least 10 characters long.",
	"fontSize":     fmt.Sprintf("Font size must be between %d and %d.", MinFontSize, MaxFontSize),
}

var compiledSchema = mustCompile(cardSchema)

func mustCompile(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("idcard: compile schema: %v", err))
	}
	return schema
}

// FieldError is a validation failure for one field, keyed by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// document converts c into the JSON shape validated by the schema. Empty
// strings are omitted so that "required" reports them.
func document(c Card) map[string]any {
	doc := map[string]any{}
	put := func(k, v string) {
		if v != "" {
			doc[k] = v
		}
	}
	put("name", c.Name)
	put("nameHindi", c.NameHindi)
	put("gender", c.Gender)
	put("adharNumber", c.Number)
	put("vid", c.VID)
	put("address", c.Address)
	put("addressHindi", c.AddressHindi)
	if !c.DOB.IsZero() {
		doc["dob"] = c.DOB.Format("2006-01-02")
	}
	if c.FontSize != 0 {
		doc["fontSize"] = c.FontSize
	}
	return doc
}

// Validate checks c against the card rules. It returns one error per failing
// field, sorted by field name, or nil when the card is valid.
func Validate(c Card) ([]FieldError, error) {
	res, err := compiledSchema.Validate(gojsonschema.NewGoLoader(document(c)))
	if err != nil {
		return nil, fmt.Errorf("validate card: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}

	seen := map[string]bool{}
	var out []FieldError
	for _, e := range res.Errors() {
		field := e.Field()
		if e.Type() == "required" {
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := messages[field]
		if !ok {
			msg = e.Description()
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, nil
}

package refine

import (
	"encoding/json"
	"fmt"
	"strings"
)

func buildPrompt(in Input) string {
	var parts []string

	parts = append(parts, "You are an assistant specializing in refining names and addresses for Indian Aadhaar cards, including translation and transliteration between English and Hindi.")
	parts = append(parts, "\nGiven the potentially incomplete or inaccurate names and addresses in English and/or Hindi, your task is to:")
	parts = append(parts, "1. Correct any spelling or formatting errors in both languages.")
	parts = append(parts, "2. If one language field is empty or incomplete, generate the corresponding version in the other language.")
	parts = append(parts, "3. Ensure the final output is accurate and properly formatted for an Aadhaar card.")

	parts = append(parts, fmt.Sprintf("\nEnglish Name: %s", in.Name))
	parts = append(parts, fmt.Sprintf("Hindi Name: %s", in.NameHindi))
	parts = append(parts, fmt.Sprintf("English Address: %s", in.Address))
	parts = append(parts, fmt.Sprintf("Hindi Address: %s", in.AddressHindi))

	parts = append(parts, "\nPlease provide a refined and completed version for all four fields.")
	parts = append(parts, "The output must be a valid JSON object formatted like this:")
	parts = append(parts, `{
  "refinedName": "<Refined English Name>",
  "refinedNameHindi": "<Refined Hindi Name>",
  "refinedAddress": "<Refined English Address>",
  "refinedAddressHindi": "<Refined Hindi Address>"
}`)

	return strings.Join(parts, "\n")
}

// parseOutput extracts the JSON object from a completion, tolerating
// markdown code fences and surrounding prose.
func parseOutput(text string) (*Output, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var out Output
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if out.RefinedName == "" && out.RefinedNameHindi == "" && out.RefinedAddress == "" && out.RefinedAddressHindi == "" {
		return nil, fmt.Errorf("completion has no refined fields")
	}
	return &out, nil
}

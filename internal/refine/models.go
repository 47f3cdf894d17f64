package refine

// Input carries the card fields to be corrected and completed.
type Input struct {
	Name         string `json:"name"`
	NameHindi    string `json:"nameHindi"`
	Address      string `json:"address"`
	AddressHindi string `json:"addressHindi"`
}

// Output is the refined version of all four fields.
type Output struct {
	RefinedName         string `json:"refinedName"`
	RefinedNameHindi    string `json:"refinedNameHindi"`
	RefinedAddress      string `json:"refinedAddress"`
	RefinedAddressHindi string `json:"refinedAddressHindi"`
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

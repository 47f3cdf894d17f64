package components

// TypeOption is one entry of the payload type selector.
type TypeOption struct {
	Value  string
	Label  string
	Fields []string
}

package payload

import (
	"net/url"
	"strings"
)

// componentUnescaper undoes the escapes url.QueryEscape applies to characters that
// encodeURIComponent leaves alone, and turns '+' back into %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s for use inside a URI component.
func escapeComponent(s string) string {
	if s == "" {
		return ""
	}
	return componentUnescaper.Replace(url.QueryEscape(s))
}

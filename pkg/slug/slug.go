package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
// Supports Turkish characters by transliterating them to ASCII equivalents.
//
// Examples:
//   - "Özel Baskı" → "ozel-baski"
//   - "Broşür Baskısı" → "brosur-baskisi"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Transliterate Turkish characters to ASCII.
	replacer := strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	)
	s = replacer.Replace(s)

	// Replace any non-alphanumeric run with a single hyphen.
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

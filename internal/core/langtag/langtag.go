// Package langtag canonicalizes the supported language names onto BCP 47
// tags. The API accepts display names, case-insensitively, and rejects
// anything outside the supported set
package langtag

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Tag pairs a display name with its BCP 47 tag
type Tag struct {
	Name string
	BCP  language.Tag
}

// supported is the canonical order used in responses and docs
var supported = []Tag{
	{Name: "Tamil", BCP: language.Tamil},
	{Name: "English", BCP: language.English},
	{Name: "Hindi", BCP: language.Hindi},
	{Name: "Malayalam", BCP: language.Malayalam},
	{Name: "Telugu", BCP: language.Telugu},
}

// Names returns the supported display names in canonical order
func Names() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.Name
	}
	return out
}

// Parse resolves a display name, case-insensitively, to its Tag
func Parse(name string) (Tag, error) {
	needle := strings.TrimSpace(name)
	for _, t := range supported {
		if strings.EqualFold(t.Name, needle) {
			return t, nil
		}
	}
	return Tag{}, fmt.Errorf("langtag: unsupported language %q (supported: %s)", name, strings.Join(Names(), ", "))
}

// Supported reports whether name resolves to a supported language
func Supported(name string) bool {
	_, err := Parse(name)
	return err == nil
}

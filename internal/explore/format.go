package explore

import (
	"fmt"
	"strings"
)

const (
	// MaxFieldsShown caps rendered fields per type unless showAllFields is set.
	MaxFieldsShown = 10

	noDescription = "no description available"
)

// FormatType renders one matched type as human-readable text. When
// showAllFields is false the field list is truncated to MaxFieldsShown with
// a trailing summary of how many fields were omitted. Truncation affects
// rendering only; the MatchedType keeps its full field list.
func FormatType(t MatchedType, showAllFields bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
	}

	if len(t.Fields) > 0 {
		b.WriteString("Fields:\n")
		shown := t.Fields
		truncated := !showAllFields && len(shown) > MaxFieldsShown
		if truncated {
			shown = shown[:MaxFieldsShown]
		}
		for _, f := range shown {
			description := f.Description
			if description == "" {
				description = noDescription
			}
			fmt.Fprintf(&b, "  - %s (%s): %s\n", f.Name, f.Type, description)
		}
		if truncated {
			fmt.Fprintf(&b, "  ... and %d more fields\n", len(t.Fields)-MaxFieldsShown)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

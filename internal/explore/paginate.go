package explore

import (
	"fmt"
	"strings"
)

// PageSize is the fixed number of matched types per result page.
const PageSize = 5

// Page is one contiguous slice of the matched-type sequence.
type Page struct {
	Types      []MatchedType
	Number     int
	TotalPages int
}

// Paginate slices matches into the requested 1-based page. Pages below 1
// normalize to 1; pages beyond the last yield an empty slice, not an error.
func Paginate(matches []MatchedType, page int) Page {
	if page < 1 {
		page = 1
	}

	totalPages := (len(matches) + PageSize - 1) / PageSize
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(matches) {
		start = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}

	return Page{
		Types:      matches[start:end],
		Number:     page,
		TotalPages: totalPages,
	}
}

// RenderSearchResults composes the full response text for a search: total
// match count, page position, the page's formatted types joined by blank
// lines, and a next-page hint when more pages follow.
func RenderSearchResults(matches []MatchedType, page int) string {
	p := Paginate(matches, page)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching types (page %d of %d)", len(matches), p.Number, p.TotalPages)

	if len(p.Types) > 0 {
		sections := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			sections = append(sections, FormatType(t, false))
		}
		b.WriteString("\n\n")
		b.WriteString(strings.Join(sections, "\n\n"))
	}

	if p.Number < p.TotalPages {
		fmt.Fprintf(&b, "\n\nFor more results, request page %d.", p.Number+1)
	}

	return b.String()
}

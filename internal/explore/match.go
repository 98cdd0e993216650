package explore

import (
	"strings"

	"spyglass/internal/graphql"
)

// MatchedType is the projection of a schema type that satisfied the match
// predicate: name, description, and the display projection of its fields.
type MatchedType struct {
	Name        string
	Description string
	Fields      []MatchedField
}

// MatchedField is the display projection of a schema field.
type MatchedField struct {
	Name        string
	Description string
	Type        string
}

// MatchTypes filters schema types by the term set. A type is included when
// any term is a case-insensitive substring of the type's name, its
// description, or any field's name or description. Output preserves the
// schema's type order; there is no ranking. Introspection meta-types
// (names starting with "__") are skipped as noise.
func MatchTypes(schema *graphql.Schema, terms []string) []MatchedType {
	var matches []MatchedType
	for _, td := range schema.Types {
		if strings.HasPrefix(td.Name, "__") {
			continue
		}
		if !typeMatches(td, terms) {
			continue
		}

		fields := make([]MatchedField, 0, len(td.Fields))
		for _, fd := range td.Fields {
			fields = append(fields, MatchedField{
				Name:        fd.Name,
				Description: fd.Description,
				Type:        fd.Type.DisplayName(),
			})
		}
		matches = append(matches, MatchedType{
			Name:        td.Name,
			Description: td.Description,
			Fields:      fields,
		})
	}
	return matches
}

func typeMatches(td graphql.TypeDescriptor, terms []string) bool {
	name := strings.ToLower(td.Name)
	description := strings.ToLower(td.Description)

	for _, term := range terms {
		if strings.Contains(name, term) || (description != "" && strings.Contains(description, term)) {
			return true
		}
		for _, fd := range td.Fields {
			if strings.Contains(strings.ToLower(fd.Name), term) {
				return true
			}
			if fd.Description != "" && strings.Contains(strings.ToLower(fd.Description), term) {
				return true
			}
		}
	}
	return false
}

// Package graphql provides a typed client for a remote GraphQL analytics API:
// schema introspection and raw query execution.
package graphql

// IntrospectionResult is the response from a GraphQL introspection query.
type IntrospectionResult struct {
	Data   IntrospectionData `json:"data"`
	Errors []Error           `json:"errors,omitempty"`
}

// Error represents a GraphQL error.
type Error struct {
	Message string `json:"message"`
}

// IntrospectionData holds the __schema field.
type IntrospectionData struct {
	Schema Schema `json:"__schema"`
}

// Schema is the GraphQL schema as returned by introspection.
// The type order is the server's; it is preserved through search and paging.
type Schema struct {
	Types []TypeDescriptor `json:"types"`
}

// TypeDescriptor represents one GraphQL type definition.
type TypeDescriptor struct {
	Kind        string            `json:"kind"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDescriptor `json:"fields,omitempty"`
}

// FieldDescriptor represents a field on an object or interface type.
type FieldDescriptor struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Type        TypeRef `json:"type"`
}

// TypeRef is a type reference with a single level of wrapper resolution
// (NON_NULL and LIST carry the named type in OfType).
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// DisplayName returns the field's named type for display: the direct name,
// or the wrapped type's name when the reference is a wrapper. Only one level
// is unwrapped; deeper nesting renders as "Unknown".
func (t TypeRef) DisplayName() string {
	if t.Name != nil && *t.Name != "" {
		return *t.Name
	}
	if t.OfType != nil && t.OfType.Name != nil && *t.OfType.Name != "" {
		return *t.OfType.Name
	}
	return "Unknown"
}

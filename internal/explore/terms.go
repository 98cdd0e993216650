// Package explore implements free-text search over an introspected GraphQL
// schema: term extraction, relevance matching, formatting, and pagination.
package explore

import (
	"strings"
	"unicode"
)

// stopwords are noise words for a GraphQL-schema search. Beyond common
// English filler these include schema vocabulary ("schema", "fields", "type")
// that would match nearly every type description.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "can": {}, "you": {},
	"what": {}, "which": {}, "show": {}, "list": {}, "find": {}, "get": {},
	"give": {}, "tell": {}, "about": {}, "does": {}, "how": {}, "have": {},
	"has": {}, "all": {}, "any": {}, "there": {}, "with": {}, "from": {},
	"available": {}, "data": {}, "field": {}, "fields": {}, "schema": {},
	"type": {}, "types": {}, "query": {}, "queries": {}, "info": {},
	"information": {}, "metrics": {},
}

const minTermLength = 3

// ExtractTerms turns a free-text query into significant search terms:
// lowercased, split on whitespace, stripped of surrounding punctuation,
// with stopwords and short tokens dropped. Order is preserved and
// duplicates are kept. An empty result is a valid outcome, not an error.
func ExtractTerms(query string) []string {
	var terms []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(token) < minTermLength {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

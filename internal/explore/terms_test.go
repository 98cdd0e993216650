package explore

import (
	"reflect"
	"testing"
)

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "natural language question",
			query: "What DNS analytics fields are available?",
			want:  []string{"dns", "analytics"},
		},
		{
			name:  "stopwords and short tokens dropped",
			query: "show me the http requests",
			want:  []string{"http", "requests"},
		},
		{
			name:  "order preserved",
			query: "firewall events by source",
			want:  []string{"firewall", "events", "source"},
		},
		{
			name:  "duplicates kept",
			query: "dns dns dns",
			want:  []string{"dns", "dns", "dns"},
		},
		{
			name:  "punctuation stripped before filtering",
			query: "workers, durable-objects!",
			want:  []string{"workers", "durable-objects"},
		},
		{
			name:  "only stopwords",
			query: "what fields are available",
			want:  nil,
		},
		{
			name:  "empty query",
			query: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			query: "   \t  ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTerms(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractTerms(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractTerms_Lowercases(t *testing.T) {
	got := ExtractTerms("HTTPRequests ANALYTICS")
	want := []string{"httprequests", "analytics"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractTerms = %v, want %v", got, want)
	}
}

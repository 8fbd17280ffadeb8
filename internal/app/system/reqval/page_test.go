package reqval

import (
	"net/url"
	"testing"
)

func TestPage(t *testing.T) {
	tests := []struct {
		query   string
		want    Paging
		invalid []string
	}{
		{"", Paging{Page: 1, Limit: 50}, nil},
		{"page=3&limit=10", Paging{Page: 3, Limit: 10}, nil},
		{"limit=200", Paging{Page: 1, Limit: 200}, nil},
		{"limit=201", Paging{Page: 1, Limit: 50}, []string{"limit"}},
		{"page=0&limit=abc", Paging{Page: 1, Limit: 50}, []string{"page", "limit"}},
		{"page=-1", Paging{Page: 1, Limit: 50}, []string{"page"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got, details := Page(q, 50, 200)
			if got != tt.want {
				t.Errorf("Page() = %+v, want %+v", got, tt.want)
			}
			if len(details) != len(tt.invalid) {
				t.Fatalf("details = %v, want keys %v", details, tt.invalid)
			}
			for _, k := range tt.invalid {
				if details[k] == "" {
					t.Errorf("details missing %q: %v", k, details)
				}
			}
		})
	}
}

package models

import (
	"net/url"
	"testing"
)

func TestParseProjectFilters(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
		wantOwner string
	}{
		{
			name:      "no filters",
			query:     "",
			wantCount: 0,
		},
		{
			name:      "by filter",
			query:     "by=usr-1",
			wantCount: 1,
			wantOwner: "usr-1",
		},
		{
			name:      "empty by value is ignored",
			query:     "by=",
			wantCount: 0,
		},
		{
			name:      "unrecognized keys are ignored, not errors",
			query:     "owner=usr-1&visibility=private&sort=title",
			wantCount: 0,
		},
		{
			name:      "recognized filter survives unrecognized neighbors",
			query:     "sort=title&by=usr-2",
			wantCount: 1,
			wantOwner: "usr-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery(%q): %v", tt.query, err)
			}

			filters := ParseProjectFilters(values)
			if len(filters) != tt.wantCount {
				t.Fatalf("ParseProjectFilters() returned %d filters, want %d", len(filters), tt.wantCount)
			}

			if tt.wantCount == 1 {
				if filters[0].Kind != FilterByOwner {
					t.Errorf("filter kind = %q, want %q", filters[0].Kind, FilterByOwner)
				}
				if filters[0].OwnerID != tt.wantOwner {
					t.Errorf("filter owner = %q, want %q", filters[0].OwnerID, tt.wantOwner)
				}
			}
		})
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		raw  string
		want Scope
	}{
		{"", ScopeActive},
		{"active", ScopeActive},
		{"trashed", ScopeTrashed},
		{"any", ScopeAny},
		{"bogus", ScopeActive},
	}

	for _, tt := range tests {
		if got := ParseScope(tt.raw); got != tt.want {
			t.Errorf("ParseScope(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestVisibilityValid(t *testing.T) {
	for _, v := range []Visibility{VisibilityPublic, VisibilityInternal, VisibilityPrivate} {
		if !v.Valid() {
			t.Errorf("Visibility(%q).Valid() = false, want true", v)
		}
	}
	if Visibility("hidden").Valid() {
		t.Error(`Visibility("hidden").Valid() = true, want false`)
	}
	if Visibility("").Valid() {
		t.Error(`Visibility("").Valid() = true, want false`)
	}
}

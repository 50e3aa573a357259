package models

import "net/url"

// ProjectFilterKind enumerates the whitelisted listing filters. A fixed
// enumeration keeps the filter surface auditable: callers cannot reach
// arbitrary columns through query parameters.
type ProjectFilterKind string

const (
	// FilterByOwner restricts results to projects owned by a given user.
	FilterByOwner ProjectFilterKind = "by"
)

// ProjectFilter is one active listing filter with its typed parameter.
// Filters compose by sequential narrowing (logical AND).
type ProjectFilter struct {
	Kind    ProjectFilterKind
	OwnerID string
}

// ParseProjectFilters extracts the recognized filters from query
// parameters. Unrecognized keys are ignored, not errors.
func ParseProjectFilters(values url.Values) []ProjectFilter {
	var filters []ProjectFilter
	if by := values.Get(string(FilterByOwner)); by != "" {
		filters = append(filters, ProjectFilter{Kind: FilterByOwner, OwnerID: by})
	}
	return filters
}

// Scope selects which lifecycle states a store query covers.
type Scope string

const (
	ScopeActive  Scope = "active"  // deleted_at IS NULL (default)
	ScopeTrashed Scope = "trashed" // deleted_at IS NOT NULL
	ScopeAny     Scope = "any"     // no lifecycle restriction
)

// ParseScope maps the optional scope query parameter onto a Scope,
// defaulting to active.
func ParseScope(raw string) Scope {
	switch Scope(raw) {
	case ScopeTrashed:
		return ScopeTrashed
	case ScopeAny:
		return ScopeAny
	default:
		return ScopeActive
	}
}

package domain

import "strings"

// MatchesSearch reports whether the term is a case-insensitive substring of
// the lead's full name or email. An empty term matches everything.
func (l Lead) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.FullName), term) ||
		strings.Contains(strings.ToLower(l.Email), term)
}

// MatchesStatusFilter reports whether the lead passes the status filter. The
// "all" sentinel (or an empty filter) is a no-op.
func (l Lead) MatchesStatusFilter(filter string) bool {
	if filter == "" || filter == StatusFilterAll {
		return true
	}
	return string(l.Status) == filter
}

// FilterLeads applies the search term and status filter as a logical AND over
// an already-fetched collection. Pure and idempotent; preserves input order.
func FilterLeads(leads []Lead, searchTerm, statusFilter string) []Lead {
	filtered := make([]Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.MatchesSearch(searchTerm) && lead.MatchesStatusFilter(statusFilter) {
			filtered = append(filtered, lead)
		}
	}
	return filtered
}

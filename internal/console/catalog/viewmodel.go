// Package catalog holds the console's catalog view state: the current page of
// securities, the options universe used for facet pickers and allocation
// lookups, and everything derived from them. Derived values are recomputed
// from the source slices on every change, never patched incrementally.
package catalog

import (
	"sort"

	"titulos-console/internal/console/query"
	"titulos-console/internal/domain"
)

// OptionsLimit is the fixed size of the options universe load. It is a
// separate, unfiltered request so changing page filters never changes which
// securities feed the facet pickers or the allocation lookup.
const OptionsLimit = 2000

// OptionsCriteria is the fixed query for the options universe.
func OptionsCriteria() query.Criteria {
	return query.Criteria{Sort: query.SortMaturity, Order: query.OrderAsc, Limit: OptionsLimit}
}

type ViewModel struct {
	page     []domain.Security
	loaded   int
	criteria query.Criteria

	options []domain.Security
	kinds   []string
	issuers []string
	lookup  map[string]domain.Security
}

func NewViewModel() *ViewModel {
	return &ViewModel{lookup: map[string]domain.Security{}}
}

// SetPage replaces the current page wholesale along with the criteria that
// produced it. Failed loads never reach here, so prior state survives them.
func (vm *ViewModel) SetPage(items []domain.Security, criteria query.Criteria) {
	vm.page = items
	vm.loaded = len(items)
	vm.criteria = criteria
}

func (vm *ViewModel) Page() []domain.Security {
	return vm.page
}

func (vm *ViewModel) Criteria() query.Criteria {
	return vm.criteria
}

// SetOptions replaces the options universe and rebuilds every derived value.
func (vm *ViewModel) SetOptions(items []domain.Security) {
	vm.options = items
	vm.kinds = distinct(items, func(s domain.Security) string { return s.Kind })
	vm.issuers = distinct(items, func(s domain.Security) string { return s.Issuer })
	vm.lookup = make(map[string]domain.Security, len(items))
	for _, s := range items {
		vm.lookup[s.ID.String()] = s
	}
}

func (vm *ViewModel) Options() []domain.Security {
	return vm.options
}

// DistinctKinds returns the sorted, deduplicated kinds in the options universe.
func (vm *ViewModel) DistinctKinds() []string {
	return vm.kinds
}

// DistinctIssuers returns the sorted, deduplicated issuers in the options universe.
func (vm *ViewModel) DistinctIssuers() []string {
	return vm.issuers
}

// Lookup is the point-in-time id -> security mapping built from the options
// universe. A security absent here renders as "not found", it does not
// trigger a fetch.
func (vm *ViewModel) Lookup() map[string]domain.Security {
	return vm.lookup
}

// HasNext holds iff the page came back full: a full page signals there may be
// more, a short page is treated as the end. No total-count call is made. The
// loaded-page length is captured in SetPage so a later MergeFound prepend
// cannot change the answer.
func (vm *ViewModel) HasNext() bool {
	return vm.criteria.Limit > 0 && vm.loaded == vm.criteria.Limit
}

// HasPrev holds iff the page was loaded at a non-zero offset.
func (vm *ViewModel) HasPrev() bool {
	return vm.criteria.Offset > 0
}

// PageNumber is the 1-based page derived from offset and page size.
func (vm *ViewModel) PageNumber() int {
	if vm.criteria.Limit <= 0 {
		return 1
	}
	return vm.criteria.Offset/vm.criteria.Limit + 1
}

// MergeFound prepends a looked-up security to the current page unless its id
// is already present, keeping the page duplicate-free. Reports whether the
// page changed.
func (vm *ViewModel) MergeFound(sec domain.Security) bool {
	for _, s := range vm.page {
		if s.ID == sec.ID {
			return false
		}
	}
	vm.page = append([]domain.Security{sec}, vm.page...)
	return true
}

func distinct(items []domain.Security, key func(domain.Security) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range items {
		k := key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

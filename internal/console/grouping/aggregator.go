// Package grouping derives per-security allocation summaries. Group is a pure
// function over its inputs; callers rebuild groups whenever the allocation
// list or the security lookup changes instead of patching sums in place.
package grouping

import (
	"sort"

	"titulos-console/internal/domain"
)

// AllocationGroup aggregates one customer's allocations of a single security.
// Security is nil when the id is absent from the lookup snapshot.
type AllocationGroup struct {
	SecurityID      string
	Security        *domain.Security
	AllocationCount int
	TotalQuantity   int
	Allocations     []domain.Allocation
}

// Group accumulates allocations by security id in one pass, preserving
// arrival order within each group, then orders groups by the referenced
// security's kind and maturity ascending. Groups whose security is missing
// from the lookup sort with empty-string keys.
func Group(allocs []domain.Allocation, lookup map[string]domain.Security) []AllocationGroup {
	byID := map[string]*AllocationGroup{}
	var order []string

	for _, a := range allocs {
		key := a.SecurityID.String()
		g, ok := byID[key]
		if !ok {
			g = &AllocationGroup{SecurityID: key}
			if sec, found := lookup[key]; found {
				cp := sec
				g.Security = &cp
			}
			byID[key] = g
			order = append(order, key)
		}
		g.AllocationCount++
		g.TotalQuantity += a.Quantity
		g.Allocations = append(g.Allocations, a)
	}

	out := make([]AllocationGroup, 0, len(order))
	for _, key := range order {
		out = append(out, *byID[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := sortKey(out[i]), sortKey(out[j])
		if ki.kind != kj.kind {
			return ki.kind < kj.kind
		}
		return ki.maturity < kj.maturity
	})
	return out
}

// TotalQuantity sums quantities over an ungrouped allocation list.
func TotalQuantity(allocs []domain.Allocation) int {
	total := 0
	for _, a := range allocs {
		total += a.Quantity
	}
	return total
}

type groupKey struct {
	kind, maturity string
}

func sortKey(g AllocationGroup) groupKey {
	if g.Security == nil {
		return groupKey{}
	}
	return groupKey{kind: g.Security.Kind, maturity: g.Security.Maturity}
}

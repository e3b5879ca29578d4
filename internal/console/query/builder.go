// Package query turns user-entered filter criteria into the canonical query
// the catalog endpoint accepts. Empty or whitespace-only fields are dropped so
// the backend never sees an empty-string filter.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort fields accepted by the catalog.
const (
	SortMaturity = "maturity"
	SortRate     = "rate"
	SortKind     = "kind"
	SortIssuer   = "issuer"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Criteria is the ephemeral filter/sort/pagination state of the catalog view.
// Every field is optional; rate bounds stay strings because they arrive
// straight from a text input. Limit <= 0 and Offset <= 0 are treated as unset.
type Criteria struct {
	Search       string
	Kind         string
	Issuer       string
	MaturityFrom string
	MaturityTo   string
	RateMin      string
	RateMax      string
	Sort         string
	Order        string
	Limit        int
	Offset       int
}

// Build produces the canonical query. Building twice from criteria that differ
// only in whitespace padding yields identical values.
func Build(c Criteria) url.Values {
	v := url.Values{}
	setTrimmed(v, "q", c.Search)
	setTrimmed(v, "kind", c.Kind)
	setTrimmed(v, "issuer", c.Issuer)
	setTrimmed(v, "maturityFrom", c.MaturityFrom)
	setTrimmed(v, "maturityTo", c.MaturityTo)
	setTrimmed(v, "rateMin", c.RateMin)
	setTrimmed(v, "rateMax", c.RateMax)
	setTrimmed(v, "sort", c.Sort)
	setTrimmed(v, "order", c.Order)
	if c.Limit > 0 {
		v.Set("limit", strconv.Itoa(c.Limit))
	}
	if c.Offset > 0 {
		v.Set("offset", strconv.Itoa(c.Offset))
	}
	return v
}

func setTrimmed(v url.Values, key, raw string) {
	if s := strings.TrimSpace(raw); s != "" {
		v.Set(key, s)
	}
}

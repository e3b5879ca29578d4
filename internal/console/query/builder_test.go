package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_EmptyCriteria(t *testing.T) {
	v := Build(Criteria{})
	assert.Empty(t, v)
}

func TestBuild_DropsBlankFields(t *testing.T) {
	v := Build(Criteria{Search: "   ", Kind: "\t", Issuer: ""})
	assert.Empty(t, v)
}

func TestBuild_TrimsWhitespace(t *testing.T) {
	a := Build(Criteria{Search: "cdi", Kind: "CDB"})
	b := Build(Criteria{Search: "  cdi  ", Kind: " CDB "})
	assert.Equal(t, a, b)
}

func TestBuild_AllFields(t *testing.T) {
	v := Build(Criteria{
		Search:       "banco",
		Kind:         "LCI",
		Issuer:       "Banco Alfa",
		MaturityFrom: "2026-01-01",
		MaturityTo:   "2028-12-31",
		RateMin:      "10.5",
		RateMax:      "14",
		Sort:         SortRate,
		Order:        OrderDesc,
		Limit:        25,
		Offset:       50,
	})

	assert.Equal(t, "banco", v.Get("q"))
	assert.Equal(t, "LCI", v.Get("kind"))
	assert.Equal(t, "Banco Alfa", v.Get("issuer"))
	assert.Equal(t, "2026-01-01", v.Get("maturityFrom"))
	assert.Equal(t, "2028-12-31", v.Get("maturityTo"))
	assert.Equal(t, "10.5", v.Get("rateMin"))
	assert.Equal(t, "14", v.Get("rateMax"))
	assert.Equal(t, "rate", v.Get("sort"))
	assert.Equal(t, "desc", v.Get("order"))
	assert.Equal(t, "25", v.Get("limit"))
	assert.Equal(t, "50", v.Get("offset"))
}

func TestBuild_OmitsNonPositivePagination(t *testing.T) {
	v := Build(Criteria{Limit: 0, Offset: -10})
	assert.False(t, v.Has("limit"))
	assert.False(t, v.Has("offset"))
}

func TestBuild_Deterministic(t *testing.T) {
	c := Criteria{Search: "tesouro", Sort: SortMaturity, Order: OrderAsc, Limit: 20}
	assert.Equal(t, Build(c).Encode(), Build(c).Encode())
}

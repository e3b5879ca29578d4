package tui

import (
	"testing"

	"titulos-console/internal/console/coordinator"
	"titulos-console/internal/console/query"
	"titulos-console/internal/console/transport"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNextSort_Cycles(t *testing.T) {
	assert.Equal(t, query.SortRate, nextSort(query.SortMaturity))
	assert.Equal(t, query.SortKind, nextSort(query.SortRate))
	assert.Equal(t, query.SortIssuer, nextSort(query.SortKind))
	assert.Equal(t, query.SortMaturity, nextSort(query.SortIssuer))
	assert.Equal(t, query.SortMaturity, nextSort("bogus"))
}

func TestCriteria_ReadsFilterInputs(t *testing.T) {
	coord := coordinator.New(transport.NewClient("http://localhost:0"), zerolog.Nop(), nil)
	m := NewModel(coord)

	m.filters[filterSearch].SetValue("banco")
	m.filters[filterKind].SetValue("CDB")
	m.filters[filterRateMin].SetValue("10")
	m.sort = query.SortRate
	m.order = query.OrderDesc

	c := m.criteria(40)
	assert.Equal(t, "banco", c.Search)
	assert.Equal(t, "CDB", c.Kind)
	assert.Equal(t, "10", c.RateMin)
	assert.Equal(t, query.SortRate, c.Sort)
	assert.Equal(t, query.OrderDesc, c.Order)
	assert.Equal(t, pageSize, c.Limit)
	assert.Equal(t, 40, c.Offset)
}

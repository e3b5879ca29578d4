package tui

import (
	"context"
	"time"

	"titulos-console/internal/console/coordinator"
	"titulos-console/internal/console/query"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tab int

const (
	tabSecurities tab = iota
	tabCustomers
)

// Filter field indexes on the securities tab. filterNone means the table has
// focus and keystrokes are commands, not input.
const (
	filterSearch = iota
	filterKind
	filterIssuer
	filterMaturityFrom
	filterMaturityTo
	filterRateMin
	filterRateMax
	filterCount
	filterNone = -1
)

// Customer-tab focus targets.
const (
	custFocusList = iota
	custFocusName
	custFocusQuantity
	custFocusLookup
	custFocusGroups
)

type Model struct {
	coord *coordinator.Coordinator

	tab    tab
	width  int
	height int

	// securities tab
	filters   [filterCount]textinput.Model
	focus     int
	rowCursor int
	sort      string
	order     string

	// customers tab
	nameInput   textinput.Model
	qtyInput    textinput.Model
	lookupInput textinput.Model
	custFocus   int
	custCursor  int
	groupCursor int
	secCursor   int
}

// coordinator bridge

type resultMsg struct {
	result coordinator.Result
}

type tickMsg time.Time

const tickInterval = 250 * time.Millisecond
const healthInterval = 10 * time.Second

type healthTickMsg struct{}

func runCoord(cmd coordinator.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return resultMsg{result: cmd(context.Background())}
	}
}

func runCoords(cmds []coordinator.Cmd) []tea.Cmd {
	out := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if c := runCoord(cmd); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func healthTick() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg { return healthTickMsg{} })
}

func NewModel(coord *coordinator.Coordinator) Model {
	m := Model{
		coord: coord,
		focus: filterNone,
		sort:  query.SortMaturity,
		order: query.OrderAsc,
	}

	placeholders := [filterCount]string{
		"free text", "kind", "issuer", "YYYY-MM-DD", "YYYY-MM-DD", "min %", "max %",
	}
	for i := range m.filters {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 18
		m.filters[i] = ti
	}

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "customer name"
	m.nameInput.Prompt = ""
	m.nameInput.CharLimit = 80
	m.nameInput.Width = 28

	m.qtyInput = textinput.New()
	m.qtyInput.Placeholder = "qty"
	m.qtyInput.Prompt = ""
	m.qtyInput.CharLimit = 6
	m.qtyInput.Width = 8

	m.lookupInput = textinput.New()
	m.lookupInput.Placeholder = "security id"
	m.lookupInput.Prompt = ""
	m.lookupInput.CharLimit = 36
	m.lookupInput.Width = 38

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		runCoord(m.coord.CheckHealth()),
		runCoord(m.coord.LoadCatalog(m.criteria(0))),
		runCoord(m.coord.LoadOptions()),
		runCoord(m.coord.LoadCustomers()),
		tick(),
		healthTick(),
	}
	return tea.Batch(cmds...)
}

// criteria assembles the catalog query from the filter inputs plus the given
// offset. Values pass through as typed; the backend validates rate bounds.
func (m Model) criteria(offset int) query.Criteria {
	return query.Criteria{
		Search:       m.filters[filterSearch].Value(),
		Kind:         m.filters[filterKind].Value(),
		Issuer:       m.filters[filterIssuer].Value(),
		MaturityFrom: m.filters[filterMaturityFrom].Value(),
		MaturityTo:   m.filters[filterMaturityTo].Value(),
		RateMin:      m.filters[filterRateMin].Value(),
		RateMax:      m.filters[filterRateMax].Value(),
		Sort:         m.sort,
		Order:        m.order,
		Limit:        pageSize,
		Offset:       offset,
	}
}

const pageSize = 20

var sortCycle = []string{query.SortMaturity, query.SortRate, query.SortKind, query.SortIssuer}

func nextSort(current string) string {
	for i, s := range sortCycle {
		if s == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

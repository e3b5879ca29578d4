package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		followups := m.coord.Apply(msg.result)
		m.clampCursors()
		return m, tea.Batch(runCoords(followups)...)

	case tickMsg:
		m.coord.ExpireMessage(time.Now())
		return m, tick()

	case healthTickMsg:
		return m, tea.Batch(runCoord(m.coord.CheckHealth()), healthTick())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.editing() {
		return m.handleEditingKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Tab):
		if m.tab == tabSecurities {
			m.tab = tabCustomers
		} else {
			m.tab = tabSecurities
		}
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		m.coord.DismissMessage()
		return m, nil
	}

	if m.tab == tabSecurities {
		return m.handleSecuritiesKey(msg)
	}
	return m.handleCustomersKey(msg)
}

// editing reports whether keystrokes currently belong to a text input.
func (m Model) editing() bool {
	if m.tab == tabSecurities {
		return m.focus != filterNone
	}
	switch m.custFocus {
	case custFocusName, custFocusQuantity, custFocusLookup:
		return true
	}
	return false
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.blur()
		return m, nil
	case key.Matches(msg, keys.NextField):
		m.advanceFocus()
		return m, nil
	case key.Matches(msg, keys.Enter):
		return m.submitFocused()
	}

	// Quantity focus doubles as the security picker.
	if m.tab == tabCustomers && m.custFocus == custFocusQuantity {
		switch {
		case key.Matches(msg, keys.Up):
			m.moveSecurityCursor(-1)
			return m, nil
		case key.Matches(msg, keys.Down):
			m.moveSecurityCursor(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case m.tab == tabSecurities:
		m.filters[m.focus], cmd = m.filters[m.focus].Update(msg)
	case m.custFocus == custFocusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case m.custFocus == custFocusQuantity:
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	case m.custFocus == custFocusLookup:
		m.lookupInput, cmd = m.lookupInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) blur() {
	for i := range m.filters {
		m.filters[i].Blur()
	}
	m.nameInput.Blur()
	m.qtyInput.Blur()
	m.lookupInput.Blur()
	if m.tab == tabSecurities {
		m.focus = filterNone
	} else {
		m.custFocus = custFocusList
	}
}

func (m *Model) advanceFocus() {
	if m.tab == tabSecurities {
		next := m.focus + 1
		if next >= filterCount {
			m.blur()
			return
		}
		m.setFilterFocus(next)
		return
	}
	switch m.custFocus {
	case custFocusList:
		m.setCustomerFocus(custFocusName)
	case custFocusName:
		m.setCustomerFocus(custFocusQuantity)
	case custFocusQuantity:
		m.setCustomerFocus(custFocusLookup)
	case custFocusLookup:
		m.blur()
		m.custFocus = custFocusGroups
	default:
		m.blur()
	}
}

func (m *Model) setFilterFocus(i int) {
	m.blur()
	m.focus = i
	m.filters[i].Focus()
}

func (m *Model) setCustomerFocus(target int) {
	m.blur()
	m.custFocus = target
	switch target {
	case custFocusName:
		m.nameInput.Focus()
	case custFocusQuantity:
		m.qtyInput.Focus()
	case custFocusLookup:
		m.lookupInput.Focus()
	}
}

func (m Model) submitFocused() (tea.Model, tea.Cmd) {
	if m.tab == tabSecurities {
		m.blur()
		return m, runCoord(m.coord.LoadCatalog(m.criteria(0)))
	}

	switch m.custFocus {
	case custFocusName:
		name := m.nameInput.Value()
		cmd := m.coord.CreateCustomer(name)
		if cmd != nil {
			m.nameInput.SetValue("")
			m.blur()
		}
		return m, runCoord(cmd)
	case custFocusQuantity:
		qty, err := strconv.Atoi(strings.TrimSpace(m.qtyInput.Value()))
		if err != nil {
			qty = 0 // let the coordinator produce the warning
		}
		cmd := m.coord.CreateAllocation(qty)
		if cmd != nil {
			m.qtyInput.SetValue("")
			m.blur()
		}
		return m, runCoord(cmd)
	case custFocusLookup:
		cmd := m.coord.LookupSecurity(m.lookupInput.Value())
		if cmd != nil {
			m.blur()
		}
		return m, runCoord(cmd)
	}
	return m, nil
}

func (m Model) handleSecuritiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.coord.Catalog.Page()
	criteria := m.coord.Catalog.Criteria()

	switch {
	case key.Matches(msg, keys.NextField):
		m.setFilterFocus(filterSearch)
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.rowCursor > 0 {
			m.rowCursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.rowCursor < len(page)-1 {
			m.rowCursor++
		}
		return m, nil
	case key.Matches(msg, keys.Enter):
		if m.rowCursor < len(page) {
			m.coord.SelectSecurity(page[m.rowCursor].ID.String())
		}
		return m, nil
	case key.Matches(msg, keys.Copy):
		if m.rowCursor < len(page) {
			m.coord.CopyIdentifier(page[m.rowCursor].ID.String())
		}
		return m, nil
	case key.Matches(msg, keys.CycleSort):
		m.sort = nextSort(m.sort)
		return m, runCoord(m.coord.LoadCatalog(m.criteria(0)))
	case key.Matches(msg, keys.FlipOrder):
		if m.order == "asc" {
			m.order = "desc"
		} else {
			m.order = "asc"
		}
		return m, runCoord(m.coord.LoadCatalog(m.criteria(0)))
	case key.Matches(msg, keys.NextPage):
		if m.coord.Catalog.HasNext() {
			return m, runCoord(m.coord.LoadCatalog(m.criteria(criteria.Offset + criteria.Limit)))
		}
		return m, nil
	case key.Matches(msg, keys.PrevPage):
		if m.coord.Catalog.HasPrev() {
			offset := criteria.Offset - criteria.Limit
			if offset < 0 {
				offset = 0
			}
			return m, runCoord(m.coord.LoadCatalog(m.criteria(offset)))
		}
		return m, nil
	case key.Matches(msg, keys.Reload):
		return m, tea.Batch(
			runCoord(m.coord.LoadCatalog(m.criteria(criteria.Offset))),
			runCoord(m.coord.LoadOptions()),
		)
	}
	return m, nil
}

func (m Model) handleCustomersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	customers := m.coord.Customers()
	groups := m.coord.Groups()

	switch {
	case key.Matches(msg, keys.NextField):
		m.setCustomerFocus(custFocusName)
		return m, nil
	case key.Matches(msg, keys.NewEntry):
		m.setCustomerFocus(custFocusQuantity)
		return m, nil
	case key.Matches(msg, keys.Reload):
		cmds := []tea.Cmd{runCoord(m.coord.LoadCustomers())}
		cmds = append(cmds, runCoords(m.coord.ReloadAllocations())...)
		return m, tea.Batch(cmds...)
	}

	if m.custFocus == custFocusGroups {
		switch {
		case key.Matches(msg, keys.Escape):
			m.custFocus = custFocusList
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.groupCursor > 0 {
				m.groupCursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.groupCursor < len(groups)-1 {
				m.groupCursor++
			}
			return m, nil
		case key.Matches(msg, keys.Enter):
			if m.groupCursor < len(groups) {
				m.coord.ToggleExpanded(groups[m.groupCursor].SecurityID)
			}
			return m, nil
		case key.Matches(msg, keys.Copy):
			if m.groupCursor < len(groups) {
				m.coord.CopyIdentifier(groups[m.groupCursor].SecurityID)
			}
			return m, nil
		}
		return m, nil
	}

	// customer list focus
	switch {
	case key.Matches(msg, keys.Up):
		if m.custCursor > 0 {
			m.custCursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.custCursor < len(customers)-1 {
			m.custCursor++
		}
		return m, nil
	case key.Matches(msg, keys.Enter):
		if m.custCursor < len(customers) {
			return m, tea.Batch(runCoords(m.coord.SelectCustomer(customers[m.custCursor].ID.String()))...)
		}
		return m, nil
	case key.Matches(msg, keys.Copy):
		if m.custCursor < len(customers) {
			m.coord.CopyIdentifier(customers[m.custCursor].ID.String())
		}
		return m, nil
	case key.Matches(msg, keys.NextPage):
		m.custFocus = custFocusGroups
		return m, nil
	}
	return m, nil
}

// moveSecurityCursor steps the allocation security picker over the options
// universe and records the selection.
func (m *Model) moveSecurityCursor(delta int) {
	options := m.coord.Catalog.Options()
	if len(options) == 0 {
		return
	}
	m.secCursor += delta
	if m.secCursor < 0 {
		m.secCursor = 0
	}
	if m.secCursor >= len(options) {
		m.secCursor = len(options) - 1
	}
	m.coord.SelectSecurity(options[m.secCursor].ID.String())
}

func (m *Model) clampCursors() {
	if n := len(m.coord.Catalog.Page()); m.rowCursor >= n && n > 0 {
		m.rowCursor = n - 1
	} else if n == 0 {
		m.rowCursor = 0
	}
	if n := len(m.coord.Customers()); m.custCursor >= n && n > 0 {
		m.custCursor = n - 1
	} else if n == 0 {
		m.custCursor = 0
	}
	if n := len(m.coord.Groups()); m.groupCursor >= n && n > 0 {
		m.groupCursor = n - 1
	} else if n == 0 {
		m.groupCursor = 0
	}
}

package tui

import (
	"fmt"
	"strings"

	"titulos-console/internal/console/coordinator"
	"titulos-console/internal/console/grouping"
	"titulos-console/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	sections := []string{
		m.viewHeader(),
		m.viewMessage(),
	}
	if m.tab == tabSecurities {
		sections = append(sections, m.viewSecurities())
	} else {
		sections = append(sections, m.viewCustomers())
	}
	sections = append(sections, m.viewHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	status := mutedStyle.Render("● offline")
	if m.coord.Connected() {
		status = lipgloss.NewStyle().Foreground(theme.Success).Render("● online")
	}

	tabs := []string{
		tabStyle.Render("Securities"),
		tabStyle.Render("Customers"),
	}
	if m.tab == tabSecurities {
		tabs[0] = activeTabStyle.Render("Securities")
	} else {
		tabs[1] = activeTabStyle.Render("Customers")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(" Títulos "),
		tabs[0], tabs[1],
		"  ", status,
	)
}

func (m Model) viewMessage() string {
	msg := m.coord.Message()
	if msg == nil {
		return ""
	}
	style, ok := messageStyles[string(msg.Severity)]
	if !ok {
		style = messageStyles["info"]
	}
	return style.Render(" " + msg.Text + " ") + helpStyle.Render(" (x dismiss)")
}

func (m Model) viewSecurities() string {
	var filters []string
	labels := [filterCount]string{"search", "kind", "issuer", "from", "to", "rate ≥", "rate ≤"}
	for i := range m.filters {
		label := labels[i]
		if m.focus == i {
			label = selectedStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		filters = append(filters, label+" "+m.filters[i].View())
	}
	filterRow := strings.Join(filters[:4], "  ")
	filterRow2 := strings.Join(filters[4:], "  ") +
		mutedStyle.Render(fmt.Sprintf("  sort %s %s", m.sort, m.order))

	table := m.viewTable()

	pager := fmt.Sprintf("page %d", m.coord.Catalog.PageNumber())
	if m.coord.Catalog.HasPrev() {
		pager = "← " + pager
	}
	if m.coord.Catalog.HasNext() {
		pager = pager + " →"
	}
	if m.coord.Loading(coordinator.ResourceCatalog) {
		pager += "  loading…"
	}

	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		filterRow, filterRow2, "", table, "", mutedStyle.Render(pager)))
}

func (m Model) viewTable() string {
	page := m.coord.Catalog.Page()
	if len(page) == 0 {
		if err := m.coord.LoadError(coordinator.ResourceCatalog); err != "" {
			return messageStyles["danger"].Render(err)
		}
		return mutedStyle.Render("no securities match the current filters")
	}

	rows := []string{headerStyle.Render(fmt.Sprintf("  %-38s %-10s %-12s %8s  %s", "id", "kind", "maturity", "rate", "issuer"))}
	for i, sec := range page {
		cursor := "  "
		line := fmt.Sprintf("%-38s %-10s %-12s %8s  %s",
			sec.ID.String(), sec.Kind, sec.Maturity, sec.Rate.String()+"%", sec.Issuer)
		if i == m.rowCursor {
			rows = append(rows, selectedStyle.Render("> "+line))
			continue
		}
		rows = append(rows, cursor+line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewCustomers() string {
	left := m.viewCustomerList()
	right := m.viewAllocationPanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, paneStyle.Render(left), " ", paneStyle.Render(right))

	form := m.viewCustomerForms()
	return lipgloss.JoinVertical(lipgloss.Left, body, form)
}

func (m Model) viewCustomerList() string {
	customers := m.coord.Customers()
	rows := []string{headerStyle.Render("customers")}
	if len(customers) == 0 {
		rows = append(rows, mutedStyle.Render("none yet"))
	}
	for i, customer := range customers {
		line := customer.Name
		selected := customer.ID.String() == m.coord.SelectedCustomerID()
		switch {
		case i == m.custCursor && m.custFocus == custFocusList:
			line = selectedStyle.Render("> " + line)
		case selected:
			line = lipgloss.NewStyle().Foreground(theme.Info).Render("* " + line)
		default:
			line = "  " + line
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewAllocationPanel() string {
	customer := m.coord.SelectedCustomer()
	if customer == nil {
		return mutedStyle.Render("select a customer to see allocations")
	}

	rows := []string{headerStyle.Render(fmt.Sprintf("%s — %d unit(s) across %d securities",
		customer.Name, m.coord.TotalQuantity(), len(m.coord.Groups())))}

	if m.coord.Loading(coordinator.ResourceAllocations) {
		rows = append(rows, mutedStyle.Render("loading…"))
	}
	if err := m.coord.LoadError(coordinator.ResourceAllocations); err != "" {
		rows = append(rows, messageStyles["danger"].Render(err))
	}

	groups := m.coord.Groups()
	if len(groups) == 0 {
		rows = append(rows, mutedStyle.Render("no allocations"))
	}
	for i, g := range groups {
		rows = append(rows, m.viewGroup(i, g))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewGroup(i int, g grouping.AllocationGroup) string {
	marker := "+"
	expanded := m.coord.ExpandedSecurityID() == g.SecurityID
	if expanded {
		marker = "-"
	}

	head := fmt.Sprintf("%s %s  ×%d (%d allocation(s))", marker, describeSecurity(g.Security, g.SecurityID), g.TotalQuantity, g.AllocationCount)
	if m.custFocus == custFocusGroups && i == m.groupCursor {
		head = selectedStyle.Render("> " + head)
	} else {
		head = "  " + head
	}
	if !expanded {
		return head
	}

	lines := []string{head}
	for _, alloc := range g.Allocations {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("      %s  qty %d", alloc.ID, alloc.Quantity)))
	}
	return strings.Join(lines, "\n")
}

func describeSecurity(sec *domain.Security, id string) string {
	if sec == nil {
		return id + " (not found)"
	}
	return fmt.Sprintf("%s %s %s%% — %s", sec.Kind, sec.Maturity, sec.Rate.String(), sec.Issuer)
}

func (m Model) viewCustomerForms() string {
	selectedSec := "none"
	if id := m.coord.SelectedSecurityID(); id != "" {
		if sec, ok := m.coord.Catalog.Lookup()[id]; ok {
			selectedSec = describeSecurity(&sec, id)
		} else if found := m.coord.FoundSecurity(); found != nil && found.ID.String() == id {
			selectedSec = describeSecurity(found, id)
		} else {
			selectedSec = id
		}
	}

	rows := []string{
		labelStyle.Render("new customer") + m.nameInput.View(),
		labelStyle.Render("allocate") + m.qtyInput.View() + mutedStyle.Render("  of ") + selectedSec,
		labelStyle.Render("lookup id") + m.lookupInput.View(),
	}
	return paneStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) viewHelp() string {
	if m.editing() {
		return helpStyle.Render(" enter apply · esc cancel · ctrl+n next field")
	}
	if m.tab == tabSecurities {
		return helpStyle.Render(" tab customers · ctrl+n filters · ↑↓ rows · enter select · s/o sort · ←→ page · c copy · r reload · q quit")
	}
	return helpStyle.Render(" tab securities · ↑↓ move · enter select/expand · ctrl+n new customer · a allocate · c copy · r reload · q quit")
}

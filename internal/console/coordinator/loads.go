package coordinator

import (
	"context"

	"titulos-console/internal/console/catalog"
	"titulos-console/internal/console/query"
	"titulos-console/internal/domain"
)

// LoadCatalog issues a paged catalog load for the given criteria.
func (c *Coordinator) LoadCatalog(criteria query.Criteria) Cmd {
	token := c.begin(ResourceCatalog)
	client := c.client
	return func(ctx context.Context) Result {
		items, err := client.ListSecurities(ctx, query.Build(criteria))
		return catalogResult{token: token, criteria: criteria, items: items, err: err}
	}
}

type catalogResult struct {
	token    uint64
	criteria query.Criteria
	items    []domain.Security
	err      error
}

func (r catalogResult) apply(c *Coordinator) []Cmd {
	if !c.finish(ResourceCatalog, r.token) {
		return nil
	}
	if r.err != nil {
		c.fail(ResourceCatalog, "Failed to load securities: "+r.err.Error())
		return nil
	}
	c.Catalog.SetPage(r.items, r.criteria)
	return nil
}

// LoadOptions issues the fixed-size options-universe load that feeds facet
// pickers and the allocation-security lookup.
func (c *Coordinator) LoadOptions() Cmd {
	token := c.begin(ResourceOptions)
	client := c.client
	return func(ctx context.Context) Result {
		items, err := client.ListSecurities(ctx, query.Build(catalog.OptionsCriteria()))
		return optionsResult{token: token, items: items, err: err}
	}
}

type optionsResult struct {
	token uint64
	items []domain.Security
	err   error
}

func (r optionsResult) apply(c *Coordinator) []Cmd {
	if !c.finish(ResourceOptions, r.token) {
		return nil
	}
	if r.err != nil {
		c.fail(ResourceOptions, "Failed to load security options: "+r.err.Error())
		return nil
	}
	c.Catalog.SetOptions(r.items)
	c.optionsGen++
	if c.selectedSecurityID == "" && len(r.items) > 0 {
		c.selectedSecurityID = r.items[0].ID.String()
	}
	return nil
}

// LoadCustomers refreshes the customer list.
func (c *Coordinator) LoadCustomers() Cmd {
	token := c.begin(ResourceCustomers)
	client := c.client
	return func(ctx context.Context) Result {
		items, err := client.ListCustomers(ctx)
		return customersResult{token: token, items: items, err: err}
	}
}

type customersResult struct {
	token uint64
	items []domain.Customer
	err   error
}

func (r customersResult) apply(c *Coordinator) []Cmd {
	if !c.finish(ResourceCustomers, r.token) {
		return nil
	}
	if r.err != nil {
		c.fail(ResourceCustomers, "Failed to load customers: "+r.err.Error())
		return nil
	}
	c.customers = r.items
	return nil
}

// SelectCustomer switches the allocation view to another customer: the
// current allocation list and expanded-group state are cleared immediately,
// in-flight allocation loads are superseded, and a fresh load is issued.
// An empty selection short-circuits to an empty list without a network call.
func (c *Coordinator) SelectCustomer(id string) []Cmd {
	c.selectedCustomerID = id
	c.setAllocations(nil)
	c.expandedSecurityID = ""
	if id == "" {
		// Bump the token so a late response for the previous customer is dropped.
		c.tokens[ResourceAllocations]++
		c.loading[ResourceAllocations] = false
		c.errs[ResourceAllocations] = ""
		return nil
	}
	return []Cmd{c.loadAllocations(id)}
}

// ReloadAllocations re-fetches the selected customer's allocations.
func (c *Coordinator) ReloadAllocations() []Cmd {
	if c.selectedCustomerID == "" {
		return nil
	}
	return []Cmd{c.loadAllocations(c.selectedCustomerID)}
}

func (c *Coordinator) loadAllocations(customerID string) Cmd {
	token := c.begin(ResourceAllocations)
	client := c.client
	return func(ctx context.Context) Result {
		out, err := client.GetAllocations(ctx, customerID)
		r := allocationsResult{token: token, customerID: customerID, err: err}
		if out != nil {
			r.allocations = out.Allocations
		}
		return r
	}
}

type allocationsResult struct {
	token       uint64
	customerID  string
	allocations []domain.Allocation
	err         error
}

func (r allocationsResult) apply(c *Coordinator) []Cmd {
	if !c.finish(ResourceAllocations, r.token) {
		return nil
	}
	if r.err != nil {
		c.fail(ResourceAllocations, "Failed to load allocations: "+r.err.Error())
		return nil
	}
	c.setAllocations(r.allocations)
	c.expandedSecurityID = ""
	return nil
}

// CheckHealth probes the backend; only the connected flag changes.
func (c *Coordinator) CheckHealth() Cmd {
	client := c.client
	return func(ctx context.Context) Result {
		_, err := client.Health(ctx)
		return healthResult{err: err}
	}
}

type healthResult struct {
	err error
}

func (r healthResult) apply(c *Coordinator) []Cmd {
	c.connected = r.err == nil
	return nil
}

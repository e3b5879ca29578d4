package coordinator

import (
	"context"
	"strings"

	"titulos-console/internal/domain"
	"titulos-console/internal/pkg/validation"
)

// CreateCustomer validates the name locally and, when valid, returns the
// create command. Validation failures surface a warning and never reach the
// transport layer.
func (c *Coordinator) CreateCustomer(name string) Cmd {
	name = validation.NormalizeName(name)
	if !validation.IsValidCustomerName(name) {
		c.setMessage(SeverityWarning, "Customer name is too short.")
		return nil
	}
	client := c.client
	return func(ctx context.Context) Result {
		customer, err := client.CreateCustomer(ctx, name)
		return createCustomerResult{customer: customer, err: err}
	}
}

type createCustomerResult struct {
	customer *domain.Customer
	err      error
}

func (r createCustomerResult) apply(c *Coordinator) []Cmd {
	if r.err != nil {
		c.setMessage(SeverityDanger, "Failed to create customer: "+r.err.Error())
		return nil
	}
	c.setMessage(SeveritySuccess, "Customer created: "+r.customer.Name)
	// Refresh the list, then switch the allocation view to the new customer.
	cmds := []Cmd{c.LoadCustomers()}
	cmds = append(cmds, c.SelectCustomer(r.customer.ID.String())...)
	return cmds
}

// CreateAllocation submits an allocation of the selected security to the
// selected customer. All preconditions are checked locally first.
func (c *Coordinator) CreateAllocation(quantity int) Cmd {
	if c.selectedCustomerID == "" {
		c.setMessage(SeverityWarning, "Select a customer first.")
		return nil
	}
	if c.selectedSecurityID == "" {
		c.setMessage(SeverityWarning, "Select a security.")
		return nil
	}
	if !validation.IsValidQuantity(quantity) {
		c.setMessage(SeverityWarning, "Quantity must be at least 1.")
		return nil
	}
	client := c.client
	customerID := c.selectedCustomerID
	securityID := c.selectedSecurityID
	return func(ctx context.Context) Result {
		_, err := client.CreateAllocation(ctx, customerID, securityID, quantity)
		return createAllocationResult{customerID: customerID, err: err}
	}
}

type createAllocationResult struct {
	customerID string
	err        error
}

func (r createAllocationResult) apply(c *Coordinator) []Cmd {
	if r.err != nil {
		c.setMessage(SeverityDanger, "Failed to create allocation: "+r.err.Error())
		return nil
	}
	c.setMessage(SeveritySuccess, "Allocation created.")
	if r.customerID != c.selectedCustomerID {
		// Selection moved on while the request was in flight; nothing to refresh.
		return nil
	}
	return c.ReloadAllocations()
}

// LookupSecurity fetches a security by pasted identifier, bypassing
// pagination. An empty input just clears the previous result.
func (c *Coordinator) LookupSecurity(raw string) Cmd {
	id := strings.TrimSpace(raw)
	if id == "" {
		c.foundSecurity = nil
		return nil
	}
	token := c.begin(ResourceLookup)
	client := c.client
	return func(ctx context.Context) Result {
		sec, err := client.GetSecurity(ctx, id)
		return lookupResult{token: token, security: sec, err: err}
	}
}

type lookupResult struct {
	token    uint64
	security *domain.Security
	err      error
}

func (r lookupResult) apply(c *Coordinator) []Cmd {
	if !c.finish(ResourceLookup, r.token) {
		return nil
	}
	if r.err != nil {
		// Not-found and transport failures share this path; wording only.
		c.foundSecurity = nil
		c.selectedSecurityID = ""
		c.errs[ResourceLookup] = r.err.Error()
		c.setMessage(SeverityWarning, "Security not found: "+r.err.Error())
		return nil
	}
	c.foundSecurity = r.security
	c.selectedSecurityID = r.security.ID.String()
	if c.Catalog.MergeFound(*r.security) {
		c.log.Debug().Str("id", c.selectedSecurityID).Msg("looked-up security merged into page")
	}
	c.setMessage(SeveritySuccess, "Security found and selected.")
	return nil
}

// CopyIdentifier copies an id to the clipboard. The success message
// auto-dismisses; failures stay until dismissed.
func (c *Coordinator) CopyIdentifier(text string) {
	if c.clipboard == nil {
		c.setMessage(SeverityDanger, "Clipboard unavailable.")
		return
	}
	if err := c.clipboard.WriteText(text); err != nil {
		c.setMessage(SeverityDanger, "Could not copy.")
		return
	}
	c.setEphemeralMessage(SeveritySuccess, "Copied!")
}

// Package coordinator sequences the console's asynchronous loads and owns its
// shared view state. All mutation happens through Apply on a single logical
// thread (the UI update loop); the closures returned by load methods are the
// only code that runs concurrently, and their results carry a per-resource
// token so a slow, stale response can never overwrite newer state.
package coordinator

import (
	"context"
	"time"

	"titulos-console/internal/console/catalog"
	"titulos-console/internal/console/grouping"
	"titulos-console/internal/console/transport"
	"titulos-console/internal/domain"

	"github.com/rs/zerolog"
)

// Resource identifies one logical load with last-request-wins semantics.
type Resource int

const (
	ResourceCatalog Resource = iota
	ResourceOptions
	ResourceCustomers
	ResourceAllocations
	ResourceLookup
)

// Cmd is a deferred fetch. Run it off the update loop and feed the returned
// Result back into Apply on the update loop.
type Cmd func(ctx context.Context) Result

// Result is a completed fetch waiting to be applied.
type Result interface {
	apply(c *Coordinator) []Cmd
}

// Severity classifies a transient console message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)

// Message is the single dismissible message slot.
type Message struct {
	Severity Severity
	Text     string
}

// Clipboard abstracts copy-to-clipboard so the coordinator stays terminal-agnostic.
type Clipboard interface {
	WriteText(text string) error
}

// dismissAfter is how long trivial success messages (copy-to-clipboard) stay up.
const dismissAfter = 900 * time.Millisecond

type Coordinator struct {
	client    *transport.Client
	log       zerolog.Logger
	clipboard Clipboard
	now       func() time.Time

	Catalog *catalog.ViewModel

	customers          []domain.Customer
	selectedCustomerID string

	allocations        []domain.Allocation
	expandedSecurityID string

	selectedSecurityID string
	foundSecurity      *domain.Security

	connected bool

	tokens  map[Resource]uint64
	loading map[Resource]bool
	errs    map[Resource]string

	msg       *Message
	msgExpiry time.Time

	// group memo, invalidated by generation counters
	allocGen, optionsGen uint64
	groupsAllocGen       uint64
	groupsOptionsGen     uint64
	groups               []grouping.AllocationGroup
	groupsValid          bool
}

func New(client *transport.Client, logger zerolog.Logger, clipboard Clipboard) *Coordinator {
	return &Coordinator{
		client:    client,
		log:       logger,
		clipboard: clipboard,
		now:       time.Now,
		Catalog:   catalog.NewViewModel(),
		tokens:    map[Resource]uint64{},
		loading:   map[Resource]bool{},
		errs:      map[Resource]string{},
	}
}

// Apply runs a fetch result against the view state and returns any follow-up
// loads it triggered. Stale results are discarded inside apply.
func (c *Coordinator) Apply(r Result) []Cmd {
	return r.apply(c)
}

// begin issues a new request token for a resource, superseding any in-flight
// request for the same resource.
func (c *Coordinator) begin(r Resource) uint64 {
	c.tokens[r]++
	c.loading[r] = true
	c.errs[r] = ""
	return c.tokens[r]
}

// finish reports whether a result is current. Stale results leave the loading
// flag alone: it belongs to the newest request.
func (c *Coordinator) finish(r Resource, token uint64) bool {
	if token != c.tokens[r] {
		c.log.Debug().Int("resource", int(r)).Uint64("token", token).Msg("ignoring superseded response")
		return false
	}
	c.loading[r] = false
	return true
}

func (c *Coordinator) fail(r Resource, msg string) {
	c.errs[r] = msg
	c.setMessage(SeverityDanger, msg)
}

// Loading reports whether the latest request for a resource is still in flight.
func (c *Coordinator) Loading(r Resource) bool {
	return c.loading[r]
}

// LoadError returns the last error for a resource, empty after a fresh request.
func (c *Coordinator) LoadError(r Resource) string {
	return c.errs[r]
}

func (c *Coordinator) Connected() bool {
	return c.connected
}

// Message returns the current transient message, nil when none.
func (c *Coordinator) Message() *Message {
	return c.msg
}

func (c *Coordinator) DismissMessage() {
	c.msg = nil
	c.msgExpiry = time.Time{}
}

// MessageExpiresAt returns the auto-dismiss deadline for the current message,
// zero when the message should stay until dismissed.
func (c *Coordinator) MessageExpiresAt() time.Time {
	return c.msgExpiry
}

// ExpireMessage dismisses the message if its deadline has passed.
func (c *Coordinator) ExpireMessage(now time.Time) bool {
	if c.msg == nil || c.msgExpiry.IsZero() || now.Before(c.msgExpiry) {
		return false
	}
	c.DismissMessage()
	return true
}

func (c *Coordinator) setMessage(sev Severity, text string) {
	c.msg = &Message{Severity: sev, Text: text}
	c.msgExpiry = time.Time{}
}

func (c *Coordinator) setEphemeralMessage(sev Severity, text string) {
	c.msg = &Message{Severity: sev, Text: text}
	c.msgExpiry = c.now().Add(dismissAfter)
}

// --- customer / allocation view state ---

func (c *Coordinator) Customers() []domain.Customer {
	return c.customers
}

func (c *Coordinator) SelectedCustomerID() string {
	return c.selectedCustomerID
}

// SelectedCustomer resolves the selected id against the loaded customer list.
func (c *Coordinator) SelectedCustomer() *domain.Customer {
	for i := range c.customers {
		if c.customers[i].ID.String() == c.selectedCustomerID {
			return &c.customers[i]
		}
	}
	return nil
}

func (c *Coordinator) Allocations() []domain.Allocation {
	return c.allocations
}

// TotalQuantity sums the selected customer's allocation quantities.
func (c *Coordinator) TotalQuantity() int {
	return grouping.TotalQuantity(c.allocations)
}

// Groups derives allocation groups from the current allocation list and the
// options-universe lookup, memoized until either input changes.
func (c *Coordinator) Groups() []grouping.AllocationGroup {
	if c.groupsValid && c.groupsAllocGen == c.allocGen && c.groupsOptionsGen == c.optionsGen {
		return c.groups
	}
	c.groups = grouping.Group(c.allocations, c.Catalog.Lookup())
	c.groupsAllocGen = c.allocGen
	c.groupsOptionsGen = c.optionsGen
	c.groupsValid = true
	return c.groups
}

func (c *Coordinator) setAllocations(allocs []domain.Allocation) {
	c.allocations = allocs
	c.allocGen++
}

func (c *Coordinator) ExpandedSecurityID() string {
	return c.expandedSecurityID
}

// ToggleExpanded opens a group's detail view, or closes it when already open.
func (c *Coordinator) ToggleExpanded(securityID string) {
	if c.expandedSecurityID == securityID {
		c.expandedSecurityID = ""
		return
	}
	c.expandedSecurityID = securityID
}

// --- security selection ---

func (c *Coordinator) SelectedSecurityID() string {
	return c.selectedSecurityID
}

// SelectSecurity picks a security from the options list, clearing any
// lookup-by-id result.
func (c *Coordinator) SelectSecurity(id string) {
	c.selectedSecurityID = id
	c.foundSecurity = nil
}

// FoundSecurity is the last successful lookup-by-id result.
func (c *Coordinator) FoundSecurity() *domain.Security {
	return c.foundSecurity
}

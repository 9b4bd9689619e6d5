package table

import (
	"context"
	"sync"

	"github.com/hkaraca/rmosdesk/internal/logging"
)

// State is the controller's fetch state. Any state may transition back to
// StateLoading on a new submit.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// PayloadFunc builds the outgoing request body from the current criteria.
// Pages merge their fixed server constants here (see MergePayload).
type PayloadFunc func(criteria map[string]string) map[string]any

// FetchFunc performs the actual request. Pages bind the api client and
// endpoint into one of these.
type FetchFunc func(ctx context.Context, payload map[string]any) ([]Row, error)

// Snapshot is a copy of the controller's visible state: what a renderer needs
// and nothing else. Rows is the wholesale result of the most recent
// successful fetch; it is never mutated in place.
type Snapshot struct {
	State State
	Rows  []Row
	Err   string
}

// Columns returns the rendered column set: exactly the key list of the first
// row. An empty snapshot has no columns at all, headers included; rows with
// extra keys beyond the first row's are not widened into the view. This is a
// policy decision carried over from the dashboard, not an oversight.
func (s Snapshot) Columns() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0].Keys()
}

// Controller owns the filter criteria and drives the fetch state machine for
// one page. It is safe for concurrent use; when submits overlap, only the
// most recently initiated fetch may commit its result.
type Controller struct {
	mu       sync.Mutex
	defaults map[string]string
	criteria map[string]string
	build    PayloadFunc
	fetch    FetchFunc
	log      logging.Logger

	state  State
	rows   []Row
	errMsg string
	gen    uint64
	loaded bool
}

// NewController builds a controller with the given default criteria.
func NewController(defaults map[string]string, build PayloadFunc, fetch FetchFunc, log logging.Logger) *Controller {
	c := &Controller{
		defaults: defaults,
		criteria: make(map[string]string, len(defaults)),
		build:    build,
		fetch:    fetch,
		log:      log,
		state:    StateIdle,
	}
	for k, v := range defaults {
		c.criteria[k] = v
	}
	return c
}

// SetField updates one criterion. Pure local state change, always legal.
func (c *Controller) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria[name] = value
}

// Field returns the current value of one criterion.
func (c *Controller) Field(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria[name]
}

// Criteria returns a copy of the current filter criteria.
func (c *Controller) Criteria() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.criteria))
	for k, v := range c.criteria {
		out[k] = v
	}
	return out
}

// Payload builds the request body from the current criteria without fetching.
func (c *Controller) Payload() map[string]any {
	c.mu.Lock()
	snapshot := make(map[string]string, len(c.criteria))
	for k, v := range c.criteria {
		snapshot[k] = v
	}
	c.mu.Unlock()
	return c.build(snapshot)
}

// Submit builds the payload from the current criteria, transitions to
// StateLoading, and fetches. On success the row snapshot is replaced
// wholesale and state becomes StateSuccess; on failure the error message is
// stored and state becomes StateFailed.
//
// Overlap rule: each submit takes a generation number; a completing fetch
// only commits while it is still the newest. A superseded fetch neither
// updates the snapshot nor flips the state, so late responses cannot
// overwrite the result the user actually asked for last.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	snapshot := make(map[string]string, len(c.criteria))
	for k, v := range c.criteria {
		snapshot[k] = v
	}
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.loaded = true
	c.mu.Unlock()

	payload := c.build(snapshot)

	rows, err := c.fetch(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug(ctx, "discarding superseded fetch result", "generation", gen, "latest", c.gen)
		return err
	}
	if err != nil {
		c.state = StateFailed
		c.errMsg = err.Error()
		c.rows = nil
		return err
	}
	c.state = StateSuccess
	c.errMsg = ""
	c.rows = rows
	return nil
}

// Clear resets the criteria to their defaults and immediately refetches.
// Clearing twice in a row produces the same payload as clearing once.
func (c *Controller) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.criteria = make(map[string]string, len(c.defaults))
	for k, v := range c.defaults {
		c.criteria[k] = v
	}
	c.mu.Unlock()
	return c.Submit(ctx)
}

// InitialLoad fetches with the default criteria the first time the page
// becomes usable. Subsequent calls are no-ops; explicit submits are not.
func (c *Controller) InitialLoad(ctx context.Context) error {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.Submit(ctx)
}

// Snapshot returns a copy of the visible state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]Row, len(c.rows))
	copy(rows, c.rows)
	return Snapshot{State: c.state, Rows: rows, Err: c.errMsg}
}

// MergePayload assembles an outgoing request body the way the dashboard
// does: fixed server constants first, then the criteria, where the primary
// name field falls back to the wildcard sentinel when empty and every other
// empty criterion is omitted entirely (to the server, omitted and empty
// string are different filters).
func MergePayload(constants map[string]any, criteria map[string]string, primary, sentinel string) map[string]any {
	payload := make(map[string]any, len(constants)+len(criteria))
	for k, v := range constants {
		payload[k] = v
	}
	for k, v := range criteria {
		if k == primary {
			if v == "" {
				payload[k] = sentinel
			} else {
				payload[k] = v
			}
			continue
		}
		if v == "" {
			continue
		}
		payload[k] = v
	}
	return payload
}

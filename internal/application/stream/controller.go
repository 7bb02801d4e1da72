package stream

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"debloat/internal/application"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// Phase is the lifecycle state of the current enumeration session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseStreaming
	PhaseComplete
	PhaseErrored
)

// State is the snapshot exposed to the view layer
type State struct {
	DeviceID  string
	Phase     Phase
	Packages  []domain.Package // ID-sorted; grows monotonically within a session
	Received  int
	Loading   bool
	Complete  bool
	FromCache bool
	Status    string
	Progress  int // 0..100; stays below 100 until the session is terminal
	Err       string
}

// Controller owns the in-flight enumeration for one device at a time. Each
// Start mints a fresh session token; notifications carrying any other token
// are discarded without observable effect, which is the only cancellation
// mechanism: a superseded session simply stops being heard.
//
// The controller is not safe for concurrent use. All mutation is expected to
// happen on one goroutine (the Bubble Tea update loop, or a CLI drain loop);
// the enumeration backend communicates only through its notification channel.
type Controller struct {
	source ports.PackageSource
	cache  *Cache

	token    uuid.UUID
	acc      map[string]domain.Package
	expected int
	state    State
}

// NewController creates a controller backed by the given source and cache
func NewController(source ports.PackageSource, cache *Cache) *Controller {
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	return &Controller{
		source: source,
		cache:  cache,
		state:  State{Phase: PhaseIdle},
	}
}

// SetDevice switches the controller to another device. Switching resets the
// published records to empty pending a new session and invalidates the
// current token, so in-flight notifications from the old device are dropped.
func (c *Controller) SetDevice(deviceID string) {
	if deviceID == c.state.DeviceID {
		return
	}
	c.token = uuid.Nil
	c.acc = nil
	c.expected = 0
	c.state = State{DeviceID: deviceID, Phase: PhaseIdle}
}

// Start begins a new enumeration session for the device, superseding any
// session still in flight. When force is false and a non-expired cache entry
// exists, the cached snapshot is published as an immediately complete result
// and the returned channel is nil: no notifications will follow.
func (c *Controller) Start(ctx context.Context, deviceID string, force bool) (uuid.UUID, <-chan ports.Notification, error) {
	if deviceID == "" {
		return uuid.Nil, nil, application.ErrNoDevice
	}
	c.token = uuid.New()
	c.acc = make(map[string]domain.Package)
	c.expected = 0
	c.state = State{
		DeviceID: deviceID,
		Phase:    PhaseStarting,
		Loading:  true,
		Status:   "Enumerating packages...",
	}

	if !force {
		if entry, ok := c.cache.Get(deviceID); ok {
			for _, p := range entry.Packages {
				c.acc[p.ID] = p
			}
			c.state.Phase = PhaseComplete
			c.state.Loading = false
			c.state.Complete = true
			c.state.FromCache = true
			c.state.Packages = entry.Packages
			c.state.Received = len(entry.Packages)
			c.state.Progress = 100
			c.state.Status = fmt.Sprintf("%d packages (cached)", len(entry.Packages))
			return c.token, nil, nil
		}
	}

	ch, err := c.source.Enumerate(ctx, deviceID)
	if err != nil {
		c.state.Phase = PhaseErrored
		c.state.Loading = false
		c.state.Err = err.Error()
		return c.token, nil, &application.EnumerationError{DeviceID: deviceID, Reason: err.Error()}
	}
	return c.token, ch, nil
}

// Token returns the currently active session token
func (c *Controller) Token() uuid.UUID {
	return c.token
}

// State returns the current published snapshot
func (c *Controller) State() State {
	return c.state
}

// ClearCache drops the cached result for a device
func (c *Controller) ClearCache(deviceID string) {
	c.cache.Invalidate(deviceID)
}

// Handle applies one notification to the session identified by token.
// It reports whether the published state changed; notifications for a
// superseded token are ignored entirely.
func (c *Controller) Handle(token uuid.UUID, n ports.Notification) bool {
	if c.stale(token) {
		return false
	}
	switch n := n.(type) {
	case ports.Chunk:
		c.handleChunk(n)
	case ports.Progress:
		c.handleProgress(n)
	case ports.Done:
		c.handleDone(n)
	default:
		return false
	}
	return true
}

// Drain applies every notification from the channel until it closes.
// Used by the synchronous surfaces (CLI, MCP) where no event loop exists.
func (c *Controller) Drain(token uuid.UUID, ch <-chan ports.Notification) State {
	for n := range ch {
		c.Handle(token, n)
	}
	return c.state
}

func (c *Controller) stale(token uuid.UUID) bool {
	return c.token == uuid.Nil || token != c.token
}

func (c *Controller) handleChunk(chunk ports.Chunk) {
	// Last-write-wins: a later chunk's copy of an ID replaces the earlier one.
	for _, p := range chunk.Packages {
		c.acc[p.ID] = p
	}
	c.publish()

	if c.state.Phase == PhaseStarting {
		c.state.Phase = PhaseStreaming
	}
	if c.expected > 0 && c.state.Received > 0 {
		pct := c.state.Received * 100 / c.expected
		if pct > 99 {
			pct = 99
		}
		c.state.Progress = pct
	}
}

func (c *Controller) handleProgress(p ports.Progress) {
	if p.Status != "" {
		c.state.Status = p.Status
	}
	if p.Expected > 0 {
		c.expected = p.Expected
	}
	if p.Err != "" {
		// Accumulated records stay visible alongside the error.
		c.state.Err = p.Err
		c.state.Loading = false
		c.state.Phase = PhaseErrored
		return
	}
	if p.Complete {
		// Progress may race ahead of Done across channels; stop the loading
		// indicator now rather than waiting for the completion notification.
		c.state.Loading = false
		c.state.Complete = true
		if c.state.Phase != PhaseErrored {
			c.state.Phase = PhaseComplete
		}
	}
}

func (c *Controller) handleDone(d ports.Done) {
	c.publish()
	c.state.Loading = false
	c.state.Complete = true
	c.state.FromCache = d.FromCache
	c.state.Progress = 100
	if c.state.Phase != PhaseErrored {
		c.state.Phase = PhaseComplete
		c.state.Status = fmt.Sprintf("%d packages", c.state.Received)
	}
	if c.state.Err == "" && !d.FromCache {
		c.cache.Put(c.state.DeviceID, c.state.Packages)
	}
}

// publish rebuilds the ID-sorted snapshot from the accumulation map
func (c *Controller) publish() {
	pkgs := make([]domain.Package, 0, len(c.acc))
	for _, p := range c.acc {
		pkgs = append(pkgs, p)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].ID < pkgs[j].ID })
	c.state.Packages = pkgs
	c.state.Received = len(pkgs)
}

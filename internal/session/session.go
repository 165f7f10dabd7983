package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Bridgette013/Truthseeker/internal/conversation"
	"github.com/Bridgette013/Truthseeker/internal/gateway"
	"github.com/Bridgette013/Truthseeker/internal/risk"
	"github.com/Bridgette013/Truthseeker/internal/shared/metrics"
	"github.com/Bridgette013/Truthseeker/internal/shared/telemetry"
	"github.com/Bridgette013/Truthseeker/internal/tasks"
)

// State is the lifecycle phase of one analysis run.
type State string

const (
	StateIdle      State = "idle"
	StateSubmitted State = "submitted"
	StateStreaming State = "streaming"
	StateComplete  State = "complete"
	StateFailed    State = "failed"
)

// Surface identifies one analysis panel. Each surface runs at most one
// analysis at a time; different surfaces run concurrently.
type Surface string

// EventType tags a streamed lifecycle event.
type EventType string

const (
	EventFragment EventType = "fragment"
	EventComplete EventType = "complete"
	EventFailed   EventType = "failed"
)

// Event is one update emitted during an analysis run. Fragment events
// arrive strictly in order; Seq starts at 1 and the concatenation of
// fragments 1..n always equals the accumulated output so far.
type Event struct {
	Type     EventType         `json:"type"`
	Seq      int               `json:"seq,omitempty"`
	Text     string            `json:"text,omitempty"`
	Verdict  risk.Level        `json:"verdict,omitempty"`
	Response *gateway.Response `json:"response,omitempty"`
	Partial  string            `json:"partial,omitempty"`
	Err      string            `json:"error,omitempty"`
}

// Snapshot is the observable state of a surface.
type Snapshot struct {
	State   State      `json:"state"`
	Output  string     `json:"output"`
	Verdict risk.Level `json:"verdict,omitempty"`
	Err     string     `json:"error,omitempty"`
}

// ErrSurfaceBusy is returned when a surface already has a run in flight.
var ErrSurfaceBusy = errors.New("analysis already in flight for this surface")

type run struct {
	state   State
	output  strings.Builder
	verdict risk.Level
	errMsg  string
	cancel  context.CancelFunc
}

// Controller coordinates analysis runs across surfaces.
type Controller struct {
	gw gateway.Client

	mu   sync.Mutex
	runs map[Surface]*run
}

// NewController constructs a Controller over the given gateway client.
func NewController(gw gateway.Client) *Controller {
	return &Controller{gw: gw, runs: make(map[Surface]*run)}
}

// Submit starts an analysis on the surface. It returns a channel of
// lifecycle events that is closed after the terminal event. A surface
// with a run already in flight rejects the submission.
func (c *Controller) Submit(ctx context.Context, surface Surface, req gateway.Request) (<-chan Event, error) {
	if err := gateway.Validate(req); err != nil {
		return nil, err
	}
	task, err := tasks.Lookup(req.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidRequest, err)
	}

	c.mu.Lock()
	if r, ok := c.runs[surface]; ok && (r.state == StateSubmitted || r.state == StateStreaming) {
		c.mu.Unlock()
		return nil, ErrSurfaceBusy
	}
	runCtx, cancel := context.WithCancel(ctx)
	r := &run{state: StateSubmitted, cancel: cancel}
	c.runs[surface] = r
	c.mu.Unlock()

	events := make(chan Event, 16)
	go c.execute(runCtx, surface, r, task, req, events)
	return events, nil
}

func (c *Controller) execute(ctx context.Context, surface Surface, r *run, task tasks.Task, req gateway.Request, events chan<- Event) {
	metrics.IncAnalysisStarted()
	started := time.Now()
	defer func() {
		metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	}()
	defer close(events)
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("analysis run panicked", map[string]any{
				"surface": string(surface),
				"action":  string(req.Action),
				"panic":   fmt.Sprint(rec),
			})
			c.fail(r, events, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	seq := 0
	onFragment := func(text string) {
		c.mu.Lock()
		if r.state == StateSubmitted {
			r.state = StateStreaming
		}
		seq++
		r.output.WriteString(text)
		c.mu.Unlock()
		events <- Event{Type: EventFragment, Seq: seq, Text: text}
	}

	resp, err := c.gw.InvokeStream(ctx, req, onFragment)
	if err != nil {
		c.fail(r, events, err.Error())
		return
	}

	verdict := classify(task, resp.Text)

	c.mu.Lock()
	r.state = StateComplete
	r.verdict = verdict
	c.mu.Unlock()

	metrics.IncAnalysisCompleted()
	events <- Event{Type: EventComplete, Verdict: verdict, Response: resp}
}

func (c *Controller) fail(r *run, events chan<- Event, msg string) {
	c.mu.Lock()
	if r.state == StateComplete || r.state == StateFailed {
		c.mu.Unlock()
		return
	}
	r.state = StateFailed
	r.errMsg = msg
	partial := r.output.String()
	c.mu.Unlock()

	metrics.IncAnalysisFailed()
	events <- Event{Type: EventFailed, Partial: partial, Err: msg}
}

// classify derives the verdict from the complete output, never from a
// partial stream.
func classify(task tasks.Task, final string) risk.Level {
	if task.StructRisk {
		analysis, _ := conversation.Parse(final)
		return analysis.Level()
	}
	if task.RiskRule == nil {
		return risk.LevelNone
	}
	return risk.Classify(task.RiskRule, final)
}

// Snapshot reports the surface's current state. An unknown surface is Idle.
func (c *Controller) Snapshot(surface Surface) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.runs[surface]
	if !ok {
		return Snapshot{State: StateIdle}
	}
	return Snapshot{
		State:   r.state,
		Output:  r.output.String(),
		Verdict: r.verdict,
		Err:     r.errMsg,
	}
}

// Abandon cancels any in-flight run on the surface and resets it to Idle.
// Completed and failed runs are also cleared.
func (c *Controller) Abandon(surface Surface) {
	c.mu.Lock()
	r, ok := c.runs[surface]
	if ok {
		if r.cancel != nil {
			r.cancel()
		}
		delete(c.runs, surface)
	}
	c.mu.Unlock()
}

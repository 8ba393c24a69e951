package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhiza/internal/domain"
	"rhiza/internal/layout"
	"rhiza/internal/metrics"
	"rhiza/internal/style"
)

// BackendSet reports which rendering back ends are available
type BackendSet interface {
	Has(name string) bool
}

// Options configures an Engine
type Options struct {
	// Theme is copied at construction; nil selects the basic preset
	Theme *style.Theme
	// Backend names the rendering back end frames are drawn with
	Backend string
	// Backends is consulted at Initialize; nil treats every back end as available
	Backends BackendSet

	TickInterval time.Duration
	NewTicker    TickerFunc
	// Manual disables the scheduler; ticks only happen through Advance
	Manual bool
	// Seed makes the initial jitter reproducible; zero picks a random seed
	Seed uint64

	Logger *zap.Logger
}

type state int

const (
	stateUninitialized state = iota
	stateRunning
	// stateDegraded is running without a layout because the back end is missing
	stateDegraded
	stateDisposed
)

type request struct {
	fn    func() error
	reply chan error
}

// Engine is one interactive layout of one graph in one container
type Engine struct {
	id   string
	opts Options
	log  *zap.Logger

	mu     sync.Mutex
	state  state
	notice string
	cont   Container

	requests chan request
	quit     chan struct{}
	done     chan struct{}

	// owned by the loop goroutine once running
	theme    *style.Theme
	sim      *layout.Simulation
	scene    *scene
	graph    *domain.Graph
	view     viewport
	tip      Tooltip
	mode     style.Mode
	hovered  int
	dragging map[int]struct{}
	ticker   Ticker
	tickC    <-chan time.Time
	heat     int
	seq      uint64
	subs     map[uint64]chan *Frame
	nextSub  uint64
}

// New creates an uninitialized engine
func New(opts Options) *Engine {
	if opts.Theme == nil {
		opts.Theme = style.BasicTheme()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	id := uuid.NewString()
	return &Engine{
		id:       id,
		opts:     opts,
		log:      opts.Logger.With(zap.String("engine", id)),
		theme:    opts.Theme.Clone(),
		mode:     style.ModeDefault,
		hovered:  -1,
		dragging: make(map[int]struct{}),
		subs:     make(map[uint64]chan *Frame),
	}
}

// ID returns the engine instance id
func (e *Engine) ID() string { return e.id }

// Initialize lays out g inside container c and starts the scheduler.
// A nil container fails with *domain.MountError before any layout work.
// When the configured back end is unavailable, c.Notice is set, no layout
// is started and Initialize returns nil.
func (e *Engine) Initialize(g *domain.Graph, c *Container) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case stateDisposed:
		return domain.ErrDisposed
	case stateRunning, stateDegraded:
		return ErrAlreadyInitialized
	}

	if c == nil {
		return &domain.MountError{}
	}
	if g == nil || len(g.Nodes) == 0 {
		return domain.ErrEmptyGraph
	}

	if e.opts.Backends != nil && !e.opts.Backends.Has(e.opts.Backend) {
		e.notice = fmt.Sprintf("Graph rendering is unavailable: back end %q is not loaded.", e.opts.Backend)
		c.Notice = e.notice
		e.cont = *c
		e.state = stateDegraded
		e.log.Warn("render back end unavailable, showing notice",
			zap.String("container", c.ID),
			zap.String("backend", e.opts.Backend))
		return nil
	}

	c.Notice = ""
	e.cont = *c
	if e.cont.Width <= 0 {
		e.cont.Width = e.theme.Canvas.Width
	}
	if e.cont.Height <= 0 {
		e.cont.Height = e.theme.Canvas.Height
	}

	var simOpts []layout.Option
	if e.opts.Seed != 0 {
		simOpts = append(simOpts, layout.WithSeed(e.opts.Seed))
	}
	e.graph = g
	e.sim = newSimulation(g, e.theme, e.cont.Width, e.cont.Height, simOpts...)
	e.scene = newScene(g, e.theme)
	e.view = newViewport(e.theme.Zoom.Min, e.theme.Zoom.Max)
	if word, ok := g.WordNode(); ok {
		idx, _ := g.IndexOf(word.ID)
		b := e.sim.Bodies()[idx]
		e.view.centerOn(b.X, b.Y, e.cont.Width/2, e.cont.Height/2)
	}

	e.requests = make(chan request)
	e.quit = make(chan struct{})
	e.done = make(chan struct{})
	e.restart()
	e.state = stateRunning
	metrics.ActiveEngines.Inc()

	go e.loop()

	e.log.Debug("visualization initialized",
		zap.String("container", c.ID),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("links", len(g.Links)),
		zap.String("theme", e.theme.Name))
	return nil
}

// Dispose stops the scheduler, closes subscriber channels and clears the tooltip.
// It returns once the loop goroutine has exited. A second call returns ErrDisposed.
func (e *Engine) Dispose() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case stateDisposed:
		return domain.ErrDisposed
	case stateRunning:
		close(e.quit)
		<-e.done
		metrics.ActiveEngines.Dec()
	}
	e.state = stateDisposed
	e.log.Debug("visualization disposed")
	return nil
}

// Dispatch applies an interaction intent between ticks
func (e *Engine) Dispatch(i Intent) error {
	return e.run(func() error {
		if err := i.apply(e); err != nil {
			return err
		}
		metrics.EngineIntents.WithLabelValues(i.Kind()).Inc()
		e.publish()
		return nil
	})
}

// Snapshot returns a copy of the current frame
func (e *Engine) Snapshot() (*Frame, error) {
	var f *Frame
	err := e.call(func() error {
		f = e.frame()
		return nil
	})
	if errors.Is(err, errDegraded) {
		return e.noticeFrame(), nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Positions returns the current position of every node
func (e *Engine) Positions() ([]domain.NodePosition, error) {
	var out []domain.NodePosition
	err := e.run(func() error {
		bodies := e.sim.Bodies()
		out = make([]domain.NodePosition, len(bodies))
		for i, b := range bodies {
			out[i] = domain.NodePosition{NodeID: b.ID, X: b.X, Y: b.Y, Pinned: b.Pinned()}
		}
		return nil
	})
	return out, err
}

// Advance runs up to n ticks immediately, stopping early once the layout
// settles, and returns the number of ticks taken.
func (e *Engine) Advance(n int) (int, error) {
	taken := 0
	err := e.run(func() error {
		for taken < n && !e.settled() {
			e.step()
			taken++
		}
		e.publish()
		return nil
	})
	return taken, err
}

// Subscribe returns a channel of frames and a function that cancels the
// subscription. Slow subscribers only see the latest frame. The channel is
// closed by cancel or Dispose.
func (e *Engine) Subscribe() (<-chan *Frame, func(), error) {
	ch := make(chan *Frame, 1)
	var id uint64
	degraded := false

	err := e.call(func() error {
		id = e.nextSub
		e.nextSub++
		e.subs[id] = ch
		ch <- e.frame()
		return nil
	})
	if errors.Is(err, errDegraded) {
		degraded = true
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}
	if degraded {
		ch <- e.noticeFrame()
		close(ch)
		return ch, func() {}, nil
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = e.call(func() error {
				if sub, ok := e.subs[id]; ok {
					delete(e.subs, id)
					close(sub)
				}
				return nil
			})
		})
	}
	return ch, cancel, nil
}

// errDegraded is returned by call when no layout is running
var errDegraded = errors.New("engine degraded")

// run is call with requests to a degraded engine treated as no-ops
func (e *Engine) run(fn func() error) error {
	err := e.call(fn)
	if errors.Is(err, errDegraded) {
		return nil
	}
	return err
}

// call runs fn on the loop goroutine and waits for its result
func (e *Engine) call(fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case stateUninitialized:
		return domain.ErrNotInitialized
	case stateDisposed:
		return domain.ErrDisposed
	case stateDegraded:
		return errDegraded
	}

	req := request{fn: fn, reply: make(chan error, 1)}
	e.requests <- req
	return <-req.reply
}

func (e *Engine) loop() {
	defer close(e.done)
	for {
		select {
		case req := <-e.requests:
			req.reply <- req.fn()
		case <-e.tickC:
			e.step()
			e.publish()
			if e.settled() {
				e.idle()
			}
		case <-e.quit:
			e.teardown()
			return
		}
	}
}

func (e *Engine) step() {
	e.sim.Step()
	e.heat++
	metrics.EngineTicks.Inc()
}

// settled reports whether the layout has come to rest and nothing holds it warm
func (e *Engine) settled() bool {
	return e.sim.Converged() && e.sim.AlphaTarget() == 0
}

// restart resumes ticking after the layout was reheated
func (e *Engine) restart() {
	if e.opts.Manual || e.ticker != nil {
		return
	}
	e.ticker = e.opts.NewTicker(e.opts.TickInterval)
	e.tickC = e.ticker.C()
	e.heat = 0
}

// idle stops ticking until the next restart
func (e *Engine) idle() {
	if e.ticker == nil {
		return
	}
	e.ticker.Stop()
	e.ticker, e.tickC = nil, nil
	metrics.ConvergenceTicks.Observe(float64(e.heat))
	e.log.Debug("layout settled", zap.Int("ticks", e.heat))
}

func (e *Engine) teardown() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker, e.tickC = nil, nil
	}
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.tip = Tooltip{}
	e.hovered = -1
	clear(e.dragging)
}

func (e *Engine) nodeIndex(id string) (int, error) {
	idx, ok := e.graph.IndexOf(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownNode, id)
	}
	return idx, nil
}

func (e *Engine) frame() *Frame {
	e.seq++
	f := &Frame{
		Engine:    e.id,
		Container: e.cont.ID,
		Seq:       e.seq,
		Width:     e.cont.Width,
		Height:    e.cont.Height,
		Transform: e.view.t,
		Tooltip:   e.tip.clone(),
		Mode:      string(e.mode),
		Alpha:     e.sim.Alpha(),
		Settled:   e.settled(),
	}
	e.scene.project(f, e.sim.Bodies())
	return f
}

func (e *Engine) noticeFrame() *Frame {
	return &Frame{
		Engine:    e.id,
		Container: e.cont.ID,
		Width:     e.cont.Width,
		Height:    e.cont.Height,
		Transform: Identity,
		Mode:      string(style.ModeDefault),
		Settled:   true,
		Notice:    e.notice,
	}
}

// publish sends the current frame to every subscriber, replacing any frame
// the subscriber has not read yet
func (e *Engine) publish() {
	if len(e.subs) == 0 {
		return
	}
	f := e.frame()
	for _, ch := range e.subs {
		select {
		case ch <- f:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- f:
		default:
		}
	}
}

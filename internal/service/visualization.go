package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"rhiza/internal/adapter"
	"rhiza/internal/client"
	"rhiza/internal/domain"
	"rhiza/internal/engine"
	"rhiza/internal/render"
	"rhiza/internal/style"
)

// DefaultContainer is the container registered when none are configured
var DefaultContainer = engine.Container{ID: "graph-viz", Width: 600, Height: 400}

// DefaultFrameInterval limits how often frames of one container go out on the bus
const DefaultFrameInterval = 50 * time.Millisecond

var (
	// ErrUnknownBackend is returned when a render is requested from a back end that is not registered
	ErrUnknownBackend = errors.New("unknown render back end")
	// ErrInvalidPhase is returned for drag or hover phases other than the known ones
	ErrInvalidPhase = errors.New("invalid interaction phase")
)

// GraphSource fetches word data from the etymology backend
type GraphSource interface {
	SearchWord(ctx context.Context, word string) (*client.WordResult, error)
	FetchGraph(ctx context.Context, word string, includeRelated bool) (*domain.Payload, error)
}

// Options configures a VisualizationService
type Options struct {
	// Containers lists the mount points; empty registers DefaultContainer
	Containers []engine.Container
	// Backend names the render back end engines draw with
	Backend  string
	Registry *render.Registry

	TickInterval  time.Duration
	NewTicker     engine.TickerFunc
	Manual        bool
	Seed          uint64
	FrameInterval time.Duration

	Logger *zap.Logger
}

type view struct {
	engine *engine.Engine
	done   chan struct{}
}

// VisualizationService owns one layout engine per container
type VisualizationService struct {
	source GraphSource
	themes *ThemeStore
	bus    *EventBus
	opts   Options
	log    *zap.Logger

	mu         sync.Mutex
	containers map[string]engine.Container
	views      map[string]*view
}

// NewVisualizationService creates a visualization service
func NewVisualizationService(source GraphSource, themes *ThemeStore, bus *EventBus, opts Options) *VisualizationService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = render.Default()
	}
	if opts.Backend == "" {
		opts.Backend = "svg"
	}
	if opts.FrameInterval == 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if len(opts.Containers) == 0 {
		opts.Containers = []engine.Container{DefaultContainer}
	}
	if bus == nil {
		bus = NewEventBus()
	}
	if themes == nil {
		themes = NewThemeStore(nil, bus, opts.Logger)
	}

	s := &VisualizationService{
		source:     source,
		themes:     themes,
		bus:        bus,
		opts:       opts,
		log:        opts.Logger,
		containers: make(map[string]engine.Container, len(opts.Containers)),
		views:      make(map[string]*view),
	}
	for _, c := range opts.Containers {
		s.containers[c.ID] = c
	}
	return s
}

// Themes returns the service's theme store
func (s *VisualizationService) Themes() *ThemeStore { return s.themes }

// Containers lists the registered containers sorted by id
func (s *VisualizationService) Containers() []engine.Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]engine.Container, 0, len(s.containers))
	for _, c := range s.containers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search looks a word up on the backend
func (s *VisualizationService) Search(ctx context.Context, word string) (*client.WordResult, error) {
	if s.source == nil {
		return nil, errors.New("no graph source configured")
	}
	return s.source.SearchWord(ctx, word)
}

// ShowWord fetches the graph of word and renders it into a container.
// Nothing is rendered when the fetch fails.
func (s *VisualizationService) ShowWord(ctx context.Context, word string, includeRelated bool, containerID string) error {
	if _, err := s.container(containerID); err != nil {
		return err
	}
	if s.source == nil {
		return errors.New("no graph source configured")
	}
	p, err := s.source.FetchGraph(ctx, word, includeRelated)
	if err != nil {
		return fmt.Errorf("fetch graph for %q: %w", word, err)
	}
	return s.RenderGraph(ctx, p, containerID)
}

// RenderGraph validates a raw payload and starts an interactive layout of it
// in the container, replacing whatever the container showed before.
func (s *VisualizationService) RenderGraph(ctx context.Context, p *domain.Payload, containerID string) error {
	c, err := s.container(containerID)
	if err != nil {
		return err
	}

	g, err := adapter.Adapt(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	eng := engine.New(engine.Options{
		Theme:        s.themes.Theme(),
		Backend:      s.opts.Backend,
		Backends:     s.opts.Registry,
		TickInterval: s.opts.TickInterval,
		NewTicker:    s.opts.NewTicker,
		Manual:       s.opts.Manual,
		Seed:         s.opts.Seed,
		Logger:       s.log,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.views[containerID]; ok {
		s.closeView(old)
		delete(s.views, containerID)
	}

	if err := eng.Initialize(g, &c); err != nil {
		return err
	}

	frames, _, err := eng.Subscribe()
	if err != nil {
		_ = eng.Dispose()
		return err
	}

	v := &view{engine: eng, done: make(chan struct{})}
	go s.forward(containerID, frames, v.done)
	s.views[containerID] = v

	s.bus.Publish(Event{
		Type:      EventGraphRendered,
		Container: containerID,
		Payload: GraphRendered{
			Engine: eng.ID(),
			Nodes:  len(g.Nodes),
			Links:  len(g.Links),
			Notice: c.Notice,
		},
	})
	s.log.Info("graph rendered",
		zap.String("container", containerID),
		zap.String("engine", eng.ID()),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("links", len(g.Links)))
	return nil
}

// ApplyEducationalMode switches the lens of a container; unknown modes select the default lens
func (s *VisualizationService) ApplyEducationalMode(mode, containerID string) error {
	eng, err := s.engine(containerID)
	if err != nil {
		return err
	}
	m := engine.ApplyMode{Mode: style.ParseMode(mode)}
	if err := eng.Dispatch(m); err != nil {
		return err
	}
	s.bus.Publish(Event{
		Type:      EventModeApplied,
		Container: containerID,
		Payload:   map[string]string{"mode": string(m.Mode)},
	})
	return nil
}

// Drag forwards a drag gesture; phase is start, move or end
func (s *VisualizationService) Drag(containerID, phase, node string, x, y float64) error {
	var i engine.Intent
	switch phase {
	case "start":
		i = engine.DragStart{Node: node, X: x, Y: y}
	case "move":
		i = engine.DragMove{Node: node, X: x, Y: y}
	case "end":
		i = engine.DragEnd{Node: node}
	default:
		return fmt.Errorf("%w: drag %q", ErrInvalidPhase, phase)
	}
	return s.dispatch(containerID, i)
}

// Hover forwards a pointer hover; phase is enter or exit
func (s *VisualizationService) Hover(containerID, phase, node string, x, y float64) error {
	var i engine.Intent
	switch phase {
	case "enter":
		i = engine.HoverEnter{Node: node, X: x, Y: y}
	case "exit":
		i = engine.HoverExit{Node: node}
	default:
		return fmt.Errorf("%w: hover %q", ErrInvalidPhase, phase)
	}
	return s.dispatch(containerID, i)
}

// Zoom scales a container's viewport around a screen point
func (s *VisualizationService) Zoom(containerID string, factor, x, y float64) error {
	return s.dispatch(containerID, engine.Zoom{Factor: factor, X: x, Y: y})
}

// Pan translates a container's viewport
func (s *VisualizationService) Pan(containerID string, dx, dy float64) error {
	return s.dispatch(containerID, engine.Pan{DX: dx, DY: dy})
}

// Frame returns the current frame of a container
func (s *VisualizationService) Frame(containerID string) (*engine.Frame, error) {
	eng, err := s.engine(containerID)
	if err != nil {
		return nil, err
	}
	return eng.Snapshot()
}

// Positions returns the node positions of a container
func (s *VisualizationService) Positions(containerID string) ([]domain.NodePosition, error) {
	eng, err := s.engine(containerID)
	if err != nil {
		return nil, err
	}
	return eng.Positions()
}

// Advance runs up to n ticks of a container's layout immediately
func (s *VisualizationService) Advance(containerID string, n int) (int, error) {
	eng, err := s.engine(containerID)
	if err != nil {
		return 0, err
	}
	return eng.Advance(n)
}

// Render draws the current frame of a container with the named back end
// and returns the output with its content type
func (s *VisualizationService) Render(containerID, backend string) ([]byte, string, error) {
	b, ok := s.opts.Registry.Lookup(backend)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	f, err := s.Frame(containerID)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := b.Render(&buf, f); err != nil {
		return nil, "", fmt.Errorf("render %s: %w", backend, err)
	}
	return buf.Bytes(), b.ContentType(), nil
}

// Close disposes the visualization of a container
func (s *VisualizationService) Close(containerID string) error {
	if _, err := s.container(containerID); err != nil {
		return err
	}

	s.mu.Lock()
	v, ok := s.views[containerID]
	if ok {
		delete(s.views, containerID)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrNotInitialized
	}
	s.closeView(v)
	s.bus.Publish(Event{Type: EventContainerClosed, Container: containerID})
	return nil
}

// Shutdown disposes every running visualization
func (s *VisualizationService) Shutdown() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*view)
	s.mu.Unlock()

	for id, v := range views {
		s.closeView(v)
		s.log.Debug("visualization closed on shutdown", zap.String("container", id))
	}
}

func (s *VisualizationService) container(id string) (engine.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[id]
	if !ok {
		return engine.Container{}, &domain.MountError{Container: id}
	}
	return c, nil
}

func (s *VisualizationService) engine(containerID string) (*engine.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.containers[containerID]; !ok {
		return nil, &domain.MountError{Container: containerID}
	}
	v, ok := s.views[containerID]
	if !ok {
		return nil, domain.ErrNotInitialized
	}
	return v.engine, nil
}

func (s *VisualizationService) dispatch(containerID string, i engine.Intent) error {
	eng, err := s.engine(containerID)
	if err != nil {
		return err
	}
	return eng.Dispatch(i)
}

// closeView disposes the engine and waits for its frame forwarder to drain
func (s *VisualizationService) closeView(v *view) {
	if err := v.engine.Dispose(); err != nil && !errors.Is(err, domain.ErrDisposed) {
		s.log.Warn("dispose failed", zap.String("engine", v.engine.ID()), zap.Error(err))
	}
	<-v.done
}

// forward publishes engine frames on the bus, at most one per FrameInterval
// except for settled frames, which always go out
func (s *VisualizationService) forward(containerID string, frames <-chan *engine.Frame, done chan<- struct{}) {
	defer close(done)
	var last time.Time
	for f := range frames {
		if s.opts.FrameInterval > 0 && !f.Settled && time.Since(last) < s.opts.FrameInterval {
			continue
		}
		last = time.Now()
		s.bus.Publish(Event{Type: EventFrame, Container: containerID, Payload: f})
	}
}

// Package controller binds page controls to a view state, submits that state
// to the generation service and turns the answer into a view model that
// bindings paint. Bindings (browser DOM, terminal) only forward control events
// and render ViewModel changes; all decisions live here.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/recera/surfaceview/pkg/client"
	"github.com/recera/surfaceview/pkg/plotspec"
	"github.com/recera/surfaceview/pkg/reactive"
	"github.com/recera/surfaceview/pkg/surface"
)

// Mode selects the integration with the generation service. Exactly one mode
// is active per controller.
type Mode string

const (
	// ModeJSON fetches coordinate grids and plots them client-side.
	ModeJSON Mode = "json"
	// ModeLegacy posts the form and shows the server-rendered image.
	ModeLegacy Mode = "legacy"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeJSON, ModeLegacy:
		return Mode(s), nil
	case "":
		return ModeJSON, nil
	}
	return "", fmt.Errorf("unknown mode %q (want json or legacy)", s)
}

// ErrStale is returned by SubmitAndRender when a newer submission started
// before this one finished. Its response is dropped.
var ErrStale = errors.New("superseded by a newer submission")

// Generator is the generation service.
type Generator interface {
	GenerateData(ctx context.Context, req surface.GenerationRequest) (*surface.Data, error)
	GenerateImage(ctx context.Context, form url.Values) (string, error)
}

var _ Generator = (*client.Client)(nil)

// ImageLoader waits until the image at src is loaded and decodable.
type ImageLoader interface {
	LoadImage(ctx context.Context, src string) error
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, src string) error

// LoadImage calls f.
func (f ImageLoaderFunc) LoadImage(ctx context.Context, src string) error { return f(ctx, src) }

// View paints view model changes. prev is the model the view last saw.
type View interface {
	Render(prev, next ViewModel)
}

// ViewFunc adapts a function to View.
type ViewFunc func(prev, next ViewModel)

// Render calls f.
func (f ViewFunc) Render(prev, next ViewModel) { f(prev, next) }

// Controller is the page's view controller.
type Controller struct {
	mode   Mode
	gen    Generator
	images ImageLoader
	logger *log.Logger

	state *reactive.State[surface.ViewState]
	model *reactive.State[ViewModel]

	// dispatchMu serializes reduce+render so views observe models in order
	dispatchMu sync.Mutex
	seq        atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode selects the integration mode. The default is ModeJSON.
func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// WithImageLoader sets how legacy images are awaited before display.
func WithImageLoader(l ImageLoader) Option {
	return func(c *Controller) { c.images = l }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithState seeds the view state, e.g. from configuration.
func WithState(s surface.ViewState) Option {
	return func(c *Controller) { c.state.Set(s) }
}

// New creates a controller that submits to gen.
func New(gen Generator, opts ...Option) *Controller {
	c := &Controller{
		mode:   ModeJSON,
		gen:    gen,
		images: ImageLoaderFunc(func(context.Context, string) error { return nil }),
		logger: log.New(io.Discard, "", 0),
		state:  reactive.NewState(surface.DefaultViewState()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.model = reactive.NewState(NewViewModel(c.state.Get()))
	return c
}

// Mode reports the active integration mode.
func (c *Controller) Mode() Mode { return c.mode }

// State returns the current view state.
func (c *Controller) State() surface.ViewState { return c.state.Get() }

// Model returns the current view model.
func (c *Controller) Model() ViewModel { return c.model.Get() }

// WatchState registers fn for view state changes.
func (c *Controller) WatchState(fn func(surface.ViewState)) (cancel func()) {
	return c.state.Watch(fn)
}

// Bind attaches a view. It is rendered once against an empty model so it can
// paint the initial state, then on every change.
func (c *Controller) Bind(v View) (unbind func()) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	prev := c.model.Get()
	v.Render(ViewModel{}, prev)
	return c.model.Watch(func(next ViewModel) {
		v.Render(prev, next)
		prev = next
	})
}

func (c *Controller) dispatch(ev Event) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	c.model.Update(func(vm ViewModel) ViewModel { return Reduce(vm, ev) })
}

// UpdateResolutionLabel handles a slider input event. The label mirrors the
// raw slider value.
func (c *Controller) UpdateResolutionLabel(value string) {
	c.state.Update(func(s surface.ViewState) surface.ViewState {
		s.Resolution = surface.ParseResolution(value)
		return s
	})
	c.dispatch(ResolutionInput{Value: value})
}

// ToggleConditionalOptions handles a surface type change. The Enneper options
// panel is shown iff the selection is "enneper".
func (c *Controller) ToggleConditionalOptions(value string) {
	c.state.Update(func(s surface.ViewState) surface.ViewState {
		s.SurfaceType = surface.ParseType(value)
		return s
	})
	c.dispatch(SurfaceTypeChanged{Value: value})
}

// SetOrder handles edits of the order field.
func (c *Controller) SetOrder(raw string) {
	c.state.Update(func(s surface.ViewState) surface.ViewState {
		s.Order = surface.ParseOrder(raw)
		return s
	})
}

// SelectColormap handles a colormap selection.
func (c *Controller) SelectColormap(value string) {
	c.state.Update(func(s surface.ViewState) surface.ViewState {
		s.Colormap = value
		return s
	})
}

// SubmitAndRender shows the loading indicator, issues one request for the
// current state and renders the outcome. A submission overtaken by a newer
// one returns ErrStale without touching the view. The returned error is the
// one rendered, for callers that want to report it.
func (c *Controller) SubmitAndRender(ctx context.Context) error {
	token := c.seq.Add(1)
	c.dispatch(SubmitStarted{})

	state := c.state.Get()
	c.logger.Printf("🚀 submitting #%d %s resolution=%d order=%d colormap=%s",
		token, state.SurfaceType, state.Resolution, state.Request().Order, state.Colormap)

	var ev Event
	var err error
	switch c.mode {
	case ModeLegacy:
		ev, err = c.submitLegacy(ctx, token, state)
	default:
		ev, err = c.submitJSON(ctx, token, state)
	}
	if errors.Is(err, ErrStale) {
		c.logger.Printf("⏭️  dropping response #%d: %v", token, err)
		return err
	}
	if err != nil {
		c.logger.Printf("❌ submission #%d failed: %v", token, err)
		ev = Failed{Err: err}
	}
	c.dispatch(ev)
	return err
}

func (c *Controller) submitJSON(ctx context.Context, token uint64, state surface.ViewState) (Event, error) {
	data, err := c.gen.GenerateData(ctx, state.Request())
	if !c.isCurrent(token) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	if data.Title == "" {
		data.Title = surface.TitleFor(state.SurfaceType)
	}
	c.logger.Printf("✅ plotting %q", data.Title)
	return PlotReady{Spec: plotspec.Build(data, state.Colormap)}, nil
}

func (c *Controller) submitLegacy(ctx context.Context, token uint64, state surface.ViewState) (Event, error) {
	src, err := c.gen.GenerateImage(ctx, state.Form())
	if !c.isCurrent(token) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	// The indicator stays up until the image itself has loaded
	err = c.images.LoadImage(ctx, src)
	if !c.isCurrent(token) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	c.logger.Printf("✅ image #%d loaded", token)
	return ImageReady{Src: src}, nil
}

// ReportRenderError renders a failure raised by a binding while drawing, such
// as the charting library rejecting a spec.
func (c *Controller) ReportRenderError(err error) {
	c.logger.Printf("❌ render failed: %v", err)
	c.dispatch(Failed{Err: &client.TransportError{Op: "render", Err: err}})
}

func (c *Controller) isCurrent(token uint64) bool {
	return c.seq.Load() == token
}

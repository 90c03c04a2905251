//go:build js && wasm
// +build js,wasm

package dom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"syscall/js"

	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/plotspec"
	domrender "github.com/recera/surfaceview/pkg/renderer/dom"
)

// Binding connects page controls to a controller and paints its view model.
type Binding struct {
	document js.Value
	elements map[string]js.Value
	ctrl     *controller.Controller
	logger   *log.Logger
	applier  *domrender.DOMApplier
	funcs    []js.Func
	unbind   func()
}

// Bind looks up the page contract elements, wires their listeners to ctrl
// and starts rendering the controller's view model. Missing elements are
// skipped individually.
func Bind(ctrl *controller.Controller, logger *log.Logger) (*Binding, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	document := js.Global().Get("document")
	if !document.Truthy() {
		return nil, errors.New("no document")
	}

	b := &Binding{
		document: document,
		elements: make(map[string]js.Value),
		ctrl:     ctrl,
		logger:   logger,
		applier:  domrender.NewDOMApplier(),
	}
	for _, id := range IDs {
		el := document.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			logger.Printf("[DOM] #%s not found, skipping", id)
			continue
		}
		b.elements[id] = el
	}

	b.syncControls()
	b.listen()
	b.unbind = ctrl.Bind(b)
	return b, nil
}

// Release detaches all listeners and stops rendering.
func (b *Binding) Release() {
	if b.unbind != nil {
		b.unbind()
	}
	for _, fn := range b.funcs {
		fn.Release()
	}
	b.funcs = nil
}

func (b *Binding) element(id string) (js.Value, bool) {
	el, ok := b.elements[id]
	return el, ok
}

func (b *Binding) value(id string) (string, bool) {
	el, ok := b.element(id)
	if !ok {
		return "", false
	}
	return el.Get("value").String(), true
}

// syncControls copies the markup's initial control values into the view state.
func (b *Binding) syncControls() {
	if v, ok := b.value(IDSurfaceType); ok {
		b.ctrl.ToggleConditionalOptions(v)
	}
	if v, ok := b.value(IDResolution); ok {
		b.ctrl.UpdateResolutionLabel(v)
	}
	if v, ok := b.value(IDOrder); ok {
		b.ctrl.SetOrder(v)
	}
	if v, ok := b.value(IDColormap); ok {
		b.ctrl.SelectColormap(v)
	}
}

func (b *Binding) on(id, event string, handler func(this js.Value, event js.Value)) {
	el, ok := b.element(id)
	if !ok {
		return
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		handler(this, ev)
		return nil
	})
	b.funcs = append(b.funcs, fn)
	el.Call("addEventListener", event, fn)
}

func (b *Binding) listen() {
	// label and panel need both of their elements before they do anything
	if _, ok := b.element(IDResolutionValue); ok {
		b.on(IDResolution, "input", func(this, _ js.Value) {
			b.ctrl.UpdateResolutionLabel(this.Get("value").String())
		})
	}
	if _, ok := b.element(IDEnneperOptions); ok {
		b.on(IDSurfaceType, "change", func(this, _ js.Value) {
			b.ctrl.ToggleConditionalOptions(this.Get("value").String())
		})
	}
	b.on(IDOrder, "input", func(this, _ js.Value) {
		b.ctrl.SetOrder(this.Get("value").String())
	})
	b.on(IDColormap, "change", func(this, _ js.Value) {
		b.ctrl.SelectColormap(this.Get("value").String())
	})

	submit := func(_, ev js.Value) {
		if ev.Truthy() {
			ev.Call("preventDefault")
		}
		b.syncControls()
		// js callbacks must not block on the network
		go b.ctrl.SubmitAndRender(context.Background())
	}
	if b.ctrl.Mode() == controller.ModeLegacy {
		b.on(IDForm, "submit", submit)
	} else {
		b.on(IDGenerateButton, "click", submit)
	}
}

// Render paints the parts of next that differ from prev.
func (b *Binding) Render(prev, next controller.ViewModel) {
	if next.ResolutionLabel != prev.ResolutionLabel {
		if el, ok := b.element(IDResolutionValue); ok {
			el.Set("textContent", next.ResolutionLabel)
		}
	}
	if next.OptionsVisible != prev.OptionsVisible || prev == (controller.ViewModel{}) {
		if el, ok := b.element(IDEnneperOptions); ok {
			el.Get("style").Set("display", next.OptionsDisplay())
		}
	}
	if next.Loading != prev.Loading {
		if el, ok := b.element(IDLoadingIndicator); ok {
			el.Get("style").Set("display", next.LoadingDisplay())
		}
	}
	if next.Renders != prev.Renders {
		b.renderContent(next.Content)
	}
}

func (b *Binding) renderContent(content controller.Content) {
	display, ok := b.element(IDSurfaceDisplay)
	if !ok {
		return
	}
	// plots get an empty region; error and image content brings its own tree
	if err := b.applier.Replace(display, content.Node()); err != nil {
		b.logger.Printf("❌ %v", err)
		return
	}
	if content.Kind == controller.ContentPlot {
		if err := newPlot(display, content.Plot); err != nil {
			// Render runs under the controller's dispatch lock
			go b.ctrl.ReportRenderError(err)
		}
	}
}

// newPlot hands spec to Plotly.newPlot against target.
func newPlot(target js.Value, spec *plotspec.Spec) (err error) {
	plotly := js.Global().Get("Plotly")
	if !plotly.Truthy() {
		return errors.New("Plotly is not loaded")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Plotly.newPlot: %v", r)
		}
	}()

	raw, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	parsed := js.Global().Get("JSON").Call("parse", string(raw))
	plotly.Call("newPlot", target, parsed.Get("data"), parsed.Get("layout"), parsed.Get("config"))
	return nil
}

// ImageLoader waits for the browser to finish loading an image so the legacy
// render can be swapped in without flashing a broken picture.
type ImageLoader struct{}

// LoadImage resolves when an off-screen image element fires load, or fails
// on error or ctx cancellation.
func (ImageLoader) LoadImage(ctx context.Context, src string) error {
	document := js.Global().Get("document")
	img := document.Call("createElement", "img")

	done := make(chan error, 1)
	onload := js.FuncOf(func(js.Value, []js.Value) interface{} {
		done <- nil
		return nil
	})
	onerror := js.FuncOf(func(js.Value, []js.Value) interface{} {
		done <- errors.New("image failed to load")
		return nil
	})
	defer onload.Release()
	defer onerror.Release()

	img.Set("onload", onload)
	img.Set("onerror", onerror)
	img.Set("src", src)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		img.Set("onload", js.Null())
		img.Set("onerror", js.Null())
		return ctx.Err()
	}
}

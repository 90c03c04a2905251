// Package page builds the HTML documents served to browsers: the host page
// that carries the control form and boots the WASM controller, and the
// standalone page that draws one rendered surface.
package page

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/dom"
	"github.com/recera/surfaceview/pkg/plotspec"
	"github.com/recera/surfaceview/pkg/renderer/html"
	"github.com/recera/surfaceview/pkg/surface"
	"github.com/recera/surfaceview/pkg/vdom"
)

// PlotlyURL is the charting library bundle both pages load.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// Resolution slider bounds.
const (
	MinResolution = 10
	MaxResolution = 200
)

// SurfaceTypes are the selector entries, in display order.
var SurfaceTypes = []struct {
	Value surface.Type
	Label string
}{
	{surface.ChenGackstatter, "Chen-Gackstatter"},
	{surface.Enneper, "Enneper"},
}

// Colormaps are the colormap selector entries. The first is the monochrome
// contour style, the rest are Plotly colorscale names.
var Colormaps = []string{
	surface.Monochrome,
	"Viridis",
	"Plasma",
	"Inferno",
	"Magma",
	"Cividis",
	"Jet",
	"Hot",
	"Rainbow",
	"Portland",
	"Blues",
	"Greys",
}

// Meta names the WASM controller reads its settings from.
const (
	MetaEndpoint = "surfaceview-endpoint"
	MetaMode     = "surfaceview-mode"
)

// Options configures the host page.
type Options struct {
	Title string
	// Endpoint is the generation service base URL. Empty means the page origin.
	Endpoint     string
	State        surface.ViewState
	Mode         controller.Mode
	WasmPath     string
	WasmExecPath string
	PlotlyURL    string
	// ReloadURL, when set, adds the preview reload client
	ReloadURL string
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = "Minimal Surface Generator"
	}
	if o.State == (surface.ViewState{}) {
		o.State = surface.DefaultViewState()
	}
	if o.Mode == "" {
		o.Mode = controller.ModeJSON
	}
	if o.WasmPath == "" {
		o.WasmPath = "app.wasm"
	}
	if o.WasmExecPath == "" {
		o.WasmExecPath = "wasm_exec.js"
	}
	if o.PlotlyURL == "" {
		o.PlotlyURL = PlotlyURL
	}
}

// Host builds the host page tree.
func Host(opts Options) *vdom.VNode {
	opts.applyDefaults()
	s := opts.State

	head := []*vdom.VNode{
		vdom.NewElement("meta", vdom.Props{"name": MetaMode, "content": string(opts.Mode)}),
		vdom.If(opts.Endpoint != "", vdom.NewElement("meta", vdom.Props{"name": MetaEndpoint, "content": opts.Endpoint})),
	}
	return document(opts.Title, opts.PlotlyURL, head,
		vdom.NewElement("h1", nil, vdom.NewText(opts.Title)),
		controls(s, opts.Mode),
		vdom.NewElement("div", vdom.Props{"id": dom.IDLoadingIndicator, "class": "loading", "style": "display: none"},
			vdom.NewElement("div", vdom.Props{"class": "spinner"}),
			vdom.NewText("Generating surface..."),
		),
		vdom.NewElement("div", vdom.Props{"id": dom.IDSurfaceDisplay}),
		vdom.NewElement("script", vdom.Props{"src": opts.WasmExecPath}),
		vdom.NewElement("script", nil, vdom.NewText(bootScript(opts.WasmPath))),
		vdom.If(opts.ReloadURL != "", reloadScript(opts.ReloadURL)),
	)
}

func controls(s surface.ViewState, mode controller.Mode) *vdom.VNode {
	types := make([]*vdom.VNode, 0, len(SurfaceTypes))
	for _, t := range SurfaceTypes {
		types = append(types, option(string(t.Value), t.Label, t.Value == s.SurfaceType))
	}
	colormaps := make([]*vdom.VNode, 0, len(Colormaps))
	for _, name := range Colormaps {
		label := name
		if name == surface.Monochrome {
			label = "Monochrome"
		}
		colormaps = append(colormaps, option(name, label, name == s.Colormap))
	}

	// legacy mode submits the form; json mode drives everything off the button
	buttonType := "button"
	if mode == controller.ModeLegacy {
		buttonType = "submit"
	}
	optionsStyle := "display: " + controller.DisplayNone
	if s.ShowsEnneperOptions() {
		optionsStyle = "display: " + controller.DisplayBlock
	}

	return vdom.NewElement("form", vdom.Props{"id": dom.IDForm, "action": "/generate", "method": "post"},
		field("Surface type", dom.IDSurfaceType,
			vdom.NewElement("select", vdom.Props{"id": dom.IDSurfaceType, "name": "surface_type"}, types...),
		),
		field("Resolution", dom.IDResolution,
			vdom.NewElement("input", vdom.Props{
				"id":    dom.IDResolution,
				"name":  "resolution",
				"type":  "range",
				"min":   MinResolution,
				"max":   MaxResolution,
				"value": s.Resolution,
			}),
			vdom.NewElement("span", vdom.Props{"id": dom.IDResolutionValue}, vdom.NewText(strconv.Itoa(s.Resolution))),
		),
		vdom.NewElement("div", vdom.Props{"id": dom.IDEnneperOptions, "style": optionsStyle},
			field("Order", dom.IDOrder,
				vdom.NewElement("input", vdom.Props{
					"id":    dom.IDOrder,
					"name":  "order",
					"type":  "number",
					"min":   1,
					"value": s.Order,
				}),
			),
		),
		field("Colormap", dom.IDColormap,
			vdom.NewElement("select", vdom.Props{"id": dom.IDColormap, "name": "colormap"}, colormaps...),
		),
		vdom.NewElement("button", vdom.Props{"id": dom.IDGenerateButton, "type": buttonType},
			vdom.NewText("Generate"),
		),
	)
}

func field(label, id string, inputs ...*vdom.VNode) *vdom.VNode {
	kids := append([]*vdom.VNode{
		vdom.NewElement("label", vdom.Props{"for": id}, vdom.NewText(label)),
	}, inputs...)
	return vdom.NewElement("div", vdom.Props{"class": "field"}, kids...)
}

func option(value, label string, selected bool) *vdom.VNode {
	return vdom.NewElement("option", vdom.Props{"value": value, "selected": selected}, vdom.NewText(label))
}

func bootScript(wasmPath string) string {
	return fmt.Sprintf(`const go = new Go();
WebAssembly.instantiateStreaming(fetch(%q), go.importObject)
  .then((result) => go.run(result.instance))
  .catch((err) => console.error("❌ failed to load controller", err));`, wasmPath)
}

// Plot builds a standalone page that draws spec on load.
func Plot(spec *plotspec.Spec, reloadURL string) (*vdom.VNode, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encode plot spec: %w", err)
	}
	script := fmt.Sprintf(`const spec = %s;
Plotly.newPlot(document.getElementById(%q), spec.data, spec.layout, spec.config);`, raw, dom.IDSurfaceDisplay)

	return document(spec.Layout.Title.Text, PlotlyURL, nil,
		vdom.NewElement("div", vdom.Props{"id": dom.IDSurfaceDisplay}),
		vdom.NewElement("script", nil, vdom.NewText(script)),
		vdom.If(reloadURL != "", reloadScript(reloadURL)),
	), nil
}

// Image builds a standalone page showing a server-rendered image.
func Image(src, reloadURL string) *vdom.VNode {
	content := controller.Content{Kind: controller.ContentImage, Image: src}
	return message("Minimal Surface", content, reloadURL)
}

// Error builds a page that shows the inline error text for err.
func Error(err error, reloadURL string) *vdom.VNode {
	content := controller.Content{Kind: controller.ContentError, Message: controller.ErrorMessage(err)}
	return message("Minimal Surface", content, reloadURL)
}

func message(title string, content controller.Content, reloadURL string) *vdom.VNode {
	return document(title, "", nil,
		vdom.NewElement("div", vdom.Props{"id": dom.IDSurfaceDisplay}, content.Node()),
		vdom.If(reloadURL != "", reloadScript(reloadURL)),
	)
}

// reloadScript reconnects to the preview hub and reloads on RELOAD.
func reloadScript(url string) *vdom.VNode {
	return vdom.NewElement("script", nil, vdom.NewText(fmt.Sprintf(`(function () {
  const ws = new WebSocket(%q);
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "RELOAD") location.reload();
    if (msg.type === "ERROR") console.error("❌", msg.error);
  };
})();`, url)))
}

func document(title, plotlyURL string, extraHead []*vdom.VNode, body ...*vdom.VNode) *vdom.VNode {
	head := append([]*vdom.VNode{
		vdom.NewElement("meta", vdom.Props{"charset": "utf-8"}),
		vdom.NewElement("meta", vdom.Props{"name": "viewport", "content": "width=device-width, initial-scale=1"}),
		vdom.NewElement("title", nil, vdom.NewText(title)),
	}, extraHead...)
	head = append(head,
		vdom.NewElement("style", nil, vdom.NewText(stylesheet)),
		vdom.If(plotlyURL != "", vdom.NewElement("script", vdom.Props{"src": plotlyURL})),
	)
	return vdom.NewElement("html", vdom.Props{"lang": "en"},
		vdom.NewElement("head", nil, head...),
		vdom.NewElement("body", nil, body...),
	)
}

const stylesheet = `body { font-family: system-ui, sans-serif; margin: 2rem; background: #111; color: #eee; }
.field { margin-bottom: 0.75rem; }
.loading { align-items: center; gap: 0.5rem; }
.spinner { width: 1rem; height: 1rem; border: 2px solid #888; border-top-color: transparent; border-radius: 50%; animation: spin 1s linear infinite; }
@keyframes spin { to { transform: rotate(360deg); } }
#surface-display { width: 800px; height: 800px; }
.error { color: #ff6b6b; }`

// Write renders node as an HTML document to w.
func Write(w io.Writer, node *vdom.VNode) error {
	return html.RenderDocument(w, node)
}

package page

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/surfaceview/pkg/client"
	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/dom"
	"github.com/recera/surfaceview/pkg/plotspec"
	"github.com/recera/surfaceview/pkg/renderer/html"
	"github.com/recera/surfaceview/pkg/surface"
)

func render(t *testing.T, opts Options) string {
	t.Helper()
	var buf strings.Builder
	require.NoError(t, Write(&buf, Host(opts)))
	return buf.String()
}

func TestHost_CarriesEveryControl(t *testing.T) {
	tree := Host(Options{})
	for _, id := range dom.IDs {
		assert.NotNil(t, tree.Find(id), "missing #%s", id)
	}

	out := render(t, Options{})
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, `<script src="`+PlotlyURL+`"></script>`)
	assert.Contains(t, out, `<script src="wasm_exec.js"></script>`)
	assert.Contains(t, out, `fetch("app.wasm")`)
	assert.NotContains(t, out, "WebSocket")
	assert.Contains(t, out, `<meta content="json" name="surfaceview-mode">`)
	assert.NotContains(t, out, MetaEndpoint)
}

func TestHost_EndpointMeta(t *testing.T) {
	out := render(t, Options{Endpoint: "http://localhost:5000", Mode: controller.ModeLegacy})
	assert.Contains(t, out, `<meta content="http://localhost:5000" name="surfaceview-endpoint">`)
	assert.Contains(t, out, `<meta content="legacy" name="surfaceview-mode">`)
}

func TestHost_ReflectsState(t *testing.T) {
	out := render(t, Options{
		State: surface.ViewState{SurfaceType: surface.Enneper, Resolution: 120, Order: 3, Colormap: "Hot"},
	})

	assert.Contains(t, out, `<option selected value="enneper">Enneper</option>`)
	assert.Contains(t, out, `<option value="chen-gackstatter">Chen-Gackstatter</option>`)
	assert.Contains(t, out, `<option selected value="Hot">Hot</option>`)
	assert.Contains(t, out, `<span id="resolution_value">120</span>`)
	assert.Contains(t, out, `<input id="resolution" max="200" min="10" name="resolution" type="range" value="120">`)
	assert.Contains(t, out, `<div id="enneper-options" style="display: block">`)
	assert.Contains(t, out, `name="order" type="number" value="3"`)
}

func TestHost_DefaultsHideOptions(t *testing.T) {
	out := render(t, Options{})
	assert.Contains(t, out, `<div id="enneper-options" style="display: none">`)
	assert.Contains(t, out, `<div class="loading" id="loading-indicator" style="display: none">`)
	assert.Contains(t, out, `<span id="resolution_value">50</span>`)
}

func TestHost_ButtonTypeFollowsMode(t *testing.T) {
	assert.Contains(t, render(t, Options{Mode: controller.ModeJSON}), `<button id="generate-btn" type="button">`)
	assert.Contains(t, render(t, Options{Mode: controller.ModeLegacy}), `<button id="generate-btn" type="submit">`)
}

func TestHost_ReloadClient(t *testing.T) {
	out := render(t, Options{ReloadURL: "ws://localhost:5173/ws", WasmPath: "/static/app.wasm"})
	assert.Contains(t, out, `new WebSocket("ws://localhost:5173/ws")`)
	assert.Contains(t, out, `fetch("/static/app.wasm")`)
}

func TestPlot(t *testing.T) {
	spec := plotspec.Build(&surface.Data{
		X:     [][]float64{{0, 1}},
		Y:     [][]float64{{0, 1}},
		Z:     [][]float64{{0, 1}},
		Title: "Enneper </script> Surface",
	}, "Viridis")

	node, err := Plot(spec, "")
	require.NoError(t, err)
	out, err := html.RenderToString(node)
	require.NoError(t, err)

	assert.Contains(t, out, `<div id="surface-display"></div>`)
	assert.Contains(t, out, `Plotly.newPlot(document.getElementById("surface-display"), spec.data, spec.layout, spec.config);`)
	assert.Contains(t, out, `"colorscale":"Viridis"`)
	// the title must not close the inline script early
	assert.Equal(t, 1, strings.Count(out, "</script>")-strings.Count(out, `"></script>`))
}

func TestErrorPage(t *testing.T) {
	out, err := html.RenderToString(Error(&client.ApplicationError{Message: "Surface type 'torus' not implemented"}, ""))
	require.NoError(t, err)
	assert.Contains(t, out, `<p class="error">Error: Surface type &#39;torus&#39; not implemented</p>`)

	out, err = html.RenderToString(Error(errors.New("dial tcp: refused"), "ws://x/ws"))
	require.NoError(t, err)
	assert.Contains(t, out, controller.GenericErrorMessage)
	assert.NotContains(t, out, "refused")
	assert.Contains(t, out, `new WebSocket("ws://x/ws")`)
}

func TestImagePage(t *testing.T) {
	out, err := html.RenderToString(Image("data:image/png;base64,AAAA", ""))
	require.NoError(t, err)
	assert.Contains(t, out, `<img alt="Generated Minimal Surface" src="data:image/png;base64,AAAA">`)
}

package plotspec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/surfaceview/pkg/surface"
)

func sampleData() *surface.Data {
	return &surface.Data{
		X:     [][]float64{{0, 1}, {1, 2}},
		Y:     [][]float64{{0, 0}, {1, 1}},
		Z:     [][]float64{{0, 1}, {2, 3}},
		Title: "Enneper Surface",
	}
}

func TestBuild_NamedColorscale(t *testing.T) {
	spec := Build(sampleData(), "Viridis")
	require.Len(t, spec.Data, 1)
	trace := spec.Data[0]

	assert.Equal(t, "surface", trace.Type)
	assert.Equal(t, "Viridis", trace.Colorscale)
	assert.Nil(t, trace.SurfaceColor)
	assert.Nil(t, trace.ShowScale)
	assert.Equal(t, Lighting{Ambient: 0.8, Diffuse: 0.8, Roughness: 0.5, Specular: 0.8, Fresnel: 0.8}, trace.Lighting)
	for _, c := range []Contour{trace.Contours.X, trace.Contours.Y, trace.Contours.Z} {
		assert.False(t, c.Show)
		assert.Equal(t, 1.0, c.Width)
	}

	for _, axis := range []Axis{spec.Layout.Scene.XAxis, spec.Layout.Scene.YAxis, spec.Layout.Scene.ZAxis} {
		assert.False(t, axis.ShowTickLabels)
		assert.True(t, axis.ShowGrid)
		assert.True(t, axis.ZeroLine)
		assert.Equal(t, "white", axis.GridColor)
		assert.Equal(t, "white", axis.ZeroLineColor)
		assert.Equal(t, "white", axis.TickColor)
	}

	assert.Equal(t, "Enneper Surface", spec.Layout.Title.Text)
	assert.Equal(t, "enneper_surface", spec.Config.ToImageButtonOptions.Filename)
}

func TestBuild_Monochrome(t *testing.T) {
	data := sampleData()
	spec := Build(data, surface.Monochrome)
	trace := spec.Data[0]

	assert.Equal(t, []ColorStop{{0, "white"}, {1, "white"}}, trace.Colorscale)
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, trace.SurfaceColor)
	require.NotNil(t, trace.ShowScale)
	assert.False(t, *trace.ShowScale)
	assert.Equal(t, Lighting{Ambient: 0.95, Diffuse: 0.99, Roughness: 0.01, Specular: 0.01, Fresnel: 0.01}, trace.Lighting)
	for _, c := range []Contour{trace.Contours.X, trace.Contours.Y, trace.Contours.Z} {
		assert.True(t, c.Show)
		assert.Equal(t, "black", c.Color)
		assert.Equal(t, 1.5, c.Width)
	}

	for _, axis := range []Axis{spec.Layout.Scene.XAxis, spec.Layout.Scene.YAxis, spec.Layout.Scene.ZAxis} {
		assert.False(t, axis.ShowTickLabels)
		assert.False(t, axis.ShowGrid)
		assert.False(t, axis.ZeroLine)
		assert.Empty(t, axis.Ticks)
		assert.Equal(t, "black", axis.GridColor)
		assert.Equal(t, "black", axis.ZeroLineColor)
	}

	// the surface colour grid must not alias z
	trace.SurfaceColor[0][0] = 9
	assert.Equal(t, 0.0, data.Z[0][0])
}

func TestBuild_SurfaceColorMatchesRaggedShape(t *testing.T) {
	data := &surface.Data{
		X: [][]float64{{0, 1, 2}, {3}},
		Y: [][]float64{{0, 1, 2}, {3}},
		Z: [][]float64{{0, 1, 2}, {3}},
	}
	spec := Build(data, surface.Monochrome)
	assert.Equal(t, [][]float64{{0, 0, 0}, {0}}, spec.Data[0].SurfaceColor)
}

func TestBuild_SharedLayout(t *testing.T) {
	for _, colormap := range []string{"Viridis", surface.Monochrome} {
		spec := Build(sampleData(), colormap)
		assert.Equal(t, Vec3{X: 1.5, Y: 1.5, Z: 1.5}, spec.Layout.Scene.Camera.Eye, colormap)
		export := spec.Config.ToImageButtonOptions
		assert.Equal(t, ImageExport{Format: "png", Filename: "enneper_surface", Width: 800, Height: 800, Scale: 2}, export, colormap)
	}
}

func TestBuild_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Build(sampleData(), surface.Monochrome))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	trace := decoded["data"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{[]any{0.0, "white"}, []any{1.0, "white"}}, trace["colorscale"])
	assert.Equal(t, false, trace["showscale"])

	raw, err = json.Marshal(Build(sampleData(), "Hot"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	trace = decoded["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Hot", trace["colorscale"])
	_, hasScale := trace["showscale"]
	assert.False(t, hasScale)
	_, hasSurfaceColor := trace["surfacecolor"]
	assert.False(t, hasSurfaceColor)
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Enneper Surface", "enneper_surface"},
		{"Chen-Gackstatter Minimal Surface", "chen-gackstatter_minimal_surface"},
		{"Two   Spaces\tand tab", "two_spaces_and_tab"},
		{"", ""},
		{"Enneper\vSurface", "enneper_surface"},
		{"Enneper\u00a0Surface", "enneper_surface"},
		{"Enneper\u2003Surface", "enneper_surface"},
		{"\ufeffEnneper  \u2028Surface ", "_enneper_surface_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExportFilename(tt.title), tt.title)
	}
}

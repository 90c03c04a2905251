package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 1},
		{"blank", "   ", 1},
		{"plain", "3", 3},
		{"leading space", "  4", 4},
		{"trailing garbage", "7abc", 7},
		{"decimal truncates", "2.9", 2},
		{"zero falls back", "0", 1},
		{"negative", "-2", -2},
		{"sign only", "-", 1},
		{"letters", "abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrder(tt.raw))
		})
	}
}

func TestParseResolution(t *testing.T) {
	assert.Equal(t, 64, ParseResolution("64"))
	assert.Equal(t, DefaultResolution, ParseResolution(""))
}

func TestParseType(t *testing.T) {
	assert.Equal(t, Enneper, ParseType("enneper"))
	assert.Equal(t, DefaultType, ParseType(""))
	assert.Equal(t, Type("torus"), ParseType("torus"))
}

func TestViewState_Request(t *testing.T) {
	s := ViewState{SurfaceType: Enneper, Resolution: 80, Order: ParseOrder(""), Colormap: "Viridis"}
	req := s.Request()
	assert.Equal(t, GenerationRequest{SurfaceType: "enneper", Resolution: 80, Order: 1}, req)

	s.Order = 0
	assert.Equal(t, 1, s.Request().Order)
}

func TestViewState_Form(t *testing.T) {
	s := ViewState{SurfaceType: ChenGackstatter, Resolution: 20, Order: 2, Colormap: Monochrome}
	form := s.Form()
	assert.Equal(t, "chen-gackstatter", form.Get("surface_type"))
	assert.Equal(t, "20", form.Get("resolution"))
	assert.Equal(t, "2", form.Get("order"))
	assert.Equal(t, "monochrome", form.Get("colormap"))
}

func TestViewState_Modes(t *testing.T) {
	s := DefaultViewState()
	assert.False(t, s.IsMonochrome())
	assert.False(t, s.ShowsEnneperOptions())

	s.Colormap = Monochrome
	s.SurfaceType = Enneper
	assert.True(t, s.IsMonochrome())
	assert.True(t, s.ShowsEnneperOptions())
}

func TestData_Validate(t *testing.T) {
	good := &Data{
		X: [][]float64{{0, 1}, {1, 2}},
		Y: [][]float64{{0, 0}, {1, 1}},
		Z: [][]float64{{0, 1}, {2, 3}},
	}
	require.NoError(t, good.Validate())
	assert.Equal(t, 2, good.Rows())

	rows := &Data{
		X: [][]float64{{0, 1}},
		Y: [][]float64{{0, 0}, {1, 1}},
		Z: [][]float64{{0, 1}, {2, 3}},
	}
	assert.Error(t, rows.Validate())

	cols := &Data{
		X: [][]float64{{0, 1}, {1}},
		Y: [][]float64{{0, 0}, {1, 1}},
		Z: [][]float64{{0, 1}, {2, 3}},
	}
	assert.Error(t, cols.Validate())
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Enneper Surface", TitleFor(Enneper))
	assert.Equal(t, "Chen-Gackstatter Minimal Surface", TitleFor(ChenGackstatter))
	assert.Equal(t, "Minimal Surface", TitleFor("torus"))
}

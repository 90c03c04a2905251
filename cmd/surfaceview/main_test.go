package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/surfaceview/internal/config"
	"github.com/recera/surfaceview/pkg/surface"
)

// fakeService answers both generation endpoints.
func fakeService(t *testing.T) (*httptest.Server, *[]surface.GenerationRequest) {
	t.Helper()
	var requests []surface.GenerationRequest

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBuf.Bytes())

	mux := http.NewServeMux()
	mux.HandleFunc("/generate_data", func(w http.ResponseWriter, r *http.Request) {
		var req surface.GenerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)
		if req.SurfaceType == "torus" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Surface type 'torus' not implemented"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"x": [][]float64{{0, 1}, {0, 1}},
			"y": [][]float64{{0, 0}, {1, 1}},
			"z": [][]float64{{0, 1}, {1, 0}},
		})
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><img src="` + dataURL + `"></body></html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvMode, "")
	t.Setenv(config.EnvTimeout, "")

	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, config.FileName),
		"--env-file", filepath.Join(dir, ".env"),
	}
	cmd := newRootCommand()
	cmd.SetArgs(append(args[:1:1], append(base, args[1:]...)...))
	return cmd.Execute()
}

func TestRender_JSON(t *testing.T) {
	srv, requests := fakeService(t)
	out := filepath.Join(t.TempDir(), "surface.html")

	err := run(t, "render", "--endpoint", srv.URL, "--type", "enneper", "--resolution", "30", "--order", "", "--out", out)
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	assert.Equal(t, surface.GenerationRequest{SurfaceType: "enneper", Resolution: 30, Order: 1}, (*requests)[0])

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(raw)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, `"text":"Enneper Surface"`)
	assert.Contains(t, html, `"filename":"enneper_surface"`)
}

func TestRender_DerivedPath(t *testing.T) {
	srv, _ := fakeService(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Render.OutputDir = filepath.Join(dir, "renders")
	require.NoError(t, config.Save(cfg, cfgPath))

	t.Setenv(config.EnvEndpoint, "")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"render", "--config", cfgPath, "--env-file", filepath.Join(dir, ".env"), "--colormap", "monochrome"})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(filepath.Join(dir, "renders", "chen-gackstatter_minimal_surface.html"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"showscale":false`)
}

func TestRender_ApplicationError(t *testing.T) {
	srv, _ := fakeService(t)
	err := run(t, "render", "--endpoint", srv.URL, "--type", "torus", "--out", filepath.Join(t.TempDir(), "x.html"))
	require.Error(t, err)
	assert.Equal(t, "Error: Surface type 'torus' not implemented", err.Error())
}

func TestRender_Unreachable(t *testing.T) {
	srv, _ := fakeService(t)
	srv.Close()

	err := run(t, "render", "--endpoint", srv.URL, "--out", filepath.Join(t.TempDir(), "x.html"))
	require.Error(t, err)
	assert.Equal(t, "An error occurred. Please try again.", err.Error())
}

func TestRender_Legacy(t *testing.T) {
	srv, requests := fakeService(t)
	out := filepath.Join(t.TempDir(), "surface.png")

	err := run(t, "render", "--endpoint", srv.URL, "--mode", "legacy", "--out", out)
	require.NoError(t, err)
	assert.Empty(t, *requests)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestRender_PDFSheet(t *testing.T) {
	srv, _ := fakeService(t)
	dir := t.TempDir()

	require.NoError(t, run(t, "render", "--endpoint", srv.URL, "--out", filepath.Join(dir, "surface.html"), "--pdf"))
	raw, err := os.ReadFile(filepath.Join(dir, "surface.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	require.NoError(t, run(t, "render", "--endpoint", srv.URL, "--mode", "legacy", "--out", filepath.Join(dir, "legacy.png"), "--pdf"))
	raw, err = os.ReadFile(filepath.Join(dir, "legacy.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRender_LegacyCreatesOutputDir(t *testing.T) {
	srv, _ := fakeService(t)
	out := filepath.Join(t.TempDir(), "nested", "renders", "surface.png")

	require.NoError(t, run(t, "render", "--endpoint", srv.URL, "--mode", "legacy", "--out", out, "--pdf"))
	_, err := os.Stat(out)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(out), "surface.pdf"))
	require.NoError(t, err)
}

func TestRender_PDFOutputKeepsPrimary(t *testing.T) {
	srv, _ := fakeService(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "surface.pdf")

	require.NoError(t, run(t, "render", "--endpoint", srv.URL, "--out", out, "--pdf"))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Plotly.newPlot")

	raw, err = os.ReadFile(filepath.Join(dir, "surface.sheet.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestSheetPath(t *testing.T) {
	tests := []struct {
		primary string
		want    string
	}{
		{"out/enneper_surface.html", "out/enneper_surface.pdf"},
		{"surface.png", "surface.pdf"},
		{"surface.pdf", "surface.sheet.pdf"},
		{"surface.PDF", "surface.sheet.pdf"},
		{"surface", "surface.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sheetPath(tt.primary), tt.primary)
	}
}

func TestRender_InvalidMode(t *testing.T) {
	err := run(t, "render", "--mode", "both")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestPage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, run(t, "page", "--out", out, "--type", "enneper", "--mode", "legacy"))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(raw)
	assert.Contains(t, html, `<option selected value="enneper">Enneper</option>`)
	assert.Contains(t, html, `<meta content="legacy" name="surfaceview-mode">`)
	assert.Contains(t, html, `<meta content="http://localhost:5000" name="surfaceview-endpoint">`)
	assert.Contains(t, html, `fetch("app.wasm")`)
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("endpoint: http://from-file:1\nview:\n  resolution: 80\n"), 0644))
	t.Setenv(config.EnvEndpoint, "http://from-env:2")
	t.Setenv(config.EnvMode, "")
	t.Setenv(config.EnvTimeout, "")

	flags := &globalFlags{}
	sub := &cobra.Command{Use: "render"}
	flags.register(sub)
	require.NoError(t, sub.ParseFlags([]string{"--config", cfgPath, "--env-file", filepath.Join(dir, ".env"), "--order", "abc"}))

	cfg, err := flags.load(sub)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.Endpoint)
	assert.Equal(t, 80, cfg.View.Resolution)
	assert.Equal(t, 1, cfg.View.Order)

	require.NoError(t, sub.ParseFlags([]string{"--endpoint", "http://from-flag:3"}))
	cfg, err = flags.load(sub)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:3", cfg.Endpoint)
}

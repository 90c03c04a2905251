package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/recera/surfaceview/internal/config"
	"github.com/recera/surfaceview/pkg/client"
	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/page"
	"github.com/recera/surfaceview/pkg/plotspec"
	"github.com/recera/surfaceview/pkg/sheet"
	"github.com/recera/surfaceview/pkg/surface"
)

// session wires one controller to the configured service and writes what it
// renders to disk.
type session struct {
	cfg    *config.Config
	client *client.Client
	ctrl   *controller.Controller
	logger *log.Logger

	// out overrides the derived output path when set
	out       string
	reloadURL string
	// sheet adds a PDF next to each render
	sheet bool

	mu     sync.Mutex
	images map[string]*client.Image
}

func newSession(cfg *config.Config, logger *log.Logger) (*session, error) {
	cl, err := client.New(cfg.Endpoint,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		client: cl,
		logger: logger,
		images: make(map[string]*client.Image),
	}
	s.ctrl = controller.New(cl,
		controller.WithMode(cfg.ControllerMode()),
		controller.WithState(cfg.View),
		controller.WithImageLoader(s),
		controller.WithLogger(logger),
	)
	return s, nil
}

// LoadImage fetches and decodes a legacy render and keeps it for write.
func (s *session) LoadImage(ctx context.Context, src string) error {
	img, err := s.client.LoadImage(ctx, src)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.images = map[string]*client.Image{src: img}
	s.mu.Unlock()
	return nil
}

// apply pushes a view state through the controller the way control events do.
func (s *session) apply(v surface.ViewState) {
	s.ctrl.ToggleConditionalOptions(string(v.SurfaceType))
	s.ctrl.UpdateResolutionLabel(fmt.Sprint(v.Resolution))
	s.ctrl.SetOrder(fmt.Sprint(v.Order))
	s.ctrl.SelectColormap(v.Colormap)
}

// write persists content and returns the path written.
func (s *session) write(content controller.Content) (string, error) {
	switch content.Kind {
	case controller.ContentPlot:
		node, err := page.Plot(content.Plot, s.reloadURL)
		if err != nil {
			return "", err
		}
		path := s.path(content.Plot.Config.ToImageButtonOptions.Filename, "html")
		return path, writeFile(path, func(f *os.File) error { return page.Write(f, node) })

	case controller.ContentImage:
		s.mu.Lock()
		img := s.images[content.Image]
		s.mu.Unlock()
		if img == nil {
			return "", fmt.Errorf("image %s was not loaded", content.Image)
		}
		name := plotspec.ExportFilename(surface.TitleFor(s.ctrl.State().SurfaceType))
		path := s.path(name, img.Format)
		return path, writeBytes(path, img.Bytes)
	}
	return "", fmt.Errorf("nothing to write")
}

// writeSheet writes a printable PDF of content next to the primary output.
func (s *session) writeSheet(content controller.Content, primary string) (string, error) {
	var (
		raw []byte
		err error
	)
	switch content.Kind {
	case controller.ContentPlot:
		raw, err = sheet.Plot(content.Plot)
	case controller.ContentImage:
		s.mu.Lock()
		img := s.images[content.Image]
		s.mu.Unlock()
		raw, err = sheet.Image(surface.TitleFor(s.ctrl.State().SurfaceType), img)
	default:
		return "", fmt.Errorf("nothing to write")
	}
	if err != nil {
		return "", err
	}
	path := sheetPath(primary)
	return path, writeBytes(path, raw)
}

// sheetPath puts the PDF next to primary without ever replacing it.
func sheetPath(primary string) string {
	ext := filepath.Ext(primary)
	base := strings.TrimSuffix(primary, ext)
	if strings.EqualFold(ext, ".pdf") {
		return base + ".sheet.pdf"
	}
	return base + ".pdf"
}

func (s *session) path(name, ext string) string {
	if s.out != "" {
		return s.out
	}
	return filepath.Join(s.cfg.Render.OutputDir, name+"."+strings.TrimPrefix(ext, "."))
}

func writeBytes(path string, raw []byte) error {
	return writeFile(path, func(f *os.File) error {
		_, err := f.Write(raw)
		return err
	})
}

func writeFile(path string, fn func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

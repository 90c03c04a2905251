package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/recera/surfaceview/internal/config"
	"github.com/recera/surfaceview/internal/livereload"
	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/page"
	"github.com/recera/surfaceview/pkg/surface"
	"github.com/recera/surfaceview/pkg/vdom"
)

func newWatchCommand(flags *globalFlags) *cobra.Command {
	var (
		out   string
		serve bool
		host  string
		port  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever the configuration file changes",
		Long: `Watch renders once, then re-renders every time the configuration file is
saved. With --serve it also runs a preview server whose page reloads itself
after each render.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			// CLI takes precedence over the preview section
			if host != "" {
				cfg.Preview.Host = host
			}
			if port != 0 {
				cfg.Preview.Port = port
			}

			s, err := newSession(cfg, log.Default())
			if err != nil {
				return err
			}
			s.out = out

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{session: s, flags: flags, cmd: cmd}
			if serve {
				w.hub = livereload.NewHub(log.Default())
				s.reloadURL = fmt.Sprintf("ws://%s/ws", cfg.Preview.Addr())
			}
			return w.run(ctx)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default derived from the surface title)")
	cmd.Flags().BoolVar(&serve, "serve", false, "Serve the latest render with live reload")
	cmd.Flags().StringVar(&host, "host", "", "Preview server host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Preview server port")
	return cmd
}

// watcher re-renders on configuration changes and feeds the preview server.
type watcher struct {
	session *session
	flags   *globalFlags
	cmd     *cobra.Command
	hub     *livereload.Hub

	mu     sync.RWMutex
	latest []byte
}

func (w *watcher) run(ctx context.Context) error {
	s := w.session
	cancel := s.ctrl.WatchState(func(v surface.ViewState) {
		log.Printf("🔧 %s resolution=%d order=%d colormap=%s", v.SurfaceType, v.Resolution, v.Order, v.Colormap)
	})
	defer cancel()

	w.render(ctx)

	errc := make(chan error, 2)
	fw := &livereload.Watcher{
		Files:  []string{w.flags.configPath},
		Logger: log.Default(),
		OnChange: func(events []fsnotify.Event) {
			log.Printf("📝 %s changed", events[0].Name)
			w.reload(ctx)
		},
	}
	go func() { errc <- fw.Run(ctx) }()
	log.Printf("👀 Watching %s", w.flags.configPath)

	var srv *http.Server
	if w.hub != nil {
		srv = &http.Server{
			Addr:    s.cfg.Preview.Addr(),
			Handler: w.routes(),
		}
		go func() {
			log.Printf("✨ Preview running at http://%s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		log.Println("🛑 Shutting down...")
	case err = <-errc:
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// reload re-reads the configuration and renders with the new view state.
func (w *watcher) reload(ctx context.Context) {
	cfg, err := config.Load(w.flags.configPath)
	if err == nil {
		err = config.ApplyEnv(cfg, os.LookupEnv)
	}
	if err != nil {
		log.Printf("⚠️  Failed to reload %s: %v (keeping previous settings)", w.flags.configPath, err)
		return
	}
	w.flags.apply(w.cmd, cfg)
	if err := cfg.Validate(); err != nil {
		log.Printf("⚠️  Invalid %s: %v (keeping previous settings)", w.flags.configPath, err)
		return
	}
	w.session.apply(cfg.View)
	w.render(ctx)
}

func (w *watcher) render(ctx context.Context) {
	s := w.session
	err := s.ctrl.SubmitAndRender(ctx)
	if errors.Is(err, controller.ErrStale) || errors.Is(err, context.Canceled) {
		return
	}

	var node *vdom.VNode
	if err != nil {
		node = page.Error(err, s.reloadURL)
	} else {
		content := s.ctrl.Model().Content
		path, werr := s.write(content)
		if werr != nil {
			log.Printf("❌ Failed to write output: %v", werr)
		} else {
			log.Printf("✅ Wrote %s", path)
		}
		node, err = w.preview(content)
	}

	if w.hub == nil {
		return
	}
	var buf bytes.Buffer
	if perr := page.Write(&buf, node); perr != nil {
		log.Printf("❌ Failed to build preview: %v", perr)
		return
	}
	w.mu.Lock()
	w.latest = buf.Bytes()
	w.mu.Unlock()

	if err != nil {
		w.hub.Error(errors.New(controller.ErrorMessage(err)))
	}
	w.hub.Reload()
}

func (w *watcher) preview(content controller.Content) (*vdom.VNode, error) {
	if content.Kind == controller.ContentImage {
		return page.Image(content.Image, w.session.reloadURL), nil
	}
	return page.Plot(content.Plot, w.session.reloadURL)
}

func (w *watcher) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", w.hub.HandleWebSocket)
	mux.HandleFunc("/", w.servePreview)
	mux.HandleFunc("/favicon.ico", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func (w *watcher) servePreview(rw http.ResponseWriter, r *http.Request) {
	w.mu.RLock()
	latest := w.latest
	w.mu.RUnlock()

	if latest == nil {
		http.Error(rw, "No render yet", http.StatusServiceUnavailable)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.Header().Set("Cache-Control", "no-cache")
	rw.Write(latest)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recera/surfaceview/pkg/controller"
)

func newRenderCommand(flags *globalFlags) *cobra.Command {
	var (
		out string
		pdf bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate one surface and write it to disk",
		Long: `Render submits the configured surface parameters once. In json mode it
writes a standalone HTML page that draws the surface with Plotly; in legacy
mode it writes the server-rendered image. With --pdf a printable sheet is
written alongside it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cfg, log.Default())
			if err != nil {
				return err
			}
			s.out = out
			s.sheet = pdf

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRender(ctx, s)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default derived from the surface title)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also write a printable PDF sheet")
	return cmd
}

func runRender(ctx context.Context, s *session) error {
	if err := s.ctrl.SubmitAndRender(ctx); err != nil {
		return errors.New(controller.ErrorMessage(err))
	}
	path, err := s.write(s.ctrl.Model().Content)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Printf("✅ Wrote %s", path)

	if s.sheet {
		sheetPath, err := s.writeSheet(s.ctrl.Model().Content, path)
		if err != nil {
			return fmt.Errorf("failed to write sheet: %w", err)
		}
		log.Printf("📄 Wrote %s", sheetPath)
	}
	return nil
}

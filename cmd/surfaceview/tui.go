package main

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/surfaceview/internal/tui"
)

func newTUICommand(flags *globalFlags) *cobra.Command {
	var (
		out     string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Pick surface parameters interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			// the terminal belongs to the UI; logs go to a file or nowhere
			logger := log.New(io.Discard, "", 0)
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "surfaceview")
				if err != nil {
					return err
				}
				defer f.Close()
				logger = log.Default()
			}

			s, err := newSession(cfg, logger)
			if err != nil {
				return err
			}
			s.out = out

			model := tui.NewModel(cmd.Context(), s.ctrl, s.write)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default derived from the surface title)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")
	return cmd
}

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/surfaceview/pkg/page"
)

func newPageCommand(flags *globalFlags) *cobra.Command {
	var (
		out      string
		wasmPath string
		wasmExec string
		origin   bool
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Write the host page for the browser controller",
		Long: `Page writes the HTML page that carries the surface controls and boots the
WebAssembly controller. Build the controller with:

  GOOS=js GOARCH=wasm go build -o app.wasm ./app/client
  cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			opts := page.Options{
				Endpoint:     cfg.Endpoint,
				State:        cfg.View,
				Mode:         cfg.ControllerMode(),
				WasmPath:     wasmPath,
				WasmExecPath: wasmExec,
			}
			if origin {
				opts.Endpoint = ""
			}

			if out == "-" {
				return page.Write(os.Stdout, page.Host(opts))
			}
			if err := writeFile(out, func(f *os.File) error { return page.Write(f, page.Host(opts)) }); err != nil {
				return err
			}
			log.Printf("✅ Wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "index.html", "Output file, or - for stdout")
	cmd.Flags().StringVar(&wasmPath, "wasm", "app.wasm", "URL of the compiled controller")
	cmd.Flags().StringVar(&wasmExec, "wasm-exec", "wasm_exec.js", "URL of the Go WASM support script")
	cmd.Flags().BoolVar(&origin, "same-origin", false, "Call the service on the page's own origin")
	return cmd
}

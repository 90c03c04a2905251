//go:build !js || !wasm
// +build !js !wasm

package debug

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/recera/surfaceview/pkg/reactive"
)

// Console returns stderr outside the browser
func Console() io.Writer { return os.Stderr }

// NewLogger returns a logger that writes to stderr outside the browser
func NewLogger(prefix string) *log.Logger {
	return log.New(os.Stderr, prefix, log.LstdFlags)
}

// EnableLogging routes reactive debug output to stderr
func EnableLogging() {
	reactive.SetDebugLog(func(args ...interface{}) {
		fmt.Fprintln(os.Stderr, args...)
	})
}

// Logf logs a formatted message to stderr
func Logf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

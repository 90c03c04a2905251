//go:build js && wasm
// +build js,wasm

package debug

import (
	"fmt"
	"io"
	"log"
	"strings"
	"syscall/js"

	"github.com/recera/surfaceview/pkg/reactive"
)

// consoleWriter forwards each log line to console.log, or console.error for
// lines that report a failure.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	method := "log"
	if strings.Contains(line, "❌") {
		method = "error"
	}
	js.Global().Get("console").Call(method, line)
	return len(p), nil
}

// Console returns a writer backed by the browser console
func Console() io.Writer { return consoleWriter{} }

// NewLogger returns a logger that writes to the browser console
func NewLogger(prefix string) *log.Logger {
	return log.New(consoleWriter{}, prefix, 0)
}

// EnableLogging enables debug logging for the reactive package
func EnableLogging() {
	reactive.SetDebugLog(func(args ...interface{}) {
		js.Global().Get("console").Call("debug", fmt.Sprint(args...))
	})
}

// Logf logs a formatted message to the console
func Logf(format string, args ...interface{}) {
	js.Global().Get("console").Call("log", fmt.Sprintf(format, args...))
}

//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"

	"github.com/recera/surfaceview/pkg/client"
	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/debug"
	"github.com/recera/surfaceview/pkg/dom"
	"github.com/recera/surfaceview/pkg/page"
)

var (
	document js.Value
	window   js.Value
)

func main() {
	document = js.Global().Get("document")
	window = js.Global().Get("window")

	debug.EnableLogging()
	debug.Logf("🚀 surfaceview client starting...")

	if document.Get("readyState").String() != "loading" {
		onReady()
	} else {
		var ready js.Func
		ready = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			ready.Release()
			onReady()
			return nil
		})
		document.Call("addEventListener", "DOMContentLoaded", ready)
	}

	// Keep the WASM runtime alive
	select {}
}

func onReady() {
	logger := debug.NewLogger("[surfaceview] ")

	endpoint := meta(page.MetaEndpoint)
	if endpoint == "" {
		endpoint = window.Get("location").Get("origin").String()
	}
	mode, err := controller.ParseMode(meta(page.MetaMode))
	if err != nil {
		logger.Printf("❌ %v, falling back to %s", err, controller.ModeJSON)
		mode = controller.ModeJSON
	}

	cl, err := client.New(endpoint, client.WithLogger(logger))
	if err != nil {
		logger.Printf("❌ bad endpoint %q: %v", endpoint, err)
		return
	}

	ctrl := controller.New(cl,
		controller.WithMode(mode),
		controller.WithImageLoader(dom.ImageLoader{}),
		controller.WithLogger(logger),
	)
	if _, err := dom.Bind(ctrl, logger); err != nil {
		logger.Printf("❌ bind failed: %v", err)
		return
	}
	logger.Printf("✅ controller ready (%s mode, endpoint %s)", mode, endpoint)
}

func meta(name string) string {
	el := document.Call("querySelector", `meta[name="`+name+`"]`)
	if el.IsNull() || el.IsUndefined() {
		return ""
	}
	return el.Get("content").String()
}

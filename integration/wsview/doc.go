// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wsview serves an interactive Mandelbrot view over a websocket.
//
// Each connection owns a viewport and a pixel buffer. The browser sends
// small JSON requests and receives the resulting state as a text message
// followed by the rendered frame as a binary PNG message:
//
//	browser click -> mandelbrot.OnClick -> Renderer.Render -> PNG -> browser
//
// # Protocol
//
// Requests are JSON objects with a "type" field:
//
//	{"type": "click", "x": 120, "y": 40, "button": "left", "width": 1000, "height": 1000}
//	{"type": "reset"}
//	{"type": "goto", "landmark": "seahorse-valley"}
//	{"type": "render"}
//
// For clicks, x and y are in the coordinate space of the displayed image,
// whose on-screen size is width x height. The server scales them to buffer
// pixels. Every successful request is answered with a "state" message and
// a frame. A bad request is answered with an "error" message and the
// connection stays open.
//
// # Usage
//
//	r, _ := mandelbrot.NewRenderer()
//	srv := wsview.New(r, wsview.WithBufferSize(mandelbrot.Size{Width: 960, Height: 540}))
//	http.ListenAndServe(":8080", srv.Handler())
//
// # Thread Safety
//
// A Server handles any number of connections. They share the Renderer,
// which is safe for concurrent renders into distinct buffers.
package wsview

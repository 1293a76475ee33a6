// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wsview

import (
	"fmt"

	"github.com/gogpu/mandelbrot"
)

// Request types.
const (
	TypeClick  = "click"
	TypeReset  = "reset"
	TypeGoto   = "goto"
	TypeRender = "render"
)

// Response types.
const (
	TypeState = "state"
	TypeError = "error"
)

// Request is a message from the browser.
type Request struct {
	Type string `json:"type"`

	// Click position in displayed image pixels.
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button string  `json:"button,omitempty"`

	// Displayed image size. Zero means the buffer size.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Landmark string `json:"landmark,omitempty"`
}

// Response is a text message to the browser.
type Response struct {
	Type string `json:"type"`

	CenterRe float64 `json:"centerRe"`
	CenterIm float64 `json:"centerIm"`
	Zoom     float64 `json:"zoom"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`

	Error string `json:"error,omitempty"`
}

func stateResponse(v mandelbrot.Viewport, size mandelbrot.Size) Response {
	return Response{
		Type:     TypeState,
		CenterRe: real(v.Center),
		CenterIm: imag(v.Center),
		Zoom:     v.Zoom,
		Width:    size.Width,
		Height:   size.Height,
	}
}

func parseButton(s string) (mandelbrot.Button, error) {
	switch s {
	case "", "left":
		return mandelbrot.ButtonLeft, nil
	case "right":
		return mandelbrot.ButtonRight, nil
	case "middle":
		return mandelbrot.ButtonMiddle, nil
	default:
		return 0, fmt.Errorf("%w: button %q", ErrBadRequest, s)
	}
}

package player

import (
	"fmt"
	"net/url"
)

// Frame is a screen region in pixels.
type Frame struct {
	X      int `json:"x" toml:"x"`
	Y      int `json:"y" toml:"y"`
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

func (f Frame) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", f.Width, f.Height, f.X, f.Y)
}

// RendererSettings is applied once when the view takes over a renderer.
type RendererSettings struct {
	TransparentBackground  bool
	InlineMediaPlayback    bool
	AutoplayWithoutGesture bool
	ScrollingEnabled       bool
}

// NavigationHandler decides whether the renderer may follow a navigation.
type NavigationHandler func(u *url.URL) (follow bool)

// Renderer is the embedded web content the view owns.
//
// EvaluateJavaScript returns the string representation of the result.
// Exceptions thrown by the script are not errors: they yield an empty result.
type Renderer interface {
	Configure(settings RendererSettings) error
	SetNavigationHandler(handler NavigationHandler)
	LoadHTML(html string, baseURL *url.URL) error
	EvaluateJavaScript(script string) (string, error)
	Attach(frame Frame) error
	Detach() error
}

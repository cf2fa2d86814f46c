// Package playertest provides an in-memory renderer for tests of code built
// on player.View.
package playertest

import (
	"net/url"
	"sync"

	"github.com/je4/ytview/pkg/player"
)

// Renderer records everything the view asks it to do. Results maps scripts
// to the value EvaluateJavaScript returns for them.
type Renderer struct {
	mu        sync.Mutex
	Settings  *player.RendererSettings
	Handler   player.NavigationHandler
	HTML      string
	BaseURL   *url.URL
	Scripts   []string
	Results   map[string]string
	Frame     player.Frame
	Attached  bool
	Attaches  int
	Detaches  int
	EvalError error
}

func NewRenderer() *Renderer {
	return &Renderer{Results: map[string]string{}}
}

func (r *Renderer) Configure(settings player.RendererSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Settings = &settings
	return nil
}

func (r *Renderer) SetNavigationHandler(handler player.NavigationHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Handler = handler
}

func (r *Renderer) LoadHTML(html string, baseURL *url.URL) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.HTML = html
	r.BaseURL = baseURL
	return nil
}

func (r *Renderer) EvaluateJavaScript(script string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scripts = append(r.Scripts, script)
	if r.EvalError != nil {
		return "", r.EvalError
	}
	return r.Results[script], nil
}

func (r *Renderer) Attach(frame player.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Frame = frame
	r.Attached = true
	r.Attaches++
	return nil
}

func (r *Renderer) Detach() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Attached = false
	r.Detaches++
	return nil
}

// Navigate feeds raw through the registered navigation handler the way the
// page would and reports whether the navigation is followed.
func (r *Renderer) Navigate(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	r.mu.Lock()
	handler := r.Handler
	r.mu.Unlock()
	if handler == nil {
		return true
	}
	return handler(u)
}

func (r *Renderer) LastScript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Scripts) == 0 {
		return ""
	}
	return r.Scripts[len(r.Scripts)-1]
}

func (r *Renderer) LoadedHTML() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.HTML
}

var _ player.Renderer = (*Renderer)(nil)

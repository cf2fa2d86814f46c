package browser

import (
	"context"
	"encoding/json"
	"net/url"

	"emperror.dev/errors"
	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/je4/ytview/pkg/player"
)

const flagAutoplayPolicy = "autoplay-policy"
const flagHideScrollbars = "hide-scrollbars"

// Configure stores the settings. Settings backed by command line flags only
// take effect if chrome is not running yet.
func (b *Browser) Configure(settings player.RendererSettings) error {
	b.mu.Lock()
	b.settings = settings
	if settings.AutoplayWithoutGesture {
		b.flags[flagAutoplayPolicy] = "no-user-gesture-required"
	}
	b.flags[flagHideScrollbars] = !settings.ScrollingEnabled
	running := b.running
	b.mu.Unlock()
	if !running {
		return nil
	}
	b.logger.Warn().Msg("browser already running, command line settings apply after restart")
	return errors.WithStack(b.Tasks(chromedp.Tasks{chromedp.ActionFunc(b.applySettings)}))
}

// applySettings applies the settings that can be changed at runtime.
func (b *Browser) applySettings(ctx context.Context) error {
	b.mu.Lock()
	settings := b.settings
	b.mu.Unlock()
	if settings.TransparentBackground {
		if err := emulation.SetDefaultBackgroundColorOverride().
			WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}).
			Do(ctx); err != nil {
			return errors.Wrap(err, "cannot set transparent background")
		}
	} else {
		if err := emulation.SetDefaultBackgroundColorOverride().Do(ctx); err != nil {
			return errors.Wrap(err, "cannot reset background")
		}
	}
	if err := emulation.SetScrollbarsHidden(!settings.ScrollingEnabled).Do(ctx); err != nil {
		return errors.Wrap(err, "cannot hide scrollbars")
	}
	return nil
}

func (b *Browser) SetNavigationHandler(handler player.NavigationHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
}

// LoadHTML shows html as the document of baseURL. about:blank documents are
// written directly, other base urls are served through request
// interception so the page gets their origin.
func (b *Browser) LoadHTML(html string, baseURL *url.URL) error {
	if !b.IsRunning() {
		if err := b.Startup(); err != nil {
			return errors.Wrap(err, "could not start browser")
		}
	}
	if baseURL == nil || baseURL.Scheme == "about" {
		return errors.Wrap(b.Tasks(chromedp.Tasks{
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				tree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return errors.Wrap(err, "cannot get frame tree")
				}
				return errors.Wrap(page.SetDocumentContent(tree.Frame.ID, html).Do(ctx), "cannot set document content")
			}),
		}), "cannot load html")
	}
	b.mu.Lock()
	b.page = &pendingPage{url: baseURL.String(), html: html}
	b.mu.Unlock()
	if err := b.Tasks(chromedp.Tasks{chromedp.Navigate(baseURL.String())}); err != nil {
		return errors.Wrapf(err, "cannot load html at %s", baseURL.String())
	}
	return nil
}

// EvaluateJavaScript evaluates script in the page. Exceptions thrown by the
// script are logged and yield an empty result.
func (b *Browser) EvaluateJavaScript(script string) (string, error) {
	var res *runtime.RemoteObject
	err := b.Tasks(chromedp.Tasks{chromedp.Evaluate(script, &res)})
	if err != nil {
		var exception *runtime.ExceptionDetails
		if errors.As(err, &exception) {
			b.logger.Debug().Msgf("script %s failed: %s", script, exception.Error())
			return "", nil
		}
		return "", errors.Wrapf(err, "cannot evaluate %s", script)
	}
	return remoteObjectString(res), nil
}

func remoteObjectString(obj *runtime.RemoteObject) string {
	if obj == nil {
		return ""
	}
	switch obj.Type {
	case runtime.TypeUndefined:
		return ""
	case runtime.TypeString:
		var str string
		if err := json.Unmarshal(obj.Value, &str); err == nil {
			return str
		}
	}
	if len(obj.Value) > 0 {
		return string(obj.Value)
	}
	if obj.UnserializableValue != "" {
		return string(obj.UnserializableValue)
	}
	return obj.Description
}

// Attach places the window at frame and sizes the viewport accordingly.
// Chrome is started on first use.
func (b *Browser) Attach(frame player.Frame) error {
	if !b.IsRunning() {
		if err := b.Startup(); err != nil {
			return errors.Wrap(err, "could not start browser")
		}
	}
	if err := b.Tasks(chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			windowID, _, err := cdpbrowser.GetWindowForTarget().Do(ctx)
			if err != nil {
				b.logger.Debug().Err(err).Msg("cannot get browser window")
				return nil
			}
			if err := cdpbrowser.SetWindowBounds(windowID, &cdpbrowser.Bounds{
				Left:   int64(frame.X),
				Top:    int64(frame.Y),
				Width:  int64(frame.Width),
				Height: int64(frame.Height),
			}).Do(ctx); err != nil {
				// fullscreen and kiosk windows cannot be moved
				b.logger.Debug().Err(err).Msgf("cannot set window bounds %s", frame)
			}
			return nil
		}),
		emulation.SetDeviceMetricsOverride(int64(frame.Width), int64(frame.Height), 1, false),
	}); err != nil {
		return errors.Wrapf(err, "cannot attach at %s", frame)
	}
	b.mu.Lock()
	b.frame = frame
	b.attached = true
	b.mu.Unlock()
	return nil
}

// Detach drops the viewport override of the last Attach.
func (b *Browser) Detach() error {
	b.mu.Lock()
	attached := b.attached && b.running
	b.attached = false
	b.mu.Unlock()
	if !attached {
		return nil
	}
	return errors.Wrap(b.Tasks(chromedp.Tasks{emulation.ClearDeviceMetricsOverride()}), "cannot detach")
}

var _ player.Renderer = (*Browser)(nil)

package browser

import (
	"encoding/base64"
	"net/url"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// BindingName is the function the page calls with ytplayer:// urls.
const BindingName = "ytplayerBridge"

// messageQueue runs jobs one after the other in the order they were added.
// Adding never blocks, so it is safe from within devtools event listeners.
type messageQueue struct {
	mu     sync.Mutex
	jobs   []func()
	signal chan struct{}
	done   chan struct{}
}

func newMessageQueue() *messageQueue {
	return &messageQueue{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (q *messageQueue) add(job func()) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *messageQueue) next() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return nil, false
	}
	job := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return job, true
}

func (q *messageQueue) run() {
	for {
		for job, ok := q.next(); ok; job, ok = q.next() {
			job()
		}
		select {
		case <-q.signal:
		case <-q.done:
			return
		}
	}
}

func (q *messageQueue) close() {
	close(q.done)
}

type pendingPage struct {
	url  string
	html string
}

func (b *Browser) onTargetEvent(ev any) {
	switch ev := ev.(type) {
	case *runtime.EventBindingCalled:
		if ev.Name != BindingName {
			return
		}
		payload := ev.Payload
		b.enqueue(func() { b.bridgeMessage(payload) })
	case *runtime.EventConsoleAPICalled:
		b.writeBrowserLog("%s", consoleLine(ev))
	case *runtime.EventExceptionThrown:
		if ev.ExceptionDetails != nil {
			b.writeBrowserLog("exception: %s", ev.ExceptionDetails.Text)
		}
	case *fetch.EventRequestPaused:
		go b.requestPaused(ev)
	}
}

func (b *Browser) enqueue(job func()) {
	b.mu.Lock()
	queue := b.queue
	b.mu.Unlock()
	queue.add(job)
}

func (b *Browser) navigationHandler() func(u *url.URL) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler
}

// bridgeMessage hands a ytplayer:// url sent through the binding to the
// navigation handler.
func (b *Browser) bridgeMessage(payload string) {
	u, err := url.Parse(payload)
	if err != nil {
		b.logger.Error().Err(err).Msgf("cannot parse bridge message %q", payload)
		return
	}
	handler := b.navigationHandler()
	if handler == nil {
		b.logger.Debug().Msgf("no navigation handler for bridge message %s", payload)
		return
	}
	if handler(u) {
		b.logger.Debug().Msgf("bridge message %s is not a player event", payload)
	}
}

// canonicalURL brings u into the form chrome reports for requests:
// lower case host, no default port, "/" for an empty path and no fragment.
func canonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Opaque != "" {
		return raw
	}
	u.Fragment = ""
	u.RawFragment = ""
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && !isDefaultPort(u.Scheme, port) {
		host += ":" + port
	}
	u.Host = host
	if u.Host != "" && u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u.String()
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}

func samePage(requestURL, pageURL string) bool {
	return canonicalURL(requestURL) == canonicalURL(pageURL)
}

func enableDocumentInterception() chromedp.Action {
	return fetch.Enable().WithPatterns([]*fetch.RequestPattern{{
		URLPattern:   "*",
		ResourceType: network.ResourceTypeDocument,
		RequestStage: fetch.RequestStageRequest,
	}})
}

// requestPaused decides about every document request of the tab: the page
// loaded by LoadHTML is served from memory, other navigations are asked
// to the navigation handler.
func (b *Browser) requestPaused(ev *fetch.EventRequestPaused) {
	b.mu.Lock()
	page := b.page
	ctx := b.ctx
	running := b.running
	b.mu.Unlock()
	if !running {
		return
	}
	c := chromedp.FromContext(ctx)
	if c == nil || c.Target == nil {
		return
	}
	execCtx := cdp.WithExecutor(ctx, c.Target)

	if page != nil && samePage(ev.Request.URL, page.url) {
		b.mu.Lock()
		b.page = nil
		b.mu.Unlock()
		if err := fetch.FulfillRequest(ev.RequestID, 200).
			WithResponseHeaders([]*fetch.HeaderEntry{{Name: "Content-Type", Value: "text/html; charset=utf-8"}}).
			WithBody(base64.StdEncoding.EncodeToString([]byte(page.html))).
			Do(execCtx); err != nil {
			b.logger.Error().Err(err).Msgf("cannot serve player page at %s", page.url)
		}
		return
	}

	follow := true
	if u, err := url.Parse(ev.Request.URL); err == nil {
		if handler := b.navigationHandler(); handler != nil {
			follow = handler(u)
		}
	}
	if follow {
		if err := fetch.ContinueRequest(ev.RequestID).Do(execCtx); err != nil {
			b.logger.Error().Err(err).Msgf("cannot continue request %s", ev.Request.URL)
		}
		return
	}
	b.logger.Debug().Msgf("navigation to %s vetoed", ev.Request.URL)
	if err := fetch.FailRequest(ev.RequestID, network.ErrorReasonAborted).Do(execCtx); err != nil {
		b.logger.Error().Err(err).Msgf("cannot abort request %s", ev.Request.URL)
	}
}

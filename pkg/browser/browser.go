package browser

import (
	"context"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/je4/ytview/pkg/player"
	"github.com/sahmad98/go-ringbuffer"
)

const defaultTaskTimeout = 30 * time.Second

// NewBrowser prepares a chrome instance with the given command line flags.
// Chrome is started by Startup or by the first Attach.
func NewBrowser(opts map[string]any, logger zLogger.ZLogger, logf func(string, ...any)) (*Browser, error) {
	if logf == nil {
		logf = func(s string, i ...any) {
			logger.Debug().Msgf(s, i...)
		}
	}
	flags := make(map[string]any, len(opts))
	for k, v := range opts {
		flags[k] = v
	}
	return &Browser{
		flags:      flags,
		logger:     logger,
		logf:       logf,
		timeout:    defaultTaskTimeout,
		queue:      newMessageQueue(),
		browserLog: ringbuffer.NewRingBuffer(100),
	}, nil
}

// Browser is a chrome tab driven over the devtools protocol. It implements
// player.Renderer.
type Browser struct {
	mu           sync.Mutex
	flags        map[string]any
	logger       zLogger.ZLogger
	logf         func(string, ...any)
	timeout      time.Duration
	allocCancel  context.CancelFunc
	ctx          context.Context
	cancel       context.CancelFunc
	running      bool
	settings     player.RendererSettings
	handler      player.NavigationHandler
	frame        player.Frame
	attached     bool
	page         *pendingPage
	queue        *messageQueue
	browserLog   *ringbuffer.RingBuffer
	browserLogMu sync.Mutex
}

// SetTimeout limits every devtools round trip. Zero restores the default.
func (b *Browser) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeout = timeout
}

func (b *Browser) Timeout() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timeout
}

func (b *Browser) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Startup launches chrome and installs the event bridge.
func (b *Browser) Startup() error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return errors.New("browser already running")
	}
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range b.flags {
		allocOpts = append(allocOpts, chromedp.Flag(name, value))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(b.logf), chromedp.WithErrorf(b.logf))
	b.allocCancel = allocCancel
	b.ctx = ctx
	b.cancel = cancel
	b.running = true
	queue := b.queue
	b.mu.Unlock()

	chromedp.ListenTarget(ctx, b.onTargetEvent)
	go queue.run()

	if err := chromedp.Run(ctx,
		runtime.Enable(),
		runtime.AddBinding(BindingName),
		enableDocumentInterception(),
		chromedp.ActionFunc(b.applySettings),
	); err != nil {
		b.Close()
		return errors.Wrap(err, "cannot start browser")
	}
	b.logger.Info().Msg("browser started")
	return nil
}

// Close shuts chrome down. A closed browser can be started again.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	if err := chromedp.Cancel(b.ctx); err != nil {
		b.logger.Error().Err(err).Msg("cannot close browser tab")
	}
	b.cancel()
	b.allocCancel()
	b.queue.close()
	b.queue = newMessageQueue()
	b.running = false
	b.attached = false
	b.logger.Info().Msg("browser closed")
}

func (b *Browser) context() (context.Context, time.Duration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return nil, 0, errors.New("browser not running")
	}
	return b.ctx, b.timeout, nil
}

// Tasks runs tasks in the tab.
func (b *Browser) Tasks(tasks chromedp.Tasks) error {
	ctx, timeout, err := b.context()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return errors.WithStack(chromedp.Run(ctx, tasks))
}

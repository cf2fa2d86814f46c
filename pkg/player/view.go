package player

import (
	"io/fs"
	"maps"
	"net/url"
	"sync"

	"emperror.dev/errors"
	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/je4/ytview/pkg/player/assets"
	"github.com/je4/ytview/pkg/youtube"
)

// DefaultSettings are applied to every renderer a view takes over.
var DefaultSettings = RendererSettings{
	TransparentBackground:  true,
	InlineMediaPlayback:    true,
	AutoplayWithoutGesture: true,
	ScrollingEnabled:       false,
}

type Option func(v *View)

// WithTemplate replaces the embedded page template.
func WithTemplate(fsys fs.FS, name string) Option {
	return func(v *View) {
		v.templateFS = fsys
		v.templateName = name
	}
}

func WithBaseURL(u *url.URL) Option {
	return func(v *View) {
		v.baseURL = u
	}
}

func WithPlayerVars(vars PlayerVars) Option {
	return func(v *View) {
		v.playerVars = maps.Clone(vars)
	}
}

// NewView takes ownership of renderer, configures it and places it at frame.
func NewView(frame Frame, renderer Renderer, logger zLogger.ZLogger, opts ...Option) (*View, error) {
	if renderer == nil {
		return nil, errors.New("no renderer")
	}
	v := &View{
		frame:        frame,
		renderer:     renderer,
		logger:       logger,
		templateFS:   assets.FS,
		templateName: assets.TemplateName,
		state:        StateUnstarted,
		playerVars:   PlayerVars{},
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := renderer.Configure(DefaultSettings); err != nil {
		return nil, errors.Wrap(err, "cannot configure renderer")
	}
	renderer.SetNavigationHandler(v.HandleNavigation)
	if err := renderer.Attach(frame); err != nil {
		return nil, errors.Wrapf(err, "cannot attach renderer at %s", frame)
	}
	return v, nil
}

// View embeds the YouTube iframe player into a renderer.
type View struct {
	mu           sync.Mutex
	frame        Frame
	renderer     Renderer
	logger       zLogger.ZLogger
	templateFS   fs.FS
	templateName string
	baseURL      *url.URL
	playerVars   PlayerVars
	ready        bool
	state        PlayerState
	quality      PlaybackQuality
	observer     observerRef
}

// Layout detaches the renderer and attaches it again with frame.
func (v *View) Layout(frame Frame) error {
	v.mu.Lock()
	v.frame = frame
	v.mu.Unlock()
	if err := v.renderer.Detach(); err != nil {
		return errors.Wrap(err, "cannot detach renderer")
	}
	if err := v.renderer.Attach(frame); err != nil {
		return errors.Wrapf(err, "cannot attach renderer at %s", frame)
	}
	v.logger.Debug().Msgf("layout %s", frame)
	return nil
}

func (v *View) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// LoadURL loads the video referenced by a YouTube url.
func (v *View) LoadURL(u *url.URL) error {
	id, ok := youtube.VideoID(u)
	if !ok {
		v.logger.Warn().Msgf("no video id in %v", u)
		return errors.Errorf("no video id in %v", u)
	}
	return v.LoadVideoID(id)
}

func (v *View) LoadVideoID(videoID string) error {
	return v.loadWithParams(BuildParams(v.PlayerVars(), map[string]any{paramVideoID: videoID}))
}

// LoadPlaylistID switches the player vars to the playlist. The playlist
// vars stay set for later loads until SetPlayerVars replaces them.
func (v *View) LoadPlaylistID(playlistID string) error {
	v.mu.Lock()
	if v.playerVars == nil {
		v.playerVars = PlayerVars{}
	}
	v.playerVars[varListType] = listTypePlaylist
	v.playerVars[varList] = playlistID
	v.mu.Unlock()
	return v.loadWithParams(BuildParams(v.PlayerVars(), nil))
}

// PlayerVars returns a copy of the current player vars.
func (v *View) PlayerVars() PlayerVars {
	v.mu.Lock()
	defer v.mu.Unlock()
	return maps.Clone(v.playerVars)
}

func (v *View) SetPlayerVars(vars PlayerVars) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playerVars = maps.Clone(vars)
}

// BaseURL is the origin the page is loaded with, about:blank by default.
func (v *View) BaseURL() *url.URL {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.baseURL == nil {
		return &url.URL{Scheme: "about", Opaque: "blank"}
	}
	u := *v.baseURL
	return &u
}

func (v *View) SetBaseURL(u *url.URL) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.baseURL = u
}

// Ready reports whether the iframe api has been initialized.
func (v *View) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

func (v *View) State() PlayerState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Quality is empty until the player reports a quality change.
func (v *View) Quality() PlaybackQuality {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.quality
}

// ClearObserver unregisters the current observer.
func (v *View) ClearObserver() {
	v.setObserver(nil)
}

func (v *View) setObserver(ref observerRef) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observer = ref
}

func (v *View) currentObserver() Observer {
	v.mu.Lock()
	ref := v.observer
	v.mu.Unlock()
	if ref == nil {
		return nil
	}
	return ref.observer()
}

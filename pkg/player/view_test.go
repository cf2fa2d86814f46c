package player_test

import (
	"net/url"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/je4/ytview/pkg/player"
	"github.com/je4/ytview/pkg/player/playertest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() zLogger.ZLogger {
	logger := zerolog.Nop()
	return &logger
}

type recorder struct {
	player.NopObserver
	ready     int
	states    []player.PlayerState
	qualities []player.PlaybackQuality
	errors    []player.PlayerError
}

func (r *recorder) OnReady(*player.View) {
	r.ready++
}

func (r *recorder) OnStateChange(_ *player.View, state player.PlayerState) {
	r.states = append(r.states, state)
}

func (r *recorder) OnQualityChange(_ *player.View, quality player.PlaybackQuality) {
	r.qualities = append(r.qualities, quality)
}

func (r *recorder) OnError(_ *player.View, playerError player.PlayerError) {
	r.errors = append(r.errors, playerError)
}

func newView(t *testing.T) (*player.View, *playertest.Renderer) {
	t.Helper()
	renderer := playertest.NewRenderer()
	view, err := player.NewView(player.Frame{Width: 640, Height: 360}, renderer, nopLogger())
	require.NoError(t, err)
	return view, renderer
}

func TestNewViewConfiguresRenderer(t *testing.T) {
	view, renderer := newView(t)

	require.NotNil(t, renderer.Settings)
	assert.Equal(t, player.DefaultSettings, *renderer.Settings)
	assert.True(t, renderer.Settings.TransparentBackground)
	assert.True(t, renderer.Settings.InlineMediaPlayback)
	assert.False(t, renderer.Settings.ScrollingEnabled)
	assert.NotNil(t, renderer.Handler)
	assert.True(t, renderer.Attached)
	assert.Equal(t, player.Frame{Width: 640, Height: 360}, renderer.Frame)

	assert.False(t, view.Ready())
	assert.Equal(t, player.StateUnstarted, view.State())
	assert.Empty(t, view.Quality())
}

func TestNewViewWithoutRenderer(t *testing.T) {
	_, err := player.NewView(player.Frame{}, nil, nopLogger())
	assert.Error(t, err)
}

func TestLayoutReattaches(t *testing.T) {
	view, renderer := newView(t)
	frame := player.Frame{X: 10, Y: 20, Width: 1280, Height: 720}

	require.NoError(t, view.Layout(frame))
	require.NoError(t, view.Layout(frame))

	assert.Equal(t, 2, renderer.Detaches)
	assert.Equal(t, 3, renderer.Attaches)
	assert.True(t, renderer.Attached)
	assert.Equal(t, frame, renderer.Frame)
	assert.Equal(t, frame, view.Frame())
}

func TestLoadURL(t *testing.T) {
	view, renderer := newView(t)
	u, err := url.Parse("https://youtu.be/M7lc1UVf-VE")
	require.NoError(t, err)

	require.NoError(t, view.LoadURL(u))
	assert.Contains(t, renderer.LoadedHTML(), `"videoId": "M7lc1UVf-VE"`)
}

func TestLoadURLWithoutVideo(t *testing.T) {
	view, renderer := newView(t)
	u, err := url.Parse("https://example.com/about")
	require.NoError(t, err)

	assert.Error(t, view.LoadURL(u))
	assert.Empty(t, renderer.LoadedHTML())
}

func TestLoadPlaylistPersists(t *testing.T) {
	view, renderer := newView(t)
	view.SetPlayerVars(player.PlayerVars{"autoplay": 1})

	require.NoError(t, view.LoadPlaylistID("PL123"))
	vars := view.PlayerVars()
	assert.Equal(t, "playlist", vars["listType"])
	assert.Equal(t, "PL123", vars["list"])
	assert.Equal(t, 1, vars["autoplay"])
	assert.Contains(t, renderer.LoadedHTML(), `"list": "PL123"`)
	assert.NotContains(t, renderer.LoadedHTML(), `"videoId"`)

	require.NoError(t, view.LoadVideoID("abc"))
	vars = view.PlayerVars()
	assert.Equal(t, "playlist", vars["listType"])
	assert.Equal(t, "PL123", vars["list"])
	html := renderer.LoadedHTML()
	assert.Contains(t, html, `"videoId": "abc"`)
	assert.Contains(t, html, `"listType": "playlist"`)

	view.SetPlayerVars(nil)
	require.NoError(t, view.LoadVideoID("abc"))
	assert.NotContains(t, renderer.LoadedHTML(), `"list"`)
}

func TestPlayerVarsAreCopied(t *testing.T) {
	view, _ := newView(t)
	vars := player.PlayerVars{"loop": 1}
	view.SetPlayerVars(vars)
	vars["loop"] = 0
	assert.Equal(t, 1, view.PlayerVars()["loop"])
}

func TestBaseURL(t *testing.T) {
	view, renderer := newView(t)
	assert.Equal(t, "about:blank", view.BaseURL().String())

	base, err := url.Parse("https://www.example.com/")
	require.NoError(t, err)
	view.SetBaseURL(base)
	require.NoError(t, view.LoadVideoID("abc"))
	assert.Equal(t, "https://www.example.com/", renderer.BaseURL.String())
}

func TestCommands(t *testing.T) {
	view, renderer := newView(t)
	tests := []struct {
		name     string
		call     func() error
		expected string
	}{
		{"mute", view.Mute, "player.mute();"},
		{"unmute", view.UnMute, "player.unMute();"},
		{"play", view.PlayVideo, "player.playVideo();"},
		{"pause", view.PauseVideo, "player.pauseVideo();"},
		{"stop", view.StopVideo, "player.stopVideo();"},
		{"clear", view.ClearVideo, "player.clearVideo();"},
		{"previous", view.PreviousVideo, "player.previousVideo();"},
		{"next", view.NextVideo, "player.nextVideo();"},
		{"seek", func() error { return view.SeekTo(12.5, true) }, "player.seekTo(12.5, true);"},
		{"seek whole seconds", func() error { return view.SeekTo(30, false) }, "player.seekTo(30, false);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.expected, renderer.LastScript())
		})
	}
}

func TestGetters(t *testing.T) {
	view, renderer := newView(t)
	renderer.Results["player.getDuration();"] = "212.061"
	renderer.Results["player.getCurrentTime();"] = "12.5"

	assert.Equal(t, "212.061", view.Duration())
	assert.Equal(t, "12.5", view.CurrentTime())

	renderer.EvalError = assert.AnError
	assert.Empty(t, view.Duration())
	assert.Error(t, view.PlayVideo())
}

func TestReadiness(t *testing.T) {
	view, renderer := newView(t)
	obs := &recorder{}
	player.SetObserver(view, obs)

	assert.False(t, view.Ready())
	assert.False(t, renderer.Navigate("ytplayer://onReady"))
	assert.False(t, view.Ready())
	assert.Equal(t, 1, obs.ready)

	assert.False(t, renderer.Navigate("ytplayer://onYouTubeIframeAPIReady"))
	assert.True(t, view.Ready())
	assert.Equal(t, 1, obs.ready)
}

func TestStateChange(t *testing.T) {
	view, renderer := newView(t)
	obs := &recorder{}
	player.SetObserver(view, obs)

	assert.False(t, renderer.Navigate("ytplayer://onStateChange?data=1"))
	assert.Equal(t, player.StatePlaying, view.State())
	assert.Equal(t, []player.PlayerState{player.StatePlaying}, obs.states)

	assert.False(t, renderer.Navigate("ytplayer://onStateChange?data=99"))
	assert.Equal(t, player.StatePlaying, view.State())
	assert.Len(t, obs.states, 1)

	assert.False(t, renderer.Navigate("ytplayer://onStateChange"))
	assert.Len(t, obs.states, 1)
}

func TestQualityChange(t *testing.T) {
	view, renderer := newView(t)
	obs := &recorder{}
	player.SetObserver(view, obs)

	assert.False(t, renderer.Navigate("ytplayer://onPlaybackQualityChange?data=hd720"))
	assert.Equal(t, player.QualityHD720, view.Quality())
	assert.False(t, renderer.Navigate("ytplayer://onPlaybackQualityChange?data=ultra"))
	assert.Equal(t, player.QualityHD720, view.Quality())
	assert.Equal(t, []player.PlaybackQuality{player.QualityHD720}, obs.qualities)
}

func TestPlayerError(t *testing.T) {
	view, renderer := newView(t)
	obs := &recorder{}
	player.SetObserver(view, obs)

	assert.False(t, renderer.Navigate("ytplayer://onPlayerError?data=150"))
	assert.False(t, renderer.Navigate("ytplayer://onPlayerError?data=abc"))
	assert.Equal(t, []player.PlayerError{player.ErrorNotEmbeddable}, obs.errors)
}

func TestUnknownEventAndOrdinaryNavigation(t *testing.T) {
	view, renderer := newView(t)
	obs := &recorder{}
	player.SetObserver(view, obs)

	assert.False(t, renderer.Navigate("ytplayer://onSomethingElse?data=1"))
	assert.True(t, renderer.Navigate("https://www.youtube.com/watch?v=abc"))
	assert.True(t, renderer.Navigate("about:blank"))

	assert.Equal(t, player.StateUnstarted, view.State())
	assert.Zero(t, obs.ready)
	assert.Empty(t, obs.states)
	assert.Empty(t, obs.qualities)
}

func TestEventsInOrder(t *testing.T) {
	view, renderer := newView(t)
	obs := &recorder{}
	player.SetObserver(view, obs)

	for _, code := range []string{"-1", "3", "1", "2", "0"} {
		renderer.Navigate("ytplayer://onStateChange?data=" + code)
	}
	assert.Equal(t, []player.PlayerState{
		player.StateUnstarted, player.StateBuffering, player.StatePlaying, player.StatePaused, player.StateEnded,
	}, obs.states)
}

func TestWithoutObserver(t *testing.T) {
	view, renderer := newView(t)
	assert.False(t, renderer.Navigate("ytplayer://onStateChange?data=2"))
	assert.Equal(t, player.StatePaused, view.State())

	obs := &recorder{}
	player.SetObserver(view, obs)
	view.ClearObserver()
	renderer.Navigate("ytplayer://onStateChange?data=1")
	assert.Empty(t, obs.states)
}

type stateCounter struct {
	player.NopObserver
	hits *atomic.Int32
}

func (c *stateCounter) OnStateChange(*player.View, player.PlayerState) {
	c.hits.Add(1)
}

func TestObserverHeldWeakly(t *testing.T) {
	view, renderer := newView(t)
	hits := &atomic.Int32{}

	obs := &stateCounter{hits: hits}
	player.SetObserver(view, obs)
	renderer.Navigate("ytplayer://onStateChange?data=1")
	assert.Equal(t, int32(1), hits.Load())
	runtime.KeepAlive(obs)
}

func TestDroppedObserverIsReleased(t *testing.T) {
	view, renderer := newView(t)
	hits := &atomic.Int32{}

	func() {
		player.SetObserver(view, &stateCounter{hits: hits})
	}()
	runtime.GC()
	runtime.GC()

	assert.False(t, renderer.Navigate("ytplayer://onStateChange?data=2"))
	assert.Equal(t, player.StatePaused, view.State())
	assert.Zero(t, hits.Load())
}

func TestRenderedPageIsComplete(t *testing.T) {
	view, renderer := newView(t)
	require.NoError(t, view.LoadVideoID("abc"))
	html := renderer.LoadedHTML()
	assert.NotContains(t, html, player.TemplatePlaceholder)
	assert.True(t, strings.Contains(html, "new YT.Player('player', {"))
}

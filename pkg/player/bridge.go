package player

import (
	"net/url"

	"emperror.dev/errors"
)

// BridgeScheme is the url scheme the page uses to signal events.
const BridgeScheme = "ytplayer"

const bridgeDataParam = "data"

const (
	EventAPIReady      = "onYouTubeIframeAPIReady"
	EventReady         = "onReady"
	EventStateChange   = "onStateChange"
	EventQualityChange = "onPlaybackQualityChange"
	EventError         = "onPlayerError"
)

// HandleNavigation is the navigation handler registered with the renderer.
// Bridge urls (ytplayer://<event>?data=<value>) are consumed and never
// followed, everything else is.
func (v *View) HandleNavigation(u *url.URL) bool {
	if u == nil || u.Scheme != BridgeScheme {
		return true
	}
	v.handleEvent(u.Host, u.Query().Get(bridgeDataParam))
	return false
}

func (v *View) handleEvent(name, data string) {
	v.logger.Debug().Str("event", name).Str("data", data).Msg("player event")
	switch name {
	case EventAPIReady:
		v.mu.Lock()
		v.ready = true
		v.mu.Unlock()
	case EventReady:
		if o := v.currentObserver(); o != nil {
			o.OnReady(v)
		}
	case EventStateChange:
		state, ok := ParsePlayerState(data)
		if !ok {
			v.logger.Debug().Err(errors.Wrapf(ErrUnrecognizedEvent, "%s: state %q", name, data)).Msg("ignoring event")
			return
		}
		v.mu.Lock()
		v.state = state
		v.mu.Unlock()
		if o := v.currentObserver(); o != nil {
			o.OnStateChange(v, state)
		}
	case EventQualityChange:
		quality, ok := ParsePlaybackQuality(data)
		if !ok {
			v.logger.Debug().Err(errors.Wrapf(ErrUnrecognizedEvent, "%s: quality %q", name, data)).Msg("ignoring event")
			return
		}
		v.mu.Lock()
		v.quality = quality
		v.mu.Unlock()
		if o := v.currentObserver(); o != nil {
			o.OnQualityChange(v, quality)
		}
	case EventError:
		playerError, ok := ParsePlayerError(data)
		if !ok {
			v.logger.Debug().Err(errors.Wrapf(ErrUnrecognizedEvent, "%s: error %q", name, data)).Msg("ignoring event")
			return
		}
		v.logger.Warn().Msgf("player error: %s", playerError)
		if o := v.currentObserver(); o != nil {
			o.OnError(v, playerError)
		}
	default:
		v.logger.Debug().Err(errors.Wrapf(ErrUnrecognizedEvent, "%s", name)).Msg("ignoring event")
	}
}

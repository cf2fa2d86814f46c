package player

import "weak"

// Observer receives the player lifecycle events of a View.
// Embed NopObserver to implement only some of the callbacks.
type Observer interface {
	OnReady(view *View)
	OnStateChange(view *View, state PlayerState)
	OnQualityChange(view *View, quality PlaybackQuality)
	OnError(view *View, playerError PlayerError)
}

type NopObserver struct{}

func (NopObserver) OnReady(*View)                          {}
func (NopObserver) OnStateChange(*View, PlayerState)       {}
func (NopObserver) OnQualityChange(*View, PlaybackQuality) {}
func (NopObserver) OnError(*View, PlayerError)             {}

var _ Observer = NopObserver{}

type observerRef interface {
	observer() Observer
}

type weakObserver[T any] struct {
	p weak.Pointer[T]
}

func (r weakObserver[T]) observer() Observer {
	t := r.p.Value()
	if t == nil {
		return nil
	}
	o, _ := any(t).(Observer)
	return o
}

// SetObserver registers o with view, replacing any previous observer. The
// view holds o weakly: once the application drops its last reference the
// view stops notifying. Use View.ClearObserver to unregister explicitly.
func SetObserver[T any, P interface {
	*T
	Observer
}](view *View, o P) {
	if o == nil {
		view.setObserver(nil)
		return
	}
	view.setObserver(weakObserver[T]{p: weak.Make((*T)(o))})
}

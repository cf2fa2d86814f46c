package player

// PlayerVars are passed to the iframe player as its playerVars object
// (autoplay, loop, playlist, controls, ...).
type PlayerVars map[string]any

const (
	paramHeight     = "height"
	paramWidth      = "width"
	paramEvents     = "events"
	paramPlayerVars = "playerVars"
	paramVideoID    = "videoId"

	varListType      = "listType"
	varList          = "list"
	listTypePlaylist = "playlist"
)

// callback names of the page template
var playerEvents = map[string]string{
	"onReady":                 "onReady",
	"onStateChange":           "onStateChange",
	"onPlaybackQualityChange": "onPlaybackQualityChange",
	"onError":                 "onPlayerError",
}

// BuildParams creates the configuration object handed to YT.Player.
// Keys of extra are added on top of the fixed ones.
func BuildParams(vars PlayerVars, extra map[string]any) map[string]any {
	events := make(map[string]string, len(playerEvents))
	for k, v := range playerEvents {
		events[k] = v
	}
	if vars == nil {
		vars = PlayerVars{}
	}
	params := map[string]any{
		paramHeight:     "100%",
		paramWidth:      "100%",
		paramEvents:     events,
		paramPlayerVars: vars,
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}

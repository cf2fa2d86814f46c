package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildParams(t *testing.T) {
	vars := PlayerVars{"autoplay": 1, "controls": 0}
	params := BuildParams(vars, map[string]any{"videoId": "abc"})

	assert.Equal(t, "100%", params["height"])
	assert.Equal(t, "100%", params["width"])
	assert.Equal(t, "abc", params["videoId"])
	assert.Equal(t, vars, params["playerVars"])
	assert.Equal(t, map[string]string{
		"onReady":                 "onReady",
		"onStateChange":           "onStateChange",
		"onPlaybackQualityChange": "onPlaybackQualityChange",
		"onError":                 "onPlayerError",
	}, params["events"])
}

func TestBuildParamsWithoutVars(t *testing.T) {
	params := BuildParams(nil, nil)
	assert.Equal(t, PlayerVars{}, params["playerVars"])
	_, ok := params["videoId"]
	assert.False(t, ok)
	assert.Len(t, params, 4)
}

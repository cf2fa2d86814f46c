package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlayerState(t *testing.T) {
	tests := []struct {
		code     string
		expected PlayerState
		ok       bool
	}{
		{"-1", StateUnstarted, true},
		{"0", StateEnded, true},
		{"1", StatePlaying, true},
		{"2", StatePaused, true},
		{"3", StateBuffering, true},
		{"5", StateQueued, true},
		{"4", StateUnstarted, false},
		{"99", StateUnstarted, false},
		{"", StateUnstarted, false},
		{"playing", StateUnstarted, false},
	}
	for _, tt := range tests {
		state, ok := ParsePlayerState(tt.code)
		assert.Equal(t, tt.ok, ok, "code %q", tt.code)
		if ok {
			assert.Equal(t, tt.expected, state, "code %q", tt.code)
		}
	}
}

func TestPlayerStateString(t *testing.T) {
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "PlayerState(42)", PlayerState(42).String())
}

func TestParsePlaybackQuality(t *testing.T) {
	for _, code := range []string{"small", "medium", "large", "hd720", "hd1080", "highres"} {
		q, ok := ParsePlaybackQuality(code)
		assert.True(t, ok, code)
		assert.Equal(t, code, q.String())
	}
	for _, code := range []string{"", "HD720", "default", "tiny"} {
		_, ok := ParsePlaybackQuality(code)
		assert.False(t, ok, code)
	}
}

func TestParsePlayerError(t *testing.T) {
	e, ok := ParsePlayerError("150")
	assert.True(t, ok)
	assert.Equal(t, ErrorNotEmbeddable, e)

	e, ok = ParsePlayerError("100")
	assert.True(t, ok)
	assert.Equal(t, ErrorVideoNotFound, e)

	_, ok = ParsePlayerError("7")
	assert.False(t, ok)
}

package player

import "strconv"

// PlayerState is the playback state reported by the iframe player.
type PlayerState int

const (
	StateUnstarted PlayerState = -1
	StateEnded     PlayerState = 0
	StatePlaying   PlayerState = 1
	StatePaused    PlayerState = 2
	StateBuffering PlayerState = 3
	StateQueued    PlayerState = 5
)

var playerStateNames = map[PlayerState]string{
	StateUnstarted: "unstarted",
	StateEnded:     "ended",
	StatePlaying:   "playing",
	StatePaused:    "paused",
	StateBuffering: "buffering",
	StateQueued:    "queued",
}

func (s PlayerState) String() string {
	if name, ok := playerStateNames[s]; ok {
		return name
	}
	return "PlayerState(" + strconv.Itoa(int(s)) + ")"
}

// ParsePlayerState converts the numeric code sent by the page.
func ParsePlayerState(code string) (PlayerState, bool) {
	i, err := strconv.Atoi(code)
	if err != nil {
		return StateUnstarted, false
	}
	s := PlayerState(i)
	if _, ok := playerStateNames[s]; !ok {
		return StateUnstarted, false
	}
	return s, true
}

// PlaybackQuality is the quality level reported by the iframe player.
type PlaybackQuality string

const (
	QualitySmall          PlaybackQuality = "small"
	QualityMedium         PlaybackQuality = "medium"
	QualityLarge          PlaybackQuality = "large"
	QualityHD720          PlaybackQuality = "hd720"
	QualityHD1080         PlaybackQuality = "hd1080"
	QualityHighResolution PlaybackQuality = "highres"
)

func (q PlaybackQuality) String() string {
	return string(q)
}

// ParsePlaybackQuality accepts only the known quality codes.
func ParsePlaybackQuality(code string) (PlaybackQuality, bool) {
	switch q := PlaybackQuality(code); q {
	case QualitySmall, QualityMedium, QualityLarge, QualityHD720, QualityHD1080, QualityHighResolution:
		return q, true
	}
	return "", false
}

// PlayerError is the error code of an onError event.
type PlayerError int

const (
	ErrorInvalidParam  PlayerError = 2
	ErrorHTML5         PlayerError = 5
	ErrorVideoNotFound PlayerError = 100
	ErrorNotEmbeddable PlayerError = 101
)

func (e PlayerError) String() string {
	switch e {
	case ErrorInvalidParam:
		return "invalid parameter"
	case ErrorHTML5:
		return "html5 player error"
	case ErrorVideoNotFound:
		return "video not found"
	case ErrorNotEmbeddable:
		return "not embeddable"
	}
	return "PlayerError(" + strconv.Itoa(int(e)) + ")"
}

// ParsePlayerError maps the error codes of the iframe api. 150 is reported
// for the same reason as 101 and folded into ErrorNotEmbeddable.
func ParsePlayerError(code string) (PlayerError, bool) {
	i, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	switch e := PlayerError(i); e {
	case ErrorInvalidParam, ErrorHTML5, ErrorVideoNotFound, ErrorNotEmbeddable:
		return e, true
	case 150:
		return ErrorNotEmbeddable, true
	}
	return 0, false
}

package player

import (
	"strconv"

	"emperror.dev/errors"
)

// evaluate runs player.<fragment>; in the page.
func (v *View) evaluate(fragment string) (string, error) {
	script := "player." + fragment + ";"
	result, err := v.renderer.EvaluateJavaScript(script)
	if err != nil {
		return "", errors.Wrapf(err, "cannot evaluate %s", script)
	}
	return result, nil
}

func (v *View) command(fragment string) error {
	_, err := v.evaluate(fragment)
	return err
}

func (v *View) Mute() error {
	return v.command("mute()")
}

func (v *View) UnMute() error {
	return v.command("unMute()")
}

func (v *View) PlayVideo() error {
	return v.command("playVideo()")
}

func (v *View) PauseVideo() error {
	return v.command("pauseVideo()")
}

func (v *View) StopVideo() error {
	return v.command("stopVideo()")
}

func (v *View) ClearVideo() error {
	return v.command("clearVideo()")
}

// SeekTo jumps to seconds. With allowSeekAhead the player may request
// unbuffered data from the server.
func (v *View) SeekTo(seconds float64, allowSeekAhead bool) error {
	return v.command("seekTo(" + strconv.FormatFloat(seconds, 'f', -1, 64) + ", " + strconv.FormatBool(allowSeekAhead) + ")")
}

func (v *View) PreviousVideo() error {
	return v.command("previousVideo()")
}

func (v *View) NextVideo() error {
	return v.command("nextVideo()")
}

// Duration returns the duration in seconds as printed by the page,
// empty if the player cannot answer.
func (v *View) Duration() string {
	result, err := v.evaluate("getDuration()")
	if err != nil {
		v.logger.Debug().Err(err).Msg("cannot get duration")
		return ""
	}
	return result
}

// CurrentTime returns the elapsed time in seconds as printed by the page,
// empty if the player cannot answer.
func (v *View) CurrentTime() string {
	result, err := v.evaluate("getCurrentTime()")
	if err != nil {
		v.logger.Debug().Err(err).Msg("cannot get current time")
		return ""
	}
	return result
}

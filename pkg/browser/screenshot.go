package browser

import (
	"bytes"
	"image"

	"emperror.dev/errors"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"
)

// Screenshot captures the viewport. width and height scale the image, 0
// keeps the aspect ratio, both 0 keep the original size. sigma > 0 blurs it.
func (b *Browser) Screenshot(width int, height int, sigma float64) ([]byte, string, error) {
	var buf []byte
	if err := b.Tasks(chromedp.Tasks{chromedp.CaptureScreenshot(&buf)}); err != nil {
		return nil, "", errors.Wrap(err, "cannot capture screenshot")
	}
	return scaleImage(buf, width, height, sigma)
}

func scaleImage(data []byte, width int, height int, sigma float64) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "cannot decode screenshot")
	}
	var result image.Image = img
	if width > 0 || height > 0 {
		result = imaging.Resize(result, width, height, imaging.Lanczos)
	}
	if sigma > 0 {
		result = imaging.Blur(result, sigma)
	}
	out := &bytes.Buffer{}
	if err := imaging.Encode(out, result, imaging.PNG); err != nil {
		return nil, "", errors.Wrap(err, "cannot encode screenshot")
	}
	return out.Bytes(), "image/png", nil
}

package player

import (
	"encoding/json"
	"io/fs"
	"strings"

	"emperror.dev/errors"
)

// TemplatePlaceholder is replaced with the JSON parameters object.
const TemplatePlaceholder = "%@"

// RenderPage substitutes the placeholder of tpl with the pretty printed params.
func RenderPage(tpl []byte, params map[string]any) (string, error) {
	jsonBytes, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return "", errors.Wrapf(ErrSerialization, "%v", err)
	}
	return strings.Replace(string(tpl), TemplatePlaceholder, string(jsonBytes), 1), nil
}

func readTemplate(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, errors.Wrapf(ErrResourceNotFound, "no template filesystem for %s", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceNotFound, "cannot read template %s: %v", name, err)
	}
	return data, nil
}

// loadWithParams renders the template and hands it to the renderer.
func (v *View) loadWithParams(params map[string]any) error {
	tpl, err := readTemplate(v.templateFS, v.templateName)
	if err != nil {
		v.logger.Error().Err(err).Msgf("cannot load player template %s", v.templateName)
		return err
	}
	html, err := RenderPage(tpl, params)
	if err != nil {
		v.logger.Error().Err(err).Msg("cannot render player page")
		return err
	}
	baseURL := v.BaseURL()
	v.logger.Debug().Msgf("loading player page with base url %s", baseURL)
	if err := v.renderer.LoadHTML(html, baseURL); err != nil {
		return errors.Wrapf(err, "cannot load player page into renderer")
	}
	return nil
}

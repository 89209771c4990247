package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/morph/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// TemplateOverrides is the optional .morph.toml a template ships at its root
type TemplateOverrides struct {
	Manifest struct {
		Indent *int `toml:"indent"`
	} `toml:"manifest"`
	Install struct {
		Command string   `toml:"command"`
		Args    []string `toml:"args"`
	} `toml:"install"`
	Test struct {
		TranscriptFile string `toml:"transcript_file"`
	} `toml:"test"`
}

// LoadTemplateOverrides reads the template's override file from dir.
// A missing file yields nil overrides and no error.
func LoadTemplateOverrides(dir, name string) (*TemplateOverrides, error) {
	if name == "" {
		return nil, nil
	}
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	var o TemplateOverrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}
	return &o, nil
}

// ApplyTemplateOverrides returns a copy of c with the template's overrides applied
func (c *Config) ApplyTemplateOverrides(o *TemplateOverrides) *Config {
	out := c.Clone()
	if o == nil {
		return out
	}
	if o.Manifest.Indent != nil && *o.Manifest.Indent >= 0 {
		out.Manifest.Indent = *o.Manifest.Indent
	}
	if o.Install.Command != "" {
		out.Install.Command = o.Install.Command
		out.Install.Args = append([]string(nil), o.Install.Args...)
	}
	if o.Test.TranscriptFile != "" {
		out.Test.TranscriptFile = filepath.Base(o.Test.TranscriptFile)
	}
	log.Debug().
		Int("indent", out.Manifest.Indent).
		Str("install", out.Install.Command).
		Msg("Applied template overrides")
	return out
}

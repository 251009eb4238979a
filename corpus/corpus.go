// Package corpus loads example corpora (YAML or TOML files of texts with
// their expected entities) and runs them against an extractor.
package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/locale"
)

// Corpus is one file of cases sharing a locale and reference time
type Corpus struct {
	// Requires is a semver constraint on the build, e.g. ">= 0.2"
	Requires      string `yaml:"requires" toml:"requires"`
	Locale        string `yaml:"locale" toml:"locale"`
	ReferenceTime string `yaml:"reference_time" toml:"reference_time"`
	Timezone      string `yaml:"timezone" toml:"timezone"`
	Cases         []Case `yaml:"cases" toml:"cases"`

	// Path is the file the corpus was read from
	Path string `yaml:"-" toml:"-"`
}

// Case is a text and the entities it must produce, in order
type Case struct {
	Name       string        `yaml:"name" toml:"name"`
	Text       string        `yaml:"text" toml:"text"`
	Dims       []string      `yaml:"dims" toml:"dims"`
	WithLatent bool          `yaml:"with_latent" toml:"with_latent"`
	Expect     []Expectation `yaml:"expect" toml:"expect"`
}

// Expectation describes one entity. Empty fields are not checked.
type Expectation struct {
	Body  string `yaml:"body" toml:"body"`
	Kind  string `yaml:"kind" toml:"kind"`
	Value string `yaml:"value" toml:"value"`
	Grain string `yaml:"grain" toml:"grain"`
	Start *int   `yaml:"start" toml:"start"`
}

// Label names the case in reports
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Text
}

// Load reads a corpus, choosing the decoder by file extension
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read corpus %s", path)
	}

	var c Corpus
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, errors.Wrapf(err, "failed to parse YAML corpus %s", path)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse TOML corpus %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("corpus %s: unknown key %s", path, undecoded[0])
		}
	default:
		return nil, errors.WithHint(
			errors.Newf("corpus %s: unsupported file type", path),
			"use .yaml, .yml or .toml")
	}

	c.Path = path
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "corpus %s", path)
	}
	return &c, nil
}

// LoadAll reads every corpus file under the given paths; directories are
// searched for .yaml, .yml and .toml files
func LoadAll(paths ...string) ([]*Corpus, error) {
	var out []*Corpus
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", p)
		}
		if !info.IsDir() {
			c, err := Load(p)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", p)
		}
		for _, e := range entries {
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".yaml", ".yml", ".toml":
			default:
				continue
			}
			if e.IsDir() {
				continue
			}
			c, err := Load(filepath.Join(p, e.Name()))
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// Validate checks the corpus header and that every case names known kinds
func (c *Corpus) Validate() error {
	if _, err := c.locale(); err != nil {
		return err
	}
	if _, err := c.reference(); err != nil {
		return err
	}
	if len(c.Cases) == 0 {
		return errors.New("corpus has no cases")
	}
	for i, cs := range c.Cases {
		if strings.TrimSpace(cs.Text) == "" {
			return errors.Newf("case %d has no text", i)
		}
		if _, err := cs.kinds(); err != nil {
			return errors.Wrapf(err, "case %q", cs.Label())
		}
		for _, e := range cs.Expect {
			if e.Kind == "" {
				continue
			}
			if _, err := dimension.ParseKind(e.Kind); err != nil {
				return errors.Wrapf(err, "case %q", cs.Label())
			}
		}
	}
	return nil
}

func (c *Corpus) locale() (locale.Locale, error) {
	return locale.Parse(c.Locale)
}

func (c *Corpus) reference() (time.Time, error) {
	if c.ReferenceTime == "" {
		return time.Time{}, errors.NewInvalidInputError("reference_time is required")
	}
	ref, err := time.Parse(time.RFC3339, c.ReferenceTime)
	if err != nil {
		return time.Time{}, errors.WrapInvalidInput(err, "reference_time")
	}
	return ref, nil
}

// kinds returns the requested kinds; none means every kind
func (cs Case) kinds() ([]dimension.Kind, error) {
	if len(cs.Dims) == 0 {
		return dimension.AllKinds(), nil
	}
	return dimension.ParseKinds(cs.Dims)
}

// Package locale identifies the language and region a rule table serves.
package locale

import (
	"strings"

	"github.com/teranos/qntx-dims/errors"
)

// Lang is an ISO 639-1 language code in upper case
type Lang string

// Region is an ISO 3166-1 alpha-2 region code in upper case; empty means none
type Region string

const (
	EN Lang = "EN"
)

const (
	US Region = "US"
	GB Region = "GB"
	AU Region = "AU"
	CA Region = "CA"
	IN Region = "IN"
)

// Locale selects a rule table and region-specific conventions
type Locale struct {
	Lang   Lang
	Region Region
}

// Default is en_US
var Default = Locale{Lang: EN, Region: US}

var supportedRegions = map[Lang][]Region{
	EN: {US, GB, AU, CA, IN},
}

// New builds a locale, keeping the region only when the language supports it
func New(lang Lang, region Region) Locale {
	for _, r := range supportedRegions[lang] {
		if r == region {
			return Locale{Lang: lang, Region: region}
		}
	}
	return Locale{Lang: lang}
}

// Parse accepts "en", "en_US", "en-GB" and is case-insensitive.
// An empty string yields Default.
func Parse(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	if len(parts) == 0 || len(parts) > 2 || len(parts[0]) != 2 {
		return Locale{}, errors.NewUnsupportedLocaleError(s)
	}

	lang := Lang(strings.ToUpper(parts[0]))
	if _, ok := supportedRegions[lang]; !ok {
		return Locale{}, errors.NewUnsupportedLocaleError(s)
	}
	if len(parts) == 1 {
		return Locale{Lang: lang}, nil
	}

	region := Region(strings.ToUpper(parts[1]))
	loc := New(lang, region)
	if loc.Region == "" {
		return Locale{}, errors.NewUnsupportedLocaleError(s)
	}
	return loc, nil
}

// MustParse is Parse for static inputs; it panics on error
func MustParse(s string) Locale {
	loc, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return loc
}

// String renders the locale as "en_US" or "en"
func (l Locale) String() string {
	lang := strings.ToLower(string(l.Lang))
	if l.Region == "" {
		return lang
	}
	return lang + "_" + string(l.Region)
}

// Supported reports whether a rule table exists for the language
func (l Locale) Supported() bool {
	_, ok := supportedRegions[l.Lang]
	return ok
}

// DayFirst reports whether the region writes numeric dates day before month
func (l Locale) DayFirst() bool {
	switch l.Region {
	case GB, AU, IN:
		return true
	}
	return false
}

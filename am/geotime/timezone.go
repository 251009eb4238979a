// Package geotime resolves the timezone names people write: IANA names,
// abbreviations such as "CET" or "PST", UTC offsets and city names.
package geotime

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/teranos/qntx-dims/errors"
)

// abbreviations maps zone abbreviations to their offset east of UTC in
// minutes. Abbreviations name a fixed offset, so "CET" stays +01:00 even
// in summer.
var abbreviations = map[string]int{
	"utc":  0,
	"gmt":  0,
	"wet":  0,
	"west": 60,
	"bst":  60,
	"cet":  60,
	"cest": 120,
	"eet":  120,
	"eest": 180,
	"ist":  330,
	"hkt":  480,
	"sgt":  480,
	"awst": 480,
	"jst":  540,
	"kst":  540,
	"acst": 570,
	"acdt": 630,
	"aest": 600,
	"aedt": 660,
	"nzst": 720,
	"nzdt": 780,
	"est":  -300,
	"edt":  -240,
	"cst":  -360,
	"cdt":  -300,
	"mst":  -420,
	"mdt":  -360,
	"pst":  -480,
	"pdt":  -420,
}

var cityTimezones = map[string]string{
	"amsterdam":     "Europe/Amsterdam",
	"berlin":        "Europe/Berlin",
	"munich":        "Europe/Berlin",
	"frankfurt":     "Europe/Berlin",
	"london":        "Europe/London",
	"dublin":        "Europe/Dublin",
	"paris":         "Europe/Paris",
	"madrid":        "Europe/Madrid",
	"rome":          "Europe/Rome",
	"stockholm":     "Europe/Stockholm",
	"oslo":          "Europe/Oslo",
	"copenhagen":    "Europe/Copenhagen",
	"helsinki":      "Europe/Helsinki",
	"new york":      "America/New_York",
	"boston":        "America/New_York",
	"toronto":       "America/Toronto",
	"chicago":       "America/Chicago",
	"denver":        "America/Denver",
	"san francisco": "America/Los_Angeles",
	"los angeles":   "America/Los_Angeles",
	"seattle":       "America/Los_Angeles",
	"vancouver":     "America/Vancouver",
	"mexico city":   "America/Mexico_City",
	"sao paulo":     "America/Sao_Paulo",
	"sydney":        "Australia/Sydney",
	"melbourne":     "Australia/Melbourne",
	"singapore":     "Asia/Singapore",
	"hong kong":     "Asia/Hong_Kong",
	"tokyo":         "Asia/Tokyo",
	"seoul":         "Asia/Seoul",
	"mumbai":        "Asia/Kolkata",
	"delhi":         "Asia/Kolkata",
	"dubai":         "Asia/Dubai",
	"tel aviv":      "Asia/Jerusalem",
	"auckland":      "Pacific/Auckland",
}

// Abbreviations lists the known abbreviations in lower case, longest first
// so they can be joined into a regular expression alternation
func Abbreviations() []string {
	out := make([]string, 0, len(abbreviations))
	for a := range abbreviations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Abbreviation returns the fixed zone an abbreviation names, e.g. "CET" is
// UTC+01:00
func Abbreviation(abbr string) (*time.Location, bool) {
	name := strings.ToUpper(strings.TrimSpace(abbr))
	minutes, ok := abbreviations[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return time.FixedZone(name, minutes*60), true
}

// Cities lists the city names GuessTimezoneFromLocation knows, longest first
func Cities() []string {
	out := make([]string, 0, len(cityTimezones))
	for c := range cityTimezones {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

var offsetPattern = regexp.MustCompile(`^(?i)(?:utc|gmt)?\s*([+-])(\d{1,2})(?::?(\d{2}))?$`)

// ParseOffset reads "+02:00", "-0530", "UTC+2" or "GMT-05:30" as a fixed zone
func ParseOffset(s string) (*time.Location, bool) {
	m := offsetPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, false
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 14 || minutes > 59 {
		return nil, false
	}
	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	name := "UTC" + m[1] + m[2]
	if m[3] != "" {
		name += ":" + m[3]
	}
	return time.FixedZone(name, offset), true
}

// Load resolves user input to a location. An empty input is UTC and
// "local" is the host zone.
func Load(input string) (*time.Location, error) {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "", "utc", "z":
		return time.UTC, nil
	case "local":
		name, err := DetectLocalTimezone()
		if err != nil {
			return time.Local, nil
		}
		return time.LoadLocation(name)
	}
	if loc, ok := ParseOffset(trimmed); ok {
		return loc, nil
	}
	if loc, ok := Abbreviation(trimmed); ok {
		return loc, nil
	}
	name, err := NormalizeTimezone(trimmed)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load timezone %s", name)
	}
	return loc, nil
}

// NormalizeTimezone attempts to resolve user input into a valid IANA timezone.
func NormalizeTimezone(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("timezone cannot be empty")
	}

	if isValidTimezone(trimmed) {
		if canonical := canonicalizeValidTimezone(trimmed); canonical != "" {
			return canonical, nil
		}
		return trimmed, nil
	}

	candidate := sanitizeTimezone(trimmed)
	if isValidTimezone(candidate) {
		return candidate, nil
	}

	if tz := GuessTimezoneFromLocation(trimmed); tz != "" {
		return tz, nil
	}

	return "", errors.Newf("unknown timezone: %s", input)
}

// GuessTimezoneFromLocation maps a city name to its IANA zone
func GuessTimezoneFromLocation(location string) string {
	lower := strings.ToLower(strings.Join(strings.Fields(location), " "))
	return cityTimezones[lower]
}

// DetectLocalTimezone attempts to determine the host operating system timezone.
func DetectLocalTimezone() (string, error) {
	if tz := os.Getenv("TZ"); tz != "" {
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if name := time.Now().Location().String(); name != "" && name != "Local" {
		if isValidTimezone(name) {
			return name, nil
		}
	}

	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		tz := sanitizeTimezone(string(data))
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if tz, err := readZoneinfoSymlink("/etc/localtime"); err == nil && tz != "" {
		return tz, nil
	}

	return "", errors.New("could not detect local timezone: tried TZ env var, time.Now().Location(), /etc/timezone, /etc/localtime")
}

func readZoneinfoSymlink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	idx := strings.Index(resolved, "zoneinfo")
	if idx == -1 {
		return "", errors.New("zoneinfo segment not found")
	}
	candidate := strings.TrimPrefix(resolved[idx+len("zoneinfo"):], string(filepath.Separator))
	candidate = sanitizeTimezone(filepath.ToSlash(candidate))
	if isValidTimezone(candidate) {
		return candidate, nil
	}
	return "", errors.Newf("invalid timezone: %q (from %s)", candidate, path)
}

func sanitizeTimezone(tz string) string {
	trimmed := strings.TrimSpace(tz)
	trimmed = strings.Trim(trimmed, "\"'")
	trimmed = strings.ReplaceAll(trimmed, " ", "_")
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		parts[i] = title(part)
	}
	return strings.Join(parts, "/")
}

// title capitalizes each underscore-separated word: "new_york" -> "New_York"
func title(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, "_")
}

func isValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// canonicalizeValidTimezone fixes the capitalization of loadable names
// like "america/new_york", leaving well-formed names such as
// "America/Port_of_Spain" alone
func canonicalizeValidTimezone(tz string) string {
	if strings.ToLower(tz) == tz || hasIncorrectCapitalization(tz) {
		candidate := sanitizeTimezone(tz)
		if isValidTimezone(candidate) && candidate != tz {
			return candidate
		}
	}
	return ""
}

func hasIncorrectCapitalization(tz string) bool {
	if strings.ToLower(tz) == tz {
		return true
	}
	for _, part := range strings.Split(tz, "/") {
		if len(part) > 0 && part[0] >= 'a' && part[0] <= 'z' {
			return true
		}
	}
	return false
}

// ValidateTimezone reports whether Load would accept tz
func ValidateTimezone(tz string) error {
	if _, err := Load(tz); err != nil {
		return errors.Wrapf(err, "invalid timezone: %s", tz)
	}
	return nil
}

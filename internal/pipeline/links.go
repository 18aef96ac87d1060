package pipeline

import (
	"regexp"
	"strings"

	"curadoria/internal/util"
)

var (
	reScheme = regexp.MustCompile(`(?i)^https?://`)
	reCoords = regexp.MustCompile(`(-?\d+(?:\.\d+)?)[,\s]+(-?\d+(?:\.\d+)?)`)
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

func SafeLink(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if reScheme.MatchString(u) {
		return u
	}
	return "https://" + u
}

func MapsFromCoords(raw string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		return ""
	}
	c = util.NormalizeSpaces(strings.ReplaceAll(c, ";", ","))
	m := reCoords.FindStringSubmatch(c)
	if m == nil {
		return ""
	}
	return mapsSearchURL + m[1] + "," + m[2]
}

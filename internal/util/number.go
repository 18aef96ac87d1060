package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern    = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	thousandsDot     = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	thousandsComma   = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
	currencyAndWords = regexp.MustCompile(`[^\d.,]+`)
)

func ParseLeadingNumber(input string) (float64, bool) {
	line := currencyAndWords.ReplaceAllString(input, " ")
	token := numberPattern.FindString(line)
	if token == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(normalizeNumericToken(token), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func normalizeNumericToken(token string) string {
	if thousandsDot.MatchString(token) {
		return strings.ReplaceAll(token, ".", "")
	}
	if thousandsComma.MatchString(token) {
		return strings.ReplaceAll(token, ",", "")
	}
	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		token = strings.ReplaceAll(token, ".", "")
		token = strings.Replace(token, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		token = strings.ReplaceAll(token, ",", "")
	case lastComma >= 0:
		token = strings.Replace(token, ",", ".", 1)
	}
	if strings.Count(token, ".") > 1 {
		parts := strings.SplitN(token, ".", 3)
		token = parts[0] + "." + parts[1]
	}
	return token
}

// Package units converts the free-text magnitudes found on model pages into
// normalized numbers. Every function here is total: malformed input yields 0.
package units

import (
	"math"
	"strconv"
	"strings"
)

// KiloTokens is the multiplier behind a "K" context size, the source uses binary kilo.
const KiloTokens = 1024

func normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MaxContextSize bounds every parsed context size, larger values read as 0.
const MaxContextSize = math.MaxInt32

// ParseContextSize converts "8K" or "4096" into a token count.
func ParseContextSize(text string) int {
	text = normalize(text)

	if strings.Contains(text, "k") {
		num, err := strconv.ParseFloat(strings.ReplaceAll(text, "k", ""), 64)
		if err != nil || !finite(num) {
			return 0
		}
		tokens := num * KiloTokens
		if tokens <= 0 || tokens >= MaxContextSize {
			return 0
		}
		return int(tokens)
	}

	tokens, err := strconv.Atoi(text)
	if err != nil || tokens < 0 || tokens >= MaxContextSize {
		return 0
	}
	return tokens
}

// ParseParamCount converts "7b", "1.5b" or "500m" into billions of parameters.
// The billion marker is checked before the million marker, so a label carrying
// both is read as billions.
func ParseParamCount(text string) float64 {
	text = normalize(text)

	var num float64
	var err error
	switch {
	case strings.Contains(text, "b"):
		num, err = strconv.ParseFloat(strings.ReplaceAll(text, "b", ""), 64)
	case strings.Contains(text, "m"):
		num, err = strconv.ParseFloat(strings.ReplaceAll(text, "m", ""), 64)
		num /= 1000
	default:
		num, err = strconv.ParseFloat(text, 64)
	}
	if err != nil || !finite(num) || num < 0 {
		return 0
	}
	return num
}

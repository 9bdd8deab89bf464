package response

import (
	"regexp"
	"strconv"
	"strings"

	"agrisight/pkg/analysis/types"
	"agrisight/pkg/heuristic"
)

const (
	// DefaultRiskScore is used when the text names no risk value.
	DefaultRiskScore = 50
	fallbackRunes    = 200
)

var (
	riskPattern   = regexp.MustCompile(`(?i)risk[\s[:punct:]]*(\d+)`)
	bulletPattern = regexp.MustCompile(`^(?:[-•*]|\d+\.)\s+`)
)

// ExtractRiskScore returns the first integer following "risk", clamped to
// [0,100], or DefaultRiskScore when there is none.
func ExtractRiskScore(text string) int {
	m := riskPattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultRiskScore
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// only digits matched, so this is overflow
		return 100
	}
	return heuristic.ClampScore(n)
}

// ExtractRecommendations collects bullet and numbered lines with their
// markers stripped. Only markers in the first column count, so indented
// sub-bullets stay out. Without any, it falls back to the first 200 characters
// of the text so the list is never empty.
func ExtractRecommendations(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		loc := bulletPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if item := strings.TrimSpace(line[loc[1]:]); item != "" {
			out = append(out, item)
		}
	}
	if len(out) > 0 {
		return out
	}
	r := []rune(text)
	if len(r) > fallbackRunes {
		r = r[:fallbackRunes]
	}
	return []string{string(r)}
}

// ParseInsight never fails: the narrative is kept verbatim.
func ParseInsight(text string) types.CropInsightResult {
	return types.CropInsightResult{
		Narrative:       text,
		RiskScore:       ExtractRiskScore(text),
		Recommendations: ExtractRecommendations(text),
	}
}

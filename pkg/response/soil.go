package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"agrisight/pkg/ai"
	"agrisight/pkg/analysis/types"
)

var (
	openFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closeFence = regexp.MustCompile("\r?\n?```[ \t]*$")
)

// StripCodeFences removes one leading and one trailing triple-backtick
// fence, with or without a language tag.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = openFence.ReplaceAllString(s, "")
	s = closeFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ai.ErrMalformedOutput, fmt.Sprintf(format, args...))
}

// ParseSoil validates raw model output against the soil result contract.
// Absent keys, nulls, wrong types and out-of-range values are all errors
// wrapping ai.ErrMalformedOutput; nothing is defaulted.
func ParseSoil(raw string) (types.SoilAnalysisResult, error) {
	var res types.SoilAnalysisResult
	// prose or a fence may surround the object
	body := StripCodeFences(raw)
	i, j := strings.Index(body, "{"), strings.LastIndex(body, "}")
	if i < 0 || j < i {
		return res, malformed("no JSON object in response")
	}
	body = body[i : j+1]

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return res, malformed("%v", err)
	}

	score, err := number(obj, "health_score", 0, 100)
	if err != nil {
		return res, err
	}
	if score != math.Trunc(score) {
		return res, malformed("health_score must be an integer")
	}
	res.HealthScore = int(score)
	if res.MoistureLevel, err = number(obj, "moisture_level", 0, 100); err != nil {
		return res, err
	}
	if res.PHLevel, err = number(obj, "ph_level", 0, 14); err != nil {
		return res, err
	}
	if res.NitrogenLevel, err = number(obj, "nitrogen_level", 0, 100); err != nil {
		return res, err
	}
	if res.NDVIValue, err = number(obj, "ndvi_value", 0, 1); err != nil {
		return res, err
	}
	if res.ShouldRest, err = boolean(obj, "should_rest"); err != nil {
		return res, err
	}
	if res.RotationNeeded, err = boolean(obj, "rotation_needed"); err != nil {
		return res, err
	}
	if res.SuggestedCrop, err = optionalString(obj, "suggested_crop"); err != nil {
		return res, err
	}
	if res.ShouldRest {
		res.SuggestedCrop = nil
	}
	if res.Recommendations, err = stringList(obj, "recommendations"); err != nil {
		return res, err
	}
	return res, nil
}

func present(obj map[string]json.RawMessage, key string) (json.RawMessage, error) {
	v, ok := obj[key]
	if !ok {
		return nil, malformed("missing %s", key)
	}
	if v = bytes.TrimSpace(v); bytes.Equal(v, []byte("null")) {
		return nil, malformed("%s is null", key)
	}
	return v, nil
}

func number(obj map[string]json.RawMessage, key string, lo, hi float64) (float64, error) {
	v, err := present(obj, key)
	if err != nil {
		return 0, err
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0, malformed("%s must be a number", key)
	}
	if f < lo || f > hi {
		return 0, malformed("%s=%v outside [%v,%v]", key, f, lo, hi)
	}
	return f, nil
}

func boolean(obj map[string]json.RawMessage, key string) (bool, error) {
	v, err := present(obj, key)
	if err != nil {
		return false, err
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false, malformed("%s must be a boolean", key)
	}
	return b, nil
}

func optionalString(obj map[string]json.RawMessage, key string) (*string, error) {
	v, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, malformed("%s must be a string or null", key)
	}
	if s = strings.TrimSpace(s); s == "" {
		return nil, nil
	}
	return &s, nil
}

func stringList(obj map[string]json.RawMessage, key string) ([]string, error) {
	v, err := present(obj, key)
	if err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal(v, &list); err != nil {
		return nil, malformed("%s must be an array of strings", key)
	}
	out := list[:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, malformed("%s is empty", key)
	}
	return out, nil
}

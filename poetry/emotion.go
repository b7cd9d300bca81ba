package poetry

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// EmotionLabels is the fixed label set every emotion vector must cover.
// Values are independent intensities, not a probability distribution.
var EmotionLabels = []string{"joy", "sadness", "anger", "neutral", "fear", "surprise"}

// EmotionVector maps each label in EmotionLabels to a non-negative intensity.
type EmotionVector map[string]float64

// labelAliases folds classifier-specific label spellings into the canonical set.
var labelAliases = map[string]string{
	"no_emotion": "neutral",
	"happy":      "joy",
	"sad":        "sadness",
}

var emotionRussian = map[string]string{
	"joy":      "радость",
	"sadness":  "грусть",
	"anger":    "гнев",
	"neutral":  "нейтральная",
	"fear":     "страх",
	"surprise": "удивление",
}

// emotionGenres picks a poem genre from the dominant emotion.
var emotionGenres = map[string]string{
	"joy":      "ода",
	"sadness":  "элегия",
	"anger":    "сатира",
	"neutral":  "лирика",
	"fear":     "баллада",
	"surprise": "эпиграмма",
}

// NewEmotionVector builds a full vector from possibly partial input: alias
// labels are canonicalized and unspecified labels default to zero. Unknown
// labels or negative intensities are rejected with ErrMalformedInput.
func NewEmotionVector(values map[string]float64) (EmotionVector, error) {
	v := make(EmotionVector, len(EmotionLabels))
	for _, label := range EmotionLabels {
		v[label] = 0
	}
	for label, value := range values {
		c := CanonicalEmotionLabel(label)
		if _, ok := v[c]; !ok {
			return nil, fmt.Errorf("NewEmotionVector: unknown label %q: %w", label, ErrMalformedInput)
		}
		if value < 0 || math.IsNaN(value) {
			return nil, fmt.Errorf("NewEmotionVector: label %q has invalid intensity %v: %w", label, value, ErrMalformedInput)
		}
		v[c] += value
	}
	return v, nil
}

// CanonicalEmotionLabel maps classifier label spellings onto EmotionLabels.
func CanonicalEmotionLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if c, ok := labelAliases[l]; ok {
		return c
	}
	return l
}

// Validate checks the fixed-label invariant: every label present, every
// intensity non-negative. A nil or incomplete vector fails.
func (v EmotionVector) Validate() error {
	if v == nil {
		return fmt.Errorf("EmotionVector: nil vector: %w", ErrMalformedInput)
	}
	for _, label := range EmotionLabels {
		value, ok := v[label]
		if !ok {
			return fmt.Errorf("EmotionVector: missing label %q: %w", label, ErrMalformedInput)
		}
		if value < 0 || math.IsNaN(value) {
			return fmt.Errorf("EmotionVector: label %q has invalid intensity %v: %w", label, value, ErrMalformedInput)
		}
	}
	for label := range v {
		if _, ok := emotionRussian[label]; !ok {
			return fmt.Errorf("EmotionVector: unknown label %q: %w", label, ErrMalformedInput)
		}
	}
	return nil
}

// Distance is the euclidean distance between two vectors over the fixed
// label set; absent labels on either side count as zero.
func (v EmotionVector) Distance(other EmotionVector) float64 {
	var sum float64
	for _, label := range EmotionLabels {
		d := v[label] - other[label]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Top returns the dominant label. Ties break by the fixed label order so the
// result is deterministic.
func (v EmotionVector) Top() string {
	top := "neutral"
	best := 0.0
	for _, label := range EmotionLabels {
		if value := v[label]; value > best {
			best = value
			top = label
		}
	}
	return top
}

// Genre maps the dominant emotion to the genre used in prompts and
// training samples.
func (v EmotionVector) Genre() string {
	return emotionGenres[v.Top()]
}

// Russian renders the vector for prompts: translated labels with
// percentages, sorted by descending intensity (label order on ties), zero
// intensities omitted. An all-zero vector renders as neutral.
func (v EmotionVector) Russian() string {
	type scored struct {
		label string
		value float64
	}
	items := make([]scored, 0, len(EmotionLabels))
	for _, label := range EmotionLabels {
		if v[label] > 0 {
			items = append(items, scored{label, v[label]})
		}
	}
	if len(items) == 0 {
		return emotionRussian["neutral"] + " (100.0%)"
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].value > items[j].value })

	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%.1f%%)", emotionRussian[it.label], it.value*100))
	}
	return strings.Join(parts, ", ")
}

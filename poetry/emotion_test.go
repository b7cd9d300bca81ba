package poetry

import (
	"errors"
	"math"
	"testing"
)

func TestEmotionVector_ValidateMissingLabel(t *testing.T) {
	t.Parallel()

	v := EmotionVector{"joy": 0.7, "sadness": 0.1, "anger": 0.1, "neutral": 0.0, "surprise": 0.1}
	if err := v.Validate(); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Validate err=%v, want ErrMalformedInput (missing fear)", err)
	}
}

func TestEmotionVector_ValidateNegative(t *testing.T) {
	t.Parallel()

	v, err := NewEmotionVector(map[string]float64{"joy": 1})
	if err != nil {
		t.Fatalf("NewEmotionVector: %v", err)
	}
	v["anger"] = -0.2
	if err := v.Validate(); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Validate err=%v, want ErrMalformedInput", err)
	}
}

func TestNewEmotionVector_FillsAndCanonicalizes(t *testing.T) {
	t.Parallel()

	v, err := NewEmotionVector(map[string]float64{"no_emotion": 0.4, "happy": 0.5})
	if err != nil {
		t.Fatalf("NewEmotionVector: %v", err)
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v["neutral"] != 0.4 || v["joy"] != 0.5 || v["fear"] != 0 {
		t.Fatalf("unexpected vector: %v", v)
	}

	if _, err := NewEmotionVector(map[string]float64{"rage": 1}); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("unknown label err=%v, want ErrMalformedInput", err)
	}
}

func TestEmotionVector_Distance(t *testing.T) {
	t.Parallel()

	a, _ := NewEmotionVector(map[string]float64{"joy": 1})
	b, _ := NewEmotionVector(map[string]float64{"sadness": 1})
	if got := a.Distance(a); got != 0 {
		t.Fatalf("self distance=%v, want 0", got)
	}
	if got, want := a.Distance(b), math.Sqrt2; math.Abs(got-want) > 1e-12 {
		t.Fatalf("distance=%v, want %v", got, want)
	}
}

func TestEmotionVector_TopAndGenre(t *testing.T) {
	t.Parallel()

	v, _ := NewEmotionVector(map[string]float64{"sadness": 0.9, "joy": 0.3})
	if got := v.Top(); got != "sadness" {
		t.Fatalf("Top=%q, want sadness", got)
	}
	if got := v.Genre(); got != "элегия" {
		t.Fatalf("Genre=%q, want элегия", got)
	}

	// An all-zero vector is neutral.
	zero, _ := NewEmotionVector(nil)
	if got := zero.Top(); got != "neutral" {
		t.Fatalf("zero Top=%q, want neutral", got)
	}
}

func TestEmotionVector_Russian(t *testing.T) {
	t.Parallel()

	v, _ := NewEmotionVector(map[string]float64{"joy": 0.7, "anger": 0.21})
	if got, want := v.Russian(), "радость (70.0%), гнев (21.0%)"; got != want {
		t.Fatalf("Russian=%q, want %q", got, want)
	}

	zero, _ := NewEmotionVector(nil)
	if got, want := zero.Russian(), "нейтральная (100.0%)"; got != want {
		t.Fatalf("Russian=%q, want %q", got, want)
	}
}

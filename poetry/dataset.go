package poetry

import (
	"fmt"
	"strings"

	"github.com/lyrelab/versesmith/poetry/fileutils"
)

// TrainingSample is one line-numbered training text for model fine-tuning.
type TrainingSample struct {
	Text string `json:"text"`
}

// FormatTrainingSample serializes an annotated poem into the textual format
// the language model is trained to continue: the emotion/scheme/genre
// header, the [СТИХ] marker, then numbered clean lines.
func FormatTrainingSample(p AnnotatedPoem) TrainingSample {
	var sb strings.Builder
	sb.WriteString("Эмоции: ")
	sb.WriteString(p.Emotions.Russian())
	sb.WriteString("\nРифма: ")
	sb.WriteString(p.RhymeScheme)
	sb.WriteString("\nЖанр: ")
	sb.WriteString(p.Emotions.Genre())
	sb.WriteString("\n")
	sb.WriteString(PoemMarker)
	sb.WriteString("\n")
	for i, line := range p.Lines {
		fmt.Fprintf(&sb, "%d. %s", i+1, line.Text)
		if i+1 < len(p.Lines) {
			sb.WriteString("\n")
		}
	}
	return TrainingSample{Text: sb.String()}
}

// FormatTrainingSamples converts an annotated corpus in order.
func FormatTrainingSamples(poems []AnnotatedPoem) []TrainingSample {
	out := make([]TrainingSample, 0, len(poems))
	for _, p := range poems {
		out = append(out, FormatTrainingSample(p))
	}
	return out
}

// WriteTrainingSamples writes samples as JSONL, one sample per line.
func WriteTrainingSamples(path string, samples []TrainingSample) error {
	if err := fileutils.WriteJSONLinesAtomic(path, samples); err != nil {
		return fmt.Errorf("WriteTrainingSamples: %w", err)
	}
	return nil
}

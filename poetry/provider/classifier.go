package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"github.com/lyrelab/versesmith/poetry"
)

const classifierPrompt = `Ты — классификатор эмоций русского текста.

Оцени интенсивность каждой из шести эмоций в присланном тексте по шкале от 0.0 до 1.0.
Значения независимы и не обязаны давать в сумме 1.0.

Верни только JSON по схеме, без какого-либо дополнительного текста.`

// emotionScores is the structured classifier output over the fixed label set.
type emotionScores struct {
	Joy      float64 `json:"joy"`
	Sadness  float64 `json:"sadness"`
	Anger    float64 `json:"anger"`
	Neutral  float64 `json:"neutral"`
	Fear     float64 `json:"fear"`
	Surprise float64 `json:"surprise"`
}

var emotionScoresSchema = reflectStrictSchema[emotionScores]()

// EmotionClassifier scores text over the fixed emotion labels via strict
// structured output. Implements poetry.EmotionClassifier.
type EmotionClassifier struct {
	Client *openai.Client
	Model  string
}

func (c *EmotionClassifier) Classify(ctx context.Context, text string) (poetry.EmotionVector, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("EmotionClassifier.Classify: nil client")
	}
	if c.Model == "" {
		return nil, fmt.Errorf("EmotionClassifier.Classify: empty model")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifierPrompt),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "EmotionScores",
					Description: openai.String("Emotion intensity scores"),
					Schema:      emotionScoresSchema,
					Strict:      openai.Bool(true),
				},
			},
		},
	}

	resp, err := callWithRetry(ctx, c.Client, params)
	if err != nil {
		return nil, fmt.Errorf("EmotionClassifier.Classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("EmotionClassifier.Classify: response has no choices")
	}

	var scores emotionScores
	if err := decodeLooseJSON(resp.Choices[0].Message.Content, &scores); err != nil {
		return nil, fmt.Errorf("EmotionClassifier.Classify: %w", err)
	}

	v, err := poetry.NewEmotionVector(map[string]float64{
		"joy":      clamp01(scores.Joy),
		"sadness":  clamp01(scores.Sadness),
		"anger":    clamp01(scores.Anger),
		"neutral":  clamp01(scores.Neutral),
		"fear":     clamp01(scores.Fear),
		"surprise": clamp01(scores.Surprise),
	})
	if err != nil {
		return nil, fmt.Errorf("EmotionClassifier.Classify: %w", err)
	}
	return v, nil
}

// decodeLooseJSON tolerates prose around the classifier's JSON object. Even
// with strict mode on, some OpenRouter backends wrap the object in commentary,
// so after a failed direct unmarshal it retries on the outermost brace span.
func decodeLooseJSON(raw string, v any) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return io.ErrUnexpectedEOF
	}
	if json.Unmarshal([]byte(text), v) == nil {
		return nil
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return fmt.Errorf("model output carries no JSON object (%d bytes)", len(text))
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

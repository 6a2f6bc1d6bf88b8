package intent

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"
)

// Model is a pretrained linear bag-of-words text classifier, serialized as
// JSON by the training pipeline. Weights maps a token to one weight per
// label, parallel to Labels and Bias.
type Model struct {
	Labels  []string             `json:"labels"`
	Bias    []float64            `json:"bias"`
	Weights map[string][]float64 `json:"weights"`
}

// LoadModel reads and validates a model file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("model %s: no labels", path)
	}
	if len(m.Bias) != len(m.Labels) {
		return nil, fmt.Errorf("model %s: %d bias terms for %d labels", path, len(m.Bias), len(m.Labels))
	}
	for token, weights := range m.Weights {
		if len(weights) != len(m.Labels) {
			return nil, fmt.Errorf("model %s: token %q has %d weights for %d labels", path, token, len(weights), len(m.Labels))
		}
	}
	return &m, nil
}

// Predict scores text against every label and returns the best label with
// its softmax confidence.
func (m *Model) Predict(text string) (string, float64) {
	scores := append([]float64(nil), m.Bias...)
	for _, token := range tokenize(text) {
		weights, ok := m.Weights[token]
		if !ok {
			continue
		}
		for i := range scores {
			scores[i] += weights[i]
		}
	}

	// softmax, shifted by the max score for numeric stability
	best, maxScore := 0, scores[0]
	for i, s := range scores {
		if s > maxScore {
			best, maxScore = i, s
		}
	}
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - maxScore)
	}
	confidence := 1.0 / sum

	return m.Labels[best], confidence
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Classifier bundles the two intent models behind predict_intentions. It is
// loaded once at process start and read-only afterwards.
type Classifier struct {
	General *Model
	Object  *Model
}

// Load reads both intent models from their file paths.
func Load(generalPath, objectPath string) (*Classifier, error) {
	general, err := LoadModel(generalPath)
	if err != nil {
		return nil, err
	}
	object, err := LoadModel(objectPath)
	if err != nil {
		return nil, err
	}
	return &Classifier{General: general, Object: object}, nil
}

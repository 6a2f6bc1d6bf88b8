package intent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeModel(t *testing.T, m *Model) string {
	t.Helper()

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal model: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func testModel() *Model {
	return &Model{
		Labels: []string{"locate", "measure"},
		Bias:   []float64{0, 0},
		Weights: map[string][]float64{
			"where":       {2.0, -1.0},
			"thermometer": {0.5, 0.5},
			"voltage":     {-1.0, 2.0},
			"read":        {-0.5, 1.5},
		},
	}
}

func TestLoadModel(t *testing.T) {
	path := writeModel(t, testModel())

	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel() error = %v, want nil", err)
	}
	if !reflect.DeepEqual(m.Labels, []string{"locate", "measure"}) {
		t.Errorf("labels = %v, want [locate measure]", m.Labels)
	}
}

func TestLoadModelInvalid(t *testing.T) {
	tests := []struct {
		name  string
		model *Model
	}{
		{"no labels", &Model{Labels: nil, Bias: nil}},
		{"bias mismatch", &Model{Labels: []string{"a", "b"}, Bias: []float64{0}}},
		{"weight mismatch", &Model{
			Labels:  []string{"a", "b"},
			Bias:    []float64{0, 0},
			Weights: map[string][]float64{"tok": {1.0}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeModel(t, tc.model)
			if _, err := LoadModel(path); err == nil {
				t.Error("LoadModel() error = nil, want error")
			}
		})
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadModel(missing) error = nil, want error")
	}
}

func TestPredict(t *testing.T) {
	m := testModel()

	tests := []struct {
		text string
		want string
	}{
		{"Where is the circular thermometer?", "locate"},
		{"read the voltage", "measure"},
		{"WHERE, where; where!", "locate"}, // case and punctuation ignored
	}

	for _, tc := range tests {
		label, confidence := m.Predict(tc.text)
		if label != tc.want {
			t.Errorf("Predict(%q) = %q, want %q", tc.text, label, tc.want)
		}
		if confidence <= 0 || confidence > 1 {
			t.Errorf("Predict(%q) confidence = %f, want in (0, 1]", tc.text, confidence)
		}
	}
}

func TestPredictUnknownTokens(t *testing.T) {
	m := testModel()

	// only bias contributes; confidence is an even split
	label, confidence := m.Predict("completely unrelated words")
	if label != "locate" {
		t.Errorf("Predict() = %q, want first label on tie", label)
	}
	if confidence < 0.49 || confidence > 0.51 {
		t.Errorf("confidence = %f, want ~0.5 on tie", confidence)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Where IS the volt-meter, #3?")
	want := []string{"where", "is", "the", "volt", "meter", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize() = %v, want %v", got, want)
	}
}

func TestLoadPair(t *testing.T) {
	general := writeModel(t, testModel())
	object := writeModel(t, testModel())

	clf, err := Load(general, object)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if clf.General == nil || clf.Object == nil {
		t.Error("Load() returned nil model")
	}

	if _, err := Load(general, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing object model) error = nil, want error")
	}
}

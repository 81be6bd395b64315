//nolint:testpackage // White-box tests for classifier internals.
package model

import (
	"math"
	"testing"
)

// linearly separable toy set: class a lives on feature 0, class b on
// feature 1, class c on feature 2.
func toyTrainingSet() ([][]float64, []string) {
	rows := [][]float64{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0.8, 0, 0.1},
		{0, 1, 0},
		{0.1, 0.9, 0},
		{0, 0.8, 0.2},
		{0, 0, 1},
		{0.1, 0, 0.9},
		{0, 0.2, 0.8},
	}
	labels := []string{"a", "a", "a", "b", "b", "b", "c", "c", "c"}
	return rows, labels
}

func TestClassifier_Fit(t *testing.T) {
	rows, labels := toyTrainingSet()

	c := NewClassifier(0.5, 200)
	if err := c.Fit(rows, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	wantClasses := []string{"a", "b", "c"}
	if len(c.Classes) != len(wantClasses) {
		t.Fatalf("Classes = %v, want %v", c.Classes, wantClasses)
	}
	for i, class := range wantClasses {
		if c.Classes[i] != class {
			t.Errorf("Classes[%d] = %q, want %q", i, c.Classes[i], class)
		}
	}

	if acc := c.Accuracy(rows, labels); acc != 1 {
		t.Errorf("training accuracy = %v, want 1 on separable data", acc)
	}
}

func TestClassifier_FitErrors(t *testing.T) {
	c := NewClassifier(0.5, 10)

	if err := c.Fit(nil, nil); err == nil {
		t.Error("Fit on empty set should fail")
	}
	if err := c.Fit([][]float64{{1}}, []string{"a", "b"}); err == nil {
		t.Error("Fit with mismatched lengths should fail")
	}
}

func TestClassifier_PredictScores(t *testing.T) {
	rows, labels := toyTrainingSet()

	c := NewClassifier(0.5, 200)
	if err := c.Fit(rows, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	label, scores := c.Predict([]float64{1, 0, 0})
	if label != "a" {
		t.Errorf("Predict = %q, want a", label)
	}
	if len(scores) != 3 {
		t.Fatalf("scores = %v, want 3 entries", scores)
	}

	var sum float64
	for _, p := range scores {
		if p < 0 || p > 1 {
			t.Errorf("probability %v out of range", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
	if scores["a"] <= scores["b"] || scores["a"] <= scores["c"] {
		t.Errorf("class a should dominate: %v", scores)
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	rows, labels := toyTrainingSet()

	first := NewClassifier(0.5, 50)
	if err := first.Fit(rows, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	second := NewClassifier(0.5, 50)
	if err := second.Fit(rows, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	for k := range first.Weights {
		for j := range first.Weights[k] {
			if first.Weights[k][j] != second.Weights[k][j] {
				t.Fatalf("weights differ at [%d][%d]", k, j)
			}
		}
		if first.Bias[k] != second.Bias[k] {
			t.Fatalf("bias differs at [%d]", k)
		}
	}
}

func TestClassifier_UntrainedSoftmaxUniform(t *testing.T) {
	c := &Classifier{
		Classes: []string{"a", "b"},
		Weights: [][]float64{{0}, {0}},
		Bias:    []float64{0, 0},
	}

	probs := c.softmax([]float64{1})
	for _, p := range probs {
		if math.Abs(p-0.5) > 1e-9 {
			t.Errorf("zero-weight softmax = %v, want uniform", probs)
		}
	}
}

func TestClassifier_Accuracy(t *testing.T) {
	rows, labels := toyTrainingSet()

	c := NewClassifier(0.5, 200)
	if err := c.Fit(rows, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if acc := c.Accuracy(nil, nil); acc != 0 {
		t.Errorf("Accuracy on empty set = %v, want 0", acc)
	}

	// One deliberately mislabeled row drags accuracy below 1.
	badLabels := append([]string{}, labels...)
	badLabels[0] = "c"
	if acc := c.Accuracy(rows, badLabels); acc >= 1 {
		t.Errorf("Accuracy with bad label = %v, want < 1", acc)
	}
}

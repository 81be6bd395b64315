package model

import (
	"fmt"
	"math"
	"sort"
)

// Classifier is a multinomial logistic regression model trained with
// full-batch gradient descent. Weights start at zero and the iteration
// count is fixed, so training is fully deterministic. Fields are exported
// for gob encoding.
type Classifier struct {
	Classes      []string    // sorted label set
	Weights      [][]float64 // [class][feature]
	Bias         []float64   // [class]
	LearningRate float64
	Iterations   int
	Version      string // artifact version stamp, set at training time
}

// NewClassifier returns an untrained classifier with the given
// optimization settings.
func NewClassifier(learningRate float64, iterations int) *Classifier {
	return &Classifier{
		LearningRate: learningRate,
		Iterations:   iterations,
	}
}

// Fit trains on pre-vectorized rows and their labels. The label set is
// derived from the data and sorted so class column order never depends on
// input ordering.
func (c *Classifier) Fit(rows [][]float64, labels []string) error {
	if len(rows) == 0 {
		return fmt.Errorf("classifier fit: empty training set")
	}
	if len(rows) != len(labels) {
		return fmt.Errorf("classifier fit: %d rows but %d labels", len(rows), len(labels))
	}

	classSet := make(map[string]struct{})
	for _, label := range labels {
		classSet[label] = struct{}{}
	}
	c.Classes = make([]string, 0, len(classSet))
	for label := range classSet {
		c.Classes = append(c.Classes, label)
	}
	sort.Strings(c.Classes)

	classIdx := make(map[string]int, len(c.Classes))
	for idx, label := range c.Classes {
		classIdx[label] = idx
	}

	numClasses := len(c.Classes)
	numFeatures := len(rows[0])
	numRows := len(rows)

	c.Weights = make([][]float64, numClasses)
	for k := range c.Weights {
		c.Weights[k] = make([]float64, numFeatures)
	}
	c.Bias = make([]float64, numClasses)

	target := make([]int, numRows)
	for i, label := range labels {
		target[i] = classIdx[label]
	}

	gradW := make([][]float64, numClasses)
	for k := range gradW {
		gradW[k] = make([]float64, numFeatures)
	}
	gradB := make([]float64, numClasses)

	for iter := 0; iter < c.Iterations; iter++ {
		for k := range gradW {
			for j := range gradW[k] {
				gradW[k][j] = 0
			}
			gradB[k] = 0
		}

		for i, row := range rows {
			probs := c.softmax(row)
			for k := range probs {
				diff := probs[k]
				if k == target[i] {
					diff -= 1
				}
				for j, x := range row {
					if x != 0 {
						gradW[k][j] += diff * x
					}
				}
				gradB[k] += diff
			}
		}

		step := c.LearningRate / float64(numRows)
		for k := range c.Weights {
			for j := range c.Weights[k] {
				c.Weights[k][j] -= step * gradW[k][j]
			}
			c.Bias[k] -= step * gradB[k]
		}
	}

	return nil
}

// softmax returns the class probability distribution for one row.
func (c *Classifier) softmax(row []float64) []float64 {
	logits := make([]float64, len(c.Classes))
	maxLogit := math.Inf(-1)
	for k := range logits {
		var z float64
		weights := c.Weights[k]
		for j, x := range row {
			if x != 0 {
				z += weights[j] * x
			}
		}
		z += c.Bias[k]
		logits[k] = z
		if z > maxLogit {
			maxLogit = z
		}
	}

	var sum float64
	for k, z := range logits {
		logits[k] = math.Exp(z - maxLogit)
		sum += logits[k]
	}
	for k := range logits {
		logits[k] /= sum
	}
	return logits
}

// Predict returns the most probable class and the full probability map.
// Probability ties resolve to the alphabetically first class.
func (c *Classifier) Predict(row []float64) (string, map[string]float64) {
	probs := c.softmax(row)

	scores := make(map[string]float64, len(c.Classes))
	best := 0
	for k, p := range probs {
		scores[c.Classes[k]] = p
		if p > probs[best] {
			best = k
		}
	}

	return c.Classes[best], scores
}

// Accuracy scores the classifier against a held-out set.
func (c *Classifier) Accuracy(rows [][]float64, labels []string) float64 {
	if len(rows) == 0 {
		return 0
	}
	correct := 0
	for i, row := range rows {
		if label, _ := c.Predict(row); label == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows))
}

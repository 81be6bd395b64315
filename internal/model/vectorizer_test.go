//nolint:testpackage // White-box tests for vectorizer internals.
package model

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestVectorizer_Fit(t *testing.T) {
	docs := []string{
		"internet slow slow today",
		"billing overcharged internet",
		"outage internet area",
	}

	v := NewVectorizer(0)
	if err := v.Fit(docs); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Vocabulary columns are alphabetical.
	wantOrder := []string{"area", "billing", "internet", "outage", "overcharged", "slow", "today"}
	if v.Features() != len(wantOrder) {
		t.Fatalf("Features = %d, want %d", v.Features(), len(wantOrder))
	}
	for idx, term := range wantOrder {
		if got := v.Vocabulary[term]; got != idx {
			t.Errorf("Vocabulary[%q] = %d, want %d", term, got, idx)
		}
	}

	// internet appears in all 3 docs: idf = ln(4/4) + 1 = 1.
	if got := v.IDF[v.Vocabulary["internet"]]; math.Abs(got-1) > floatTolerance {
		t.Errorf("IDF(internet) = %v, want 1", got)
	}
	// slow appears in 1 doc: idf = ln(4/2) + 1.
	want := math.Log(2) + 1
	if got := v.IDF[v.Vocabulary["slow"]]; math.Abs(got-want) > floatTolerance {
		t.Errorf("IDF(slow) = %v, want %v", got, want)
	}
}

func TestVectorizer_FitErrors(t *testing.T) {
	v := NewVectorizer(0)
	if err := v.Fit(nil); err == nil {
		t.Error("Fit(nil) should fail")
	}
	if err := v.Fit([]string{"the and of", "a i"}); err == nil {
		t.Error("Fit with only stop words should fail")
	}
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	docs := []string{
		"alpha alpha alpha beta beta gamma",
		"alpha beta delta",
	}

	v := NewVectorizer(2)
	if err := v.Fit(docs); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if v.Features() != 2 {
		t.Fatalf("Features = %d, want 2", v.Features())
	}
	// alpha (4) and beta (3) survive; columns still alphabetical.
	if _, ok := v.Vocabulary["alpha"]; !ok {
		t.Error("alpha should be in vocabulary")
	}
	if _, ok := v.Vocabulary["beta"]; !ok {
		t.Error("beta should be in vocabulary")
	}
	if _, ok := v.Vocabulary["gamma"]; ok {
		t.Error("gamma should have been cut")
	}
}

func TestVectorizer_MaxFeaturesTieBreak(t *testing.T) {
	// zeta and apple both appear twice; apple wins the tie.
	docs := []string{"zeta apple", "apple zeta mango"}

	v := NewVectorizer(2)
	if err := v.Fit(docs); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if _, ok := v.Vocabulary["apple"]; !ok {
		t.Error("apple should survive the frequency tie")
	}
	if _, ok := v.Vocabulary["zeta"]; !ok {
		t.Error("zeta should survive the frequency tie")
	}
	if _, ok := v.Vocabulary["mango"]; ok {
		t.Error("mango should have been cut")
	}
}

func TestVectorizer_Transform(t *testing.T) {
	docs := []string{"internet slow", "billing internet"}

	v := NewVectorizer(0)
	if err := v.Fit(docs); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	vec := v.Transform("slow slow internet")

	// Vector is L2 normalized.
	var sumSquares float64
	for _, x := range vec {
		sumSquares += x * x
	}
	if math.Abs(sumSquares-1) > floatTolerance {
		t.Errorf("norm^2 = %v, want 1", sumSquares)
	}

	// slow has higher tf and higher idf than internet.
	if vec[v.Vocabulary["slow"]] <= vec[v.Vocabulary["internet"]] {
		t.Error("slow component should dominate internet component")
	}
	if vec[v.Vocabulary["billing"]] != 0 {
		t.Error("billing is absent from the document")
	}
}

func TestVectorizer_TransformUnknownTerms(t *testing.T) {
	v := NewVectorizer(0)
	if err := v.Fit([]string{"internet slow"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	vec := v.Transform("completely unrelated words")
	for idx, x := range vec {
		if x != 0 {
			t.Errorf("vec[%d] = %v, want zero vector", idx, x)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("the internet is so slow a b")
	want := []string{"internet", "slow"}

	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tokenize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

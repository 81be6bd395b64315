package model

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the artifacts directory.
const (
	vectorizerFile = "vectorizer.gob"
	classifierFile = "classifier.gob"
)

// ErrArtifactsMissing indicates the artifacts directory has no trained
// model. Callers should run the trainer before serving.
var ErrArtifactsMissing = errors.New("model artifacts not found, run the trainer first")

// Artifacts bundles the fitted vectorizer and classifier that together
// form one trained model version.
type Artifacts struct {
	Vectorizer *Vectorizer
	Classifier *Classifier
}

// Version returns the version stamp recorded at training time.
func (a *Artifacts) Version() string {
	if a.Classifier == nil {
		return ""
	}
	return a.Classifier.Version
}

// Save writes both artifacts to dir, creating it if needed. Each file is
// written to a temp name and renamed so a crash never leaves a half
// written artifact behind.
func (a *Artifacts) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}

	if err := writeGob(filepath.Join(dir, vectorizerFile), a.Vectorizer); err != nil {
		return fmt.Errorf("save vectorizer: %w", err)
	}
	if err := writeGob(filepath.Join(dir, classifierFile), a.Classifier); err != nil {
		return fmt.Errorf("save classifier: %w", err)
	}

	return nil
}

// Load reads both artifacts from dir. A missing file maps to
// ErrArtifactsMissing; a present but unreadable file is a hard error.
func Load(dir string) (*Artifacts, error) {
	var vec Vectorizer
	if err := readGob(filepath.Join(dir, vectorizerFile), &vec); err != nil {
		return nil, err
	}

	var clf Classifier
	if err := readGob(filepath.Join(dir, classifierFile), &clf); err != nil {
		return nil, err
	}

	return &Artifacts{Vectorizer: &vec, Classifier: &clf}, nil
}

func writeGob(path string, value any) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(f).Encode(value); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

func readGob(path string, value any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", filepath.Base(path), ErrArtifactsMissing)
		}
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(value); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}

	return nil
}

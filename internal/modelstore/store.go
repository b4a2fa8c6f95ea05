// Package modelstore is the persistence adapter for trained model artifacts.
// It isolates the pipeline from the storage format: artifacts are JSON files
// validated against the repository's JSON Schemas, and "artifact unavailable"
// is a first-class return value rather than an error the caller must catch.
package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jonathan/internship-matcher/internal/classifier"
	"github.com/jonathan/internship-matcher/internal/clusterer"
	"github.com/jonathan/internship-matcher/internal/schemas"
)

// Artifact file names inside the model directory.
const (
	ClassifierFile = "classifier.json"
	ClustererFile  = "clusterer.json"
)

// Store loads and saves the classifier and clusterer artifacts under one
// model directory. Artifacts are immutable once loaded; scoring runs never
// write through the store.
type Store struct {
	dir string
	log zerolog.Logger
}

// New creates a store rooted at dir. The directory does not need to exist
// yet; every missing artifact simply reports unavailable.
func New(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// LoadClassifier loads the persisted classifier artifact. The second return
// is false whenever the artifact is unavailable: file missing, unreadable,
// schema-invalid or malformed JSON. None of these conditions is a pipeline
// error; the classifier signal degrades to zero instead.
func (s *Store) LoadClassifier() (*classifier.Model, bool) {
	var model classifier.Model
	if !s.load(ClassifierFile, schemas.ClassifierSchema, &model) {
		return nil, false
	}
	if model.Weights == nil {
		model.Weights = map[string]float64{}
	}
	return &model, true
}

// LoadClusterer loads the persisted clusterer artifact. The second return is
// false whenever the artifact is unavailable; the pipeline then fits a fresh
// clustering on the current batch.
func (s *Store) LoadClusterer() (*clusterer.Model, bool) {
	var model clusterer.Model
	if !s.load(ClustererFile, schemas.ClustererSchema, &model) {
		return nil, false
	}
	return &model, true
}

// SaveClassifier persists a classifier artifact, creating the model
// directory if needed.
func (s *Store) SaveClassifier(model *classifier.Model) error {
	return s.save(ClassifierFile, model)
}

// SaveClusterer persists a clusterer artifact, creating the model directory
// if needed.
func (s *Store) SaveClusterer(model *clusterer.Model) error {
	return s.save(ClustererFile, model)
}

func (s *Store) load(name, schemaRel string, out any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug().Str("artifact", name).Msg("model artifact not persisted")
		} else {
			s.log.Warn().Err(err).Str("artifact", name).Msg("model artifact unreadable, treating as unavailable")
		}
		return false
	}

	if schemaPath := schemas.ResolveSchemaPath(schemaRel); schemaPath != "" {
		if err := schemas.ValidateJSON(data, schemaPath); err != nil {
			var loadErr *schemas.SchemaLoadError
			if errors.As(err, &loadErr) {
				// A broken schema file must not make a valid artifact
				// unavailable; fall through to plain decoding.
				s.log.Debug().Err(err).Str("artifact", name).Msg("schema unusable, skipping validation")
			} else {
				s.log.Warn().Err(err).Str("artifact", name).Msg("model artifact failed schema validation, treating as unavailable")
				return false
			}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn().Err(err).Str("artifact", name).Msg("model artifact corrupt, treating as unavailable")
		return false
	}
	return true
}

func (s *Store) save(name string, model any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}

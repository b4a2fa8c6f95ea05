package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/internship-matcher/internal/schemas"
)

var schemaFiles = []string{
	"classifier.schema.json",
	"clusterer.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			_, hasRequired := schemaObj["required"]
			assert.True(t, hasRequired, "artifact schemas must declare required fields")
		})
	}
}

func TestClassifierSchema_AcceptsValidArtifact(t *testing.T) {
	artifact := []byte(`{"bias": -0.5, "weights": {"python": 1.0, "sql": 0.25}}`)
	err := schemas.ValidateJSON(artifact, "classifier.schema.json")
	assert.NoError(t, err)
}

func TestClassifierSchema_RejectsUnknownFields(t *testing.T) {
	artifact := []byte(`{"bias": 0, "weights": {}, "version": 2}`)
	err := schemas.ValidateJSON(artifact, "classifier.schema.json")

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestClustererSchema_AcceptsValidArtifact(t *testing.T) {
	artifact := []byte(`{"centroids": [{"python": 0.8}, {"marketing": 0.9}]}`)
	err := schemas.ValidateJSON(artifact, "clusterer.schema.json")
	assert.NoError(t, err)
}

func TestClustererSchema_RejectsNonNumericWeights(t *testing.T) {
	artifact := []byte(`{"centroids": [{"python": "heavy"}]}`)
	err := schemas.ValidateJSON(artifact, "clusterer.schema.json")

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

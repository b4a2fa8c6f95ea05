package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24) for older toolchains: change
// into dir for the test and restore the prior working directory after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string"},
		"count": {"type": "integer"}
	}
}`

func TestValidateJSON_ValidDocument(t *testing.T) {
	schemaPath := writeSchema(t, testSchema)

	err := ValidateJSON([]byte(`{"name": "ok", "count": 3}`), schemaPath)
	assert.NoError(t, err)
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := writeSchema(t, testSchema)

	err := ValidateJSON([]byte(`{"count": 3}`), schemaPath)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeSchema(t, testSchema)

	err := ValidateJSON([]byte(`{"name": 42}`), schemaPath)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	err := ValidateJSON([]byte(`{}`), filepath.Join(t.TempDir(), "missing.schema.json"))

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSON_MalformedSchema(t *testing.T) {
	schemaPath := writeSchema(t, "{ not a schema")

	err := ValidateJSON([]byte(`{}`), schemaPath)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestResolveSchemaPath(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "schemas")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	target := filepath.Join(nested, "artifact.schema.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	chdir(t, dir)

	resolved := ResolveSchemaPath(filepath.Join("schemas", "artifact.schema.json"))
	assert.Equal(t, target, resolved)

	assert.Empty(t, ResolveSchemaPath(filepath.Join("schemas", "absent.schema.json")))
}

func TestResolveSchemaPathClimbsParents(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "schemas")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cmd", "tool"), 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))
	target := filepath.Join(nested, "artifact.schema.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	chdir(t, filepath.Join(dir, "cmd", "tool"))

	resolved := ResolveSchemaPath(filepath.Join("schemas", "artifact.schema.json"))
	assert.Equal(t, target, resolved)
}

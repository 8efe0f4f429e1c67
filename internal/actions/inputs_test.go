package actions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inputs.yaml")
	content := `url: http://127.0.0.1:8200
kv-version: 1
exportToken: true
extraHeaders:
secrets: |
  secret/ci key ;
  secret/ci other | OTHER
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	fallback := NewMapInputs(map[string]string{"token": "s.fallback", "url": "ignored"}, nil)
	inputs, err := LoadInputsFile(path, fallback)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8200", inputs.GetInput("url"))
	assert.Equal(t, "1", inputs.GetInput("kv-version"))
	assert.Equal(t, "true", inputs.GetInput("exportToken"))
	assert.Equal(t, "", inputs.GetInput("extraHeaders"))
	assert.Equal(t, "secret/ci key ;\nsecret/ci other | OTHER", inputs.GetInput("secrets"))
	assert.Equal(t, "s.fallback", inputs.GetInput("token"))
	assert.Equal(t, "", inputs.GetInput("namespace"))
}

func TestLoadInputsFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadInputsFile(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read inputs file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("url: [unclosed"), 0o600))
	_, err = LoadInputsFile(invalid, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")

	nested := filepath.Join(dir, "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("secrets:\n  a: b\n"), 0o600))
	_, err = LoadInputsFile(nested, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a scalar value")
}

func TestMapInputs_NameMatching(t *testing.T) {
	t.Parallel()

	inputs := NewMapInputs(map[string]string{"exportToken": " true "}, nil)

	assert.Equal(t, "true", inputs.GetInput("exporttoken"))
	assert.Equal(t, "true", inputs.GetInput("EXPORTTOKEN"))
	assert.Equal(t, "", inputs.GetInput("token"))
}

package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/classwrap/pkg/config"
)

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "classwrap.yaml", "rewrite:\n  helper: clsx\n  quote: single\n")

	out, err := execute(t, NewConfigCommand(&GlobalOptions{ConfigPath: cfgPath}), "show")
	require.NoError(t, err)

	assert.Contains(t, out, "helper: clsx")
	assert.Contains(t, out, "quote: single")
	assert.Contains(t, out, "import_source: classnames")
	assert.Contains(t, out, "- typescriptreact")
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "ok.yaml", "rewrite:\n  helper: cx\nlanguages: [typescriptreact]\n")
	badShape := writeFile(t, dir, "shape.yaml", "rewrite:\n  quote: backtick\n  colour: red\n")

	out, err := execute(t, NewConfigCommand(&GlobalOptions{}), "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = execute(t, NewConfigCommand(&GlobalOptions{}), "validate", badShape)
	require.ErrorIs(t, err, config.ErrSchemaViolation)
	assert.Contains(t, out, "quote")
	assert.Contains(t, out, "colour")
}

func TestConfigSchema(t *testing.T) {
	out, err := execute(t, NewConfigCommand(&GlobalOptions{}), "schema")
	require.NoError(t, err)

	var schema map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "classwrap configuration", schema["title"])
}

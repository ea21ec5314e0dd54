package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/bioalign/export"
	"github.com/c360studio/bioalign/session"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ttl", "b.ttl", "c.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "d.ttl"), []byte("x"), 0o644))

	inputs, err := expandInputs([]string{filepath.Join(dir, "**", "*.ttl")})
	require.NoError(t, err)
	assert.Len(t, inputs, 3)

	// Duplicates across patterns collapse.
	inputs, err = expandInputs([]string{
		filepath.Join(dir, "a.ttl"),
		filepath.Join(dir, "*.ttl"),
	})
	require.NoError(t, err)
	assert.Len(t, inputs, 2)

	_, err = expandInputs([]string{filepath.Join(dir, "missing.ttl")})
	assert.Error(t, err)
}

func TestResolveFormat(t *testing.T) {
	format, err := resolveFormat("jsonld", "out.ttl")
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSONLD, format, "explicit flag wins over extension")

	format, err = resolveFormat("", "out.sssom.tsv")
	require.NoError(t, err)
	assert.Equal(t, export.FormatSSSOM, format)

	format, err = resolveFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, export.FormatTurtle, format)

	_, err = resolveFormat("hdt", "")
	assert.Error(t, err)
}

func TestDerivedOutput(t *testing.T) {
	assert.Equal(t, "clinical_aligned.ttl", derivedOutput("clinical.ttl", export.FormatTurtle))
	assert.Equal(t, "data/schema_aligned.jsonld", derivedOutput("data/schema.yaml", export.FormatJSONLD))
	assert.Equal(t, "clinical_aligned.sssom.tsv", derivedOutput("clinical.ttl", export.FormatSSSOM))
}

func TestQueryKey(t *testing.T) {
	assert.Equal(t, "long_covid", queryKey("Long COVID"))
	assert.Equal(t, "post_exertional_malaise", queryKey("  post-exertional malaise! "))
}

func TestNewDecider(t *testing.T) {
	d, err := newDecider("", 3)
	require.NoError(t, err)
	assert.IsType(t, session.AutoDecider{}, d)

	d, err = newDecider("", 0)
	require.NoError(t, err)
	assert.IsType(t, &session.TerminalDecider{}, d)

	_, err = newDecider("/nonexistent/batch.json", 0)
	assert.Error(t, err)
}

func TestFormatsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newFormatsCommand()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "turtle")
	assert.Contains(t, out.String(), ".sssom.tsv")
}

func TestOntologiesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newOntologiesCommand()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "MONDO")
	assert.Contains(t, out.String(), "Recommended combinations")
	assert.Contains(t, out.String(), "MONDO,HP,NCIT")
}

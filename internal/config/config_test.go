package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "tree", cfg.ListingCommand)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.AnnotationsPath())
}

func TestLoadPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.yml"), "default:\n  a: b\n")
	writeFile(t, filepath.Join(root, FileName), strings.Join([]string{
		"annotations: notes.yml",
		"listing-command: /usr/local/bin/tree",
		"jobs: 2",
		"ignore:",
		"  - drafts/",
		"log-level: info",
	}, "\n"))
	t.Setenv("MDTREE_JOBS", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyLogLevel, DefaultLogLevel, "")
	flags.String(KeyLogFormat, DefaultLogFormat, "")
	require.NoError(t, flags.Parse([]string{"--log-format=json"}))

	cfg, err := Load(root, flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), cfg.File)
	assert.Equal(t, "/usr/local/bin/tree", cfg.ListingCommand)
	assert.Equal(t, 8, cfg.Jobs, "environment overrides the file")
	assert.Equal(t, "info", cfg.LogLevel, "unchanged flag does not override the file")
	assert.Equal(t, "json", cfg.LogFormat, "changed flag wins")
	assert.Equal(t, []string{"drafts/"}, cfg.Ignore)
	assert.Equal(t, filepath.Join(root, "notes.yml"), cfg.AnnotationsPath())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"jobs":       "jobs: 500\n",
		"log level":  "log-level: loud\n",
		"log format": "log-format: xml\n",
		"annotation": "annotations: missing.yml\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, FileName), content)
			_, err := Load(root, nil)
			require.Error(t, err)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	root := t.TempDir()
	data, err := Default().Marshal()
	require.NoError(t, err)
	writeFile(t, filepath.Join(root, FileName), string(data))

	cfg, err := Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, Default().ListingCommand, cfg.ListingCommand)
	assert.Equal(t, Default().Jobs, cfg.Jobs)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

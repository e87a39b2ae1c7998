package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	ResetEnv()

	os.Setenv("ACELERA_PROJECT", "test-project")
	os.Setenv("ACELERA_KIND", "technology")
	os.Setenv("ACELERA_STAGE", "2")
	os.Setenv("ACELERA_ACCELERATOR", "3")
	os.Setenv("ACELERA_ANALYSIS_URL", "http://testhost:9000/analyze")
	os.Setenv("ACELERA_TIMEOUT_SECONDS", "30")
	defer func() {
		os.Unsetenv("ACELERA_PROJECT")
		os.Unsetenv("ACELERA_KIND")
		os.Unsetenv("ACELERA_STAGE")
		os.Unsetenv("ACELERA_ACCELERATOR")
		os.Unsetenv("ACELERA_ANALYSIS_URL")
		os.Unsetenv("ACELERA_TIMEOUT_SECONDS")
		ResetEnv()
	}()

	env := Env()

	assert.Equal(t, "test-project", env.ProjectID)
	assert.Equal(t, "technology", env.Kind)
	assert.Equal(t, 2, env.Stage)
	assert.Equal(t, 3, env.Accelerator)
	assert.Equal(t, "http://testhost:9000/analyze", env.AnalysisURL)
	assert.Equal(t, 30, env.TimeoutSeconds)
}

func TestEnvDefaults(t *testing.T) {
	ResetEnv()
	defer ResetEnv()

	env := Env()

	assert.Equal(t, "pedagogical", env.Kind)
	assert.Equal(t, 1, env.Stage)
	assert.Equal(t, 1, env.Accelerator)
	assert.Equal(t, 120, env.TimeoutSeconds)
	assert.Equal(t, 3000, env.AutosaveMillis)
	assert.NotEmpty(t, env.AnalysisURL)
	assert.NotEmpty(t, env.QuestionsURL)
	assert.NotEmpty(t, env.SynthesisURL)
}

func TestEnvIgnoresMalformedInt(t *testing.T) {
	ResetEnv()
	os.Setenv("ACELERA_STAGE", "not-a-number")
	defer func() {
		os.Unsetenv("ACELERA_STAGE")
		ResetEnv()
	}()

	assert.Equal(t, 1, Env().Stage)
}

func TestGetPathsOverride(t *testing.T) {
	ResetPaths()
	dir := t.TempDir()
	os.Setenv("ACELERA_DATA_DIR", dir)
	defer func() {
		os.Unsetenv("ACELERA_DATA_DIR")
		ResetPaths()
	}()

	paths := GetPaths()

	assert.Equal(t, dir, paths.Home)
	assert.Equal(t, filepath.Join(dir, "data"), paths.Data)
	assert.Equal(t, filepath.Join(dir, "exports"), paths.Exports)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	assert.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

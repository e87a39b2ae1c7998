// Package config provides centralized configuration management.
// Keeps all environment lookups in one place instead of scattering
// os.Getenv calls across the codebase.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// AceleraEnv holds all acelera environment variables.
type AceleraEnv struct {
	// ProjectID is the default project identifier (ACELERA_PROJECT)
	ProjectID string

	// Kind is the default project kind (ACELERA_KIND)
	Kind string

	// Stage is the certification stage (ACELERA_STAGE)
	Stage int

	// Accelerator is the accelerator number within the stage (ACELERA_ACCELERATOR)
	Accelerator int

	// AnalysisURL is the rubric-scoring service endpoint (ACELERA_ANALYSIS_URL)
	AnalysisURL string

	// QuestionsURL is the question-generation service endpoint (ACELERA_QUESTIONS_URL)
	QuestionsURL string

	// SynthesisURL is the answer-synthesis service endpoint (ACELERA_SYNTHESIS_URL)
	SynthesisURL string

	// TimeoutSeconds bounds every remote call (ACELERA_TIMEOUT_SECONDS)
	TimeoutSeconds int

	// AutosaveMillis is the autosave debounce delay (ACELERA_AUTOSAVE_MS)
	AutosaveMillis int
}

var (
	env     *AceleraEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *AceleraEnv {
	envOnce.Do(func() {
		env = &AceleraEnv{
			ProjectID:      os.Getenv("ACELERA_PROJECT"),
			Kind:           getEnvDefault("ACELERA_KIND", "pedagogical"),
			Stage:          getEnvInt("ACELERA_STAGE", 1),
			Accelerator:    getEnvInt("ACELERA_ACCELERATOR", 1),
			AnalysisURL:    getEnvDefault("ACELERA_ANALYSIS_URL", "http://localhost:8090/api/analyze"),
			QuestionsURL:   getEnvDefault("ACELERA_QUESTIONS_URL", "http://localhost:8090/api/questions"),
			SynthesisURL:   getEnvDefault("ACELERA_SYNTHESIS_URL", "http://localhost:8090/api/synthesize"),
			TimeoutSeconds: getEnvInt("ACELERA_TIMEOUT_SECONDS", 120),
			AutosaveMillis: getEnvInt("ACELERA_AUTOSAVE_MS", 3000),
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Paths holds standard acelera directory paths.
type Paths struct {
	// Home is the acelera home directory (~/.acelera)
	Home string

	// Data is the data directory (~/.acelera/data)
	Data string

	// Exports is the deliverable export directory (~/.acelera/exports)
	Exports string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
// ACELERA_DATA_DIR overrides the default ~/.acelera root.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		root := os.Getenv("ACELERA_DATA_DIR")
		if root == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			root = filepath.Join(home, ".acelera")
		}

		paths = &Paths{
			Home:    root,
			Data:    filepath.Join(root, "data"),
			Exports: filepath.Join(root, "exports"),
		}
	})
	return paths
}

// ResetPaths resets the cached paths (for testing).
func ResetPaths() {
	pathsOnce = sync.Once{}
	paths = nil
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

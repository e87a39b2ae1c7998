package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joss/acelera/internal/config"
	"github.com/joss/acelera/internal/render"
	"github.com/joss/acelera/internal/rubric"
	"github.com/joss/acelera/internal/service"
	"github.com/joss/acelera/internal/store"
	"github.com/joss/acelera/internal/workflow"
)

// openStore opens the session database under the data directory.
func openStore() (*store.SQLiteStore, error) {
	paths := config.GetPaths()
	if err := config.EnsureDir(paths.Data); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return store.Open(filepath.Join(paths.Data, "acelera.db"))
}

// openEngine builds the workflow engine for the flags in effect and loads
// the session. The caller must Close the returned store.
func openEngine(ctx context.Context) (*workflow.Engine, *store.SQLiteStore, error) {
	if projectFlag == "" {
		return nil, nil, fmt.Errorf("no project: set --project or ACELERA_PROJECT")
	}

	v, err := rubric.Get(kindFlag)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	eng := workflow.NewEngine(v, st, service.NewClient())
	if err := eng.Load(ctx, projectFlag, stageFlag, acceleratorFlag); err != nil {
		st.Close()
		return nil, nil, err
	}
	return eng, st, nil
}

// exitOnError prints the error and exits.
func exitOnError(err error) {
	render.Stderr().Println("Error: %v", err)
	os.Exit(1)
}

package cmd

import (
	"fmt"

	"github.com/abhisek/texdrill/internal/app"
	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads the profile, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	catalog, err := quiz.Builtin()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	snapRepo := st.SnapshotRepo()
	p, err := profile.Load(ctx, snapRepo)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	return app.Run(p, catalog, snapRepo)
}

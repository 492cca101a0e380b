package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/texdrill/internal/cloud"
	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/store"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync progress with the cloud",
	Long:  "Push or pull the profile to the sync server configured via TEXDRILL_SYNC_URL and TEXDRILL_SYNC_KEY.",
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cloud.FromEnv()
		if err != nil {
			return err
		}

		p, st, err := loadLocalProfile(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		catalog, err := quiz.Builtin()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		data := p.Data(catalog)
		if err := client.Push(cmd.Context(), &data); err != nil {
			return fmt.Errorf("push profile: %w", err)
		}
		fmt.Println("Profile uploaded.")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download and overwrite local progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cloud.FromEnv()
		if err != nil {
			return err
		}

		p, st, err := loadLocalProfile(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		data, err := client.Pull(cmd.Context())
		if errors.Is(err, cloud.ErrNotFound) {
			fmt.Println("No remote profile yet. Run 'texdrill sync push' first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("pull profile: %w", err)
		}

		catalog, err := quiz.Builtin()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		p.Apply(data)
		if err := p.Save(cmd.Context(), st.SnapshotRepo(), catalog); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		fmt.Println("Profile downloaded.")
		return nil
	},
}

func loadLocalProfile(cmd *cobra.Command) (*profile.Profile, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	p, err := profile.Load(cmd.Context(), st.SnapshotRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}
	return p, st, nil
}

func init() {
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
}

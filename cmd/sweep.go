package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyops/skycoord/config"
	"github.com/skyops/skycoord/core/conflict"
	"github.com/skyops/skycoord/core/store"
	"github.com/skyops/skycoord/infra/snapshot"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a one-shot conflict sweep over all open missions",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func loadStore(cfgPath string) (*store.Store, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	persister, err := snapshot.New(cfg.Store.SnapshotPath)
	if err != nil {
		return nil, err
	}
	st := store.New(persister)
	snap, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := st.LoadSnapshot(snap); err != nil {
		return nil, err
	}
	return st, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cfgPath)
	if err != nil {
		return err
	}
	grouped := conflict.GroupBySeverity(conflict.New(st).DetectAll())
	out, err := json.MarshalIndent(grouped, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

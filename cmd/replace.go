package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyops/skycoord/core/rank"
	"github.com/skyops/skycoord/infra/logger"
)

var replaceUrgency string

var replaceCmd = &cobra.Command{
	Use:   "replace <mission-id>",
	Short: "Rank replacement pilots for a mission",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplace,
}

func init() {
	replaceCmd.Flags().StringVar(&replaceUrgency, "urgency", "normal", "urgency level (low, normal, high, critical)")
	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	urgency, err := rank.ParseUrgency(replaceUrgency)
	if err != nil {
		return err
	}
	st, err := loadStore(cfgPath)
	if err != nil {
		return err
	}
	ranker, err := rank.New(st, logger.New("replace-command"))
	if err != nil {
		return err
	}
	report, err := ranker.FindReplacement(args[0], urgency)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

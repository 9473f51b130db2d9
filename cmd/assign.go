package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyops/skycoord/core/assign"
	"github.com/skyops/skycoord/core/conflict"
	"github.com/skyops/skycoord/infra/logger"
)

var (
	assignPilotID string
	assignDroneID string
	assignForce   bool
)

var assignCmd = &cobra.Command{
	Use:   "assign <mission-id>",
	Short: "Assign a pilot and/or drone to a mission",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignPilotID, "pilot", "", "pilot to assign")
	assignCmd.Flags().StringVar(&assignDroneID, "drone", "", "drone to assign")
	assignCmd.Flags().BoolVar(&assignForce, "force", false, "assign despite critical conflicts")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	missionID := args[0]
	if assignPilotID == "" && assignDroneID == "" {
		return fmt.Errorf("nothing to assign: set --pilot and/or --drone")
	}
	st, err := loadStore(cfgPath)
	if err != nil {
		return err
	}

	engine := conflict.New(st)
	if !assignForce {
		var found []conflict.Conflict
		if assignPilotID != "" {
			found = append(found, engine.CheckPilot(assignPilotID, missionID)...)
		}
		if assignDroneID != "" {
			found = append(found, engine.CheckDrone(assignDroneID, missionID)...)
		}
		if conflict.HasCritical(found) {
			out, err := json.MarshalIndent(conflict.GroupBySeverity(found), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return fmt.Errorf("critical conflicts detected, use --force to override")
		}
	}

	coordinator, err := assign.New(st, logger.New("assign-command"))
	if err != nil {
		return err
	}
	if assignPilotID != "" {
		res := coordinator.AssignPilot(assignPilotID, missionID)
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		if !res.Success {
			return fmt.Errorf("pilot assignment refused")
		}
	}
	if assignDroneID != "" {
		res := coordinator.AssignDrone(assignDroneID, missionID)
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		if !res.Success {
			return fmt.Errorf("drone assignment refused")
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/loguefx/Steam-APK/internal/i18n"
)

var launchSafe bool

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Prepare launches and report session outcomes",
}

var launchPrepareCmd = &cobra.Command{
	Use:   "prepare <game-id>",
	Short: "Resolve and validate the launch profile for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		gameID := args[0]

		if launchSafe {
			a.monitor.SetUseSafeNextRun(gameID)
		}

		result, validation := a.coordinator.PrepareLaunch(gameID)

		fmt.Printf(i18n.T("cmd.launch.prepare.profile")+"\n", result.ResolvedProfileID, result.Profile.Name)
		if result.FallbackReason != "" {
			fmt.Printf(i18n.T("cmd.launch.prepare.fallback")+"\n", result.FallbackReason)
		}
		if validation.Message != "" {
			fmt.Printf(i18n.T("cmd.launch.prepare.validation")+"\n", validation.Message)
		}

		if len(result.ComponentPaths) > 0 {
			fmt.Println(i18n.T("cmd.launch.prepare.components"))
			types := make([]string, 0, len(result.ComponentPaths))
			for t := range result.ComponentPaths {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Printf("  %s: %s\n", t, result.ComponentPaths[t])
			}
		}

		fmt.Println(i18n.T("cmd.launch.prepare.env"))
		keys := make([]string, 0, len(result.Env))
		for k := range result.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s=%s\n", k, result.Env[k])
		}
		return nil
	},
}

var launchExitCmd = &cobra.Command{
	Use:   "exit <exit-code>",
	Short: "Report that the running game exited with the given code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%s: %q", i18n.T("cmd.launch.exit.badCode"), args[0])
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		a.coordinator.OnGameExit(code)
		fmt.Println(i18n.T("cmd.launch.exit.recorded"))
		return nil
	},
}

var launchAbortCmd = &cobra.Command{
	Use:   "abort",
	Short: "Discard the pending launch without recording a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.coordinator.OnLaunchAborted()
		fmt.Println(i18n.T("cmd.launch.abort.done"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.AddCommand(launchPrepareCmd)
	launchCmd.AddCommand(launchExitCmd)
	launchCmd.AddCommand(launchAbortCmd)

	launchPrepareCmd.Flags().BoolVar(&launchSafe, "safe", false, "force the Safe profile for this launch")
}

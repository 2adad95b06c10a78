package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/loguefx/Steam-APK/internal/i18n"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect recorded game sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list <game-id>",
	Short: "List recorded sessions for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sessions := a.monitor.ListSessions(args[0])
		if len(sessions) == 0 {
			fmt.Println(i18n.T("cmd.session.list.none"))
			return nil
		}
		for _, s := range sessions {
			ended := time.UnixMilli(s.EndedAt).Format("2006-01-02 15:04:05")
			fmt.Printf("  %s  %-7s  %4ds  %s\n", ended, s.ExitReason, s.RuntimeSeconds, s.ProfileID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loguefx/Steam-APK/internal/i18n"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and manage launch profiles and per-game tier state",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.store.EnsureDefaultSafeProfile()
		ids := a.store.ListProfileIDs()
		if len(ids) == 0 {
			fmt.Println(i18n.T("cmd.profile.list.none"))
			return nil
		}
		for _, id := range ids {
			p, err := a.store.LoadProfile(id)
			if err != nil {
				fmt.Printf("  %s  (%s)\n", id, i18n.T("cmd.profile.list.unreadable"))
				continue
			}
			fmt.Printf("  %s  %s [%s]\n", p.ID, p.Name, p.Source)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <profile-id>",
	Short: "Show a profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		p, err := a.store.LoadProfile(args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var profilePinCmd = &cobra.Command{
	Use:   "pin <game-id>",
	Short: "Pin a game to its last-known-good profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.store.GetOrCreateGameState(args[0], defaultSafeID())
		a.store.SetPinned(args[0], true)
		fmt.Printf(i18n.T("cmd.profile.pin.done")+"\n", args[0])
		return nil
	},
}

var profileUnpinCmd = &cobra.Command{
	Use:   "unpin <game-id>",
	Short: "Remove the pin so future launches may use candidates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.store.SetPinned(args[0], false)
		fmt.Printf(i18n.T("cmd.profile.unpin.done")+"\n", args[0])
		return nil
	},
}

var profileRollbackCmd = &cobra.Command{
	Use:   "rollback <game-id>",
	Short: "Roll a game back to its previous last-known-good profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.store.RollbackToPreviousLkg(args[0])
		state, err := a.store.LoadGameState(args[0])
		if err != nil {
			return err
		}
		fmt.Printf(i18n.T("cmd.profile.rollback.done")+"\n", args[0], state.LkgProfileID)
		return nil
	},
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history <game-id>",
	Short: "Show a game's tier pointers and promotion history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		state, err := a.store.LoadGameState(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("  safe:      %s\n", state.SafeProfileID)
		fmt.Printf("  candidate: %s\n", orNone(state.CandidateProfileID))
		fmt.Printf("  lkg:       %s\n", orNone(state.LkgProfileID))
		fmt.Printf("  pinned:    %v\n", state.Pinned)
		fmt.Println(i18n.T("cmd.profile.history.header"))
		for i, id := range state.History {
			fmt.Printf("  %2d. %s\n", i+1, id)
		}
		return nil
	},
}

func orNone(id string) string {
	if id == "" {
		return "(none)"
	}
	return id
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profilePinCmd)
	profileCmd.AddCommand(profileUnpinCmd)
	profileCmd.AddCommand(profileRollbackCmd)
	profileCmd.AddCommand(profileHistoryCmd)
}

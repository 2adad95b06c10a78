package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/loguefx/Steam-APK/internal/errors"
	"github.com/loguefx/Steam-APK/internal/i18n"
	"github.com/loguefx/Steam-APK/pkg/models"
)

var componentTypes = []string{
	models.ComponentCompatLayer,
	models.ComponentGPUDriver,
	models.ComponentTranslator,
}

var componentCmd = &cobra.Command{
	Use:   "component",
	Short: "Manage installed runtime components",
	Long: `Manage the installed runtime components profiles refer to:
compatibility layers, GPU drivers and instruction translators. Each
component is a directory holding a manifest.json with its identity,
version and device constraints.`,
}

var componentInstallCmd = &cobra.Command{
	Use:   "install <manifest.json>",
	Short: "Register a component from its manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return apperrors.IO(err, "COMPONENT_READ", i18n.T("cmd.component.install.errRead"))
		}
		var manifest models.ComponentManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return apperrors.Parse(err, "COMPONENT_PARSE", i18n.T("cmd.component.install.errParse"))
		}
		if err := a.registry.Install(&manifest); err != nil {
			return err
		}
		fmt.Printf(i18n.T("cmd.component.install.done")+"\n", manifest.Type, manifest.ID)
		return nil
	},
}

var componentListCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List installed components",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		types := componentTypes
		if len(args) == 1 {
			types = []string{args[0]}
		}
		empty := true
		for _, t := range types {
			ids := a.registry.ListInstalled(t)
			if len(ids) == 0 {
				continue
			}
			empty = false
			fmt.Printf("%s:\n", t)
			for _, id := range ids {
				if m, err := a.registry.Manifest(t, id); err == nil {
					fmt.Printf("  %s  %s (%s)\n", id, m.Version, m.Channel)
				} else {
					fmt.Printf("  %s  (%s)\n", id, i18n.T("cmd.component.list.unreadable"))
				}
			}
		}
		if empty {
			fmt.Println(i18n.T("cmd.component.list.none"))
		}
		return nil
	},
}

var componentShowCmd = &cobra.Command{
	Use:   "show <type> <id>",
	Short: "Show a component manifest as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		m, err := a.registry.Manifest(args[0], args[1])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var componentRemoveCmd = &cobra.Command{
	Use:   "remove <type> <id>",
	Short: "Remove an installed component",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.registry.Remove(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf(i18n.T("cmd.component.remove.done")+"\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(componentCmd)
	componentCmd.AddCommand(componentInstallCmd)
	componentCmd.AddCommand(componentListCmd)
	componentCmd.AddCommand(componentShowCmd)
	componentCmd.AddCommand(componentRemoveCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loguefx/Steam-APK/internal/config"
	"github.com/loguefx/Steam-APK/internal/i18n"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented configuration template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "gamehub.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf(i18n.T("cmd.init.exists"), path)
		}
		if err := config.SaveTemplate(path); err != nil {
			return err
		}
		fmt.Printf(i18n.T("cmd.init.done")+"\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}

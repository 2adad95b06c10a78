package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loguefx/Steam-APK/internal/i18n"
	"github.com/loguefx/Steam-APK/internal/version"
	"github.com/loguefx/Steam-APK/pkg/utils"
)

var (
	cfgFile string
	lang    string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "gamehub",
	Short: "GameHub CLI - self-healing launch profiles for translated games",
	Long: `GameHub CLI manages launch configuration profiles for games running
through a compatibility translation stack. It resolves the profile for each
launch (Safe, Candidate or last-known-good), validates it against the device,
applies remote configuration packs as candidates, and promotes or rolls back
based on how each session ends.`,
	Version: version.Short(),
}

func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	if err := i18n.Init(lang); err != nil {
		return err
	}
	applyCommandLocalization()

	level := utils.LogLevelInfo
	if verbose {
		level = utils.LogLevelDebug
	}
	utils.InitGlobalLogger(&utils.LoggerConfig{
		Level:       level,
		Output:      os.Stderr,
		EnableColor: !noColor,
	})
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "interface language (en, zh)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/loguefx/Steam-APK/internal/errors"
	"github.com/loguefx/Steam-APK/internal/i18n"
	"github.com/loguefx/Steam-APK/pkg/pack"
)

var (
	packURL      string
	packGameID   string
	packExeHash  string
	packPruneMax int
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Download, verify and apply remote configuration packs",
}

var packDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Fetch a configuration pack into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		url := packURL
		if url == "" {
			url = a.cfg.Packs.BaseURL
		}
		packID, err := a.packs.DownloadPack(url)
		if err != nil {
			return fmt.Errorf("%s: %w", i18n.T("cmd.pack.download.err"), err)
		}
		fmt.Printf(i18n.T("cmd.pack.download.done")+"\n", packID)
		return nil
	},
}

var packListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached packs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ids := a.packs.ListCachedPackIDs()
		if len(ids) == 0 {
			fmt.Println(i18n.T("cmd.pack.list.none"))
			return nil
		}
		for _, id := range ids {
			p, err := a.packs.LoadCachedPack(id)
			if err != nil {
				fmt.Printf("  %s  (%s)\n", id, i18n.T("cmd.pack.list.unreadable"))
				continue
			}
			created := time.UnixMilli(p.CreatedAt).Format("2006-01-02 15:04")
			fmt.Printf("  %s  %s  rules=%d profiles=%d\n", id, created, len(p.Rules), len(p.Profiles))
		}
		return nil
	},
}

var packVerifyCmd = &cobra.Command{
	Use:   "verify <pack-id>",
	Short: "Verify the checksum of a cached pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ok, err := a.packs.VerifyPackChecksum(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ChecksumMismatch("PACK_CHECKSUM", i18n.T("cmd.pack.verify.mismatch"))
		}
		fmt.Printf(i18n.T("cmd.pack.verify.ok")+"\n", args[0])
		return nil
	},
}

var packApplyCmd = &cobra.Command{
	Use:   "apply <pack-id>",
	Short: "Stage a cached pack's matched profiles as candidates",
	Long: `Stage matched profiles from a cached pack as launch candidates.
Without --game every known game is matched; with --game only that game is,
and --exe-sha256 may supply the executable hash for hash-scoped rules.
A pack that fails checksum verification is never applied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		packID := args[0]

		ok, err := a.packs.VerifyPackChecksum(packID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ChecksumMismatch("PACK_CHECKSUM", i18n.T("cmd.pack.verify.mismatch"))
		}

		p, err := a.packs.LoadCachedPack(packID)
		if err != nil {
			return err
		}

		if packGameID != "" {
			if a.packs.ApplyPackAsCandidateForGame(p, packGameID, packExeHash, a.store, a.device) {
				fmt.Printf(i18n.T("cmd.pack.apply.game")+"\n", packGameID)
			} else {
				fmt.Printf(i18n.T("cmd.pack.apply.noMatch")+"\n", packGameID)
			}
			return nil
		}

		applied := a.packs.ApplyPackAsCandidateForAllGames(cmd.Context(), p, a.store, a.device)
		fmt.Printf(i18n.T("cmd.pack.apply.all")+"\n", applied)
		return nil
	},
}

var packPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest cached packs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		max := packPruneMax
		if max <= 0 {
			max = pack.DefaultMaxCachedPacks
		}
		a.packs.PruneToMaxPacks(max)
		fmt.Printf(i18n.T("cmd.pack.prune.done")+"\n", max)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.AddCommand(packDownloadCmd)
	packCmd.AddCommand(packListCmd)
	packCmd.AddCommand(packVerifyCmd)
	packCmd.AddCommand(packApplyCmd)
	packCmd.AddCommand(packPruneCmd)

	packDownloadCmd.Flags().StringVar(&packURL, "url", "", "pack base URL (defaults to packs.base_url from config)")
	packApplyCmd.Flags().StringVar(&packGameID, "game", "", "apply to a single game id")
	packApplyCmd.Flags().StringVar(&packExeHash, "exe-sha256", "", "executable hash for hash-scoped rules (with --game)")
	packPruneCmd.Flags().IntVar(&packPruneMax, "max", pack.DefaultMaxCachedPacks, "number of packs to keep")
}

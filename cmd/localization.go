package cmd

import "github.com/loguefx/Steam-APK/internal/i18n"

// applyCommandLocalization updates command and flag descriptions after i18n is initialized.
func applyCommandLocalization() {
	rootCmd.Short = i18n.T("cmd.root.short")
	rootCmd.Long = i18n.T("cmd.root.long")

	for name, key := range map[string]string{
		"config":   "flags.config",
		"lang":     "flags.lang",
		"verbose":  "flags.verbose",
		"no-color": "flags.noColor",
	} {
		if flag := rootCmd.PersistentFlags().Lookup(name); flag != nil {
			flag.Usage = i18n.T(key)
		}
	}

	launchCmd.Short = i18n.T("cmd.launch.short")
	launchPrepareCmd.Short = i18n.T("cmd.launch.prepare.short")
	launchExitCmd.Short = i18n.T("cmd.launch.exit.short")
	launchAbortCmd.Short = i18n.T("cmd.launch.abort.short")

	profileCmd.Short = i18n.T("cmd.profile.short")
	profileListCmd.Short = i18n.T("cmd.profile.list.short")
	profileShowCmd.Short = i18n.T("cmd.profile.show.short")
	profilePinCmd.Short = i18n.T("cmd.profile.pin.short")
	profileUnpinCmd.Short = i18n.T("cmd.profile.unpin.short")
	profileRollbackCmd.Short = i18n.T("cmd.profile.rollback.short")
	profileHistoryCmd.Short = i18n.T("cmd.profile.history.short")

	packCmd.Short = i18n.T("cmd.pack.short")
	packDownloadCmd.Short = i18n.T("cmd.pack.download.short")
	packListCmd.Short = i18n.T("cmd.pack.list.short")
	packVerifyCmd.Short = i18n.T("cmd.pack.verify.short")
	packApplyCmd.Short = i18n.T("cmd.pack.apply.short")
	packPruneCmd.Short = i18n.T("cmd.pack.prune.short")

	componentCmd.Short = i18n.T("cmd.component.short")
	componentInstallCmd.Short = i18n.T("cmd.component.install.short")
	componentListCmd.Short = i18n.T("cmd.component.list.short")
	componentShowCmd.Short = i18n.T("cmd.component.show.short")
	componentRemoveCmd.Short = i18n.T("cmd.component.remove.short")

	deviceCmd.Short = i18n.T("cmd.device.short")
	sessionCmd.Short = i18n.T("cmd.session.short")
	sessionListCmd.Short = i18n.T("cmd.session.list.short")
	versionCmd.Short = i18n.T("cmd.version.short")
	initCmd.Short = i18n.T("cmd.init.short")
}

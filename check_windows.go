//go:build windows

package main

import (
	"os"

	"wemdiag/internal/checker"
	"wemdiag/internal/config"
	"wemdiag/internal/evtlog"
	"wemdiag/internal/report"
	"wemdiag/internal/windowsapi"
)

// runCheck wires the checker to the live registry and event log.
func runCheck(cfg *config.AppConfig) error {
	printer := report.New(os.Stdout, cfg.Report)
	if cfg.Report.HostSummary {
		printer.HostSummary()
	}

	chk := checker.New(
		cfg.Check,
		windowsapi.RegistryFlagReader{Path: cfg.Check.RegistryPath, Value: cfg.Check.RegistryValue},
		evtlog.ChannelSource{},
		printer,
	)
	return chk.Run()
}

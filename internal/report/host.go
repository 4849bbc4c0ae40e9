package report

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// HostSummary prints a one-line header identifying the machine the check ran
// on. The summary is best effort; if host information is unavailable the
// check proceeds without it.
func (p *Printer) HostSummary() {
	info, err := host.Info()
	if err != nil {
		return
	}
	fmt.Fprintln(p.w, formatHostSummary(info))
	fmt.Fprintln(p.w)
}

func formatHostSummary(info *host.InfoStat) string {
	return fmt.Sprintf("Host: %s (%s %s, build %s)",
		info.Hostname, info.Platform, info.PlatformVersion, info.KernelVersion)
}

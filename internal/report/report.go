// Package report renders the user-facing console output of the check.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"wemdiag/internal/config"
	"wemdiag/internal/evtlog"
)

const (
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

const timeLayout = "2006-01-02 15:04:05"

// Printer writes the check result to a console.
type Printer struct {
	w        io.Writer
	color    bool
	truncate int
}

// New creates a Printer writing to w.
func New(w io.Writer, cfg config.ReportConfig) *Printer {
	return &Printer{
		w:        w,
		color:    cfg.Color,
		truncate: cfg.TruncateMessage,
	}
}

func (p *Printer) warnf(format string, args ...any) {
	if p.color {
		fmt.Fprintf(p.w, ansiYellow+format+ansiReset+"\n", args...)
	} else {
		fmt.Fprintf(p.w, format+"\n", args...)
	}
}

func (p *Printer) okf(format string, args ...any) {
	if p.color {
		fmt.Fprintf(p.w, ansiGreen+format+ansiReset+"\n", args...)
	} else {
		fmt.Fprintf(p.w, format+"\n", args...)
	}
}

// Undetermined reports that the debug mode flag could not be read at all.
func (p *Printer) Undetermined(path, value string) {
	p.warnf("WARNING: Unable to determine the WEM broker service debug mode state.")
	fmt.Fprintf(p.w, `The registry value HKLM\%s\%s could not be read.`+"\n", path, value)
	fmt.Fprintln(p.w, "Check that the WEM infrastructure services are installed on this host.")
}

// Disabled reports that debug mode is off and prints the remediation steps.
func (p *Printer) Disabled(value uint64) {
	p.warnf("WARNING: WEM broker service debug mode is currently DISABLED (BrokerServiceDebugMode=%d).", value)
	fmt.Fprintln(p.w, `
To enable debug logging:
  1. Launch the WEM Infrastructure Service Configuration utility on the WEM server.
  2. Open the "Advanced Settings" tab.
  3. Tick "Enable debug mode" and save the configuration.
  4. Restart the Norskale Infrastructure Service so the change takes effect.`)
}

// Enabled reports that debug mode is on.
func (p *Printer) Enabled() {
	p.okf("WEM broker service debug mode is enabled (BrokerServiceDebugMode=1).")
}

// Events prints the matched licensing entries as a table, newest first, or a
// notice when nothing matched.
func (p *Printer) Events(logName string, records []evtlog.Record) {
	if len(records) == 0 {
		fmt.Fprintf(p.w, "No licensing activation entries were found in the %q event log.\n", logName)
		return
	}

	fmt.Fprintf(p.w, "Most recent licensing activation entries from the %q event log:\n\n", logName)

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tID\tLEVEL\tMESSAGE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			r.Time.Local().Format(timeLayout), r.ID, r.Level, p.truncated(r.Message))
	}
	tw.Flush()
}

func (p *Printer) truncated(msg string) string {
	if p.truncate > 0 && len(msg) > p.truncate {
		return msg[:p.truncate] + "..."
	}
	return msg
}

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"wemdiag/internal/config"
	"wemdiag/internal/evtlog"

	"github.com/shirou/gopsutil/v3/host"
)

func hostInfoFixture() *host.InfoStat {
	return &host.InfoStat{
		Hostname:        "WEMSRV01",
		Platform:        "Microsoft Windows Server 2019 Standard",
		PlatformVersion: "10.0.17763",
		KernelVersion:   "10.0.17763.5576 Build 17763.5576",
	}
}

func newTestPrinter(cfg config.ReportConfig) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, cfg), &buf
}

func TestDisabled(t *testing.T) {
	p, buf := newTestPrinter(config.ReportConfig{Color: false})
	p.Disabled(0)
	out := buf.String()

	if !strings.Contains(out, "DISABLED (BrokerServiceDebugMode=0)") {
		t.Errorf("Missing disabled status line:\n%s", out)
	}
	for _, step := range []string{
		"1. Launch the WEM Infrastructure Service Configuration utility",
		"2. Open the \"Advanced Settings\" tab",
		"3. Tick \"Enable debug mode\"",
		"4. Restart the Norskale Infrastructure Service",
	} {
		if !strings.Contains(out, step) {
			t.Errorf("Missing remediation step %q:\n%s", step, out)
		}
	}
}

func TestUndetermined(t *testing.T) {
	p, buf := newTestPrinter(config.ReportConfig{Color: false})
	p.Undetermined(`SYSTEM\CurrentControlSet\Control\Norskale\Infrastructure Services`, "BrokerServiceDebugMode")
	out := buf.String()

	if !strings.Contains(out, "Unable to determine") {
		t.Errorf("Missing undetermined warning:\n%s", out)
	}
	if !strings.Contains(out, `HKLM\SYSTEM\CurrentControlSet\Control\Norskale\Infrastructure Services\BrokerServiceDebugMode`) {
		t.Errorf("Missing full registry path:\n%s", out)
	}
}

func TestEnabledColor(t *testing.T) {
	t.Run("with color", func(t *testing.T) {
		p, buf := newTestPrinter(config.ReportConfig{Color: true})
		p.Enabled()
		if !strings.Contains(buf.String(), "\x1b[32m") {
			t.Error("Expected green escape code in colored output")
		}
	})

	t.Run("without color", func(t *testing.T) {
		p, buf := newTestPrinter(config.ReportConfig{Color: false})
		p.Enabled()
		if strings.Contains(buf.String(), "\x1b[") {
			t.Error("Unexpected escape code in plain output")
		}
	})
}

func TestEvents(t *testing.T) {
	records := []evtlog.Record{
		{
			Time:    time.Date(2024, 3, 10, 11, 42, 17, 0, time.UTC),
			ID:      0,
			Level:   "Information",
			Message: "LICENSING: LS indicates WEM is LAS Activated. License server check succeeded.",
		},
		{
			Time:    time.Date(2024, 3, 10, 10, 2, 1, 0, time.UTC),
			ID:      0,
			Level:   "Information",
			Message: "LICENSING: LS indicates WEM is LAS Activated.",
		},
	}

	t.Run("prints a table of entries", func(t *testing.T) {
		p, buf := newTestPrinter(config.ReportConfig{Color: false})
		p.Events("WEM Infrastructure Service", records)
		out := buf.String()

		for _, want := range []string{"TIME", "ID", "LEVEL", "MESSAGE", "Information", "LAS Activated"} {
			if !strings.Contains(out, want) {
				t.Errorf("Missing %q in table output:\n%s", want, out)
			}
		}
	})

	t.Run("empty result prints a notice, not a table", func(t *testing.T) {
		p, buf := newTestPrinter(config.ReportConfig{Color: false})
		p.Events("WEM Infrastructure Service", nil)
		out := buf.String()

		if !strings.Contains(out, "No licensing activation entries") {
			t.Errorf("Missing empty-result notice:\n%s", out)
		}
		if strings.Contains(out, "TIME") {
			t.Errorf("Unexpected table header for empty result:\n%s", out)
		}
	})

	t.Run("long messages are truncated when configured", func(t *testing.T) {
		p, buf := newTestPrinter(config.ReportConfig{Color: false, TruncateMessage: 20})
		p.Events("WEM Infrastructure Service", records)
		out := buf.String()

		if !strings.Contains(out, "LICENSING: LS indica...") {
			t.Errorf("Expected truncated message:\n%s", out)
		}
		if strings.Contains(out, "License server check succeeded") {
			t.Errorf("Message was not truncated:\n%s", out)
		}
	})
}

func TestFormatHostSummary(t *testing.T) {
	// Exercises the formatting only; live host info is environment-dependent.
	summary := formatHostSummary(hostInfoFixture())
	for _, want := range []string{"WEMSRV01", "Microsoft Windows Server 2019", "17763"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Missing %q in host summary %q", want, summary)
		}
	}
}

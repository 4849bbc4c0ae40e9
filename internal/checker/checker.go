// Package checker decides whether WEM broker debug logging is enabled and,
// when it is, pulls the most recent licensing activation events.
package checker

import (
	"errors"
	"fmt"

	"wemdiag/internal/config"
	"wemdiag/internal/evtlog"
	"wemdiag/internal/logger"
	"wemdiag/internal/report"

	"github.com/phuslu/log"
)

// DebugModeEnabled is the flag value the broker service treats as debug on.
// Any other value, including an unreadable one, counts as disabled.
const DebugModeEnabled = 1

// FlagReader reads the debug mode flag from wherever the service keeps it.
type FlagReader interface {
	ReadFlag() (uint64, error)
}

// EventSource retrieves all records from a named event log.
type EventSource interface {
	Query(logName string) ([]evtlog.Record, error)
}

// RegistryReadError wraps a failure to read the debug mode flag. The run
// treats it as a terminal informational outcome with its own warning, not as
// a program failure.
type RegistryReadError struct {
	Path  string
	Value string
	Err   error
}

func (e *RegistryReadError) Error() string {
	return fmt.Sprintf(`read registry value HKLM\%s\%s: %v`, e.Path, e.Value, e.Err)
}

func (e *RegistryReadError) Unwrap() error { return e.Err }

// LogQueryError wraps a failure to read the event log. Unlike a registry read
// failure this one is fatal for the invocation.
type LogQueryError struct {
	Log string
	Err error
}

func (e *LogQueryError) Error() string {
	return fmt.Sprintf("query event log %q: %v", e.Log, e.Err)
}

func (e *LogQueryError) Unwrap() error { return e.Err }

// Checker runs the debug mode diagnostic: one registry read, then either a
// remediation notice or an event log query, never both.
type Checker struct {
	cfg     config.CheckConfig
	flags   FlagReader
	events  EventSource
	printer *report.Printer
	log     log.Logger
}

// New creates a Checker with explicit collaborators so the decision logic can
// be exercised without a live registry or event log.
func New(cfg config.CheckConfig, flags FlagReader, events EventSource, printer *report.Printer) *Checker {
	return &Checker{
		cfg:     cfg,
		flags:   flags,
		events:  events,
		printer: printer,
		log:     logger.NewLoggerWithContext("checker"),
	}
}

// Run executes one full check. The disabled and undetermined outcomes are
// terminal but not errors; only an event log query failure is.
func (c *Checker) Run() error {
	value, err := c.DetermineDebugMode()
	if err != nil {
		var regErr *RegistryReadError
		if errors.As(err, &regErr) {
			c.log.Warn().Err(regErr.Err).
				Str("path", regErr.Path).
				Str("value", regErr.Value).
				Msg("Debug mode flag could not be read")
			c.printer.Undetermined(c.cfg.RegistryPath, c.cfg.RegistryValue)
			return nil
		}
		return err
	}

	if !c.EvaluateAndReport(value) {
		return nil
	}

	records, err := c.FetchRecentLicensingEvents(c.cfg.EventLogName, c.cfg.MessagePattern, c.cfg.MaxEvents)
	if err != nil {
		return err
	}
	c.printer.Events(c.cfg.EventLogName, records)
	return nil
}

// DetermineDebugMode reads the flag value. A read failure of any kind (key or
// value missing, access denied) comes back as a RegistryReadError.
func (c *Checker) DetermineDebugMode() (uint64, error) {
	value, err := c.flags.ReadFlag()
	if err != nil {
		return 0, &RegistryReadError{Path: c.cfg.RegistryPath, Value: c.cfg.RegistryValue, Err: err}
	}
	c.log.Debug().Uint64("value", value).Msg("Debug mode flag read")
	return value, nil
}

// EvaluateAndReport prints the notice for the flag value and reports whether
// the licensing event query should run.
func (c *Checker) EvaluateAndReport(value uint64) bool {
	if value != DebugModeEnabled {
		c.printer.Disabled(value)
		return false
	}
	c.printer.Enabled()
	return true
}

// FetchRecentLicensingEvents reads the whole log, keeps the messages matching
// pattern, orders them newest first and truncates to limit.
func (c *Checker) FetchRecentLicensingEvents(logName, pattern string, limit int) ([]evtlog.Record, error) {
	records, err := c.events.Query(logName)
	if err != nil {
		return nil, &LogQueryError{Log: logName, Err: err}
	}

	matched := evtlog.FilterMessage(records, pattern)
	evtlog.SortNewestFirst(matched)
	matched = evtlog.Limit(matched, limit)

	c.log.Debug().
		Int("total", len(records)).
		Int("matched", len(matched)).
		Str("log", logName).
		Msg("Licensing events fetched")
	return matched, nil
}

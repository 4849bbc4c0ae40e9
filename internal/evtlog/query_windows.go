//go:build windows

package evtlog

import (
	"errors"
	"fmt"
	"syscall"

	"wemdiag/internal/logger"
	"wemdiag/internal/windowsapi"
)

// ChannelSource reads complete channels from the local Windows Event Log.
type ChannelSource struct{}

// Query retrieves every record from the named log, newest first. Records that
// fail to render or parse are skipped; the query itself failing is an error.
func (ChannelSource) Query(logName string) ([]Record, error) {
	log := logger.NewLoggerWithContext("evtlog")

	handle, err := windowsapi.EvtQuery(logName, "*",
		windowsapi.EvtQueryChannelPath|windowsapi.EvtQueryReverseDirection)
	if err != nil {
		if errors.Is(err, syscall.ERROR_ACCESS_DENIED) {
			return nil, fmt.Errorf("access denied to event log %q (run elevated): %w", logName, err)
		}
		if errors.Is(err, windowsapi.ERROR_EVT_CHANNEL_NOT_FOUND) {
			return nil, fmt.Errorf("event log %q not found on this system: %w", logName, err)
		}
		return nil, fmt.Errorf("open query on event log %q: %w", logName, err)
	}
	defer windowsapi.EvtClose(handle)

	var records []Record
	var skipped int
	batch := make([]syscall.Handle, 100)

	for {
		returned, err := windowsapi.EvtNext(handle, batch)
		if err != nil {
			if errors.Is(err, windowsapi.ERROR_NO_MORE_ITEMS) {
				break
			}
			return nil, fmt.Errorf("read events from %q: %w", logName, err)
		}

		for i := uint32(0); i < returned; i++ {
			eventXML, renderErr := windowsapi.RenderEventXML(batch[i])
			windowsapi.EvtClose(batch[i])
			if renderErr != nil {
				skipped++
				continue
			}

			record, parseErr := ParseRecordXML(eventXML)
			if parseErr != nil {
				skipped++
				continue
			}
			records = append(records, record)
		}

		if returned < uint32(len(batch)) {
			break
		}
	}

	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Str("log", logName).Msg("Skipped unreadable event records")
	}
	log.Debug().Int("records", len(records)).Str("log", logName).Msg("Event log read complete")

	return records, nil
}

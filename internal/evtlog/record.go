// Package evtlog reads and filters Windows Event Log records.
package evtlog

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Record is a single event log entry projected down to the fields the report
// shows. Records are read-only snapshots of what the OS returned.
type Record struct {
	Time    time.Time
	ID      uint32
	Level   string
	Message string
}

// XML structures for events rendered with EvtRenderEventXml.

type eventXML struct {
	XMLName       xml.Name         `xml:"Event"`
	System        systemXML        `xml:"System"`
	EventData     eventDataXML     `xml:"EventData"`
	RenderingInfo renderingInfoXML `xml:"RenderingInfo"`
}

type systemXML struct {
	Provider    providerXML    `xml:"Provider"`
	EventID     uint32         `xml:"EventID"`
	Level       uint8          `xml:"Level"`
	TimeCreated timeCreatedXML `xml:"TimeCreated"`
	Channel     string         `xml:"Channel"`
	Computer    string         `xml:"Computer"`
}

type providerXML struct {
	Name string `xml:"Name,attr"`
}

type timeCreatedXML struct {
	SystemTime string `xml:"SystemTime,attr"`
}

type eventDataXML struct {
	Data []dataXML `xml:"Data"`
}

type dataXML struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:",chardata"`
}

type renderingInfoXML struct {
	Message string `xml:"Message"`
}

// ParseRecordXML parses one rendered event XML document into a Record.
// The message is taken from RenderingInfo when the event carries it;
// classic service events usually don't, in which case the EventData
// strings are joined instead.
func ParseRecordXML(xmlStr string) (Record, error) {
	var event eventXML
	if err := xml.Unmarshal([]byte(xmlStr), &event); err != nil {
		return Record{}, fmt.Errorf("unmarshal event XML: %w", err)
	}

	timestamp, err := time.Parse(time.RFC3339Nano, event.System.TimeCreated.SystemTime)
	if err != nil {
		return Record{}, fmt.Errorf("parse event timestamp %q: %w", event.System.TimeCreated.SystemTime, err)
	}

	message := strings.TrimSpace(event.RenderingInfo.Message)
	if message == "" {
		var parts []string
		for _, d := range event.EventData.Data {
			if v := strings.TrimSpace(d.Value); v != "" {
				parts = append(parts, v)
			}
		}
		message = strings.Join(parts, " ")
	}

	return Record{
		Time:    timestamp,
		ID:      event.System.EventID,
		Level:   LevelName(event.System.Level),
		Message: message,
	}, nil
}

// LevelName maps the numeric severity from the System block to the display
// name the Event Viewer shows. Level 0 (LogAlways) renders as Information.
func LevelName(level uint8) string {
	switch level {
	case 1:
		return "Critical"
	case 2:
		return "Error"
	case 3:
		return "Warning"
	case 0, 4:
		return "Information"
	case 5:
		return "Verbose"
	default:
		return fmt.Sprintf("Level%d", level)
	}
}

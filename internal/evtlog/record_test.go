package evtlog

import (
	"testing"
	"time"
)

const classicEventXML = `<Event xmlns="http://schemas.microsoft.com/win/2004/08/events/event">
  <System>
    <Provider Name="WEM Infrastructure Service"/>
    <EventID Qualifiers="16384">0</EventID>
    <Level>4</Level>
    <TimeCreated SystemTime="2024-03-10T11:42:17.000000000Z"/>
    <Channel>WEM Infrastructure Service</Channel>
    <Computer>WEMSRV01</Computer>
  </System>
  <EventData>
    <Data>LICENSING: LS indicates WEM is LAS Activated. License server check succeeded.</Data>
  </EventData>
</Event>`

const renderedEventXML = `<Event xmlns="http://schemas.microsoft.com/win/2004/08/events/event">
  <System>
    <Provider Name="WEM Infrastructure Service"/>
    <EventID>12</EventID>
    <Level>3</Level>
    <TimeCreated SystemTime="2024-03-10T09:15:00.123456700Z"/>
    <Channel>WEM Infrastructure Service</Channel>
    <Computer>WEMSRV01</Computer>
  </System>
  <EventData>
    <Data Name="param1">raw value</Data>
  </EventData>
  <RenderingInfo Culture="en-US">
    <Message>Formatted message from the rendering info block.</Message>
  </RenderingInfo>
</Event>`

func TestParseRecordXML(t *testing.T) {
	t.Run("classic event uses event data as message", func(t *testing.T) {
		record, err := ParseRecordXML(classicEventXML)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		want := time.Date(2024, 3, 10, 11, 42, 17, 0, time.UTC)
		if !record.Time.Equal(want) {
			t.Errorf("Expected time %v, got %v", want, record.Time)
		}
		if record.ID != 0 {
			t.Errorf("Expected ID 0, got %d", record.ID)
		}
		if record.Level != "Information" {
			t.Errorf("Expected level Information, got %q", record.Level)
		}
		if record.Message != "LICENSING: LS indicates WEM is LAS Activated. License server check succeeded." {
			t.Errorf("Unexpected message: %q", record.Message)
		}
	})

	t.Run("rendering info message wins over event data", func(t *testing.T) {
		record, err := ParseRecordXML(renderedEventXML)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if record.Message != "Formatted message from the rendering info block." {
			t.Errorf("Unexpected message: %q", record.Message)
		}
		if record.Level != "Warning" {
			t.Errorf("Expected level Warning, got %q", record.Level)
		}
		if record.ID != 12 {
			t.Errorf("Expected ID 12, got %d", record.ID)
		}
	})

	t.Run("invalid XML returns error", func(t *testing.T) {
		if _, err := ParseRecordXML("<Event><System>"); err == nil {
			t.Error("Expected error for truncated XML")
		}
	})

	t.Run("missing timestamp returns error", func(t *testing.T) {
		xml := `<Event><System><EventID>1</EventID><Level>4</Level><TimeCreated SystemTime="not-a-time"/></System></Event>`
		if _, err := ParseRecordXML(xml); err == nil {
			t.Error("Expected error for unparseable timestamp")
		}
	})
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level uint8
		want  string
	}{
		{0, "Information"},
		{1, "Critical"},
		{2, "Error"},
		{3, "Warning"},
		{4, "Information"},
		{5, "Verbose"},
		{9, "Level9"},
	}

	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.want {
			t.Errorf("LevelName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

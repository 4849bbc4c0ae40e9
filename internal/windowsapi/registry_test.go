//go:build windows

package windowsapi

import (
	"testing"
)

func TestRegistryFlagReader(t *testing.T) {
	// CurrentMajorVersionNumber is a DWORD present on every supported Windows.
	reader := RegistryFlagReader{
		Path:  `SOFTWARE\Microsoft\Windows NT\CurrentVersion`,
		Value: "CurrentMajorVersionNumber",
	}
	got, err := reader.ReadFlag()
	if err != nil {
		t.Fatalf("ReadFlag() failed on a well-known value: %v", err)
	}
	t.Logf("CurrentMajorVersionNumber = %d", got)

	missing := RegistryFlagReader{
		Path:  `SOFTWARE\Microsoft\Windows NT\CurrentVersion`,
		Value: "WemdiagNoSuchValue",
	}
	if _, err := missing.ReadFlag(); err == nil {
		t.Error("Expected error for missing value")
	}

	badKey := RegistryFlagReader{
		Path:  `SOFTWARE\WemdiagNoSuchKey`,
		Value: "Anything",
	}
	if _, err := badKey.ReadFlag(); err == nil {
		t.Error("Expected error for missing key")
	}
}

//go:build windows

package windowsapi

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryFlagReader reads a single DWORD value under HKLM. The broker service
// stores its debug switch this way, so a missing key and a missing value both
// mean the flag was never set.
type RegistryFlagReader struct {
	// Subkey path under HKEY_LOCAL_MACHINE
	Path string

	// Value name to read
	Value string
}

// ReadFlag returns the integer value, or an error if the key or value is
// missing or inaccessible.
func (r RegistryFlagReader) ReadFlag() (uint64, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, r.Path, registry.QUERY_VALUE)
	if err != nil {
		return 0, fmt.Errorf(`open HKLM\%s: %w`, r.Path, err)
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue(r.Value)
	if err != nil {
		return 0, fmt.Errorf("read value %q: %w", r.Value, err)
	}
	return value, nil
}

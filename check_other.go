//go:build !windows

package main

import (
	"errors"

	"wemdiag/internal/config"
)

// The check reads the Windows registry and event log; on other platforms it
// can only explain itself.
func runCheck(*config.AppConfig) error {
	return errors.New("the WEM debug mode check requires Windows")
}

//go:build !windows

package logger

import (
	"fmt"

	"wemdiag/internal/config"

	"github.com/phuslu/log"
)

// The eventlog output writes through the Windows Event Log API and has no
// equivalent elsewhere.
func createEventlogWriter(*config.EventlogConfig) (log.Writer, error) {
	return nil, fmt.Errorf("eventlog output is only supported on windows")
}

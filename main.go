// main.go
package main

import (
	"fmt"
	"os"

	"wemdiag/internal/config"
	"wemdiag/internal/logger"

	"github.com/phuslu/log"
)

var (
	version = "0.1.0"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		// -generate-config was handled, nothing left to do
		return
	}

	if err := logger.ConfigureLogging(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Str("version", version).
		Str("event_log", cfg.Check.EventLogName).
		Str("pattern", cfg.Check.MessagePattern).
		Int("max_events", cfg.Check.MaxEvents).
		Msg("Starting WEM debug mode check")

	if err := runCheck(cfg); err != nil {
		log.Fatal().Err(err).Msg("❌ Check failed")
	}
}

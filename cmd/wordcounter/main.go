package main

import (
	"fmt"
	"os"

	"wordcounter/internal/config"
	"wordcounter/internal/counter"
	"wordcounter/internal/errors"
	"wordcounter/internal/gui"
	"wordcounter/internal/log"
)

var (
	version = "dev"
)

func main() {
	// Load configuration
	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		cfg = config.New()
	}

	var opts []log.Option
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File))
	}
	log.Configure(opts...)
	log.SetDebug(cfg.Log.Debug)

	log.LogWithFields(log.F("version", version)).Info("Starting word counter")

	c := counter.New(counter.OptionsFromConfig(cfg))

	ui, err := gui.NewFactory(cfg, c).Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting GUI: %v\n", err)
		os.Exit(1)
	}
	if cfgErr != nil {
		// Logged by ShowError.
		ui.ShowError(configErrorTitle(cfgErr), cfgErr)
	}
	ui.Run()
}

// configErrorTitle tells a config file that failed validation apart from
// one that could not be read or parsed.
func configErrorTitle(err error) string {
	if errors.IsInvalidConfig(err) {
		return "Configuration invalid, using defaults"
	}
	return "Configuration file unreadable, using defaults"
}

package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagScript      = flag.String("script", "", "Input script to replay")
	flagTrace       = flag.String("trace", "", "Write a per-tick YAML trace to this path")
	flagTicks       = flag.Int("ticks", 0, "Stop after this many ticks")
	flagTickRate    = flag.Int("tick-rate", 0, "Simulation ticks per second")
	flagInteractive = flag.Bool("interactive", false, "Drive the player from the keyboard")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScript != "" {
		cfg.Simulation.Script = *flagScript
	}
	if *flagTrace != "" {
		cfg.Simulation.Trace = *flagTrace
	}
	if *flagTicks > 0 {
		cfg.Simulation.MaxTicks = *flagTicks
	}
	if *flagTickRate > 0 {
		cfg.Simulation.TickRate = *flagTickRate
	}
	if *flagInteractive {
		cfg.Simulation.Interactive = true
	}
}

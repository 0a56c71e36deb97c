package config

import (
	"flag"

	"github.com/Faultbox/stlexport/pkg/stl"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagFormat  = flag.String("format", "", "Output format: binary or ascii")
	flagHeader  = flag.String("header", "", "STL header text (80 bytes max)")
	flagOutput  = flag.String("o", "", "Output file (default stdout)")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseArgs parses flags from args, for use after a subcommand name.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFormat != "" {
		mode, err := stl.ParseMode(*flagFormat)
		if err != nil {
			return err
		}
		cfg.Export.Format = mode
	}
	if *flagHeader != "" {
		cfg.Export.Header = *flagHeader
	}
	if *flagOutput != "" {
		cfg.Export.Output = *flagOutput
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	return nil
}

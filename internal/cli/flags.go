// Package cli holds the entry-point logic shared by the bot's commands.
package cli

import "flag"

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	ConfigPath string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Configuration file path")
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ReportFlags holds the CLI flags for the report command.
type ReportFlags struct {
	ConfigPath string
	DryRun     bool
	Verbose    bool
}

// ParseReportFlags parses command line flags for the report command.
func ParseReportFlags() *ReportFlags {
	flags := &ReportFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Configuration file path")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Print the report instead of sending it")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

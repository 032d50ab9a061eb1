package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/doorasi/closingbot/internal/cli"
	"github.com/doorasi/closingbot/internal/infrastructure/config"
)

func main() {
	_ = godotenv.Load()

	flags := cli.ParseReportFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunReport(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

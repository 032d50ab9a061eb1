package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/doorasi/closingbot/internal/cli"
	"github.com/doorasi/closingbot/internal/infrastructure/config"
)

func main() {
	// Local development keeps secrets in .env; absence is fine in production.
	_ = godotenv.Load()

	flags := cli.ParseServeFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

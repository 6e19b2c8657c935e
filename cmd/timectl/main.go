package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/timectl/internal/logging"
	"github.com/danmuck/timectl/internal/observability"
	"github.com/danmuck/timectl/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (optional)")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := server.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "timectl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	observability.InitLogger(cfg.Name)

	svc := server.NewServiceWithConfig(cfg)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "timectl: %v\n", err)
		os.Exit(1)
	}
}

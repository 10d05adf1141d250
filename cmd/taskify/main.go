package main

import (
	"fmt"
	"os"

	"taskify/internal/api/resthttp"
	"taskify/internal/bus"
	"taskify/internal/cli"
	"taskify/internal/config"
	"taskify/internal/credstore"
	"taskify/internal/session"
)

func main() {
	// Load configuration from defaults and environment
	cfg := config.NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		os.Exit(1)
	}

	// The credential store lives in the user's storage directory
	if err := os.MkdirAll(cfg.Storage.Dir, os.FileMode(cfg.Storage.DirPermissions)); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating storage directory: %v\n", err)
		os.Exit(1)
	}
	creds, err := credstore.New(cfg.GetStoragePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening credential store: %v\n", err)
		os.Exit(1)
	}
	defer creds.Close()

	// Backend client and session store with dependency injection
	client := resthttp.New(cfg.Server.BaseURL, resthttp.WithTimeout(cfg.Server.RequestTimeout))
	sess := session.NewStore(client, creds)
	signals := bus.New()

	app := cli.NewApp(cfg, client, sess, signals)
	root := cli.NewRootCommand(app, cfg)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

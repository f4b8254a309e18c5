package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"tasklist/internal/config"
	"tasklist/internal/storage"
	"tasklist/internal/store"
	"tasklist/internal/ui"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	st := store.Open(db, log)

	if err := ui.Run(st, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/redseq/rsz-go/cmd"
	"github.com/redseq/rsz-go/internal/conf"
	"github.com/redseq/rsz-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level, logging.FileConfig{
		Enabled:    settings.Main.Log.Enabled,
		Path:       settings.Main.Log.Path,
		MaxSizeMB:  settings.Main.Log.MaxSize,
		MaxBackups: settings.Main.Log.MaxBackups,
	})

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/transcription-service/internal/config"
	"github.com/kubev2v/transcription-service/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:          "transcription-api",
	Short:        "Transcription job orchestration service",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}

// setupLogger installs the process logger and returns the function undoing it.
func setupLogger(cfg *config.Config) func() {
	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		undo()
	}
}

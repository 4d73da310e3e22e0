package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kubev2v/transcription-service/internal/cli"
)

func main() {
	command := NewTranscriberCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewTranscriberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcriber [flags] [options]",
		Short: "transcriber controls the transcription service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdTranscribe())
	cmd.AddCommand(cli.NewCmdHistory())
	cmd.AddCommand(cli.NewCmdSave())
	cmd.AddCommand(cli.NewCmdUpload())

	return cmd
}

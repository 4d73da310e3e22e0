package cli

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type TranscribeOptions struct {
	GlobalOptions

	AudioURL string
	Filename string
	Output   string
}

func DefaultTranscribeOptions() *TranscribeOptions {
	return &TranscribeOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdTranscribe() *cobra.Command {
	o := DefaultTranscribeOptions()
	cmd := &cobra.Command{
		Use:          "transcribe",
		Short:        "Transcribe an audio file reachable by url and wait for the text.",
		Example:      "transcribe --audio-url https://host/audio-uploads/1700000000000-a.wav --filename a.wav",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("audio-url")
	return cmd
}

func (o *TranscribeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.AudioURL, "audio-url", o.AudioURL, "URL of the audio file (required)")
	fs.StringVar(&o.Filename, "filename", o.Filename, "Name recorded with the transcription. Defaults to the last element of the url")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *TranscribeOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if o.Filename == "" && o.AudioURL != "" {
		o.Filename = path.Base(o.AudioURL)
	}
	return nil
}

func (o *TranscribeOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.AudioURL == "" {
		return fmt.Errorf("--audio-url is required")
	}
	return validateOutput(o.Output)
}

func (o *TranscribeOptions) Run(ctx context.Context, args []string) error {
	resp, err := o.Client().Transcribe(ctx, o.AudioURL, o.Filename)
	if err != nil {
		return fmt.Errorf("transcribing %s: %w", o.AudioURL, err)
	}

	if printed, err := printStructured(os.Stdout, o.Output, resp); printed {
		return err
	}
	fmt.Println(resp.Transcription)
	return nil
}

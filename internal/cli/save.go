package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type SaveOptions struct {
	GlobalOptions

	Filename string
	Text     string
	TextFile string
	Output   string
}

func DefaultSaveOptions() *SaveOptions {
	return &SaveOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdSave() *cobra.Command {
	o := DefaultSaveOptions()
	cmd := &cobra.Command{
		Use:          "save",
		Short:        "Store a transcription produced elsewhere.",
		Example:      "save --filename a.wav --text-file a.txt",
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
	return cmd
}

func (o *SaveOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Filename, "filename", o.Filename, "Name of the transcribed file (required)")
	fs.StringVar(&o.Text, "text", o.Text, "Transcription text")
	fs.StringVar(&o.TextFile, "text-file", o.TextFile, "Read the transcription text from this file, - for stdin")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *SaveOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if o.TextFile == "" {
		return nil
	}

	var (
		data []byte
		err  error
	)
	if o.TextFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(o.TextFile)
	}
	if err != nil {
		return fmt.Errorf("reading transcription text: %w", err)
	}
	o.Text = string(data)
	return nil
}

func (o *SaveOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Filename == "" || o.Text == "" {
		return fmt.Errorf("--filename and one of --text or --text-file are required")
	}
	return validateOutput(o.Output)
}

func (o *SaveOptions) Run(ctx context.Context, args []string) error {
	created, err := o.Client().SaveTranscription(ctx, o.Filename, o.Text)
	if err != nil {
		return fmt.Errorf("saving transcription: %w", err)
	}

	if printed, err := printStructured(os.Stdout, o.Output, created); printed {
		return err
	}
	printTranscriptionsTable(os.Stdout, *created)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type UploadOptions struct {
	GlobalOptions

	Transcribe bool
	Output     string
}

func DefaultUploadOptions() *UploadOptions {
	return &UploadOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdUpload() *cobra.Command {
	o := DefaultUploadOptions()
	cmd := &cobra.Command{
		Use:          "upload FILE",
		Short:        "Upload an audio file and print its public url.",
		Example:      "upload ./meeting.wav --transcribe",
		Args:         cobra.ExactArgs(1),
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

func (o *UploadOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.BoolVar(&o.Transcribe, "transcribe", o.Transcribe, "Transcribe the file once uploaded")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *UploadOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	fi, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", args[0])
	}
	return validateOutput(o.Output)
}

func (o *UploadOptions) Run(ctx context.Context, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	filename := filepath.Base(args[0])
	c := o.Client()

	uploaded, err := c.Upload(ctx, filename, f)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", filename, err)
	}

	if !o.Transcribe {
		if printed, err := printStructured(os.Stdout, o.Output, uploaded); printed {
			return err
		}
		fmt.Println(uploaded.FileURL)
		return nil
	}

	resp, err := c.Transcribe(ctx, uploaded.FileURL, filename)
	if err != nil {
		return fmt.Errorf("transcribing %s: %w", uploaded.FileURL, err)
	}
	if printed, err := printStructured(os.Stdout, o.Output, resp); printed {
		return err
	}
	fmt.Println(resp.Transcription)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/kubev2v/transcription-service/api/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/client"
)

const previewLength = 40

type HistoryOptions struct {
	GlobalOptions

	Output   string
	Filename string
	Status   string
	Limit    int
}

func DefaultHistoryOptions() *HistoryOptions {
	return &HistoryOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdHistory() *cobra.Command {
	o := DefaultHistoryOptions()
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "Display past transcriptions, newest first.",
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

func (o *HistoryOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
	fs.StringVar(&o.Filename, "filename", o.Filename, "Only show transcriptions of this file")
	fs.StringVar(&o.Status, "status", o.Status, "Only show transcriptions with this status (completed, failed)")
	fs.IntVar(&o.Limit, "limit", o.Limit, "Maximum number of transcriptions to show")
}

func (o *HistoryOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Status != "" && o.Status != string(api.TranscriptionStatusCompleted) && o.Status != string(api.TranscriptionStatusFailed) {
		return fmt.Errorf("status must be one of completed, failed")
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must be positive")
	}
	return validateOutput(o.Output)
}

func (o *HistoryOptions) Run(ctx context.Context, args []string) error {
	list, err := o.Client().ListHistory(ctx, client.HistoryParams{
		Filename: o.Filename,
		Status:   o.Status,
		Limit:    o.Limit,
	})
	if err != nil {
		return fmt.Errorf("listing transcriptions: %w", err)
	}

	if printed, err := printStructured(os.Stdout, o.Output, list); printed {
		return err
	}
	printTranscriptionsTable(os.Stdout, list...)
	return nil
}

func printTranscriptionsTable(out io.Writer, transcriptions ...api.Transcription) {
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tFILENAME\tTRANSCRIPTION")
	for _, t := range transcriptions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.CreatedAt.String(), t.Status, t.Filename, preview(t.Transcription))
	}
	w.Flush()
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/spf13/cobra"
)

func newFeedbackCmd() *cobra.Command {
	var kindName, out string

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Render a feedback cue to a WAV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, ok := feedback.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown feedback kind %q", kindName)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			p := feedback.ProfileFor(kind)
			if err := feedback.NewWAVOutput(w).PlayTones(cmd.Context(), p.Tones()); err != nil {
				return fmt.Errorf("render %s: %w", kind, err)
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s cue to %s (vibration %v)\n", kind, out, p.Vibration)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", string(feedback.Click), "Cue kind (click|success|error|hover)")
	cmd.Flags().StringVar(&out, "out", "-", "Output file, - for stdout")
	return cmd
}

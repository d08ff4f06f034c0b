package main

import (
	"fmt"

	"github.com/akeren/creatorchain/config"
	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/domain/waitlist"
	"github.com/akeren/creatorchain/internal/log"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/spf13/cobra"
)

func newSubmitCmd(logger *log.Logger) *cobra.Command {
	var email, creatorType, platform, contentVolume string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send one waitlist entry to the form backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWaitlistConfig()
			if err != nil {
				return err
			}
			client, err := config.NewFormClient(logger, cfg)
			if err != nil {
				return err
			}

			submission := waitlist.Submission{
				Email:         email,
				CreatorType:   waitlist.CreatorType(creatorType),
				Platform:      waitlist.Platform(platform),
				ContentVolume: waitlist.ContentVolume(contentVolume),
			}
			form := waitlist.NewFormControllerWith(submission, cfg.FormID, client, feedback.NewEmitter(nil, nil, feedback.WithLogger(logger)), nil)

			result, err := form.Submit(cmd.Context())
			if err != nil {
				for _, fe := range apperrors.GetFieldErrors(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
				}
				return err
			}
			if !result.Accepted {
				for _, fe := range result.FieldErrors {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
				}
				return fmt.Errorf("submission rejected by form %s", cfg.FormID)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "You're in! Welcome to the early access program")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&creatorType, "creator-type", "", "Creator type")
	cmd.Flags().StringVar(&platform, "platform", "", "Primary platform")
	cmd.Flags().StringVar(&contentVolume, "content-volume", "", "Monthly content volume")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

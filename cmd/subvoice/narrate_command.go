package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"subvoice/internal/history"
	"subvoice/internal/logging"
	"subvoice/internal/pipeline"
)

type stderrAlerter struct{}

func (stderrAlerter) Alert(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}

func newNarrateCommand(ctx *commandContext) *cobra.Command {
	var voice string
	var output string

	cmd := &cobra.Command{
		Use:   "narrate VIDEO SUBTITLES",
		Short: "Synthesize narration from a subtitle file and mux it into a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			runner := pipeline.New(cfg, logger,
				pipeline.WithHistory(store),
				pipeline.WithAlerter(stderrAlerter{}),
				pipeline.WithStatus(func(message string) {
					fmt.Fprintln(out, message)
				}))

			requestVoice := strings.TrimSpace(voice)
			if requestVoice == "" {
				requestVoice = cfg.Speech.Voice
			}

			result, err := runner.Run(runCtx, pipeline.Request{
				VideoPath:    args[0],
				SubtitlePath: args[1],
				Voice:        requestVoice,
				OutputPath:   strings.TrimSpace(output),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Wrote %s (%d cues, %s encoder, %s)\n",
				result.OutputPath, result.CueCount, result.Codec, result.Elapsed.Round(timeRound))
			return nil
		},
	}

	cmd.Flags().StringVarP(&voice, "voice", "v", "", "Synthesizer voice (defaults to the configured voice)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video path (defaults to the input name plus suffix)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subvoice/internal/logging"
	"subvoice/internal/media/ffmpeg"
	"subvoice/internal/tts"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List installed synthesizer voices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			transcoder := ffmpeg.NewRunner(cfg.Tools.FFmpeg, logging.NewNop())
			engine := tts.NewEngine(cfg.Tools.Say, cfg.Speech.RateWPM,
				cfg.Audio.SampleRate, cfg.Audio.Channels, transcoder, logging.NewNop())

			voices, err := engine.ListVoices(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(voices))
			for _, voice := range voices {
				rows = append(rows, []string{voice.Name, voice.Locale, voice.LanguageName(), voice.Description})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Voice", "Locale", "Language", "Sample"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d voices installed\n", len(voices))
			return nil
		},
	}
}

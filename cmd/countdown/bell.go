package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/countdown/internal/alert"
)

var bellOpts struct {
	file string
}

var bellCmd = &cobra.Command{
	Use:   "bell",
	Short: "Play the alarm once",
	Long: `Acquire the audio device, load the alarm clip, play it once and
release the device when it ends. Useful for checking the configured sound.

Without --file the clip from [alert] sound is used, or the built-in bell.`,
	Args: cobra.NoArgs,
	RunE: runBell,
}

func init() {
	rootCmd.AddCommand(bellCmd)

	bellCmd.Flags().StringVar(&bellOpts.file, "file", "",
		"Sound file to play (wav, ogg, mp3)")
}

func runBell(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	sound := getConfig().Alert.Sound
	if bellOpts.file != "" {
		sound = bellOpts.file
	}
	asset := alert.AssetFromPath(sound)

	if fa, ok := asset.(alert.FileAsset); ok {
		size, err := fa.Size()
		if err != nil {
			return fmt.Errorf("failed to stat sound file: %w", err)
		}
		logger.Debug("loading sound file", "path", fa.Path, "size", humanize.Bytes(uint64(size)))
		fmt.Fprintf(out, "%s (%s)\n", fa.Name(), humanize.Bytes(uint64(size)))
	}

	player := alert.NewPlayer(nil, logger)
	return alert.WithSession(player, asset, func(s *alert.Session) error {
		if !s.Play() {
			return errors.New("failed to play alarm")
		}
		length := s.Length()
		fmt.Fprintf(out, "playing %s (%s)\n", asset.Name(), length.Round(time.Millisecond))

		select {
		case <-time.After(length + alert.DefaultLatency):
		case <-cmd.Context().Done():
		}
		return nil
	})
}

package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"slidecast/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return err
			}

			duration := "unknown"
			if seconds := result.DurationSeconds(); seconds > 0 && !math.IsNaN(seconds) {
				duration = fmt.Sprintf("%.2fs", seconds)
			}
			size := "unknown"
			if bytes := result.SizeBytes(); bytes > 0 {
				size = humanize.Bytes(uint64(bytes))
			}

			rows := [][]string{
				{"Container", result.Format.FormatName},
				{"Duration", duration},
				{"Size", size},
				{"Streams", strconv.Itoa(len(result.Streams))},
				{"Audio streams", strconv.Itoa(result.AudioStreamCount())},
			}
			for _, stream := range result.Streams {
				label := fmt.Sprintf("Stream %d", stream.Index)
				detail := stream.CodecType
				if stream.CodecName != "" {
					detail += "/" + stream.CodecName
				}
				if stream.Channels > 0 {
					detail += fmt.Sprintf(", %dch", stream.Channels)
				}
				rows = append(rows, []string{label, detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

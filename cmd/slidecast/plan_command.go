package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"slidecast/internal/project"
)

func newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "plan <project.json>",
		Short:       "Show the resolved slide sequence without rendering",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load(args[0])
			if err != nil {
				return err
			}
			entries, err := project.BuildSequence(proj)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(entries))
			transitions := 0
			for i, entry := range entries {
				if i > 0 && entry.Image != entries[i-1].Image {
					transitions++
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					fmt.Sprintf("%.2fs – %.2fs", entry.Start, entry.End),
					entry.Image,
					truncate(entry.Caption, 48),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Spoken", "Image", "Caption"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d slides, %d image transitions\n", len(entries), transitions)
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

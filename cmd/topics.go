package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/datapath/internal/curriculum"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics taught at each level",
	RunE: func(cmd *cobra.Command, args []string) error {
		levels := curriculum.AllLevels()
		if val, _ := cmd.Flags().GetString("level"); val != "" {
			level, err := curriculum.ParseLevel(val)
			if err != nil {
				return err
			}
			levels = []curriculum.Level{level}
		}
		printTopics(cmd.OutOrStdout(), levels)
		return nil
	},
}

func printTopics(w io.Writer, levels []curriculum.Level) {
	for i, l := range levels {
		if i > 0 {
			fmt.Fprintln(w)
		}
		section(w, fmt.Sprintf("%s: %s", l, l.Blurb()))
		tbl := newTable(w, "#", "Topic")
		for j, t := range curriculum.Topics(l) {
			tbl.AddRow(j+1, t)
		}
		tbl.Print()
	}
}

func init() {
	topicsCmd.Flags().StringP("level", "l", "", "Only show this level (Beginner, Intermediate or Pro)")
}

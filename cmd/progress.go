package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/datapath/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a learner's quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.Progress().ListProgress(cmd.Context(), user, limit)
		if err != nil {
			return fmt.Errorf("list progress: %w", err)
		}
		printProgress(cmd.OutOrStdout(), user, records)
		return nil
	},
}

func printProgress(w io.Writer, user string, records []store.ProgressRecord) {
	if len(records) == 0 {
		fmt.Fprintf(w, "No quiz results for %s yet.\n", user)
		return
	}
	tbl := newTable(w, "Taken", "Topic", "Score")
	for _, r := range records {
		tbl.AddRow(r.CreatedAt.Local().Format(timeLayout), truncate(r.Topic, 44), r.Score)
	}
	tbl.Print()
	fmt.Fprintf(w, "\n%d quizzes\n", len(records))
}

func init() {
	progressCmd.Flags().StringP("user", "u", "", "Username (required)")
	progressCmd.Flags().IntP("limit", "n", 0, "Number of results to show (0 = all)")
	_ = progressCmd.MarkFlagRequired("user")
}

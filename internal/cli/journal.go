package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/nvlled/cutscene/internal/journal"
	"github.com/spf13/cobra"
)

var journalLimit int

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Number of events to show")
	rootCmd.AddCommand(journalCmd)
}

var journalCmd = &cobra.Command{
	Use:   "journal <path>",
	Short: "Show the latest events recorded by 'cutscene run --journal'",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournal,
}

func runJournal(cmd *cobra.Command, args []string) error {
	j, err := journal.Open(args[0])
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(cmd.Context(), journalLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No events recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tTIME\tEVENT\tTASK\tPHASE\tREASON\tERROR")
	// oldest first reads like a timeline
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\t%s\t%s\t%s\n",
			e.Frame, e.Time, e.Kind, e.Task, e.Phase, e.Reason, e.Error)
	}
	return w.Flush()
}

package commands

import (
	"bytes"
	"os"
	"sort"

	"github.com/jhutar/o2family-info-o-cisle/lib/scrapers/selfcare"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linesCmd)
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "List the phone numbers and line identifiers visible on the account.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, landing, err := login(cmd.Context())
		if err != nil {
			return err
		}
		matches := selfcare.ScanLines(bytes.NewReader(landing))

		numbers := make([]string, 0, len(matches))
		for number := range matches {
			numbers = append(numbers, number)
		}
		sort.Strings(numbers)

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Phone number", "Line ID"})
		for _, number := range numbers {
			t.AppendRow(table.Row{number, matches[number]})
		}
		t.Render()
		return nil
	},
}

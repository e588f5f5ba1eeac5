package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/spf13/cobra"
)

var (
	gratitudeDate  string
	gratitudeLimit int
)

var gratitudeCmd = &cobra.Command{
	Use:   "gratitude",
	Short: "Keep a short gratitude journal",
}

var gratitudeAddCmd = &cobra.Command{
	Use:   "add TEXT...",
	Short: "Add a gratitude note",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGratitudeAdd,
}

var gratitudeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent gratitude notes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runGratitudeList,
}

func init() {
	gratitudeAddCmd.Flags().StringVar(&gratitudeDate, "date", "", "Day of the note (YYYY-MM-DD, default today)")
	gratitudeListCmd.Flags().IntVar(&gratitudeLimit, "limit", 0, "Number of notes to show (default gratitude.display_limit)")
	gratitudeCmd.AddCommand(gratitudeAddCmd, gratitudeListCmd)
	rootCmd.AddCommand(gratitudeCmd)
}

func runGratitudeAdd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	note, ok, err := e.tr.AddGratitude(cmd.Context(), gratitudeDate, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(e.out, map[string]any{"added": ok, "note": note})
	}
	if !ok {
		fmt.Fprintln(e.out, output.StyleMuted.Render(" Nothing to add: the note was empty."))
		return nil
	}
	fmt.Fprintf(e.out, " %s Noted for %s: %s\n", output.StyleSuccess.Render("♥"), note.Date, note.Text)
	return nil
}

func runGratitudeList(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	notes := e.tr.Gratitude(gratitudeLimit)
	if flagJSON {
		return writeJSON(e.out, notes)
	}
	fmt.Fprintln(e.out, output.Section("Grateful for"))
	renderGratitude(e.out, notes, e.cfg.Output.Width)
	return nil
}

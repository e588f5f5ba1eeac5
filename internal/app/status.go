package app

import (
	"fmt"

	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetYes bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show streak, XP, level and badges",
	RunE:  runStatus,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every entry, habit day, journal note and XP",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	st := e.tr.Status()
	if flagJSON {
		return writeJSON(e.out, st)
	}
	renderStatus(e.out, st)
	fmt.Fprintln(e.out, output.KV("Check-ins", fmt.Sprint(st.Entries)))
	fmt.Fprintln(e.out, output.KV("Journal notes", fmt.Sprint(st.Gratitude)))
	fmt.Fprintln(e.out)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		confirmed := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all mindpatch data?").
				Description("Entries, habit days, gratitude notes and XP cannot be recovered.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		)).WithTheme(huh.ThemeDracula()).Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), " Nothing deleted.")
			return nil
		}
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.tr.Reset(); err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	if flagJSON {
		return writeJSON(e.out, map[string]bool{"reset": true})
	}
	fmt.Fprintln(e.out, " "+output.StyleSuccess.Render("All data cleared."))
	return nil
}

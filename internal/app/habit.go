package app

import (
	"fmt"

	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/spf13/cobra"
)

var habitDate string

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track the screen-free habit",
	Long: `Mark a day as completed for the screen-free habit and see your streak.

Examples:
  mindpatch habit toggle
  mindpatch habit toggle --date 2026-10-15
  mindpatch habit status`,
}

var habitToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Mark or unmark a day as screen-free",
	Args:  cobra.NoArgs,
	RunE:  runHabitToggle,
}

var habitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show completed days, streak and badges",
	Args:  cobra.NoArgs,
	RunE:  runHabitStatus,
}

func init() {
	habitToggleCmd.Flags().StringVar(&habitDate, "date", "", "Day to toggle (YYYY-MM-DD, default today)")
	habitCmd.AddCommand(habitToggleCmd, habitStatusCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitToggle(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.tr.ToggleHabit(cmd.Context(), habitDate)
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(e.out, res)
	}

	if res.Done {
		fmt.Fprintf(e.out, " %s %s marked screen-free. Streak: %d\n",
			output.StyleSuccess.Render("✓"), res.Date, res.Streak)
	} else {
		fmt.Fprintf(e.out, " %s %s unmarked. Streak: %d\n",
			output.StyleMuted.Render("○"), res.Date, res.Streak)
	}
	for _, b := range res.NewBadges {
		fmt.Fprintf(e.out, " %s unlocked %s\n", output.StyleSuccess.Render("★"), output.BadgeChips([]session.Badge{b}))
	}
	return nil
}

// habitStatusOutput is the JSON-serializable result of habit status.
type habitStatusOutput struct {
	Days   []string `json:"days"`
	Streak int      `json:"streak"`
	Mode   string   `json:"streak_mode"`
}

func runHabitStatus(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	st := e.tr.Status()
	days := e.tr.HabitDays()
	if flagJSON {
		return writeJSON(e.out, habitStatusOutput{Days: days, Streak: st.Streak, Mode: string(st.StreakMode)})
	}

	renderStatus(e.out, st)
	if len(days) > 0 {
		start := max(0, len(days)-7)
		fmt.Fprintln(e.out, output.KV("Recent days", output.StyleMuted.Render(fmt.Sprint(days[start:]))))
	}
	fmt.Fprintln(e.out)
	return nil
}

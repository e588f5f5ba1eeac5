package app

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/spf13/cobra"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	d, err := e.tr.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(e.out, d)
	}

	w := e.out
	width := e.cfg.Output.Width

	fmt.Fprintln(w, output.Section("Today · "+d.Status.Today))
	if d.Latest == nil {
		fmt.Fprintln(w, output.StyleMuted.Render(" No check-in yet. Try: mindpatch log --mood 4 --screen 2.5"))
	} else {
		renderEntry(w, *d.Latest)
		if d.Suggestion != nil {
			fmt.Fprintln(w)
			fmt.Fprintln(w, output.SuggestionCard(*d.Suggestion, width))
		}
	}

	fmt.Fprintln(w, output.Section("Insight"))
	fmt.Fprintln(w, output.InsightCard(d.Insight, width))

	renderStatus(w, d.Status)

	fmt.Fprintln(w, output.Section("Grateful for"))
	renderGratitude(w, d.Gratitude, width)
	fmt.Fprintln(w)
	return nil
}

func renderEntry(w io.Writer, en wellness.DailyEntry) {
	fmt.Fprintln(w, output.KV("Mood", output.MoodBar(en.Mood)))
	fmt.Fprintln(w, output.KV("Screen time", output.UsageBand(en.ScreenTimeHours())))
	if b := en.Breakdown; b != nil {
		fmt.Fprintln(w, output.KV("", output.StyleMuted.Render(fmt.Sprintf(
			"study %.1fh · social %.1fh · entertainment %.1fh", b.Study, b.Social, b.Entertainment))))
	}
	fmt.Fprintln(w, output.KV("", output.StyleMuted.Render(wellness.ClassifyUsage(en.ScreenTimeHours()).Message())))
}

func renderStatus(w io.Writer, st tracker.Status) {
	fmt.Fprintln(w, output.Section("Screen-free habit"))

	today := output.StyleMuted.Render("not yet")
	if st.HabitDoneToday {
		today = output.StyleSuccess.Render("done ✓")
	}
	fmt.Fprintln(w, output.KV("Today", today))

	streak := fmt.Sprintf("%d day(s)", st.Streak)
	if st.StreakMode == session.StreakDerived {
		streak += output.StyleMuted.Render(" (consecutive)")
	}
	fmt.Fprintln(w, output.KV("Streak", output.StyleBold.Render(streak)))
	fmt.Fprintln(w, output.KV("Badges", output.BadgeChips(st.Badges)))
	if st.NextBadge != nil {
		fmt.Fprintln(w, output.KV("", output.StyleMuted.Render(
			fmt.Sprintf("%d more day(s) to %s", st.DaysToNextBadge, st.NextBadge.Name))))
	}
	fmt.Fprintln(w, output.KV(fmt.Sprintf("Level %d", st.Level), output.XPBar(st.XP, session.XPPerLevel, 20)))
}

// renderGratitude lists notes, wrapping text to fit a terminal of width cells.
func renderGratitude(w io.Writer, notes []wellness.GratitudeNote, width int) {
	if len(notes) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" Nothing yet. Try: mindpatch gratitude add \"a slow breakfast\""))
		return
	}
	tbl := output.NewTable("Date", "Note").WrapLast(width - len(wellness.DateFormat) - 4)
	for _, n := range notes {
		tbl.AddRow(n.Date, n.Text)
	}
	tbl.Fprint(w)
}

package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	logMood          int
	logScreen        float64
	logStudy         float64
	logSocial        float64
	logEntertainment float64
	logDate          string
	logInteractive   bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record today's mood and screen time",
	Long: `Record a daily check-in and get a detox suggestion for it.

Give total screen time with --screen, or split it into categories with
--study, --social and --entertainment; the categories then replace the total
and the category-aware suggestions are used.

Examples:
  mindpatch log --mood 2 --screen 5.5
  mindpatch log --mood 1 --study 1 --social 4.5 --entertainment 1.5
  mindpatch log --interactive`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntVar(&logMood, "mood", 0, "Mood from 1 (very low) to 5 (great)")
	logCmd.Flags().Float64Var(&logScreen, "screen", 0, "Total screen time in hours")
	logCmd.Flags().Float64Var(&logStudy, "study", 0, "Study/work screen time in hours")
	logCmd.Flags().Float64Var(&logSocial, "social", 0, "Social media screen time in hours")
	logCmd.Flags().Float64Var(&logEntertainment, "entertainment", 0, "Entertainment screen time in hours")
	logCmd.Flags().StringVar(&logDate, "date", "", "Day to record (YYYY-MM-DD, default today)")
	logCmd.Flags().BoolVarP(&logInteractive, "interactive", "i", false, "Fill in the check-in with a form")
	rootCmd.AddCommand(logCmd)
}

// logForm holds the string-typed form fields.
type logForm struct {
	Mood          int
	Split         bool
	Screen        string
	Study         string
	Social        string
	Entertainment string
}

func runLog(cmd *cobra.Command, args []string) error {
	in, err := logInput(cmd)
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.tr.LogEntry(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("logging entry: %w", err)
	}

	if flagJSON {
		return writeJSON(e.out, res)
	}

	w := e.out
	fmt.Fprintln(w, output.Section("Logged · "+res.Entry.Date))
	renderEntry(w, res.Entry)
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.SuggestionCard(res.Suggestion, e.cfg.Output.Width))
	fmt.Fprintln(w, output.KV(fmt.Sprintf("Level %d", res.Level), output.XPBar(res.XP, 100, 20)))
	fmt.Fprintln(w)
	return nil
}

// logInput builds the entry from flags or, with --interactive, from a form.
func logInput(cmd *cobra.Command) (tracker.EntryInput, error) {
	if logInteractive {
		f := logForm{Mood: 3}
		if err := newLogForm(&f).Run(); err != nil {
			return tracker.EntryInput{}, err
		}
		return f.input(logDate)
	}

	flags := cmd.Flags()
	if !flags.Changed("mood") {
		return tracker.EntryInput{}, fmt.Errorf("--mood is required (or use --interactive)")
	}
	in := tracker.EntryInput{Date: logDate, Mood: logMood, ScreenTime: logScreen}
	if flags.Changed("study") || flags.Changed("social") || flags.Changed("entertainment") {
		in.Breakdown = &wellness.Breakdown{Study: logStudy, Social: logSocial, Entertainment: logEntertainment}
	} else if !flags.Changed("screen") {
		return tracker.EntryInput{}, fmt.Errorf("give --screen or at least one of --study, --social, --entertainment")
	}
	return in, nil
}

func (f logForm) input(date string) (tracker.EntryInput, error) {
	in := tracker.EntryInput{Date: date, Mood: f.Mood}
	if !f.Split {
		h, err := parseHours(f.Screen)
		if err != nil {
			return in, err
		}
		in.ScreenTime = h
		return in, nil
	}

	var b wellness.Breakdown
	for _, field := range []struct {
		raw string
		dst *float64
	}{{f.Study, &b.Study}, {f.Social, &b.Social}, {f.Entertainment, &b.Entertainment}} {
		h, err := parseHours(field.raw)
		if err != nil {
			return in, err
		}
		*field.dst = h
	}
	in.Breakdown = &b
	return in, nil
}

// parseHours accepts decimal hours ("2.5") or a duration ("2h30m", "45m").
// Blank means zero.
func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d, derr := time.ParseDuration(s)
		if derr != nil {
			return 0, fmt.Errorf("invalid hours %q", s)
		}
		h = d.Hours()
	}
	if err := wellness.ValidateHours(h); err != nil {
		return 0, err
	}
	return h, nil
}

func validateHoursInput(s string) error {
	_, err := parseHours(s)
	return err
}

func newLogForm(f *logForm) *huh.Form {
	moods := make([]huh.Option[int], 0, int(wellness.MoodMax))
	for m := wellness.MoodMax; m >= wellness.MoodMin; m-- {
		moods = append(moods, huh.NewOption(fmt.Sprintf("%d · %s", m, m.Label()), int(m)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How are you feeling today?").
				Options(moods...).
				Value(&f.Mood),
			huh.NewConfirm().
				Title("Split screen time by category?").
				Description("Study, social media and entertainment").
				Value(&f.Split),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Total screen time (hours)").
				Placeholder("e.g. 3.5 or 3h30m").
				Value(&f.Screen).
				Validate(validateHoursInput),
		).WithHideFunc(func() bool { return f.Split }),
		huh.NewGroup(
			huh.NewInput().Title("Study / work (hours)").Value(&f.Study).Validate(validateHoursInput),
			huh.NewInput().Title("Social media (hours)").Value(&f.Social).Validate(validateHoursInput),
			huh.NewInput().Title("Entertainment (hours)").Value(&f.Entertainment).Validate(validateHoursInput),
		).WithHideFunc(func() bool { return !f.Split }),
	).WithTheme(huh.ThemeDracula())
}

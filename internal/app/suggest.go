package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the detox suggestion for your latest check-in",
	RunE:  runSuggest,
}

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Show how screen time and mood have moved together recently",
	Long: `Correlate mood with screen time over the configured history window
(history_window, default 7 entries). Use --demo to see the insight on a
generated history.`,
	RunE: runInsight,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(insightCmd)
}

// suggestOutput is the JSON-serializable result of the suggest command.
type suggestOutput struct {
	Suggestion suggest.Suggestion `json:"suggestion"`
	Date       string             `json:"date"`
	Mood       int                `json:"mood"`
	Hours      float64            `json:"screen_time_hours"`
	Animation  bool               `json:"animation_available"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	sug, latest, err := e.tr.Suggestion()
	if errors.Is(err, tracker.ErrNoEntries) {
		return fmt.Errorf("%w; run 'mindpatch log' first", err)
	}
	if err != nil {
		return err
	}

	// The breathing animation only accompanies the deep reset.
	hasAnim := false
	if sug.Category == suggest.CategoryDeepReset {
		_, hasAnim = e.tr.Animation(cmd.Context())
	}

	if flagJSON {
		return writeJSON(e.out, suggestOutput{
			Suggestion: sug,
			Date:       latest.Date,
			Mood:       int(latest.Mood),
			Hours:      latest.ScreenTimeHours(),
			Animation:  hasAnim,
		})
	}

	fmt.Fprintln(e.out, output.Section("Suggestion · "+latest.Date))
	fmt.Fprintln(e.out, output.SuggestionCard(sug, e.cfg.Output.Width))
	if hasAnim {
		fmt.Fprintln(e.out, output.StyleCalm.Render(" Breathe with the circle: mindpatch serve, then open /api/animation"))
	}
	fmt.Fprintln(e.out)
	return nil
}

func runInsight(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	in, err := e.tr.Insight(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(e.out, in)
	}

	title := "Insight"
	if flagDemo {
		title += " (demo history)"
	}
	fmt.Fprintln(e.out, output.Section(title))
	fmt.Fprintln(e.out, output.InsightCard(in, e.cfg.Output.Width))
	fmt.Fprintln(e.out)
	return nil
}

package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tracked data to stdout",
	Long: `Export entries, habit days, counters and gratitude notes.

Examples:
  mindpatch export > backup.yaml
  mindpatch export --format json > backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "Output format: yaml or json")
	rootCmd.AddCommand(exportCmd)
}

// exportDoc is the exported document shape.
type exportDoc struct {
	Version   string           `yaml:"version" json:"version"`
	Streak    int              `yaml:"streak" json:"streak"`
	XP        int              `yaml:"xp" json:"xp"`
	HabitDays []string         `yaml:"habit_days" json:"habit_days"`
	Entries   []exportEntry    `yaml:"entries" json:"entries"`
	Gratitude []exportGrateful `yaml:"gratitude" json:"gratitude"`
}

type exportEntry struct {
	Date          string   `yaml:"date" json:"date"`
	Mood          int      `yaml:"mood" json:"mood"`
	ScreenTime    float64  `yaml:"screen_time_hours" json:"screen_time_hours"`
	Study         *float64 `yaml:"study,omitempty" json:"study,omitempty"`
	Social        *float64 `yaml:"social,omitempty" json:"social,omitempty"`
	Entertainment *float64 `yaml:"entertainment,omitempty" json:"entertainment,omitempty"`
	CreatedAt     string   `yaml:"created_at" json:"created_at"`
}

type exportGrateful struct {
	Date string `yaml:"date" json:"date"`
	Text string `yaml:"text" json:"text"`
}

func runExport(cmd *cobra.Command, args []string) error {
	format := exportFormat
	if flagJSON {
		format = "json"
	}
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	st := e.tr.Export()
	doc := exportDoc{
		Version:   appVersion,
		Streak:    st.Streak,
		XP:        st.XP,
		HabitDays: st.HabitDays,
	}
	for _, en := range st.Entries {
		x := exportEntry{
			Date:       en.Date,
			Mood:       int(en.Mood),
			ScreenTime: en.ScreenTimeHours(),
			CreatedAt:  en.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if b := en.Breakdown; b != nil {
			x.Study, x.Social, x.Entertainment = &b.Study, &b.Social, &b.Entertainment
		}
		doc.Entries = append(doc.Entries, x)
	}
	for _, n := range st.Gratitude {
		doc.Gratitude = append(doc.Gratitude, exportGrateful{Date: n.Date, Text: n.Text})
	}

	if format == "json" {
		return writeJSON(e.out, doc)
	}
	enc := yaml.NewEncoder(e.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

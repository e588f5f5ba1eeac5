package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/mindpatch/internal/config"
	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/blackwell-systems/mindpatch/internal/store"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the mindpatch setup is healthy",
	Long: `Run a series of health checks against your mindpatch configuration
and data directory. Prints a pass/fail line for each check and a summary of
how many checks passed.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyColor(cmd, cfg)
	w := cmd.OutOrStdout()

	checks := []doctorCheck{
		checkConfigFile(flagConfig),
		checkDataDir(cfg.DataDir),
		checkDatabase(cfg.DBPath()),
		checkTimezone(cfg.Timezone),
		checkStreakMode(cfg.Habits.StreakMode),
		checkAnimation(commandContext(cmd), cfg),
		checkLogFile(cfg.DataDir),
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		return writeJSON(w, doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Fprintln(w, output.Section("Doctor"))
	fmt.Fprintln(w)
	for _, c := range checks {
		indicator := output.StyleWarning.Render("✗")
		if c.Passed {
			indicator = output.StyleSuccess.Render("✓")
		}
		fmt.Fprintf(w, "  %s  %-24s %s\n", indicator, output.StyleBold.Render(c.Name), output.StyleMuted.Render(c.Message))
	}
	fmt.Fprintln(w)

	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(w, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// checkConfigFile reports which config file is in effect. Running on
// defaults alone is a pass.
func checkConfigFile(explicit string) doctorCheck {
	path := explicit
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.DefaultConfigFile)
	}
	if _, err := os.Stat(path); err != nil {
		if explicit != "" {
			return doctorCheck{Name: "Config file", Message: fmt.Sprintf("not found: %s", path)}
		}
		return doctorCheck{Name: "Config file", Passed: true, Message: "using built-in defaults"}
	}
	return doctorCheck{Name: "Config file", Passed: true, Message: path}
}

// checkDataDir verifies that the data directory exists (creating it if
// needed) and accepts writes.
func checkDataDir(dir string) doctorCheck {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return doctorCheck{Name: "Data directory", Message: fmt.Sprintf("cannot create %s: %v", dir, err)}
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return doctorCheck{Name: "Data directory", Message: fmt.Sprintf("not writable: %s", dir)}
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return doctorCheck{Name: "Data directory", Passed: true, Message: dir}
}

// checkDatabase opens the database, applying migrations, and reports its
// schema version and row counts.
func checkDatabase(path string) doctorCheck {
	db, err := store.Open(path)
	if err != nil {
		return doctorCheck{Name: "SQLite database", Message: fmt.Sprintf("open failed: %v", err)}
	}
	defer func() { _ = db.Close() }()

	version, err := db.SchemaVersion()
	if err != nil {
		return doctorCheck{Name: "SQLite database", Message: fmt.Sprintf("schema unreadable: %v", err)}
	}
	stats, err := db.Stats()
	if err != nil {
		return doctorCheck{Name: "SQLite database", Message: fmt.Sprintf("query failed: %v", err)}
	}
	msg := fmt.Sprintf("schema v%d, %d entries, %d habit days, %d notes",
		version, stats.Entries, stats.HabitDays, stats.Gratitude)

	latest, err := db.LatestEntry()
	switch {
	case errors.Is(err, store.ErrNotFound):
		msg += ", no check-ins yet"
	case err != nil:
		return doctorCheck{Name: "SQLite database", Message: fmt.Sprintf("latest entry unreadable: %v", err)}
	default:
		msg += ", last check-in " + latest.Date
	}
	return doctorCheck{Name: "SQLite database", Passed: true, Message: msg}
}

func checkTimezone(name string) doctorCheck {
	loc, err := wellness.LoadLocation(name)
	if err != nil {
		return doctorCheck{Name: "Timezone", Message: fmt.Sprintf("unknown timezone %q", name)}
	}
	return doctorCheck{Name: "Timezone", Passed: true, Message: loc.String()}
}

func checkStreakMode(mode string) doctorCheck {
	switch mode {
	case "counter":
		return doctorCheck{Name: "Streak mode", Passed: true, Message: "counter (toggle-maintained)"}
	case "derived":
		return doctorCheck{Name: "Streak mode", Passed: true, Message: "derived (consecutive days)"}
	}
	return doctorCheck{Name: "Streak mode", Message: fmt.Sprintf("unknown mode %q", mode)}
}

// checkAnimation tries the configured animation URL once. A disabled
// animation passes; an unreachable one fails but never blocks other commands.
func checkAnimation(ctx context.Context, cfg *config.Config) doctorCheck {
	if !cfg.Animation.Enabled || cfg.Animation.URL == "" {
		return doctorCheck{Name: "Breathing animation", Passed: true, Message: "disabled"}
	}
	if _, ok := animationFetcher(cfg).Fetch(ctx); !ok {
		return doctorCheck{Name: "Breathing animation", Message: fmt.Sprintf("unavailable: %s", cfg.Animation.URL)}
	}
	return doctorCheck{Name: "Breathing animation", Passed: true, Message: cfg.Animation.URL}
}

func checkLogFile(dir string) doctorCheck {
	path := logger.Path(dir)
	info, err := os.Stat(path)
	if err != nil {
		return doctorCheck{Name: "Log file", Passed: true, Message: "not created yet"}
	}
	return doctorCheck{Name: "Log file", Passed: true, Message: fmt.Sprintf("%s (%d KB)", path, info.Size()/1024)}
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blackwell-systems/mindpatch/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard as a local JSON API",
	Long: `Start a local HTTP server exposing the dashboard, check-ins, habit
tracker and gratitude journal as JSON. Stops cleanly on Ctrl-C.

Routes:
  GET  /api/health          GET  /api/dashboard
  POST /api/entries         GET  /api/suggestion
  GET  /api/insight         GET  /api/habits
  POST /api/habits/toggle   GET  /api/gratitude
  POST /api/gratitude       GET  /api/animation`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	addr := serveAddr
	if addr == "" {
		addr = e.cfg.Server.Addr
	}

	if !flagVerbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(e.out, " mindpatch API on http://%s (Ctrl-C to stop)\n", addr)
	return server.New(e.tr, server.DefaultOptions).Serve(ctx, addr)
}

// commandContext returns cmd's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Command aggregate runs one monthly stats aggregation and prints the run
// summary as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/app"
	"github.com/cmlabs-hris/worktime-stats/internal/config"
	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/validator"
)

func main() {
	os.Exit(run())
}

func run() int {
	now := time.Now()
	year := flag.Int("year", now.Year(), "year to aggregate")
	month := flag.Int("month", int(now.Month()), "month to aggregate (1-12)")
	employee := flag.String("employee", "", "restrict the run to one employee id")
	force := flag.Bool("force", false, "recompute even when attendance is unchanged")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		return 1
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer a.Close(context.Background())

	req := stats.RunAggregationRequest{Year: *year, Month: *month, Force: *force}
	if !validator.IsEmpty(*employee) {
		id := strings.TrimSpace(*employee)
		req.EmployeeID = &id
	}

	summary, runErr := a.StatsService.RunMonthlyAggregation(ctx, req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		slog.Error("Failed to write summary", "error", err)
		return 1
	}

	if runErr != nil {
		slog.Error("Monthly aggregation failed", "error", runErr)
		return 1
	}
	if summary.Errors > 0 {
		return 2
	}
	return 0
}

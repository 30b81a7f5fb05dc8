package main

import (
	"fmt"
	"os"

	"avalonreport/adapters/csvfile"
	"avalonreport/adapters/excel"
	"avalonreport/adapters/render"
	"avalonreport/app"
	"avalonreport/internal"
	"avalonreport/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for local runs
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := internal.NewDefaultLogger()
	svc := app.NewReportService(
		csvfile.NewReader(cfg.Paths.DataFile),
		render.NewDashboard(cfg.Render),
		excel.NewStatsWriter(),
		cfg,
		logger,
	)

	stats, err := svc.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stats.Print(os.Stdout)
}

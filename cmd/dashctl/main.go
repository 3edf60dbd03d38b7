// Command dashctl drives the ledger dashboard from a terminal.
//
//	dashctl show
//	dashctl topup <amount>
//	dashctl tx <credit|debit> <amount>
//	dashctl report
//	dashctl watch
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ledgerdash/internal/config"
	"ledgerdash/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	fs := flag.NewFlagSet("dashctl", flag.ExitOnError)
	fs.StringVar(&cfg.DashboardURL, "url", cfg.DashboardURL, "dashboard backend base URL")
	fs.StringVar(&cfg.DashboardToken, "token", cfg.DashboardToken, "bearer token issued by the user service")
	fs.Usage = func() { usage(fs.Output(), fs) }
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fs.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dashctl:", err)
		os.Exit(1)
	}
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: dashctl [flags] show | topup <amount> | tx <credit|debit> <amount> | report | watch")
	fs.PrintDefaults()
}

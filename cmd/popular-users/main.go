package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"matchly/internal/app"

	logger "github.com/Bparsons0904/goLogger"
)

// popular-users runs a single popularity scan and exits non-zero when the
// scan could not select candidates or acquire the run lock.
func main() {
	log := logger.New("popular-users").Function("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := app.New()
	if err != nil {
		log.Er("failed to initialize app", err)
		os.Exit(1)
	}

	os.Exit(run(ctx, app, log))
}

func run(ctx context.Context, app *app.App, log logger.Logger) int {
	defer func() {
		if err := app.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	fmt.Println("Checking for popular users...")

	report, err := app.Services.Popularity.ScanAndNotify(ctx)
	if err != nil {
		log.Er("popularity scan failed", err)
		fmt.Printf("Error checking popular users: %v\n", err)
		return 1
	}

	for _, result := range report.Results {
		if result.Err != nil {
			fmt.Printf("Failed to notify about %s (ID: %d): %v\n", result.Name, result.UserID, result.Err)
			continue
		}
		if result.Skipped {
			fmt.Printf("Skipped %s (ID: %d), already notified\n", result.Name, result.UserID)
			continue
		}
		fmt.Printf("Notified admin about %s (ID: %d) with %d likes\n", result.Name, result.UserID, result.LikeCount)
	}

	fmt.Printf(
		"Found %d popular users, notified %d, failed %d, skipped %d in %s\n",
		report.Selected,
		report.Notified,
		report.Failed,
		report.Skipped,
		report.Duration(),
	)

	return 0
}

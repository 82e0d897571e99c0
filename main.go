package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/Dimaschel/FullStack/modules/api"
	"github.com/Dimaschel/FullStack/modules/auth"
	"github.com/Dimaschel/FullStack/modules/profile"
	"github.com/Dimaschel/FullStack/modules/schedule"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== FullStack Help Scheduler ===")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())
	app.Register(profile.NewModule())
	app.Register(schedule.NewModule()) // depends on auth
	app.Register(api.NewModule())      // depends on auth, profile, schedule

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (%s):", addr)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/register              - Register as NEEDY or HELPER")
	log.Println("  POST   /auth/login                 - Login and get tokens")
	log.Println("  POST   /auth/refresh               - Refresh access token")
	log.Println("  GET    /health                     - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /me                         - Current user and profile")
	log.Println("  GET    /schedules                  - List schedules")
	log.Println("  GET    /schedules/:id              - Get schedule")
	log.Println("  POST   /schedules                  - Create schedule (NEEDY)")
	log.Println("  PATCH  /schedules/:id/date         - Reschedule (NEEDY, owner)")
	log.Println("  DELETE /schedules/:id              - Delete schedule (NEEDY, owner)")
	log.Println("  PATCH  /schedules/:id/rating       - Rate schedule (NEEDY)")
	log.Println("  PATCH  /schedules/:id/status       - Set status (NEEDY, ADMIN)")
	log.Println("  PATCH  /schedules/:id/claim        - Claim schedule (HELPER)")
	log.Println("  PATCH  /schedules/:id/release      - Release schedule (HELPER)")
	log.Println("  POST   /profiles                   - Create own profile")
	log.Println("  GET    /profiles                   - List profiles")
	log.Println("  GET    /profiles/:userId           - Get profile")
	log.Println("  GET    /users/:id                  - Get user (ADMIN)")
	log.Println("  DELETE /users/:id                  - Delete user and profile (ADMIN)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	emailPkg "gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/storage/backup"
	bookingStore "gymdesk/internal/adapters/storage/booking"
	categoryStore "gymdesk/internal/adapters/storage/category"
	lessonStore "gymdesk/internal/adapters/storage/lesson"
	studentStore "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/adapters/storage/table"
	"gymdesk/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	if os.Getenv("GYMDESK_DEBUG") != "" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Flat-file store: one CSV per collection under the data directory.
	dataDir := envOrDefault("GYMDESK_DATA_DIR", "data")
	files := table.NewFiles(dataDir)
	schemas := []table.Schema{
		lessonStore.Schema,
		studentStore.Schema,
		bookingStore.Schema,
		categoryStore.Schema,
	}
	if err := files.EnsureFiles(schemas...); err != nil {
		log.Fatalf("failed to prepare data files: %v", err)
	}
	log.Printf("Data directory ready: %s", dataDir)

	stores := &web.Stores{
		LessonStore:   lessonStore.NewCSVStore(files),
		StudentStore:  studentStore.NewCSVStore(files),
		BookingStore:  bookingStore.NewCSVStore(files),
		CategoryStore: categoryStore.NewCSVStore(files),
		Archive:       backup.NewArchive(files, schemas...),
	}

	// Coach passcode: hashed once at startup, compared on every login.
	passcode := envOrDefault("GYMDESK_COACH_PASSCODE", "0000")
	if passcode == "0000" && os.Getenv("GYMDESK_ENV") == "production" {
		log.Fatal("GYMDESK_COACH_PASSCODE must be set in production")
	}
	hash, err := orchestrators.HashPasscode(passcode)
	if err != nil {
		log.Fatalf("failed to hash passcode: %v", err)
	}
	web.SetCoachPasscodeHash(hash)

	// Configure email sender
	resendKey := os.Getenv("GYMDESK_RESEND_KEY")
	emailFrom := envOrDefault("GYMDESK_RESEND_FROM", "GymDesk <noreply@example.com>")
	coachEmail := os.Getenv("GYMDESK_COACH_EMAIL")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, coachEmail)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, coachEmail)
		if os.Getenv("GYMDESK_ENV") == "production" {
			log.Println("WARNING: GYMDESK_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set GYMDESK_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware
	mux := web.NewMux("static", stores)

	// Start server
	addr := envOrDefault("GYMDESK_ADDR", ":8080")
	log.Printf("GymDesk %s starting on %s (env=%s, data=%s)", version, addr, envOrDefault("GYMDESK_ENV", "development"), dataDir)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

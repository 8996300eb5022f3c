package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/luiizaferreirafonseca/rental-engine/internal/config"
	"github.com/luiizaferreirafonseca/rental-engine/internal/repository"
	"github.com/luiizaferreirafonseca/rental-engine/pkg/pricing"
)

func main() {
	_ = godotenv.Load()

	log.Println("Starting rental scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rentalRepo := repository.NewRentalRepository(db)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Daily sweep flagging active rentals past their expected end date.
	_, err = c.AddFunc(cfg.Scheduler.OverdueCron, func() {
		sweepOverdueRentals(rentalRepo)
	})
	if err != nil {
		log.Fatalf("Error scheduling overdue rental sweep: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func sweepOverdueRentals(rentalRepo repository.RentalRepository) {
	log.Println("Running overdue rental sweep...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()

	overdue, err := rentalRepo.FindOverdue(ctx, now)
	if err != nil {
		log.Printf("Overdue sweep failed: %v", err)
		return
	}

	for _, rental := range overdue {
		lateDays := pricing.LateDays(now, rental.ExpectedEndDate)
		accrued := pricing.LineTotal(rental.DailyRate, lateDays)
		log.Printf("Rental %s is %d day(s) overdue, penalty accruing at %s/day (currently %s)",
			rental.ID, lateDays, rental.DailyRate, accrued)
	}

	log.Printf("Overdue sweep finished: %d rental(s) overdue", len(overdue))
}

package cron

import (
	"log"
	"time"

	"membership/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
	dues *services.DuesService
}

func NewScheduler(dues *services.DuesService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron: c,
		dues: dues,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Schedule waiver expiry to run every hour
	// Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runWaiverExpiry)
	if err != nil {
		log.Printf("Error scheduling waiver expiry job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runWaiverExpiry downgrades waivers whose promised date has passed
func (s *Scheduler) runWaiverExpiry() {
	log.Println("Running waiver expiry job...")

	count, err := s.dues.ExpireWaivers(time.Now())
	if err != nil {
		log.Printf("Error during waiver expiry: %v", err)
		return
	}

	if count == 0 {
		log.Println("No expired waivers found")
		return
	}

	log.Printf("Waiver expiry job completed, %d waivers downgraded", count)
}

// RunNow manually triggers the waiver expiry job (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering waiver expiry job...")
	s.runWaiverExpiry()
}

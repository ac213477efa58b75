// Package scheduler runs the background jobs: the daily mark-price refresh
// and the month-close recap computation.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tlecomte/finance-tracker-backend/internal/config"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron         *cron.Cron
	quoteService *service.QuoteService
	recapService *service.RecapService
	userRepo     *repository.UserRepository
}

// New creates a scheduler with the two standing jobs registered on the
// configured schedules. Call Start to begin execution.
func New(
	cfg config.SchedulerConfig,
	quoteService *service.QuoteService,
	recapService *service.RecapService,
	userRepo *repository.UserRepository,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:         cron.New(),
		quoteService: quoteService,
		recapService: recapService,
		userRepo:     userRepo,
	}

	if _, err := s.cron.AddFunc(cfg.QuoteSpec, s.refreshQuotes); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.MonthCloseSpec, s.closeMonth); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running the registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refreshQuotes() {
	refreshed, err := s.quoteService.RefreshAll()
	if err != nil {
		log.Printf("scheduled quote refresh failed: %v", err)
		return
	}
	log.Printf("scheduled quote refresh: %d symbols updated", refreshed)
}

// closeMonth computes the recap of the month that just ended for every user.
// One failing user does not block the rest.
func (s *Scheduler) closeMonth() {
	month, year := previousMonth(time.Now().UTC())

	userIDs, err := s.userRepo.ListUserIDs()
	if err != nil {
		log.Printf("month close: failed to list users: %v", err)
		return
	}

	for _, userID := range userIDs {
		if _, err := s.recapService.ComputeRecap(userID, month, year); err != nil {
			log.Printf("month close: recap for user %s failed: %v", userID, err)
		}
	}

	log.Printf("month close: recaps computed for %d/%d", month, year)
}

// previousMonth returns the month and year immediately before the given time.
func previousMonth(now time.Time) (int, int) {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return int(prev.Month()), prev.Year()
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled maintenance sweeps: flagging overdue
// borrows and reminding students of fees due soon.
type CronService struct {
	libraryRepo     repositories.LibraryRepository
	feeRepo         repositories.FeeRepository
	notificationsvc *NotificationService
	scheduler       *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(libraryRepo repositories.LibraryRepository, feeRepo repositories.FeeRepository, notificationSvc *NotificationService) *CronService {
	return &CronService{
		libraryRepo:     libraryRepo,
		feeRepo:         feeRepo,
		notificationsvc: notificationSvc,
		scheduler:       cron.New(),
	}
}

// Start registers the daily jobs and launches the scheduler
func (s *CronService) Start() {
	// Overdue sweep at 00:30 every day
	s.scheduler.AddFunc("30 0 * * *", s.SweepOverdueBorrows)

	// Fee reminders at 08:00 every day
	s.scheduler.AddFunc("0 8 * * *", s.SendFeeReminders)

	s.scheduler.Start()
	log.Println("🚀 CronService started")
}

// Stop gracefully stops the scheduler
func (s *CronService) Stop() {
	s.scheduler.Stop()
	log.Println("🛑 CronService stopped")
}

// SweepOverdueBorrows flags every open borrow past its due date as OVERDUE
func (s *CronService) SweepOverdueBorrows() {
	ctx := context.Background()

	count, err := s.libraryRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Overdue sweep error: %v", err)
		return
	}
	if count > 0 {
		log.Printf("📚 Marked %d borrows overdue", count)
	}
}

// SendFeeReminders notifies students with unpaid fees due within 3 days
func (s *CronService) SendFeeReminders() {
	ctx := context.Background()

	now := time.Now()
	records, err := s.feeRepo.ListRecordsDueBetween(ctx, now, now.AddDate(0, 0, 3))
	if err != nil {
		log.Printf("❌ Fee reminder query error: %v", err)
		return
	}

	sent := 0
	for _, record := range records {
		if record.Student == nil {
			continue
		}

		_, err := s.notificationsvc.Send(ctx, &NotificationInput{
			UserID: record.Student.UserID,
			Title:  "Fee payment due",
			Message: fmt.Sprintf("Your fee of %.2f for semester %d is due on %s. Outstanding balance: %.2f.",
				record.TotalAmount, record.Semester, record.DueDate.Format("02 Jan 2006"), record.Balance()),
			Type: "FEE",
		})
		if err != nil {
			log.Printf("❌ Fee reminder for record %d error: %v", record.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("📅 Sent %d fee reminders", sent)
	}
}

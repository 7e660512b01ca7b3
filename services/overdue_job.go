package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// OverdueSweepService marks past-due unpaid records as Overdue. The sweep
// runs nightly; it can also be invoked on demand from the admin surface.
type OverdueSweepService struct {
	db *gorm.DB
}

func NewOverdueSweepService(db *gorm.DB) *OverdueSweepService {
	return &OverdueSweepService{db: db}
}

// MarkOverdue flips Pending and Partial records whose due date has passed.
// Returns the number of records updated.
func (s *OverdueSweepService) MarkOverdue(now time.Time) (int64, error) {
	result := s.db.Exec(
		`UPDATE fee_records
		 SET status = 'Overdue', updated_at = ?
		 WHERE status IN ('Pending', 'Partial')
		   AND due_date IS NOT NULL AND due_date < ?
		   AND deleted_at IS NULL`,
		now, now)
	if result.Error != nil {
		return 0, fmt.Errorf("overdue sweep failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// StartOverdueScheduler runs the sweep every night at 02:00 server time.
// The returned cron must be stopped on shutdown.
func StartOverdueScheduler(db *gorm.DB) *cron.Cron {
	svc := NewOverdueSweepService(db)

	c := cron.New()
	_, err := c.AddFunc("0 2 * * *", func() {
		count, err := svc.MarkOverdue(time.Now())
		if err != nil {
			log.Printf("overdue sweep error: %v", err)
			return
		}
		if count > 0 {
			log.Printf("overdue sweep: %d records marked overdue", count)
		}
	})
	if err != nil {
		log.Printf("failed to schedule overdue sweep: %v", err)
		return c
	}

	c.Start()
	return c
}

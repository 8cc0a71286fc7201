package activity

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/activity/mock_repository.go -package=mock_activity

// Repository defines operations for the append-only daily log table.
type Repository interface {
	FindAll(ctx context.Context) ([]DailyLog, error)
	Create(ctx context.Context, log *DailyLog) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all daily logs ordered by date, then insertion.
func (r *DBRepository) FindAll(ctx context.Context) ([]DailyLog, error) {
	var logs []DailyLog
	if err := r.db.SelectContext(ctx, &logs, "SELECT * FROM daily_logs ORDER BY log_date, id"); err != nil {
		return nil, fmt.Errorf("load all daily logs: %w", err)
	}
	return logs, nil
}

// Create inserts a new daily log and assigns its ID.
func (r *DBRepository) Create(ctx context.Context, log *DailyLog) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_logs (log_date, phase_id, topic_id, project_id, hours_spent, problems_solved, activities, key_takeaway, breakdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.Date, log.PhaseID, log.TopicID, log.ProjectID, log.HoursSpent, log.ProblemsSolved,
		log.Activities, log.KeyTakeaway, log.Breakdown, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert daily log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get daily log insert ID: %w", err)
	}
	log.ID = id
	return nil
}

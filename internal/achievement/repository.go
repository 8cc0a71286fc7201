package achievement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/database"
)

// ErrNotFound is returned when an achievement does not exist.
var ErrNotFound = errors.New("achievement not found")

//go:generate mockgen -source=repository.go -destination=../mocks/achievement/mock_repository.go -package=mock_achievement

// Repository defines operations for managing achievements.
type Repository interface {
	FindAll(ctx context.Context) ([]Achievement, error)
	RecordUnlock(ctx context.Context, id string, date time.Time) (*Achievement, error)
	Retire(ctx context.Context, id string) error
	Create(ctx context.Context, achievement *Achievement) error
	BatchCreate(ctx context.Context, achievements []Achievement) error
	Reset(ctx context.Context) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

var achievementColumns = []string{"id", "title", "description", "icon", "category", "points", "requirement",
	"unlocked", "unlocked_date", "is_active", "sort_order", "is_default", "manual"}

func achievementArgs(a Achievement) []any {
	return []any{a.ID, a.Title, a.Description, a.Icon, string(a.Category), a.Points, a.Requirement,
		a.Unlocked, a.UnlockedDate, a.IsActive, a.Order, a.IsDefault, a.Manual}
}

// FindAll returns all achievements in display order.
func (r *DBRepository) FindAll(ctx context.Context) ([]Achievement, error) {
	var achievements []Achievement
	if err := r.db.SelectContext(ctx, &achievements, "SELECT * FROM achievements ORDER BY sort_order, id"); err != nil {
		return nil, fmt.Errorf("load all achievements: %w", err)
	}
	return achievements, nil
}

// RecordUnlock unlocks the achievement on date. An already unlocked
// achievement keeps its original date.
func (r *DBRepository) RecordUnlock(ctx context.Context, id string, date time.Time) (*Achievement, error) {
	var unlocked Achievement
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &unlocked, "SELECT * FROM achievements WHERE id = ? FOR UPDATE", id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("load achievement %s: %w", id, err)
		}
		if unlocked.Unlocked {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE achievements SET unlocked = TRUE, unlocked_date = ? WHERE id = ?", date, id); err != nil {
			return fmt.Errorf("unlock achievement %s: %w", id, err)
		}
		unlocked.Unlock(date)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &unlocked, nil
}

// Retire removes the achievement from the available pool.
func (r *DBRepository) Retire(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE achievements SET is_active = FALSE WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("retire achievement %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM achievements WHERE id = ?)", id); err != nil {
			return fmt.Errorf("check achievement %s: %w", id, err)
		}
		if !exists {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
	}
	return nil
}

// Create inserts a single achievement.
func (r *DBRepository) Create(ctx context.Context, achievement *Achievement) error {
	query := database.BuildMultiRowInsert("achievements", achievementColumns, 1)
	if _, err := r.db.ExecContext(ctx, query, achievementArgs(*achievement)...); err != nil {
		return fmt.Errorf("insert achievement %s: %w", achievement.ID, err)
	}
	return nil
}

// BatchCreate inserts multiple achievements in one statement.
func (r *DBRepository) BatchCreate(ctx context.Context, achievements []Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	var values []any
	for _, a := range achievements {
		values = append(values, achievementArgs(a)...)
	}
	query := database.BuildMultiRowInsert("achievements", achievementColumns, len(achievements))
	if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("insert achievements: %w", err)
	}
	return nil
}

// Reset relocks and reactivates every achievement and deletes the ones that
// are not part of the default catalog.
func (r *DBRepository) Reset(ctx context.Context) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE achievements SET unlocked = FALSE, unlocked_date = NULL, is_active = TRUE"); err != nil {
			return fmt.Errorf("relock achievements: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM achievements WHERE is_default = FALSE"); err != nil {
			return fmt.Errorf("delete generated achievements: %w", err)
		}
		return nil
	})
}

package curriculum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/database"
)

// ErrNotFound is returned when a topic, resource, project or phase does not exist.
var ErrNotFound = errors.New("not found")

//go:generate mockgen -source=repository.go -destination=../mocks/curriculum/mock_repository.go -package=mock_curriculum

// Repository defines operations for managing the curriculum.
type Repository interface {
	FindAll(ctx context.Context) ([]Phase, error)
	SetTopicCompleted(ctx context.Context, topicID string, completed bool) (*Phase, error)
	SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (*Phase, error)
	SetProjectStatus(ctx context.Context, projectID string, status ProjectStatus) (*Phase, error)
	BatchCreate(ctx context.Context, phases []Phase) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// FindAll returns every phase with its topics, resources and projects, with
// progress recalculated from the loaded rows.
func (r *DBRepository) FindAll(ctx context.Context) ([]Phase, error) {
	var phases []Phase
	if err := sqlx.SelectContext(ctx, r.db, &phases, "SELECT * FROM phases ORDER BY sort_order, id"); err != nil {
		return nil, fmt.Errorf("load all phases: %w", err)
	}
	var topics []Topic
	if err := sqlx.SelectContext(ctx, r.db, &topics, "SELECT * FROM topics ORDER BY sort_order, id"); err != nil {
		return nil, fmt.Errorf("load all topics: %w", err)
	}
	var resources []Resource
	if err := sqlx.SelectContext(ctx, r.db, &resources, "SELECT * FROM resources ORDER BY sort_order, id"); err != nil {
		return nil, fmt.Errorf("load all resources: %w", err)
	}
	var projects []Project
	if err := sqlx.SelectContext(ctx, r.db, &projects, "SELECT * FROM projects ORDER BY sort_order, id"); err != nil {
		return nil, fmt.Errorf("load all projects: %w", err)
	}

	assemble(phases, topics, resources, projects)
	return phases, nil
}

func assemble(phases []Phase, topics []Topic, resources []Resource, projects []Project) {
	resourcesByTopic := make(map[string][]Resource)
	for _, res := range resources {
		resourcesByTopic[res.TopicID] = append(resourcesByTopic[res.TopicID], res)
	}
	topicsByPhase := make(map[string][]Topic)
	for _, t := range topics {
		t.Resources = resourcesByTopic[t.ID]
		topicsByPhase[t.PhaseID] = append(topicsByPhase[t.PhaseID], t)
	}
	projectsByPhase := make(map[string][]Project)
	for _, p := range projects {
		projectsByPhase[p.PhaseID] = append(projectsByPhase[p.PhaseID], p)
	}
	for i := range phases {
		phases[i].Topics = topicsByPhase[phases[i].ID]
		phases[i].Projects = projectsByPhase[phases[i].ID]
		phases[i].Recalculate()
	}
}

// SetTopicCompleted toggles a topic and returns its phase with refreshed progress.
func (r *DBRepository) SetTopicCompleted(ctx context.Context, topicID string, completed bool) (*Phase, error) {
	return r.updateAndReload(ctx,
		"SELECT phase_id FROM topics WHERE id = ?",
		"UPDATE topics SET completed = ? WHERE id = ?",
		topicID, completed)
}

// SetResourceCompleted toggles a resource and returns its phase.
func (r *DBRepository) SetResourceCompleted(ctx context.Context, resourceID string, completed bool) (*Phase, error) {
	return r.updateAndReload(ctx,
		"SELECT t.phase_id FROM resources r JOIN topics t ON r.topic_id = t.id WHERE r.id = ?",
		"UPDATE resources SET completed = ? WHERE id = ?",
		resourceID, completed)
}

// SetProjectStatus changes a project's status and returns its phase with refreshed progress.
func (r *DBRepository) SetProjectStatus(ctx context.Context, projectID string, status ProjectStatus) (*Phase, error) {
	return r.updateAndReload(ctx,
		"SELECT phase_id FROM projects WHERE id = ?",
		"UPDATE projects SET status = ? WHERE id = ?",
		projectID, string(status))
}

func (r *DBRepository) updateAndReload(ctx context.Context, lookupQuery, updateQuery, id string, value any) (*Phase, error) {
	var phase *Phase
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var phaseID string
		if err := sqlx.GetContext(ctx, tx, &phaseID, lookupQuery, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("look up phase of %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, updateQuery, value, id); err != nil {
			return fmt.Errorf("update %s: %w", id, err)
		}

		loaded, err := findPhase(ctx, tx, phaseID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE phases SET progress = ?, status = ? WHERE id = ?",
			int(loaded.Progress), string(loaded.Status), loaded.ID); err != nil {
			return fmt.Errorf("update progress of phase %s: %w", loaded.ID, err)
		}
		phase = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return phase, nil
}

func findPhase(ctx context.Context, q queryer, phaseID string) (*Phase, error) {
	var phase Phase
	if err := sqlx.GetContext(ctx, q, &phase, "SELECT * FROM phases WHERE id = ?", phaseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("phase %s: %w", phaseID, ErrNotFound)
		}
		return nil, fmt.Errorf("load phase %s: %w", phaseID, err)
	}
	var topics []Topic
	if err := sqlx.SelectContext(ctx, q, &topics, "SELECT * FROM topics WHERE phase_id = ? ORDER BY sort_order, id", phaseID); err != nil {
		return nil, fmt.Errorf("load topics of phase %s: %w", phaseID, err)
	}
	var resources []Resource
	if err := sqlx.SelectContext(ctx, q, &resources,
		"SELECT r.* FROM resources r JOIN topics t ON r.topic_id = t.id WHERE t.phase_id = ? ORDER BY r.sort_order, r.id", phaseID); err != nil {
		return nil, fmt.Errorf("load resources of phase %s: %w", phaseID, err)
	}
	var projects []Project
	if err := sqlx.SelectContext(ctx, q, &projects, "SELECT * FROM projects WHERE phase_id = ? ORDER BY sort_order, id", phaseID); err != nil {
		return nil, fmt.Errorf("load projects of phase %s: %w", phaseID, err)
	}

	phases := []Phase{phase}
	assemble(phases, topics, resources, projects)
	return &phases[0], nil
}

// BatchCreate inserts phases with their topics, resources and projects in a single transaction.
func (r *DBRepository) BatchCreate(ctx context.Context, phases []Phase) error {
	if len(phases) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var phaseArgs, topicArgs, resourceArgs, projectArgs []any
		var topicCount, resourceCount, projectCount int
		for _, p := range phases {
			p.Recalculate()
			phaseArgs = append(phaseArgs, p.ID, p.Title, p.Description, p.StartDate, p.EndDate, p.Weeks,
				int(p.Progress), string(p.Status), p.LeetcodeTarget, p.LeetcodeCompleted, p.Order)
			for _, t := range p.Topics {
				topicArgs = append(topicArgs, t.ID, p.ID, t.Name, t.Description, t.Completed, t.Order)
				topicCount++
				for _, res := range t.Resources {
					resourceArgs = append(resourceArgs, res.ID, t.ID, res.Title, res.URL, res.Type, res.Completed, res.Order)
					resourceCount++
				}
			}
			for _, pr := range p.Projects {
				projectArgs = append(projectArgs, pr.ID, p.ID, pr.Name, pr.Description, string(pr.Status), pr.Technologies, pr.IsCustom, pr.Order)
				projectCount++
			}
		}

		inserts := []struct {
			table   string
			columns []string
			rows    int
			args    []any
		}{
			{"phases", []string{"id", "title", "description", "start_date", "end_date", "weeks", "progress", "status", "leetcode_target", "leetcode_completed", "sort_order"}, len(phases), phaseArgs},
			{"topics", []string{"id", "phase_id", "name", "description", "completed", "sort_order"}, topicCount, topicArgs},
			{"resources", []string{"id", "topic_id", "title", "url", "type", "completed", "sort_order"}, resourceCount, resourceArgs},
			{"projects", []string{"id", "phase_id", "name", "description", "status", "technologies", "is_custom", "sort_order"}, projectCount, projectArgs},
		}
		for _, ins := range inserts {
			if ins.rows == 0 {
				continue
			}
			query := database.BuildMultiRowInsert(ins.table, ins.columns, ins.rows)
			if _, err := tx.ExecContext(ctx, query, ins.args...); err != nil {
				return fmt.Errorf("insert %s: %w", ins.table, err)
			}
		}
		return nil
	})
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoval/hirepath/internal/db"
	"github.com/dkoval/hirepath/internal/domain"
)

// stageColumns is the canonical SELECT column list for stages.
const stageColumns = `id, application_id, type, order_index, status, title,
		visible_to_candidate, data, created_by, created_at, updated_at, completed_at`

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

// NewSQLiteStageRepo creates a new SQLiteStageRepo over a *sql.DB or *sql.Tx.
func NewSQLiteStageRepo(conn db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: conn}
}

func (r *SQLiteStageRepo) Create(ctx context.Context, s *domain.ApplicationStage) error {
	data, err := domain.MarshalStageData(s.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO stages (id, application_id, type, order_index, status, title,
		visible_to_candidate, data, created_by, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.ApplicationID,
		string(s.Type),
		s.Order,
		string(s.Status),
		s.Title,
		boolToInt(s.VisibleToCandidate),
		string(data),
		s.CreatedBy,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
		nullableTimeToString(s.CompletedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: stages.id") {
			return fmt.Errorf("stage %s: %w", s.ID, ErrDuplicateID)
		}
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) GetByID(ctx context.Context, id string) (*domain.ApplicationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanStage(row)
}

func (r *SQLiteStageRepo) ListByApplication(ctx context.Context, applicationID string) ([]*domain.ApplicationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE application_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("listing stages by application: %w", err)
	}
	defer rows.Close()
	return r.scanStages(rows)
}

func (r *SQLiteStageRepo) ListByType(ctx context.Context, applicationID string, t domain.StageType) ([]*domain.ApplicationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages
		WHERE application_id = ? AND type = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, applicationID, string(t))
	if err != nil {
		return nil, fmt.Errorf("listing stages by type: %w", err)
	}
	defer rows.Close()
	return r.scanStages(rows)
}

func (r *SQLiteStageRepo) ListByStatus(ctx context.Context, applicationID string, st domain.StageStatus) ([]*domain.ApplicationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages
		WHERE application_id = ? AND status = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, applicationID, string(st))
	if err != nil {
		return nil, fmt.Errorf("listing stages by status: %w", err)
	}
	defer rows.Close()
	return r.scanStages(rows)
}

func (r *SQLiteStageRepo) ListVisible(ctx context.Context, applicationID string, role domain.Role) ([]*domain.ApplicationStage, error) {
	var query string
	if role == domain.RoleCandidate {
		query = `SELECT ` + stageColumns + ` FROM stages
			WHERE application_id = ? AND visible_to_candidate = 1 ORDER BY order_index`
	} else {
		query = `SELECT ` + stageColumns + ` FROM stages
			WHERE application_id = ? ORDER BY order_index`
	}
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("listing visible stages: %w", err)
	}
	defer rows.Close()
	return r.scanStages(rows)
}

func (r *SQLiteStageRepo) FindActiveStage(ctx context.Context, applicationID string) (*domain.ApplicationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages
		WHERE application_id = ?
		  AND status IN ('in_progress', 'awaiting_candidate', 'awaiting_recruiter')
		ORDER BY order_index LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, applicationID)
	stage, err := r.scanStage(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return stage, nil
}

func (r *SQLiteStageRepo) UpdateStatus(ctx context.Context, stageID string, newStatus domain.StageStatus, now time.Time) error {
	var res sql.Result
	var err error
	if newStatus == domain.StatusCompleted {
		query := `UPDATE stages SET status = ?, updated_at = ?, completed_at = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, query,
			string(newStatus), now.Format(time.RFC3339), now.Format(time.RFC3339), stageID)
	} else {
		query := `UPDATE stages SET status = ?, updated_at = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, query,
			string(newStatus), now.Format(time.RFC3339), stageID)
	}
	if err != nil {
		return fmt.Errorf("updating stage status: %w", err)
	}
	return requireRowAffected(res, stageID)
}

func (r *SQLiteStageRepo) MergeData(ctx context.Context, stageID string, partial []byte, now time.Time) error {
	stage, err := r.GetByID(ctx, stageID)
	if err != nil {
		return err
	}
	merged, err := domain.MergeStageData(stage.Data, partial)
	if err != nil {
		return err
	}
	data, err := domain.MarshalStageData(merged)
	if err != nil {
		return err
	}
	query := `UPDATE stages SET data = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(data), now.Format(time.RFC3339), stageID)
	if err != nil {
		return fmt.Errorf("merging stage data: %w", err)
	}
	return requireRowAffected(res, stageID)
}

func (r *SQLiteStageRepo) UpdateMeta(ctx context.Context, stageID string, title *string, visible *bool, now time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{now.Format(time.RFC3339)}
	if title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *title)
	}
	if visible != nil {
		sets = append(sets, "visible_to_candidate = ?")
		args = append(args, boolToInt(*visible))
	}
	args = append(args, stageID)
	query := `UPDATE stages SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating stage meta: %w", err)
	}
	return requireRowAffected(res, stageID)
}

func (r *SQLiteStageRepo) CountByType(ctx context.Context, applicationID string, t domain.StageType) (int, error) {
	query := `SELECT COUNT(*) FROM stages WHERE application_id = ? AND type = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, applicationID, string(t)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting stages by type: %w", err)
	}
	return count, nil
}

func (r *SQLiteStageRepo) MaxOrder(ctx context.Context, applicationID string) (int, error) {
	query := `SELECT COALESCE(MAX(order_index), -1) FROM stages WHERE application_id = ?`
	var max int
	if err := r.db.QueryRowContext(ctx, query, applicationID).Scan(&max); err != nil {
		return 0, fmt.Errorf("finding max stage order: %w", err)
	}
	return max, nil
}

func (r *SQLiteStageRepo) ReplaceOrders(ctx context.Context, stages []*domain.ApplicationStage, now time.Time) error {
	// Two passes through a disjoint range, since (application_id, order_index)
	// is unique and the new orders may collide with the old ones mid-rewrite.
	const offset = 1 << 20
	for _, s := range stages {
		query := `UPDATE stages SET order_index = ?, updated_at = ? WHERE id = ?`
		res, err := r.db.ExecContext(ctx, query, s.Order+offset, now.Format(time.RFC3339), s.ID)
		if err != nil {
			return fmt.Errorf("rewriting stage order: %w", err)
		}
		if err := requireRowAffected(res, s.ID); err != nil {
			return err
		}
	}
	for _, s := range stages {
		query := `UPDATE stages SET order_index = ? WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, query, s.Order, s.ID); err != nil {
			return fmt.Errorf("rewriting stage order: %w", err)
		}
	}
	return nil
}

func (r *SQLiteStageRepo) Delete(ctx context.Context, stageID string) error {
	query := `DELETE FROM stages WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, stageID)
	if err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return requireRowAffected(res, stageID)
}

// requireRowAffected converts a zero-row write into ErrNotFound.
func requireRowAffected(res sql.Result, stageID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("stage %s: %w", stageID, ErrNotFound)
	}
	return nil
}

// scanStage scans a single stage from a *sql.Row.
func (r *SQLiteStageRepo) scanStage(row *sql.Row) (*domain.ApplicationStage, error) {
	var s domain.ApplicationStage
	var typeStr, statusStr, dataStr string
	var visibleInt int
	var createdAtStr, updatedAtStr string
	var completedAtStr sql.NullString

	err := row.Scan(
		&s.ID, &s.ApplicationID, &typeStr, &s.Order, &statusStr, &s.Title,
		&visibleInt, &dataStr, &s.CreatedBy, &createdAtStr, &updatedAtStr, &completedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stage: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning stage: %w", err)
	}
	return r.populateStage(&s, typeStr, statusStr, dataStr, visibleInt, createdAtStr, updatedAtStr, completedAtStr)
}

// scanStages scans multiple stages from *sql.Rows.
func (r *SQLiteStageRepo) scanStages(rows *sql.Rows) ([]*domain.ApplicationStage, error) {
	var stages []*domain.ApplicationStage
	for rows.Next() {
		var s domain.ApplicationStage
		var typeStr, statusStr, dataStr string
		var visibleInt int
		var createdAtStr, updatedAtStr string
		var completedAtStr sql.NullString

		err := rows.Scan(
			&s.ID, &s.ApplicationID, &typeStr, &s.Order, &statusStr, &s.Title,
			&visibleInt, &dataStr, &s.CreatedBy, &createdAtStr, &updatedAtStr, &completedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		stage, err := r.populateStage(&s, typeStr, statusStr, dataStr, visibleInt, createdAtStr, updatedAtStr, completedAtStr)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return stages, nil
}

// populateStage fills in parsed fields on a stage after scanning raw values.
func (r *SQLiteStageRepo) populateStage(
	s *domain.ApplicationStage,
	typeStr, statusStr, dataStr string,
	visibleInt int,
	createdAtStr, updatedAtStr string,
	completedAtStr sql.NullString,
) (*domain.ApplicationStage, error) {
	s.Type = domain.StageType(typeStr)
	s.Status = domain.StageStatus(statusStr)
	s.VisibleToCandidate = intToBool(visibleInt)
	s.CompletedAt = parseNullableTime(completedAtStr)

	data, err := domain.UnmarshalStageData([]byte(dataStr))
	if err != nil {
		return nil, fmt.Errorf("decoding stage %s data: %w", s.ID, err)
	}
	s.Data = data

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}

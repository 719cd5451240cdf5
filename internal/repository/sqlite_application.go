package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dkoval/hirepath/internal/db"
	"github.com/dkoval/hirepath/internal/domain"
)

const applicationColumns = `id, candidate_id, job_title, created_at, updated_at`

// SQLiteApplicationRepo implements ApplicationRepo using a SQLite database.
type SQLiteApplicationRepo struct {
	db db.DBTX
}

// NewSQLiteApplicationRepo creates a new SQLiteApplicationRepo over a
// *sql.DB or *sql.Tx.
func NewSQLiteApplicationRepo(conn db.DBTX) *SQLiteApplicationRepo {
	return &SQLiteApplicationRepo{db: conn}
}

func (r *SQLiteApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	query := `INSERT INTO applications (id, candidate_id, job_title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.CandidateID,
		a.JobTitle,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: applications.id") {
			return fmt.Errorf("application %s: %w", a.ID, ErrDuplicateID)
		}
		return fmt.Errorf("inserting application: %w", err)
	}
	return nil
}

func (r *SQLiteApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a domain.Application
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&a.ID, &a.CandidateID, &a.JobTitle, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("application: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning application: %w", err)
	}

	var parseErr error
	a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &a, nil
}

func (r *SQLiteApplicationRepo) List(ctx context.Context) ([]*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		var a domain.Application
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.JobTitle, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}
		var parseErr error
		a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
		}
		apps = append(apps, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating applications: %w", err)
	}
	return apps, nil
}

func (r *SQLiteApplicationRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM applications WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel values
	"strings"      // strings builds the dynamic SET clause for partial updates

	"github.com/tickethub/tickethub/internal/model"
)

// ProjectRepo encapsulates all database queries related to projects.
// It depends on a sql.DB connection which is configured at startup and
// injected here, so tests can supply their own handle.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo constructs a ProjectRepo with the provided DB handle.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = "id, title, description, created_at, updated_at"

func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project and re-reads the stored row so the
// caller receives the DB-assigned id and timestamps, not an echo of
// the input.
func (r *ProjectRepo) Create(ctx context.Context, title, description string) (*model.Project, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (title, description) VALUES (?, ?)",
		title, description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a project by id. It returns ErrProjectNotFound when
// no row matches.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListAll returns every project in creation order.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of the request and refreshes
// updated_at, then returns the stored row. ErrProjectNotFound is
// returned when the project does not exist.
func (r *ProjectRepo) Update(ctx context.Context, id uint64, req *model.UpdateProjectRequest) (*model.Project, error) {
	sets := []string{"updated_at = CURRENT_TIMESTAMP(6)"}
	args := []any{}
	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrProjectNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the project and every ticket that references it. Both
// steps run inside one transaction so a crash cannot leave tickets
// pointing at a deleted project. ErrProjectNotFound is returned when
// the project does not exist; nothing is deleted in that case.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM tickets WHERE project_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrProjectNotFound
		return err
	}
	return tx.Commit()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tickethub/tickethub/internal/model"
)

// TicketRepo encapsulates all database queries related to tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the provided DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

const ticketColumns = "id, title, description, priority, status, project_id, user_id, created_at, updated_at"

func scanTicket(row interface{ Scan(...any) error }) (*model.Ticket, error) {
	var t model.Ticket
	var userID sql.NullInt64
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.ProjectID, &userID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		t.UserID = &uid
	}
	return &t, nil
}

// Create inserts a new ticket and re-reads the stored row. Status is
// always the column default ("open"); the insert never sets it.
// user_id stays NULL for unassigned tickets.
func (r *TicketRepo) Create(ctx context.Context, req *model.CreateTicketRequest) (*model.Ticket, error) {
	var userID any
	if req.UserID != nil {
		userID = *req.UserID
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tickets (title, description, priority, project_id, user_id) VALUES (?, ?, ?, ?, ?)",
		req.Title, req.Description, req.Priority, req.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a ticket by id. It returns ErrTicketNotFound when no
// row matches.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id = ?", id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListAll returns every ticket in creation order.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return r.list(ctx, "SELECT "+ticketColumns+" FROM tickets ORDER BY id")
}

// ListByProject returns the tickets of one project in creation order.
func (r *TicketRepo) ListByProject(ctx context.Context, projectID uint64) ([]model.Ticket, error) {
	return r.list(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE project_id = ? ORDER BY id", projectID)
}

func (r *TicketRepo) list(ctx context.Context, query string, args ...any) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the fields present in the request and refreshes
// updated_at, then returns the stored row. An explicit null userId
// clears the column, so downstream reads never see a half-assigned
// state. project_id is never touched. ErrTicketNotFound is returned
// when the ticket does not exist.
func (r *TicketRepo) Update(ctx context.Context, id uint64, req *model.UpdateTicketRequest) (*model.Ticket, error) {
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
	if req.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *req.Priority)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}
	if req.UserID.Present {
		if req.UserID.Null {
			sets = append(sets, "user_id = NULL")
		} else {
			sets = append(sets, "user_id = ?")
			args = append(args, req.UserID.Value)
		}
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE tickets SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrTicketNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a single ticket. ErrTicketNotFound is returned when
// no row was deleted.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

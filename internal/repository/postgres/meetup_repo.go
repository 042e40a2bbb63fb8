package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetupscheduler/internal/domain"
)

type meetupRepository struct {
	DB *sql.DB
}

func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{
		DB: db,
	}
}

const meetupColumns = "id, title, description, location, date, organizer_id, attachment_id, created_at, updated_at"

func scanMeetup(row interface{ Scan(...any) error }) (*domain.Meetup, error) {
	m := &domain.Meetup{}
	var attachmentNull sql.NullString
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date,
		&m.OrganizerID, &attachmentNull, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if attachmentNull.Valid {
		m.AttachmentID = &attachmentNull.String
	}
	return m, nil
}

func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup) error {
	query := `
		INSERT INTO meetups (title, description, location, date, organizer_id, attachment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		m.Title, m.Description, m.Location, m.Date, m.OrganizerID, m.AttachmentID, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
}

func (r *meetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	query := `
		SELECT ` + meetupColumns + `
		FROM meetups
		WHERE id = $1
	`
	m, err := scanMeetup(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *meetupRepository) Update(ctx context.Context, id string, upd domain.MeetupUpdate) (*domain.Meetup, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *upd.Date)
		n++
	}
	if upd.AttachmentID != nil {
		setClauses = append(setClauses, fmt.Sprintf("attachment_id = $%d", n))
		args = append(args, *upd.AttachmentID)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch the current row.
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE meetups SET %s
		WHERE id = $%d
		RETURNING `+meetupColumns+`
	`, strings.Join(setClauses, ", "), n)
	m, err := scanMeetup(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *meetupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meetups WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetupRepository) ListByDay(ctx context.Context, day *time.Time, p domain.PaginationParams) ([]*domain.Meetup, error) {
	var rows *sql.Rows
	var err error
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		query := `
			SELECT ` + meetupColumns + `
			FROM meetups
			WHERE date >= $1 AND date < $2
			ORDER BY date ASC
			LIMIT $3 OFFSET $4
		`
		rows, err = r.DB.QueryContext(ctx, query, start, end, p.Limit(), p.Offset())
	} else {
		query := `
			SELECT ` + meetupColumns + `
			FROM meetups
			ORDER BY date ASC
			LIMIT $1 OFFSET $2
		`
		rows, err = r.DB.QueryContext(ctx, query, p.Limit(), p.Offset())
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetups := make([]*domain.Meetup, 0)
	for rows.Next() {
		m, err := scanMeetup(rows)
		if err != nil {
			return nil, err
		}
		meetups = append(meetups, m)
	}
	return meetups, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"bookiteasy/internal/model"

	"github.com/jackc/pgx/v5"
)

// AppointmentStore defines operations for appointment records.
// Listings always come back in insertion order.
type AppointmentStore interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	// FindAll filters by status; "" or "all" returns every record.
	FindAll(ctx context.Context, status string) ([]model.Appointment, error)
	// Reschedule updates only the date and time of the matching record.
	Reschedule(ctx context.Context, id, date, timeOfDay string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Appointment, error)
	// ClearUserAdded removes every non-seed record (logout semantics).
	ClearUserAdded(ctx context.Context) error
}

type pgAppointmentStore struct {
	db PgxIface
}

// NewAppointmentStore creates a Postgres-backed AppointmentStore
func NewAppointmentStore(db PgxIface) AppointmentStore {
	return &pgAppointmentStore{db: db}
}

const apptColumns = `id, service, date, time, staff, status, price, customer_name, customer_email, customer_phone, notes, seeded`

func (s *pgAppointmentStore) Create(ctx context.Context, a *model.Appointment) error {
	sql := `INSERT INTO appointments (id, service, date, time, staff, status, price, customer_name, customer_email, customer_phone, notes, seeded)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.Exec(ctx, sql, a.ID, a.Service, a.Date, a.Time, a.Staff, a.Status, a.Price,
		a.CustomerName, a.CustomerEmail, a.CustomerPhone, a.Notes, a.Seeded)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (s *pgAppointmentStore) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	sql := `SELECT ` + apptColumns + ` FROM appointments WHERE id = $1`
	err := s.db.QueryRow(ctx, sql, id).Scan(
		&a.ID, &a.Service, &a.Date, &a.Time, &a.Staff, &a.Status, &a.Price,
		&a.CustomerName, &a.CustomerEmail, &a.CustomerPhone, &a.Notes, &a.Seeded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find appointment by ID: %w", err)
	}
	return a, nil
}

func (s *pgAppointmentStore) FindAll(ctx context.Context, status string) ([]model.Appointment, error) {
	sql := `SELECT ` + apptColumns + ` FROM appointments`
	args := []any{}
	if status != "" && status != "all" {
		sql += ` WHERE status = $1`
		args = append(args, status)
	}
	sql += ` ORDER BY pos` // pos is a serial preserving insertion order

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.Service, &a.Date, &a.Time, &a.Staff, &a.Status, &a.Price,
			&a.CustomerName, &a.CustomerEmail, &a.CustomerPhone, &a.Notes, &a.Seeded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appts = append(appts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}
	return appts, nil
}

func (s *pgAppointmentStore) Reschedule(ctx context.Context, id, date, timeOfDay string) (*model.Appointment, error) {
	a := &model.Appointment{}
	sql := `UPDATE appointments SET date = $1, time = $2 WHERE id = $3 RETURNING ` + apptColumns
	err := s.db.QueryRow(ctx, sql, date, timeOfDay, id).Scan(
		&a.ID, &a.Service, &a.Date, &a.Time, &a.Staff, &a.Status, &a.Price,
		&a.CustomerName, &a.CustomerEmail, &a.CustomerPhone, &a.Notes, &a.Seeded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}
	return a, nil
}

func (s *pgAppointmentStore) UpdateStatus(ctx context.Context, id, status string) (*model.Appointment, error) {
	a := &model.Appointment{}
	sql := `UPDATE appointments SET status = $1 WHERE id = $2 RETURNING ` + apptColumns
	err := s.db.QueryRow(ctx, sql, status, id).Scan(
		&a.ID, &a.Service, &a.Date, &a.Time, &a.Staff, &a.Status, &a.Price,
		&a.CustomerName, &a.CustomerEmail, &a.CustomerPhone, &a.Notes, &a.Seeded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return a, nil
}

func (s *pgAppointmentStore) ClearUserAdded(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE seeded = FALSE`); err != nil {
		return fmt.Errorf("failed to clear user-added appointments: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"matricare-api/internal/model"
)

const appointmentCols = `a.id, a.user_id, a.patient_name, a.date, a.status,
	        a.location, a.notes, a.created_at, a.updated_at,
	        u.id, u.email, u.full_name, u.phone_number, u.role, u.created_at, u.updated_at`

func scanAppointment(row interface{ Scan(...any) error }) (*model.Appointment, error) {
	a := &model.Appointment{User: &model.User{}}
	err := row.Scan(
		&a.ID, &a.UserID, &a.PatientName, &a.Date, &a.Status,
		&a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&a.User.ID, &a.User.Email, &a.User.FullName, &a.User.PhoneNumber,
		&a.User.Role, &a.User.CreatedAt, &a.User.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, user_id, patient_name, date, status, location, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.UserID, a.PatientName, a.Date, a.Status, a.Location, a.Notes,
	)
	return err
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+`
		 FROM appointments a JOIN users u ON u.id = a.user_id
		 WHERE a.id = $1`, id,
	))
}

// ListAppointments returns every appointment with its owning user joined.
// When userID is non-empty the result is limited to that user.
func (s *Store) ListAppointments(ctx context.Context, userID string) ([]*model.Appointment, error) {
	q := `SELECT ` + appointmentCols + `
	 FROM appointments a JOIN users u ON u.id = a.user_id`
	args := []any{}
	if userID != "" {
		q += ` WHERE a.user_id = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY a.date`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AppointmentPatch carries the partial field set of an update. Nil fields are
// left untouched.
type AppointmentPatch struct {
	PatientName *string
	Date        *time.Time
	Status      *model.Status
	Location    *string
	Notes       *string
}

// UpdateAppointment applies the patch and returns the resulting row joined
// with its owner. Returns pgx.ErrNoRows when no appointment matches id.
func (s *Store) UpdateAppointment(ctx context.Context, id string, p AppointmentPatch) (*model.Appointment, error) {
	set := "updated_at = NOW()"
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set += fmt.Sprintf(", %s = $%d", col, len(args))
	}
	if p.PatientName != nil {
		add("patient_name", *p.PatientName)
	}
	if p.Date != nil {
		add("date", *p.Date)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Notes != nil {
		add("notes", *p.Notes)
	}

	var updatedID string
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments SET `+set+` WHERE id = $1 RETURNING id`, args...,
	).Scan(&updatedID)
	if err != nil {
		return nil, err
	}
	return s.AppointmentByID(ctx, updatedID)
}

// DeleteAppointment removes the row and returns it. Returns pgx.ErrNoRows
// when no appointment matches id.
func (s *Store) DeleteAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`DELETE FROM appointments WHERE id = $1
		 RETURNING id, user_id, patient_name, date, status, location, notes, created_at, updated_at`,
		id,
	).Scan(&a.ID, &a.UserID, &a.PatientName, &a.Date, &a.Status,
		&a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

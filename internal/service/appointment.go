package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"matricare-api/internal/apperr"
	"matricare-api/internal/model"
	"matricare-api/internal/store"
)

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	ListAppointments(ctx context.Context, userID string) ([]*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, p store.AppointmentPatch) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) (*model.Appointment, error)
}

type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	UserIDsByRole(ctx context.Context, role string) ([]string, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	NotificationsByRecipient(ctx context.Context, userID string) ([]*model.Notification, error)
}

// Appointments orchestrates appointment mutations and the notification
// fan-out they trigger.
type Appointments struct {
	appts  AppointmentStore
	users  UserStore
	notifs NotificationStore
	log    *zap.Logger
}

func NewAppointments(appts AppointmentStore, users UserStore, notifs NotificationStore, log *zap.Logger) *Appointments {
	return &Appointments{appts: appts, users: users, notifs: notifs, log: log}
}

// Get returns the appointment with its owning user joined.
func (s *Appointments) Get(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := s.appts.AppointmentByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Appointment not found")
	}
	return a, err
}

// List returns all appointments, or just one user's when userID is set.
func (s *Appointments) List(ctx context.Context, userID string) ([]*model.Appointment, error) {
	return s.appts.ListAppointments(ctx, userID)
}

type CreateParams struct {
	Email       string
	PatientName string
	Date        time.Time
	Location    string
	Notes       string
}

// Create resolves the booking user by email, persists the appointment, and
// notifies every Obgyne about the new booking.
func (s *Appointments) Create(ctx context.Context, p CreateParams) (*model.Appointment, error) {
	u, err := s.users.UserByEmail(ctx, p.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	a := &model.Appointment{
		ID:          uuid.New().String(),
		UserID:      u.ID,
		PatientName: p.PatientName,
		Date:        p.Date,
		Status:      model.StatusPending,
		Location:    p.Location,
		Notes:       p.Notes,
	}
	if err := s.appts.CreateAppointment(ctx, a); err != nil {
		return nil, err
	}

	obgynes, err := s.users.UserIDsByRole(ctx, model.RoleObgyne)
	if err != nil {
		return nil, err
	}
	if len(obgynes) == 0 {
		s.log.Warn("no obgyne users to notify", zap.String("appointmentId", a.ID))
		return a, nil
	}

	n := &model.Notification{
		ID:         uuid.New().String(),
		SenderName: systemSender,
		Message: fmt.Sprintf("You have a new appointment with %s on %s",
			a.PatientName, FormatAppointmentDate(a.Date)),
		Category:     "Appointment",
		RecipientIDs: obgynes,
	}
	if err := s.notifs.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	s.log.Info("appointment created",
		zap.String("appointmentId", a.ID),
		zap.Int("notified", len(obgynes)))
	return a, nil
}

// Update applies a partial update, then emits whatever notifications the
// resulting status calls for. actorID identifies the user performing the
// change and becomes the sender on owner-addressed notifications.
func (s *Appointments) Update(ctx context.Context, id, actorID string, p store.AppointmentPatch) (*model.Appointment, error) {
	if id == "" {
		return nil, apperr.BadRequest("Appointment identifier not found")
	}

	a, err := s.appts.UpdateAppointment(ctx, id, p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Appointment not found")
	}
	if err != nil {
		return nil, err
	}

	specs := transitions[a.Status]
	if len(specs) == 0 {
		return a, nil
	}

	var actor *model.User
	if actorID != "" {
		actor, err = s.users.UserByID(ctx, actorID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		if err != nil {
			return nil, err
		}
	}

	var assistants []string
	if a.Status == model.StatusRescheduled {
		if assistants, err = s.users.UserIDsByRole(ctx, model.RoleAssistant); err != nil {
			return nil, err
		}
	}

	for _, n := range transitionNotifications(a, actor, assistants) {
		n.ID = uuid.New().String()
		if err := s.notifs.CreateNotification(ctx, n); err != nil {
			return nil, err
		}
	}

	s.log.Info("appointment updated",
		zap.String("appointmentId", a.ID),
		zap.String("status", string(a.Status)))
	return a, nil
}

// Delete removes the appointment and returns the deleted record.
func (s *Appointments) Delete(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperr.BadRequest("Appointment identifier not found")
	}
	a, err := s.appts.DeleteAppointment(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Appointment not found")
	}
	return a, err
}

// Notifications lists the notifications addressed to a user, newest first.
func (s *Appointments) Notifications(ctx context.Context, userID string) ([]*model.Notification, error) {
	if userID == "" {
		return nil, apperr.BadRequest("User identifier not found")
	}
	return s.notifs.NotificationsByRecipient(ctx, userID)
}

package service

import (
	"fmt"

	"matricare-api/internal/model"
)

// systemSender is the display name on notifications the platform itself
// sends, as opposed to ones attributed to the acting consultant.
const systemSender = "MatriCare"

// notifSpec describes one notification a status transition produces. The
// table below is the whole fan-out policy: statuses absent from it produce
// nothing, and no transition-graph validation happens anywhere (any status
// may be written after any other).
type notifSpec struct {
	fromActor bool // sender is the acting user; otherwise the system
	toOwner   bool // recipient is the appointment's owning user
	role      string // broadcast role when toOwner is false
	category  string
	message   func(a *model.Appointment) string
}

var transitions = map[model.Status][]notifSpec{
	model.StatusConfirmed: {
		{
			fromActor: true,
			toOwner:   true,
			category:  "Appointment",
			message: func(a *model.Appointment) string {
				return fmt.Sprintf("Your appointment scheduled on %s has been confirmed!",
					FormatAppointmentDate(a.Date))
			},
		},
	},
	model.StatusCancelled: {
		{
			fromActor: true,
			toOwner:   true,
			message: func(a *model.Appointment) string {
				return fmt.Sprintf("Your appointment scheduled on %s has been cancelled.",
					FormatAppointmentDate(a.Date))
			},
		},
	},
	model.StatusRescheduled: {
		{
			fromActor: true,
			toOwner:   true,
			message: func(a *model.Appointment) string {
				return "The appointment has been moved. Please select another date and time that fits your schedule."
			},
		},
		{
			role: model.RoleAssistant,
			message: func(a *model.Appointment) string {
				return "There are changes in the Appointment. Look it up!"
			},
		},
	},
}

// transitionNotifications derives the notifications the observed resulting
// status requires. Pure: callers resolve the actor and any role broadcast
// recipients first. Specs whose recipient set comes up empty are dropped so
// a recipientless notification is never produced.
func transitionNotifications(a *model.Appointment, actor *model.User, assistants []string) []*model.Notification {
	var out []*model.Notification
	for _, spec := range transitions[a.Status] {
		n := &model.Notification{
			SenderName: systemSender,
			Message:    spec.message(a),
			Category:   spec.category,
		}
		if spec.fromActor && actor != nil {
			n.SenderID = actor.ID
			n.SenderName = actor.FullName
			n.SenderPhone = actor.PhoneNumber
		}
		if spec.toOwner {
			n.RecipientIDs = []string{a.UserID}
		} else if spec.role == model.RoleAssistant {
			n.RecipientIDs = assistants
		}
		if len(n.RecipientIDs) == 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

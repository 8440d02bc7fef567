package store

import (
	"context"

	"matricare-api/internal/model"
)

// CreateNotification writes the record and its recipient rows in one tx so a
// partially fanned-out notification is never visible.
func (s *Store) CreateNotification(ctx context.Context, n *model.Notification) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO notifications (id, sender_id, sender_name, sender_phone, message, category)
		 VALUES ($1, NULLIF($2,''), $3, $4, $5, NULLIF($6,''))`,
		n.ID, n.SenderID, n.SenderName, n.SenderPhone, n.Message, n.Category,
	)
	if err != nil {
		return err
	}

	for _, uid := range n.RecipientIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO notification_recipients (notification_id, user_id) VALUES ($1,$2)`,
			n.ID, uid,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// NotificationsByRecipient lists notifications addressed to userID, newest
// first.
func (s *Store) NotificationsByRecipient(ctx context.Context, userID string) ([]*model.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT n.id, COALESCE(n.sender_id,''), n.sender_name, n.sender_phone,
		        n.message, COALESCE(n.category,''), n.created_at
		 FROM notifications n
		 JOIN notification_recipients r ON r.notification_id = n.id
		 WHERE r.user_id = $1
		 ORDER BY n.created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Notification
	for rows.Next() {
		n := &model.Notification{RecipientIDs: []string{userID}}
		if err := rows.Scan(&n.ID, &n.SenderID, &n.SenderName, &n.SenderPhone,
			&n.Message, &n.Category, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

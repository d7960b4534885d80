package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var notificationColumns = []string{
	"id", "student_id", "admin_id", "title", "message", "notification_type", "priority",
	"scheduled_for", "sent_at", "read", "created_at",
}

func (r *repository) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	out, err := selectOne[model.Notification](ctx, r.db, qb.Insert(notificationsTable).
		Columns(notificationColumns...).
		Values(n.ID, n.StudentID, n.AdminID, n.Title, n.Message, n.Type, n.Priority,
			n.ScheduledFor, n.SentAt, n.Read, time.Now().UTC()).
		Suffix(returning(notificationColumns)))
	if err != nil {
		return model.Notification{}, errors.Wrap(err, "CreateNotification")
	}
	return out, nil
}

func (r *repository) ListPendingNotifications(ctx context.Context, now time.Time, limit int) ([]model.Notification, error) {
	items, err := selectAll[model.Notification](ctx, r.db, qb.Select(notificationColumns...).
		From(notificationsTable).
		Where(sq.LtOrEq{"scheduled_for": now}).
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("scheduled_for").
		Limit(uint64(limit)))
	if err != nil {
		return nil, errors.Wrap(err, "ListPendingNotifications")
	}
	return items, nil
}

func (r *repository) MarkNotificationSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := qb.Update(notificationsTable).
		Set("sent_at", at).
		Where(sq.Eq{"id": id, "sent_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "MarkNotificationSent")
	}
	return nil
}

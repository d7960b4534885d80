package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var studentColumns = []string{
	"id", "student_id", "auth_user_id", "admin_id", "name", "email", "mobile_no", "address",
	"subscription_start", "subscription_end", "subscription_status", "status", "is_active", "removed_at",
	"created_at", "updated_at",
}

func (r *repository) getStudent(ctx context.Context, op string, where sq.Sqlizer) (model.Student, error) {
	s, err := selectOne[model.Student](ctx, r.db, qb.Select(studentColumns...).
		From(studentsTable).
		Where(where))
	if err != nil {
		return model.Student{}, errors.Wrap(err, op)
	}
	return s, nil
}

func (r *repository) GetStudent(ctx context.Context, id uuid.UUID) (model.Student, error) {
	return r.getStudent(ctx, "GetStudent", sq.Eq{"id": id})
}

func (r *repository) GetStudentByAuthID(ctx context.Context, authUserID uuid.UUID) (model.Student, error) {
	return r.getStudent(ctx, "GetStudentByAuthID", sq.Eq{"auth_user_id": authUserID})
}

func (r *repository) FindStudentByEmail(ctx context.Context, adminID uuid.UUID, email string) (model.Student, error) {
	return r.getStudent(ctx, "FindStudentByEmail", sq.And{
		sq.Eq{"admin_id": adminID},
		sq.Expr("lower(email) = lower(?)", email),
	})
}

func (r *repository) CreateStudent(ctx context.Context, s model.Student) (model.Student, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now().UTC()
	out, err := selectOne[model.Student](ctx, r.db, qb.Insert(studentsTable).
		Columns(studentColumns...).
		Values(
			s.ID, s.StudentID, s.AuthUserID, s.AdminID, s.Name, s.Email, s.MobileNo, s.Address,
			s.SubscriptionStart, s.SubscriptionEnd, s.SubscriptionStatus, s.Status, s.IsActive, s.RemovedAt,
			now, now,
		).
		Suffix(returning(studentColumns)))
	if err != nil {
		return model.Student{}, errors.Wrap(err, "CreateStudent")
	}
	return out, nil
}

func (r *repository) UpdateStudent(ctx context.Context, s model.Student) (model.Student, error) {
	out, err := selectOne[model.Student](ctx, r.db, qb.Update(studentsTable).
		SetMap(map[string]any{
			"name":                s.Name,
			"mobile_no":           s.MobileNo,
			"address":             s.Address,
			"subscription_start":  s.SubscriptionStart,
			"subscription_end":    s.SubscriptionEnd,
			"subscription_status": s.SubscriptionStatus,
			"status":              s.Status,
			"is_active":           s.IsActive,
			"removed_at":          s.RemovedAt,
			"updated_at":          time.Now().UTC(),
		}).
		Where(sq.Eq{"id": s.ID}).
		Suffix(returning(studentColumns)))
	if err != nil {
		return model.Student{}, errors.Wrap(err, "UpdateStudent")
	}
	return out, nil
}

// MaxStudentSequence returns the highest numeric suffix among the admin's student ids
// starting with prefix, zero when there are none.
func (r *repository) MaxStudentSequence(ctx context.Context, adminID uuid.UUID, prefix string) (int, error) {
	const q = `
	select coalesce(max(substr(student_id, $3)::int), 0)
	from students
	where admin_id = $1 and student_id like $2 and substr(student_id, $3) ~ '^[0-9]+$'`

	var seq int
	if err := r.db.QueryRow(ctx, q, adminID, prefix+"%", len(prefix)+1).Scan(&seq); err != nil {
		return 0, errors.Wrap(err, "MaxStudentSequence")
	}
	return seq, nil
}

func (r *repository) ListStudentsExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Student, error) {
	items, err := selectAll[model.Student](ctx, r.db, qb.Select(studentColumns...).
		From(studentsTable).
		Where(sq.Eq{"subscription_status": model.SubscriptionActive, "is_active": true}).
		Where(sq.GtOrEq{"subscription_end": from}).
		Where(sq.Lt{"subscription_end": to}).
		OrderBy("subscription_end"))
	if err != nil {
		return nil, errors.Wrap(err, "ListStudentsExpiringBetween")
	}
	return items, nil
}

func (r *repository) ListStudentsExpiredBefore(ctx context.Context, before time.Time) ([]model.Student, error) {
	items, err := selectAll[model.Student](ctx, r.db, qb.Select(studentColumns...).
		From(studentsTable).
		Where(sq.Eq{"subscription_status": model.SubscriptionActive}).
		Where(sq.Lt{"subscription_end": before}).
		OrderBy("subscription_end"))
	if err != nil {
		return nil, errors.Wrap(err, "ListStudentsExpiredBefore")
	}
	return items, nil
}

// MarkStudentExpired flips Active to Expired; false when the student was no longer Active.
func (r *repository) MarkStudentExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := qb.Update(studentsTable).
		Set("subscription_status", model.SubscriptionExpired).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "subscription_status": model.SubscriptionActive}).
		ToSql()
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "MarkStudentExpired")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repository) ListOverdueStudents(ctx context.Context, adminID *uuid.UUID, cutoff time.Time) ([]model.OverdueStudent, error) {
	pending := fmt.Sprintf(`exists(select 1 from %s rr where rr.student_id = st.id and rr.status = '%s') as has_pending_request`,
		removalTable, model.RemovalPending)
	q := qb.Select(append(prefixed("st", studentColumns), pending)...).
		From(studentsTable+" st").
		Where(sq.Eq{"st.subscription_status": model.SubscriptionExpired, "st.is_active": true}).
		Where(sq.Lt{"st.subscription_end": cutoff}).
		OrderBy("st.subscription_end")
	if adminID != nil {
		q = q.Where(sq.Eq{"st.admin_id": *adminID})
	}
	items, err := selectAll[model.OverdueStudent](ctx, r.db, q)
	if err != nil {
		return nil, errors.Wrap(err, "ListOverdueStudents")
	}
	return items, nil
}

func (r *repository) RecordRenewal(ctx context.Context, rn model.Renewal) error {
	if rn.ID == uuid.Nil {
		rn.ID = uuid.New()
	}
	query, args, err := qb.Insert(renewalsTable).
		Columns("id", "student_id", "plan_id", "payment_id", "amount", "months", "created_at").
		Values(rn.ID, rn.StudentID, rn.PlanID, rn.PaymentID, rn.Amount, rn.Months, time.Now().UTC()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(mapErr(err), "RecordRenewal")
	}
	return nil
}

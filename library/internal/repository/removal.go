package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var removalColumns = []string{
	"id", "student_id", "admin_id", "reason", "status", "subscription_end_date", "days_overdue",
	"admin_notes", "processed_by", "processed_at", "created_at", "updated_at",
}

func removalViewQuery() sq.SelectBuilder {
	return qb.Select(append(prefixed("rr", removalColumns),
		"st.student_id as student_code", "st.name as student_name", "st.email as student_email")...).
		From(removalTable + " rr").
		Join(studentsTable + " st on st.id = rr.student_id")
}

// CreateRemovalRequest inserts a pending request unless the student already has one.
func (r *repository) CreateRemovalRequest(ctx context.Context, req model.RemovalRequest) (bool, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	query, args, err := qb.Insert(removalTable).
		Columns("id", "student_id", "admin_id", "reason", "status", "subscription_end_date", "days_overdue", "created_at", "updated_at").
		Values(req.ID, req.StudentID, req.AdminID, req.Reason, model.RemovalPending, req.SubscriptionEndDate, req.DaysOverdue, now, now).
		Suffix("on conflict (student_id) where status = 'pending' do nothing").
		ToSql()
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "CreateRemovalRequest")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repository) GetRemovalRequest(ctx context.Context, id uuid.UUID) (model.RemovalRequestView, error) {
	v, err := selectOne[model.RemovalRequestView](ctx, r.db, removalViewQuery().Where(sq.Eq{"rr.id": id}))
	if err != nil {
		return model.RemovalRequestView{}, errors.Wrap(err, "GetRemovalRequest")
	}
	return v, nil
}

func (r *repository) GetRemovalRequestForUpdate(ctx context.Context, id uuid.UUID) (model.RemovalRequest, error) {
	req, err := selectOne[model.RemovalRequest](ctx, r.db, qb.Select(removalColumns...).
		From(removalTable).
		Where(sq.Eq{"id": id}).
		Suffix("for update"))
	if err != nil {
		return model.RemovalRequest{}, errors.Wrap(err, "GetRemovalRequestForUpdate")
	}
	return req, nil
}

func (r *repository) UpdateRemovalRequest(ctx context.Context, req model.RemovalRequest) error {
	query, args, err := qb.Update(removalTable).
		Set("status", req.Status).
		Set("admin_notes", req.AdminNotes).
		Set("processed_by", req.ProcessedBy).
		Set("processed_at", req.ProcessedAt).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "UpdateRemovalRequest")
	}
	return nil
}

func (r *repository) ListRemovalRequests(ctx context.Context, filter model.RemovalFilter) ([]model.RemovalRequestView, error) {
	q := removalViewQuery().
		Where(sq.Eq{"rr.admin_id": filter.AdminID}).
		OrderBy("rr.created_at desc")
	if filter.Status != nil {
		q = q.Where(sq.Eq{"rr.status": *filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	items, err := selectAll[model.RemovalRequestView](ctx, r.db, q)
	if err != nil {
		return nil, errors.Wrap(err, "ListRemovalRequests")
	}
	return items, nil
}

func (r *repository) CountRemovalRequests(ctx context.Context, adminID uuid.UUID) (model.RemovalCounts, error) {
	const q = `
	select count(*)::int,
	       (count(*) filter (where status = 'pending'))::int,
	       (count(*) filter (where status = 'approved'))::int,
	       (count(*) filter (where status = 'rejected'))::int
	from student_removal_requests
	where admin_id = $1`

	var c model.RemovalCounts
	if err := r.db.QueryRow(ctx, q, adminID).Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected); err != nil {
		return model.RemovalCounts{}, errors.Wrap(err, "CountRemovalRequests")
	}
	return c, nil
}

package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var bookingColumns = []string{
	"id", "student_id", "library_id", "admin_id", "name", "email", "mobile", "address",
	"subscription_plan_id", "subscription_months", "amount", "date", "start_time", "end_time", "purpose",
	"status", "payment_status", "payment_method", "payment_reference", "token_payment_reference",
	"payment_date", "approval_date", "start_date", "end_date", "cancelled_at", "cancellation_reason",
	"created_at", "updated_at",
}

func (r *repository) CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	out, err := selectOne[model.Booking](ctx, r.db, qb.Insert(bookingsTable).
		Columns(bookingColumns...).
		Values(
			b.ID, b.StudentID, b.LibraryID, b.AdminID, b.Name, b.Email, b.Mobile, b.Address,
			b.SubscriptionPlanID, b.SubscriptionMonths, b.Amount, b.Date, b.StartTime, b.EndTime, b.Purpose,
			b.Status, b.PaymentStatus, b.PaymentMethod, b.PaymentReference, b.TokenPaymentReference,
			b.PaymentDate, b.ApprovalDate, b.StartDate, b.EndDate, b.CancelledAt, b.CancellationReason,
			now, now,
		).
		Suffix(returning(bookingColumns)))
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "CreateBooking")
	}
	return out, nil
}

func (r *repository) GetBooking(ctx context.Context, id uuid.UUID) (model.Booking, error) {
	b, err := selectOne[model.Booking](ctx, r.db, qb.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "GetBooking")
	}
	return b, nil
}

func (r *repository) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (model.Booking, error) {
	b, err := selectOne[model.Booking](ctx, r.db, qb.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"id": id}).
		Suffix("for update"))
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "GetBookingForUpdate")
	}
	return b, nil
}

func (r *repository) UpdateBooking(ctx context.Context, b model.Booking) (model.Booking, error) {
	out, err := selectOne[model.Booking](ctx, r.db, qb.Update(bookingsTable).
		SetMap(map[string]any{
			"student_id":          b.StudentID,
			"status":              b.Status,
			"payment_status":      b.PaymentStatus,
			"payment_method":      b.PaymentMethod,
			"payment_reference":   b.PaymentReference,
			"payment_date":        b.PaymentDate,
			"approval_date":       b.ApprovalDate,
			"start_date":          b.StartDate,
			"end_date":            b.EndDate,
			"cancelled_at":        b.CancelledAt,
			"cancellation_reason": b.CancellationReason,
			"updated_at":          time.Now().UTC(),
		}).
		Where(sq.Eq{"id": b.ID}).
		Suffix(returning(bookingColumns)))
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "UpdateBooking")
	}
	return out, nil
}

func (r *repository) ListBookingsByAdmin(ctx context.Context, adminID uuid.UUID, filter model.BookingFilter) ([]model.Booking, error) {
	q := qb.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"admin_id": adminID}).
		OrderBy("created_at desc")
	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	items, err := selectAll[model.Booking](ctx, r.db, q)
	if err != nil {
		return nil, errors.Wrap(err, "ListBookingsByAdmin")
	}
	return items, nil
}

func (r *repository) ListBookingsByStudent(ctx context.Context, authUserID uuid.UUID) ([]model.Booking, error) {
	items, err := selectAll[model.Booking](ctx, r.db, qb.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"student_id": authUserID}).
		OrderBy("created_at desc"))
	if err != nil {
		return nil, errors.Wrap(err, "ListBookingsByStudent")
	}
	return items, nil
}

func (r *repository) CancelStudentBookings(ctx context.Context, authUserID uuid.UUID, reason string, at time.Time) (int64, error) {
	query, args, err := qb.Update(bookingsTable).
		Set("status", model.BookingCancelled).
		Set("cancelled_at", at).
		Set("cancellation_reason", reason).
		Set("updated_at", at).
		Where(sq.Eq{"student_id": authUserID, "status": model.CancellableBookingStatuses}).
		ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "CancelStudentBookings")
	}
	return tag.RowsAffected(), nil
}

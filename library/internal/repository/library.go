package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	libraryColumns = []string{"id", "admin_id", "library_name", "address", "total_seats", "latitude", "longitude"}
	planColumns    = []string{"id", "library_id", "months", "amount", "discounted_amount", "is_active"}
)

// occupyingBooking matches bookings holding a seat. Bookings linked to a removed
// or inactive student release their seat; bookings with no student row yet keep it.
const occupyingBooking = `b.status in ('approved', 'active')
	and (s.id is null or (s.is_active and s.subscription_status <> 'Removed'))`

func (r *repository) GetLibrary(ctx context.Context, id uuid.UUID) (model.Library, error) {
	lib, err := selectOne[model.Library](ctx, r.db, qb.Select(libraryColumns...).
		From(librariesTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return model.Library{}, errors.Wrap(err, "GetLibrary")
	}
	return lib, nil
}

func (r *repository) ListLibraries(ctx context.Context) ([]model.LibraryInfo, error) {
	occupied := fmt.Sprintf(`(select count(*) from %s b
	left join %s s on s.auth_user_id = b.student_id
	where b.library_id = l.id and %s)::int as occupied_seats`, bookingsTable, studentsTable, occupyingBooking)

	libs, err := selectAll[model.LibraryInfo](ctx, r.db, qb.Select(append(prefixed("l", libraryColumns), occupied)...).
		From(librariesTable+" l").
		OrderBy("l.library_name"))
	if err != nil {
		return nil, errors.Wrap(err, "ListLibraries")
	}
	return libs, nil
}

// LockLibrary serializes seat admission for one library until the transaction ends.
func (r *repository) LockLibrary(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `select pg_advisory_xact_lock(hashtextextended($1::text, 0))`, id.String()); err != nil {
		return errors.Wrap(err, "LockLibrary")
	}
	return nil
}

func (r *repository) OccupiedSeats(ctx context.Context, libraryID uuid.UUID, exclude *uuid.UUID) (int, error) {
	q := qb.Select("count(*)").
		From(bookingsTable+" b").
		LeftJoin(studentsTable+" s on s.auth_user_id = b.student_id").
		Where(sq.Eq{"b.library_id": libraryID}).
		Where(occupyingBooking)
	if exclude != nil {
		q = q.Where(sq.NotEq{"b.id": *exclude})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("OccupiedSeats", zap.String("q", query), zap.Any("args", args))
		return 0, errors.Wrap(err, "OccupiedSeats")
	}
	return count, nil
}

func (r *repository) GetPlan(ctx context.Context, id uuid.UUID) (model.SubscriptionPlan, error) {
	plan, err := selectOne[model.SubscriptionPlan](ctx, r.db, qb.Select(planColumns...).
		From(plansTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return model.SubscriptionPlan{}, errors.Wrap(err, "GetPlan")
	}
	return plan, nil
}

func (r *repository) ListPlans(ctx context.Context, libraryID uuid.UUID) ([]model.SubscriptionPlan, error) {
	plans, err := selectAll[model.SubscriptionPlan](ctx, r.db, qb.Select(planColumns...).
		From(plansTable).
		Where(sq.Eq{"library_id": libraryID, "is_active": true}).
		OrderBy("months"))
	if err != nil {
		return nil, errors.Wrap(err, "ListPlans")
	}
	return plans, nil
}

package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Queries are the statements available both on the pool and inside a transaction.
type Queries interface {
	GetLibrary(ctx context.Context, id uuid.UUID) (model.Library, error)
	ListLibraries(ctx context.Context) ([]model.LibraryInfo, error)
	LockLibrary(ctx context.Context, id uuid.UUID) error
	OccupiedSeats(ctx context.Context, libraryID uuid.UUID, exclude *uuid.UUID) (int, error)
	GetPlan(ctx context.Context, id uuid.UUID) (model.SubscriptionPlan, error)
	ListPlans(ctx context.Context, libraryID uuid.UUID) ([]model.SubscriptionPlan, error)

	CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (model.Booking, error)
	GetBookingForUpdate(ctx context.Context, id uuid.UUID) (model.Booking, error)
	UpdateBooking(ctx context.Context, b model.Booking) (model.Booking, error)
	ListBookingsByAdmin(ctx context.Context, adminID uuid.UUID, filter model.BookingFilter) ([]model.Booking, error)
	ListBookingsByStudent(ctx context.Context, authUserID uuid.UUID) ([]model.Booking, error)
	CancelStudentBookings(ctx context.Context, authUserID uuid.UUID, reason string, at time.Time) (int64, error)

	GetStudent(ctx context.Context, id uuid.UUID) (model.Student, error)
	GetStudentByAuthID(ctx context.Context, authUserID uuid.UUID) (model.Student, error)
	FindStudentByEmail(ctx context.Context, adminID uuid.UUID, email string) (model.Student, error)
	CreateStudent(ctx context.Context, s model.Student) (model.Student, error)
	UpdateStudent(ctx context.Context, s model.Student) (model.Student, error)
	MaxStudentSequence(ctx context.Context, adminID uuid.UUID, prefix string) (int, error)
	ListStudentsExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Student, error)
	ListStudentsExpiredBefore(ctx context.Context, before time.Time) ([]model.Student, error)
	MarkStudentExpired(ctx context.Context, id uuid.UUID) (bool, error)
	ListOverdueStudents(ctx context.Context, adminID *uuid.UUID, cutoff time.Time) ([]model.OverdueStudent, error)

	CreateRemovalRequest(ctx context.Context, req model.RemovalRequest) (bool, error)
	GetRemovalRequest(ctx context.Context, id uuid.UUID) (model.RemovalRequestView, error)
	GetRemovalRequestForUpdate(ctx context.Context, id uuid.UUID) (model.RemovalRequest, error)
	UpdateRemovalRequest(ctx context.Context, req model.RemovalRequest) error
	ListRemovalRequests(ctx context.Context, filter model.RemovalFilter) ([]model.RemovalRequestView, error)
	CountRemovalRequests(ctx context.Context, adminID uuid.UUID) (model.RemovalCounts, error)

	RecordRenewal(ctx context.Context, rn model.Renewal) error

	CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error)
	ListPendingNotifications(ctx context.Context, now time.Time, limit int) ([]model.Notification, error)
	MarkNotificationSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

type Repository interface {
	Queries
	// RunInTx runs fn in one transaction, committed when fn returns nil.
	RunInTx(ctx context.Context, fn func(ctx context.Context, q Queries) error) error
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	pool *pgxpool.Pool
	db   dbtx
	log  *zap.Logger
}

func NewRepository(pool *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	if pool == nil {
		return nil, errors.New("nil pool")
	}
	return &repository{
		pool: pool,
		db:   pool,
		log:  log.Named("repo"),
	}, nil
}

func (r *repository) RunInTx(ctx context.Context, fn func(ctx context.Context, q Queries) error) error {
	if r.pool == nil {
		return fn(ctx, r)
	}
	return pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, log: r.log})
	})
}

const (
	librariesTable     = `libraries`
	plansTable         = `subscription_plans`
	bookingsTable      = `seat_bookings`
	studentsTable      = `students`
	removalTable       = `student_removal_requests`
	notificationsTable = `student_notifications`
	renewalsTable      = `subscription_renewals`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

func selectAll[T any](ctx context.Context, db dbtx, b sq.Sqlizer) ([]T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return items, nil
}

func selectOne[T any](ctx context.Context, db dbtx, b sq.Sqlizer) (T, error) {
	var zero T
	q, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return zero, mapErr(err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, mapErr(err)
	}
	return item, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.Wrap(errs.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

func returning(cols []string) string {
	return "returning " + strings.Join(cols, ", ")
}

package service_test

import (
	"context"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/mailer"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/google/uuid"
)

// memRepo keeps rows in maps. Transactions are serialized and rolled back on error.
type memRepo struct {
	tx sync.Mutex
	mu sync.Mutex

	libraries     map[uuid.UUID]model.Library
	plans         map[uuid.UUID]model.SubscriptionPlan
	bookings      map[uuid.UUID]model.Booking
	students      map[uuid.UUID]model.Student
	removals      map[uuid.UUID]model.RemovalRequest
	notifications map[uuid.UUID]model.Notification
	renewals      map[string]model.Renewal
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		libraries:     map[uuid.UUID]model.Library{},
		plans:         map[uuid.UUID]model.SubscriptionPlan{},
		bookings:      map[uuid.UUID]model.Booking{},
		students:      map[uuid.UUID]model.Student{},
		removals:      map[uuid.UUID]model.RemovalRequest{},
		notifications: map[uuid.UUID]model.Notification{},
		renewals:      map[string]model.Renewal{},
	}
}

func (r *memRepo) RunInTx(ctx context.Context, fn func(ctx context.Context, q repository.Queries) error) error {
	r.tx.Lock()
	defer r.tx.Unlock()

	r.mu.Lock()
	bookings, students := maps.Clone(r.bookings), maps.Clone(r.students)
	removals, notifications, renewals := maps.Clone(r.removals), maps.Clone(r.notifications), maps.Clone(r.renewals)
	r.mu.Unlock()

	if err := fn(ctx, r); err != nil {
		r.mu.Lock()
		r.bookings, r.students = bookings, students
		r.removals, r.notifications, r.renewals = removals, notifications, renewals
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepo) addLibrary(name string, seats int) model.Library {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := model.Library{ID: uuid.New(), AdminID: uuid.New(), Name: name, TotalSeats: seats}
	r.libraries[lib.ID] = lib
	return lib
}

func (r *memRepo) addPlan(libraryID uuid.UUID, months int, amount float64) model.SubscriptionPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := model.SubscriptionPlan{ID: uuid.New(), LibraryID: libraryID, Months: months, Amount: amount, IsActive: true}
	r.plans[p.ID] = p
	return p
}

func (r *memRepo) putStudent(st model.Student) model.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	if st.AuthUserID == uuid.Nil {
		st.AuthUserID = uuid.New()
	}
	r.students[st.ID] = st
	return st
}

func (r *memRepo) putBooking(b model.Booking) model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bookings[b.ID] = b
	return b
}

func (r *memRepo) booking(id uuid.UUID) model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id]
}

func (r *memRepo) student(id uuid.UUID) model.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.students[id]
}

func (r *memRepo) allStudents() []model.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Student, 0, len(r.students))
	for _, st := range r.students {
		out = append(out, st)
	}
	return out
}

func (r *memRepo) allNotifications() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, n)
	}
	return out
}

func (r *memRepo) GetLibrary(_ context.Context, id uuid.UUID) (model.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib, ok := r.libraries[id]
	if !ok {
		return model.Library{}, errs.ErrNotFound
	}
	return lib, nil
}

func (r *memRepo) ListLibraries(_ context.Context) ([]model.LibraryInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.LibraryInfo, 0, len(r.libraries))
	for _, lib := range r.libraries {
		out = append(out, model.LibraryInfo{Library: lib, OccupiedSeats: r.occupied(lib.ID, nil)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) LockLibrary(context.Context, uuid.UUID) error { return nil }

func (r *memRepo) occupied(libraryID uuid.UUID, exclude *uuid.UUID) int {
	n := 0
	for _, b := range r.bookings {
		if b.LibraryID != libraryID || !b.Status.Occupying() || (exclude != nil && b.ID == *exclude) {
			continue
		}
		if b.StudentID != nil {
			if st, ok := r.studentByAuth(*b.StudentID); ok && (!st.IsActive || st.SubscriptionStatus == model.SubscriptionRemoved) {
				continue
			}
		}
		n++
	}
	return n
}

func (r *memRepo) OccupiedSeats(_ context.Context, libraryID uuid.UUID, exclude *uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupied(libraryID, exclude), nil
}

func (r *memRepo) GetPlan(_ context.Context, id uuid.UUID) (model.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return model.SubscriptionPlan{}, errs.ErrNotFound
	}
	return p, nil
}

func (r *memRepo) ListPlans(_ context.Context, libraryID uuid.UUID) ([]model.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SubscriptionPlan
	for _, p := range r.plans {
		if p.LibraryID == libraryID && p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Months < out[j].Months })
	return out, nil
}

func (r *memRepo) CreateBooking(_ context.Context, b model.Booking) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.TokenPaymentReference != nil {
		for _, o := range r.bookings {
			if o.TokenPaymentReference != nil && *o.TokenPaymentReference == *b.TokenPaymentReference {
				return model.Booking{}, errs.ErrConflict
			}
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = b
	return b, nil
}

func (r *memRepo) GetBooking(_ context.Context, id uuid.UUID) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return model.Booking{}, errs.ErrNotFound
	}
	return b, nil
}

func (r *memRepo) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (model.Booking, error) {
	return r.GetBooking(ctx, id)
}

func (r *memRepo) UpdateBooking(_ context.Context, b model.Booking) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return model.Booking{}, errs.ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	r.bookings[b.ID] = b
	return b, nil
}

func (r *memRepo) ListBookingsByAdmin(_ context.Context, adminID uuid.UUID, filter model.BookingFilter) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Booking
	for _, b := range r.bookings {
		if b.AdminID == adminID && (filter.Status == nil || b.Status == *filter.Status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListBookingsByStudent(_ context.Context, authUserID uuid.UUID) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Booking
	for _, b := range r.bookings {
		if b.StudentID != nil && *b.StudentID == authUserID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) CancelStudentBookings(_ context.Context, authUserID uuid.UUID, reason string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.bookings {
		if b.StudentID == nil || *b.StudentID != authUserID || b.Status.Terminal() {
			continue
		}
		b.Status = model.BookingCancelled
		b.CancelledAt = &at
		b.CancellationReason = &reason
		r.bookings[id] = b
		n++
	}
	return n, nil
}

func (r *memRepo) studentByAuth(authUserID uuid.UUID) (model.Student, bool) {
	for _, st := range r.students {
		if st.AuthUserID == authUserID {
			return st, true
		}
	}
	return model.Student{}, false
}

func (r *memRepo) GetStudent(_ context.Context, id uuid.UUID) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok {
		return model.Student{}, errs.ErrNotFound
	}
	return st, nil
}

func (r *memRepo) GetStudentByAuthID(_ context.Context, authUserID uuid.UUID) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.studentByAuth(authUserID)
	if !ok {
		return model.Student{}, errs.ErrNotFound
	}
	return st, nil
}

func (r *memRepo) FindStudentByEmail(_ context.Context, adminID uuid.UUID, email string) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.students {
		if st.AdminID == adminID && strings.EqualFold(st.Email, email) {
			return st, nil
		}
	}
	return model.Student{}, errs.ErrNotFound
}

func (r *memRepo) CreateStudent(_ context.Context, st model.Student) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.students {
		if o.AdminID == st.AdminID && o.StudentID == st.StudentID {
			return model.Student{}, errs.ErrConflict
		}
	}
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	r.students[st.ID] = st
	return st, nil
}

func (r *memRepo) UpdateStudent(_ context.Context, st model.Student) (model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[st.ID]; !ok {
		return model.Student{}, errs.ErrNotFound
	}
	r.students[st.ID] = st
	return st, nil
}

func (r *memRepo) MaxStudentSequence(_ context.Context, adminID uuid.UUID, prefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := 0
	for _, st := range r.students {
		if st.AdminID != adminID || !strings.HasPrefix(st.StudentID, prefix) {
			continue
		}
		if n, err := strconv.Atoi(st.StudentID[len(prefix):]); err == nil && n > seq {
			seq = n
		}
	}
	return seq, nil
}

func (r *memRepo) ListStudentsExpiringBetween(_ context.Context, from, to time.Time) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Student
	for _, st := range r.students {
		if st.SubscriptionStatus != model.SubscriptionActive || !st.IsActive || st.SubscriptionEnd == nil {
			continue
		}
		if !st.SubscriptionEnd.Before(from) && st.SubscriptionEnd.Before(to) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *memRepo) ListStudentsExpiredBefore(_ context.Context, before time.Time) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Student
	for _, st := range r.students {
		if st.SubscriptionStatus == model.SubscriptionActive && st.SubscriptionEnd != nil && st.SubscriptionEnd.Before(before) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *memRepo) MarkStudentExpired(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok || st.SubscriptionStatus != model.SubscriptionActive {
		return false, nil
	}
	st.SubscriptionStatus = model.SubscriptionExpired
	r.students[id] = st
	return true, nil
}

func (r *memRepo) ListOverdueStudents(_ context.Context, adminID *uuid.UUID, cutoff time.Time) ([]model.OverdueStudent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.OverdueStudent
	for _, st := range r.students {
		if st.SubscriptionStatus != model.SubscriptionExpired || !st.IsActive || st.SubscriptionEnd == nil {
			continue
		}
		if !st.SubscriptionEnd.Before(cutoff) || (adminID != nil && st.AdminID != *adminID) {
			continue
		}
		pending := false
		for _, rr := range r.removals {
			if rr.StudentID == st.ID && rr.Status == model.RemovalPending {
				pending = true
			}
		}
		out = append(out, model.OverdueStudent{Student: st, HasPendingRequest: pending})
	}
	return out, nil
}

func (r *memRepo) CreateRemovalRequest(_ context.Context, req model.RemovalRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rr := range r.removals {
		if rr.StudentID == req.StudentID && rr.Status == model.RemovalPending {
			return false, nil
		}
	}
	req.ID = uuid.New()
	req.Status = model.RemovalPending
	req.CreatedAt = time.Now().UTC()
	r.removals[req.ID] = req
	return true, nil
}

func (r *memRepo) view(rr model.RemovalRequest) model.RemovalRequestView {
	st := r.students[rr.StudentID]
	return model.RemovalRequestView{RemovalRequest: rr, StudentCode: st.StudentID, StudentName: st.Name, StudentEmail: st.Email}
}

func (r *memRepo) GetRemovalRequest(_ context.Context, id uuid.UUID) (model.RemovalRequestView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rr, ok := r.removals[id]
	if !ok {
		return model.RemovalRequestView{}, errs.ErrNotFound
	}
	return r.view(rr), nil
}

func (r *memRepo) GetRemovalRequestForUpdate(_ context.Context, id uuid.UUID) (model.RemovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rr, ok := r.removals[id]
	if !ok {
		return model.RemovalRequest{}, errs.ErrNotFound
	}
	return rr, nil
}

func (r *memRepo) UpdateRemovalRequest(_ context.Context, req model.RemovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removals[req.ID] = req
	return nil
}

func (r *memRepo) ListRemovalRequests(_ context.Context, filter model.RemovalFilter) ([]model.RemovalRequestView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.RemovalRequestView
	for _, rr := range r.removals {
		if rr.AdminID == filter.AdminID && (filter.Status == nil || rr.Status == *filter.Status) {
			out = append(out, r.view(rr))
		}
	}
	return out, nil
}

func (r *memRepo) CountRemovalRequests(_ context.Context, adminID uuid.UUID) (model.RemovalCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var c model.RemovalCounts
	for _, rr := range r.removals {
		if rr.AdminID != adminID {
			continue
		}
		c.Total++
		switch rr.Status {
		case model.RemovalPending:
			c.Pending++
		case model.RemovalApproved:
			c.Approved++
		case model.RemovalRejected:
			c.Rejected++
		}
	}
	return c, nil
}

func (r *memRepo) RecordRenewal(_ context.Context, rn model.Renewal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.renewals[rn.PaymentID]; ok {
		return errs.ErrConflict
	}
	r.renewals[rn.PaymentID] = rn
	return nil
}

func (r *memRepo) CreateNotification(_ context.Context, n model.Notification) (model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.New()
	r.notifications[n.ID] = n
	return n, nil
}

func (r *memRepo) ListPendingNotifications(_ context.Context, now time.Time, limit int) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for _, n := range r.notifications {
		if n.SentAt == nil && !n.ScheduledFor.After(now) && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memRepo) MarkNotificationSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.notifications[id]
	n.SentAt = &at
	r.notifications[id] = n
	return nil
}

// fakeGateway accepts signatures equal to "ok" and reports every payment as captured.
type fakeGateway struct {
	mu       sync.Mutex
	amount   int64
	refunded []string
}

func (g *fakeGateway) KeyID() string { return "rzp_test" }

func (g *fakeGateway) CreateOrder(_ context.Context, req razorpay.OrderRequest) (razorpay.Order, error) {
	return razorpay.Order{ID: "order_" + req.Receipt, Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt}, nil
}

func (g *fakeGateway) VerifyPayment(_, _, signature string) error {
	if signature != "ok" {
		return razorpay.ErrInvalidSignature
	}
	return nil
}

func (g *fakeGateway) GetPayment(_ context.Context, paymentID string) (razorpay.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return razorpay.Payment{ID: paymentID, OrderID: "order_1", Amount: g.amount, Status: "captured"}, nil
}

func (g *fakeGateway) Refund(_ context.Context, paymentID string, amount int64) (razorpay.Refund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunded = append(g.refunded, paymentID)
	return razorpay.Refund{ID: "rfnd_" + paymentID, PaymentID: paymentID, Amount: amount}, nil
}

func (g *fakeGateway) refunds() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.refunded...)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, msg := range m.sent {
		out[i] = msg.Subject
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
	fail   bool
}

func (p *fakePublisher) Publish(_ context.Context, topic, _ string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errs.ErrGatewayUnavailable
	}
	p.topics = append(p.topics, topic)
	return nil
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

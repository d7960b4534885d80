package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type env struct {
	repo *memRepo
	gw   *fakeGateway
	mail *fakeMailer
	pub  *fakePublisher
	svc  *service.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		repo: newMemRepo(),
		gw:   &fakeGateway{amount: 100},
		mail: &fakeMailer{},
		pub:  &fakePublisher{},
	}
	e.svc = service.NewService(e.repo, zap.NewNop(),
		service.WithGateway(e.gw),
		service.WithMailer(e.mail),
		service.WithPublisher(e.pub),
		service.WithClock(func() time.Time { return testNow }),
	)
	t.Cleanup(e.svc.Close)
	return e
}

func pendingBooking(lib model.Library, email string) model.Booking {
	return model.Booking{
		LibraryID:          lib.ID,
		AdminID:            lib.AdminID,
		Name:               "Asha",
		Email:              email,
		Mobile:             "9000000000",
		SubscriptionMonths: 1,
		Amount:             500,
		Status:             model.BookingPending,
		PaymentStatus:      model.PaymentPending,
	}
}

func ptr[T any](v T) *T { return &v }

func TestApproval_ConcurrentNeverExceedsSeats(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	lib := e.repo.addLibrary("Abcd Library", 3)
	ids := make([]uuid.UUID, 10)
	for i := range ids {
		ids[i] = e.repo.putBooking(pendingBooking(lib, uuid.NewString()+"@mail.test")).ID
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errl []error
	)
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.svc.ApproveDeferred(context.Background(), lib.AdminID, id)
			mu.Lock()
			errl = append(errl, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	approved := 0
	for _, err := range errl {
		if err == nil {
			approved++
			continue
		}
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	}
	require.Equal(t, 3, approved)
	occupied, err := e.svc.OccupiedSeats(context.Background(), lib.ID)
	require.NoError(t, err)
	require.Equal(t, 3, occupied)
	ok, err := e.svc.HasCapacity(context.Background(), lib.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCapacity_UnknownLibrary(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, err := e.svc.HasCapacity(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.svc.CreateDirectBooking(context.Background(), nil, model.SeatBookingRequest{LibraryID: uuid.New()})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.EqualError(t, err, "library not found")
}

func TestCapacity_RemovedStudentReleasesSeat(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	lib := e.repo.addLibrary("Abcd Library", 1)
	st := e.repo.putStudent(model.Student{AdminID: lib.AdminID, IsActive: true, SubscriptionStatus: model.SubscriptionActive})
	b := pendingBooking(lib, "a@mail.test")
	b.Status, b.PaymentStatus, b.StudentID = model.BookingActive, model.PaymentPaid, &st.AuthUserID
	e.repo.putBooking(b)

	_, err := e.svc.CreateDirectBooking(context.Background(), nil, model.SeatBookingRequest{LibraryID: lib.ID, Name: "B", Email: "b@mail.test"})
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)

	st.IsActive, st.SubscriptionStatus = false, model.SubscriptionRemoved
	e.repo.putStudent(st)
	out, err := e.svc.CreateDirectBooking(context.Background(), nil, model.SeatBookingRequest{LibraryID: lib.ID, Name: "B", Email: "b@mail.test"})
	require.NoError(t, err)
	require.Equal(t, model.BookingPending, out.Status)
	require.Equal(t, model.PaymentPending, out.PaymentStatus)
}

func TestBooking_TokenPaymentToActive(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	lib := e.repo.addLibrary("Abcd Library", 1)
	req := model.SeatBookingRequest{LibraryID: lib.ID, Name: "Asha", Email: "asha@mail.test", Mobile: "9000000000", Amount: ptr(750.0)}

	order, err := e.svc.InitTokenPayment(ctx, req)
	require.NoError(t, err)
	require.Equal(t, int64(100), order.Amount)
	require.Equal(t, "INR", order.Currency)
	require.Equal(t, "rzp_test", order.KeyID)

	verify := model.TokenPaymentVerifyRequest{
		SeatBookingRequest: req,
		GatewaySignature: model.GatewaySignature{
			RazorpayOrderID:   "order_1",
			RazorpayPaymentID: "pay_1",
			RazorpaySignature: "ok",
		},
	}
	b, err := e.svc.VerifyTokenPayment(ctx, nil, verify)
	require.NoError(t, err)
	require.Equal(t, model.BookingPending, b.Status)
	require.Equal(t, model.PaymentTokenPaid, b.PaymentStatus)
	require.Equal(t, "pay_1", *b.TokenPaymentReference)
	require.Nil(t, b.StudentID)

	_, err = e.svc.VerifyTokenPayment(ctx, nil, verify)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	b, err = e.svc.ApproveDeferred(ctx, lib.AdminID, b.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, b.Status)
	require.NotNil(t, b.ApprovalDate)
	require.Nil(t, b.StudentID)

	act, err := e.svc.ConfirmPayment(ctx, model.ConfirmPaymentRequest{BookingID: b.ID, PaymentMethod: "cash", PaymentReference: "rcpt-1"})
	require.NoError(t, err)
	require.Equal(t, model.BookingActive, act.Booking.Status)
	require.Equal(t, model.PaymentPaid, act.Booking.PaymentStatus)
	require.Equal(t, testNow, *act.Booking.StartDate)
	require.Equal(t, testNow.AddDate(0, 0, 30), *act.Booking.EndDate)
	require.Equal(t, act.Student.AuthUserID, *act.Booking.StudentID)
	require.Equal(t, "ABCD25001", act.Student.StudentID)
	require.Equal(t, model.SubscriptionActive, act.Student.SubscriptionStatus)
	require.Equal(t, model.AttendanceAbsent, act.Student.Status)
	require.True(t, act.Student.IsActive)

	_, err = e.svc.ConfirmPayment(ctx, model.ConfirmPaymentRequest{BookingID: b.ID, PaymentMethod: "cash", PaymentReference: "rcpt-2"})
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.EqualError(t, err, "payment already confirmed")
	require.Equal(t, "rcpt-1", *e.repo.booking(b.ID).PaymentReference)

	occupied, err := e.svc.OccupiedSeats(ctx, lib.ID)
	require.NoError(t, err)
	require.Equal(t, 1, occupied)

	e.svc.Close()
	require.Contains(t, e.mail.subjects(), "Payment confirmed - Abcd Library")
	require.Contains(t, e.pub.published(), service.TopicBookingActivated)
	require.Empty(t, e.gw.refunds())
}

func TestBooking_GatewayPaymentActivates(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	lib := e.repo.addLibrary("Abcd Library", 1)
	b := pendingBooking(lib, "asha@mail.test")
	b.Status = model.BookingApproved
	b = e.repo.putBooking(b)

	order, err := e.svc.CreatePaymentOrder(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50000), order.Amount)
	require.Equal(t, b.ID, order.BookingID)

	sig := model.GatewaySignature{RazorpayOrderID: "order_1", RazorpayPaymentID: "pay_7", RazorpaySignature: "ok"}
	e.gw.amount = 100
	_, err = e.svc.VerifyGatewayPayment(ctx, model.GatewayPaymentRequest{BookingID: b.ID, GatewaySignature: sig})
	require.ErrorIs(t, err, errs.ErrPaymentVerificationFailed)
	require.Equal(t, model.BookingApproved, e.repo.booking(b.ID).Status)

	e.gw.amount = 50000
	act, err := e.svc.VerifyGatewayPayment(ctx, model.GatewayPaymentRequest{
		BookingID:        b.ID,
		GatewaySignature: model.GatewaySignature{RazorpayOrderID: "order_1", RazorpayPaymentID: "pay_7", RazorpaySignature: "ok"},
	})
	require.NoError(t, err)
	require.Equal(t, model.PaymentMethodGateway, *act.Booking.PaymentMethod)
	require.Equal(t, "pay_7", *act.Booking.PaymentReference)

	_, err = e.svc.CreatePaymentOrder(ctx, b.ID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestBooking_ConfirmRequiresApproval(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	lib := e.repo.addLibrary("Abcd Library", 1)
	b := e.repo.putBooking(pendingBooking(lib, "asha@mail.test"))

	_, err := e.svc.ConfirmPayment(context.Background(), model.ConfirmPaymentRequest{BookingID: b.ID, PaymentMethod: "cash", PaymentReference: "r"})
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.EqualError(t, err, "booking is not approved")

	_, err = e.svc.ConfirmPayment(context.Background(), model.ConfirmPaymentRequest{BookingID: uuid.New(), PaymentMethod: "cash", PaymentReference: "r"})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestVerifyTokenPayment_Failures(t *testing.T) {
	t.Parallel()
	sig := model.GatewaySignature{RazorpayOrderID: "order_1", RazorpayPaymentID: "pay_2", RazorpaySignature: "ok"}

	tests := []struct {
		name        string
		seats       int
		amount      int64
		sig         string
		foreignPlan bool
		wantErr     error
		refund      bool
	}{
		{name: "bad signature", seats: 1, amount: 100, sig: "forged", wantErr: errs.ErrPaymentVerificationFailed},
		{name: "amount mismatch", seats: 1, amount: 50, sig: "ok", wantErr: errs.ErrPaymentVerificationFailed},
		{name: "library full", seats: 0, amount: 100, sig: "ok", wantErr: errs.ErrCapacityExceeded, refund: true},
		{name: "plan gone", seats: 1, amount: 100, sig: "ok", foreignPlan: true, wantErr: errs.ErrNotFound, refund: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			e.gw.amount = tt.amount
			lib := e.repo.addLibrary("Abcd Library", tt.seats)
			s := sig
			s.RazorpaySignature = tt.sig

			req := model.SeatBookingRequest{LibraryID: lib.ID, Name: "A", Email: "a@mail.test"}
			if tt.foreignPlan {
				plan := e.repo.addPlan(e.repo.addLibrary("Other", 1).ID, 1, 500)
				req.SubscriptionPlanID = &plan.ID
			}

			_, err := e.svc.VerifyTokenPayment(context.Background(), nil, model.TokenPaymentVerifyRequest{
				SeatBookingRequest: req,
				GatewaySignature:   s,
			})
			require.ErrorIs(t, err, tt.wantErr)

			bookings, err := e.svc.ListAdminBookings(context.Background(), lib.AdminID, model.BookingFilter{})
			require.NoError(t, err)
			require.Empty(t, bookings)

			e.svc.Close()
			if tt.refund {
				require.Equal(t, []string{"pay_2"}, e.gw.refunds())
			} else {
				require.Empty(t, e.gw.refunds())
			}
		})
	}
}

func TestBooking_PlanPricing(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	lib := e.repo.addLibrary("Abcd Library", 5)
	plan := e.repo.addPlan(lib.ID, 3, 1500)

	b, err := e.svc.CreateDirectBooking(context.Background(), nil, model.SeatBookingRequest{
		LibraryID:          lib.ID,
		Name:               "A",
		Email:              "a@mail.test",
		SubscriptionPlanID: &plan.ID,
		SubscriptionMonths: 12,
		Amount:             ptr(1.0),
	})
	require.NoError(t, err)
	require.Equal(t, 3, b.SubscriptionMonths)
	require.Equal(t, 1500.0, b.Amount)

	other := e.repo.addLibrary("Other", 5)
	_, err = e.svc.CreateDirectBooking(context.Background(), nil, model.SeatBookingRequest{
		LibraryID:          other.ID,
		Name:               "A",
		Email:              "a@mail.test",
		SubscriptionPlanID: &plan.ID,
	})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.EqualError(t, err, "subscription plan not found or inactive")
}

func TestDecide(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("foreign admin", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		lib := e.repo.addLibrary("Abcd Library", 1)
		b := e.repo.putBooking(pendingBooking(lib, "a@mail.test"))
		_, err := e.svc.ApproveDeferred(ctx, uuid.New(), b.ID)
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.Equal(t, model.BookingPending, e.repo.booking(b.ID).Status)
	})

	t.Run("not pending", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		lib := e.repo.addLibrary("Abcd Library", 1)
		b := pendingBooking(lib, "a@mail.test")
		b.Status = model.BookingRejected
		b = e.repo.putBooking(b)
		_, err := e.svc.ApproveImmediate(ctx, lib.AdminID, b.ID)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("reject refunds token", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		lib := e.repo.addLibrary("Abcd Library", 1)
		b := pendingBooking(lib, "a@mail.test")
		b.PaymentStatus, b.TokenPaymentReference = model.PaymentTokenPaid, ptr("pay_9")
		b = e.repo.putBooking(b)

		out, err := e.svc.Reject(ctx, lib.AdminID, b.ID)
		require.NoError(t, err)
		require.Equal(t, model.BookingRejected, out.Status)
		e.svc.Close()
		require.Equal(t, []string{"pay_9"}, e.gw.refunds())
		require.Equal(t, model.PaymentRefunded, e.repo.booking(b.ID).PaymentStatus)
	})

	t.Run("immediate approval activates", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		lib := e.repo.addLibrary("Abcd Library", 1)
		b := e.repo.putBooking(pendingBooking(lib, "a@mail.test"))
		out, err := e.svc.ApproveImmediate(ctx, lib.AdminID, b.ID)
		require.NoError(t, err)
		require.Equal(t, model.BookingActive, out.Status)
		require.Equal(t, model.PaymentPaid, out.PaymentStatus)
		require.Equal(t, model.PaymentMethodAdminOverride, *out.PaymentMethod)
		require.NotNil(t, out.StudentID)
		require.NotNil(t, out.StartDate)
		require.NotNil(t, out.EndDate)
	})
}

func TestProvisioner_AllocatesNextSequence(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	lib := e.repo.addLibrary("Abcd Library", 10)
	for _, code := range []string{"ABCD25001", "ABCD25002", "ABCD25003", "ABCD25005"} {
		e.repo.putStudent(model.Student{StudentID: code, AdminID: lib.AdminID, Email: code + "@mail.test", IsActive: true})
	}
	e.repo.putStudent(model.Student{StudentID: "ABCD25099", AdminID: uuid.New(), Email: "x@mail.test"})

	b := e.repo.putBooking(pendingBooking(lib, "new@mail.test"))
	out, err := e.svc.ApproveImmediate(context.Background(), lib.AdminID, b.ID)
	require.NoError(t, err)
	st, err := e.repo.GetStudentByAuthID(context.Background(), *out.StudentID)
	require.NoError(t, err)
	require.Equal(t, "ABCD25006", st.StudentID)
}

func TestProvisioner_ReusesStudentByEmail(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	lib := e.repo.addLibrary("Abcd Library", 10)
	old := e.repo.putStudent(model.Student{
		StudentID:          "ABCD24001",
		AdminID:            lib.AdminID,
		Email:              "Asha@Mail.test",
		SubscriptionStatus: model.SubscriptionExpired,
		IsActive:           true,
	})
	b := e.repo.putBooking(pendingBooking(lib, "asha@mail.test"))

	out, err := e.svc.ApproveImmediate(context.Background(), lib.AdminID, b.ID)
	require.NoError(t, err)
	require.Equal(t, old.AuthUserID, *out.StudentID)
	st := e.repo.student(old.ID)
	require.Equal(t, "ABCD24001", st.StudentID)
	require.Equal(t, model.SubscriptionActive, st.SubscriptionStatus)
	require.Equal(t, testNow.AddDate(0, 0, 30), *st.SubscriptionEnd)
	require.Len(t, e.repo.allStudents(), 1)
}

func TestStudentIDPrefix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want string
	}{
		{name: "Abcd Library", want: "ABCD"},
		{name: "a1", want: "A1LL"},
		{name: "", want: "LLLL"},
		{name: "St. Xavier's", want: "STXA"},
		{name: "Ünï Lib", want: "NLIB"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, service.StudentIDPrefix(tt.name), tt.name)
	}
	require.Equal(t, "ABCD25006", service.FormatStudentID("Abcd Library", testNow, 6))
	require.Equal(t, "ABCD251000", service.FormatStudentID("Abcd Library", testNow, 1000))
}

func TestListLibraries_Distance(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	near := e.repo.addLibrary("Near", 2)
	far := e.repo.addLibrary("Far", 2)
	e.repo.addLibrary("Nowhere", 2)
	e.repo.mu.Lock()
	near.Latitude, near.Longitude = ptr(12.97), ptr(77.59)
	far.Latitude, far.Longitude = ptr(13.08), ptr(80.27)
	e.repo.libraries[near.ID], e.repo.libraries[far.ID] = near, far
	e.repo.mu.Unlock()
	e.repo.putBooking(model.Booking{LibraryID: near.ID, AdminID: near.AdminID, Status: model.BookingActive, PaymentStatus: model.PaymentPaid})

	libs, err := e.svc.ListLibraries(context.Background(), model.LibraryQuery{Latitude: ptr(12.97), Longitude: ptr(77.59)})
	require.NoError(t, err)
	require.Len(t, libs, 3)
	require.Equal(t, "Near", libs[0].Name)
	require.Equal(t, 1, libs[0].AvailableSeats)
	require.Equal(t, 0.0, *libs[0].DistanceKm)
	require.Equal(t, "Far", libs[1].Name)
	require.Nil(t, libs[2].DistanceKm)

	libs, err = e.svc.ListLibraries(context.Background(), model.LibraryQuery{Latitude: ptr(12.97), Longitude: ptr(77.59), RadiusKm: ptr(50.0)})
	require.NoError(t, err)
	require.Len(t, libs, 1)
}

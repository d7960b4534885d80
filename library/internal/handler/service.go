package handler

import (
	"context"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/service"
	"github.com/google/uuid"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookingService interface {
	ListLibraries(ctx context.Context, query model.LibraryQuery) ([]model.LibraryInfo, error)
	ListPlans(ctx context.Context, libraryID uuid.UUID) ([]model.SubscriptionPlan, error)
	CreateDirectBooking(ctx context.Context, studentID *uuid.UUID, req model.SeatBookingRequest) (model.Booking, error)
	InitTokenPayment(ctx context.Context, req model.SeatBookingRequest) (model.PaymentOrder, error)
	VerifyTokenPayment(ctx context.Context, studentID *uuid.UUID, req model.TokenPaymentVerifyRequest) (model.Booking, error)
	ApproveDeferred(ctx context.Context, adminID, bookingID uuid.UUID) (model.Booking, error)
	ApproveImmediate(ctx context.Context, adminID, bookingID uuid.UUID) (model.Booking, error)
	Reject(ctx context.Context, adminID, bookingID uuid.UUID) (model.Booking, error)
	ListAdminBookings(ctx context.Context, adminID uuid.UUID, filter model.BookingFilter) ([]model.Booking, error)
	ListStudentBookings(ctx context.Context, authUserID uuid.UUID) ([]model.Booking, error)
}

type PaymentService interface {
	CreatePaymentOrder(ctx context.Context, bookingID uuid.UUID) (model.PaymentOrder, error)
	ConfirmPayment(ctx context.Context, req model.ConfirmPaymentRequest) (model.Activation, error)
	VerifyGatewayPayment(ctx context.Context, req model.GatewayPaymentRequest) (model.Activation, error)
	CreateRenewalOrder(ctx context.Context, authUserID, planID uuid.UUID) (model.PaymentOrder, error)
	VerifyRenewal(ctx context.Context, authUserID uuid.UUID, req model.RenewalVerifyRequest) (model.Student, error)
}

type RemovalService interface {
	ListRemovalRequests(ctx context.Context, filter model.RemovalFilter) (model.RemovalRequestList, error)
	GetRemovalRequest(ctx context.Context, adminID, id uuid.UUID) (model.RemovalRequestView, error)
	UpdateRemovalRequest(ctx context.Context, adminID, id uuid.UUID, req model.RemovalDecisionRequest) (model.RemovalRequestView, error)
	RemovalStats(ctx context.Context, adminID uuid.UUID) (model.RemovalStats, error)
	CheckAndCreateRemovalRequests(ctx context.Context) (int, error)
	ListOverdueStudents(ctx context.Context, adminID uuid.UUID) ([]model.OverdueStudent, error)
	RestoreStudent(ctx context.Context, adminID, studentID uuid.UUID) (model.Student, error)
}

var (
	_ BookingService = (*service.Service)(nil)
	_ PaymentService = (*service.Service)(nil)
	_ RemovalService = (*service.Service)(nil)
)

package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/mailer"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TopicBookingActivated     = "booking.activated"
	TopicStudentRemoved       = "student.removed"
	TopicSubscriptionRenewed  = "subscription.renewed"
	TopicNotificationDelivery = "notification.delivered"

	backgroundTimeout = 30 * time.Second
)

type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (razorpay.Order, error)
	VerifyPayment(orderID, paymentID, signature string) error
	GetPayment(ctx context.Context, paymentID string) (razorpay.Payment, error)
	Refund(ctx context.Context, paymentID string, amount int64) (razorpay.Refund, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, v any) error
}

type Settings struct {
	TokenAmountPaise       int64
	Currency               string
	EmailFromScheduler     bool
	NotificationBatchLimit int
}

func DefaultSettings() Settings {
	return Settings{
		TokenAmountPaise:       100,
		Currency:               "INR",
		NotificationBatchLimit: 100,
	}
}

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	gateway   PaymentGateway
	mailer    Mailer
	publisher Publisher
	settings  Settings
	now       func() time.Time
	bg        sync.WaitGroup
}

type Option func(s *Service)

func WithGateway(g PaymentGateway) Option {
	return func(s *Service) {
		s.gateway = g
	}
}

func WithMailer(m Mailer) Option {
	return func(s *Service) {
		s.mailer = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithSettings(st Settings) Option {
	return func(s *Service) {
		s.settings = st
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		repo:      repo,
		gateway:   unavailableGateway{},
		mailer:    mailer.Nop{},
		publisher: nopPublisher{},
		settings:  DefaultSettings(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close waits for emails, events and refunds started after commits.
func (s *Service) Close() {
	s.bg.Wait()
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

func (s *Service) goBackground(name string, fn func(ctx context.Context) error) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Warn(name, zap.Error(err))
		}
	}()
}

func (s *Service) sendEmail(msg mailer.Message) {
	if msg.To == "" {
		return
	}
	s.goBackground("send email", func(ctx context.Context) error {
		return s.mailer.Send(ctx, msg)
	})
}

func (s *Service) publish(ctx context.Context, topic, key string, payload any) error {
	return s.publisher.Publish(ctx, topic, key, model.Event{
		Type:       topic,
		OccurredAt: s.clock(),
		Payload:    payload,
	})
}

func (s *Service) emit(topic, key string, payload any) {
	s.goBackground("publish "+topic, func(ctx context.Context) error {
		return s.publish(ctx, topic, key, payload)
	})
}

func receipt(kind string) string {
	return kind + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func gatewayErr(op string, err error) error {
	return errs.Newf(errs.ErrGatewayUnavailable, "payment gateway unavailable: %s: %v", op, err)
}

type unavailableGateway struct{}

func (unavailableGateway) KeyID() string { return "" }

func (unavailableGateway) CreateOrder(context.Context, razorpay.OrderRequest) (razorpay.Order, error) {
	return razorpay.Order{}, errs.ErrGatewayUnavailable
}

func (unavailableGateway) VerifyPayment(string, string, string) error {
	return errs.ErrGatewayUnavailable
}

func (unavailableGateway) GetPayment(context.Context, string) (razorpay.Payment, error) {
	return razorpay.Payment{}, errs.ErrGatewayUnavailable
}

func (unavailableGateway) Refund(context.Context, string, int64) (razorpay.Refund, error) {
	return razorpay.Refund{}, errs.ErrGatewayUnavailable
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

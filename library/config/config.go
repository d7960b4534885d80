package config

import (
	"log"
	"sync"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/kafka"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/logger"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/mailer"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/postgres"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/rabbitmq"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `envconfig:"HTTP_PORT" default:"8000"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE"`
}

const (
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
	BrokerNone     = "none"
)

type Events struct {
	Broker string `envconfig:"EVENTS_BROKER" default:"none"`
}

type Payment struct {
	TokenAmountPaise int64  `envconfig:"TOKEN_AMOUNT_PAISE" default:"100"`
	Currency         string `envconfig:"PAYMENT_CURRENCY" default:"INR"`
}

type Scheduler struct {
	Enabled                bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	InitialDelaySeconds    int    `envconfig:"SCHEDULER_INITIAL_DELAY_SECONDS" default:"60"`
	LoopIntervalSeconds    int    `envconfig:"SCHEDULER_LOOP_INTERVAL_SECONDS" default:"60"`
	Cron                   string `envconfig:"SCHEDULER_CRON"`
	DailyChecks            bool   `envconfig:"SUBSCRIPTION_CHECKS_DAILY_ENABLED" default:"true"`
	EmailFromScheduler     bool   `envconfig:"SUBSCRIPTION_EMAIL_FROM_SCHEDULER_ENABLED" default:"false"`
	NotificationBatchLimit int    `envconfig:"NOTIFICATION_BATCH_LIMIT" default:"100"`
}

func (s Scheduler) InitialDelay() time.Duration {
	return time.Duration(s.InitialDelaySeconds) * time.Second
}

func (s Scheduler) LoopInterval() time.Duration {
	return time.Duration(s.LoopIntervalSeconds) * time.Second
}

type Auth struct {
	// JWTSecret enables bearer verification; when empty identity headers from the gateway are trusted.
	JWTSecret string `envconfig:"JWT_SECRET" json:"-"`
}

type Config struct {
	Server    HTTPServer
	Database  postgres.DB
	Log       logger.Log
	Kafka     kafka.Config
	RabbitMQ  rabbitmq.Config
	Events    Events
	Razorpay  razorpay.Config
	Payment   Payment
	SMTP      mailer.Config
	Scheduler Scheduler
	Auth      Auth
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options set defaults that the environment may override.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrAlreadyRunning = errors.New("scheduler already running")

// Jobs are the lifecycle passes run on every tick.
type Jobs interface {
	DeliverPendingNotifications(ctx context.Context) (int, error)
	RunSubscriptionChecks(ctx context.Context) (model.LifecycleReport, error)
	CheckAndCreateRemovalRequests(ctx context.Context) (int, error)
}

type Options struct {
	InitialDelay time.Duration
	Interval     time.Duration
	// Cron replaces the fixed interval when set.
	Cron string
	// DailyChecks limits subscription checks to one successful pass per UTC day.
	DailyChecks bool
	Now         func() time.Time
}

type Scheduler struct {
	jobs Jobs
	log  *zap.Logger
	opts Options

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	dayMu     sync.Mutex
	checkedOn string
}

func New(jobs Jobs, log *zap.Logger, opts Options) *Scheduler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	return &Scheduler{
		jobs: jobs,
		log:  log.Named("scheduler"),
		opts: opts,
	}
}

// Start launches the loop in the background. Iterations run on a context detached
// from ctx, so cancellation is only observed between iterations. Both modes wait
// InitialDelay before the first run.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	if s.opts.Cron != "" {
		c, err := s.newCron(ctx)
		if err != nil {
			cancel()
			return err
		}
		go func() {
			defer close(done)
			if sleep(ctx, s.opts.InitialDelay) {
				c.Start()
				<-ctx.Done()
			}
			<-c.Stop().Done()
		}()
		s.log.Info("scheduler started",
			zap.Duration("initial_delay", s.opts.InitialDelay),
			zap.String("cron", s.opts.Cron))
	} else {
		go s.loop(ctx, done)
		s.log.Info("scheduler started",
			zap.Duration("initial_delay", s.opts.InitialDelay),
			zap.Duration("interval", s.opts.Interval))
	}

	s.running = true
	s.cancel = cancel
	s.done = done
	return nil
}

func (s *Scheduler) newCron(ctx context.Context) (*cron.Cron, error) {
	l := cron.PrintfLogger(zap.NewStdLog(s.log))
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	if _, err := c.AddFunc(s.opts.Cron, func() {
		_ = s.RunOnce(context.WithoutCancel(ctx))
	}); err != nil {
		return nil, errors.Wrapf(err, "cron spec %q", s.opts.Cron)
	}
	return c, nil
}

// Stop cancels the loop and waits for the running iteration to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	if !sleep(ctx, s.opts.InitialDelay) {
		return
	}
	for {
		_ = s.RunOnce(context.WithoutCancel(ctx))
		if !sleep(ctx, s.opts.Interval) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// RunOnce runs one iteration. A failing or panicking step is logged and the next step still runs.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	var err error

	err = multierr.Append(err, s.step("deliver notifications", func() error {
		_, err := s.jobs.DeliverPendingNotifications(ctx)
		return err
	}))

	if day, due := s.checksDue(); due {
		checkErr := s.step("subscription checks", func() error {
			_, err := s.jobs.RunSubscriptionChecks(ctx)
			return err
		})
		if checkErr == nil {
			s.markChecked(day)
		}
		err = multierr.Append(err, checkErr)
	}

	err = multierr.Append(err, s.step("removal requests", func() error {
		n, err := s.jobs.CheckAndCreateRemovalRequests(ctx)
		if n > 0 {
			s.log.Info("removal requests opened", zap.Int("count", n))
		}
		return err
	}))
	return err
}

func (s *Scheduler) checksDue() (string, bool) {
	day := s.opts.Now().UTC().Format(time.DateOnly)
	if !s.opts.DailyChecks {
		return day, true
	}
	s.dayMu.Lock()
	defer s.dayMu.Unlock()
	return day, s.checkedOn != day
}

func (s *Scheduler) markChecked(day string) {
	s.dayMu.Lock()
	s.checkedOn = day
	s.dayMu.Unlock()
}

func (s *Scheduler) step(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s: panic: %v", name, r)
			s.log.Error("scheduler step panicked", zap.String("step", name), zap.Any("panic", r))
		}
	}()
	if err = fn(); err != nil {
		s.log.Error("scheduler step failed", zap.String("step", name), zap.Error(err))
		return errors.Wrap(err, name)
	}
	return nil
}

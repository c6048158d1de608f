package domain

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SweepManager triggers sweeps by schedule. Each schedule entry maps an
// interval label (e.g. 'hourly') to a cron spec; sweeps never overlap.
type SweepManager struct {
	logger logrus.FieldLogger

	schedule map[string]string
	service  sweeper
	cron     cron

	now func() time.Time

	mu sync.Mutex
}

func NewSweepManager(
	logger logrus.FieldLogger,
	schedule map[string]string,
	service sweeper,
	cron cron,
) *SweepManager {
	return &SweepManager{
		logger:   logger,
		schedule: schedule,
		service:  service,
		cron:     cron,
		now:      time.Now,
	}
}

type sweeper interface {
	Sweep(ctx context.Context, interval string, now time.Time) (Sweep, error)
}

type cron interface {
	AddFunc(spec string, cmd func()) error
	Start()
	Stop()
}

func (m *SweepManager) Run() error {
	intervals := make([]string, 0, len(m.schedule))
	for interval := range m.schedule {
		intervals = append(intervals, interval)
	}
	sort.Strings(intervals)

	for _, interval := range intervals {
		interval := interval
		spec := m.schedule[interval]

		err := m.cron.AddFunc(spec, func() {
			m.RunSweep(interval)
		})
		if err != nil {
			return errors.Wrapf(err, "invalid cron spec '%s' for interval '%s'", spec, interval)
		}

		m.logger.WithFields(logrus.Fields{"interval": interval, "spec": spec}).Debug("Registered sweep")
	}

	m.logger.Debug("Starting cron")
	m.cron.Start()

	return nil
}

func (m *SweepManager) Stop() {
	m.cron.Stop()

	// wait for a running sweep to finish
	m.mu.Lock()
	defer m.mu.Unlock()
}

// RunSweep performs a sweep at the given interval, waiting for any sweep
// already in progress to finish first.
func (m *SweepManager) RunSweep(interval string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	m.logger.WithFields(logrus.Fields{"interval": interval, "started_at": now}).Info("Dispatched new sweep")

	_, err := m.service.Sweep(context.Background(), interval, now)
	if err != nil {
		m.logger.WithError(err).WithField("interval", interval).Error("Sweep finished with error")
	}
}

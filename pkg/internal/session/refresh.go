package session

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/digesto-dev/digesto/pkg/log"
)

// Refresher 周期性刷新当前视图，保持长时间打开的会话不过期.
type Refresher struct {
	sched  gocron.Scheduler
	logger *zerolog.Logger
}

// StartAutoRefresh 按固定间隔向会话派发 RefreshAction；
// interval<=0 不启动并返回 nil.
func StartAutoRefresh(c *Controller, interval time.Duration) (*Refresher, error) {
	if interval <= 0 {
		return nil, nil
	}

	logger := log.Logger()

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	job, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			c.Dispatch(RefreshAction{})
		}),
		gocron.WithName("view-refresh"),
	)
	if err != nil {
		_ = sched.Shutdown()

		return nil, err
	}

	sched.Start()
	logger.Info().
		Str("session", c.ID()).
		Str("job_id", job.ID().String()).
		Dur("interval", interval).
		Msg("auto refresh started")

	return &Refresher{sched: sched, logger: logger}, nil
}

// Stop 停止刷新任务.
func (r *Refresher) Stop() error {
	if r == nil {
		return nil
	}

	return r.sched.Shutdown()
}

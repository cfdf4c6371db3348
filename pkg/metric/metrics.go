package metric

import (
	"context"
	"time"

	"github.com/klwxsrx/go-web-auth/pkg/log"
)

type Metrics interface {
	Increment(key string, keyValueTags ...string)
	Duration(key string, duration time.Duration, keyValueTags ...string)
}

type logMetrics struct {
	logger log.Logger
	level  log.Level
}

// NewLogMetrics writes every sample as a log record at the given level, tags become record fields.
func NewLogMetrics(logger log.Logger, level log.Level) Metrics {
	return logMetrics{
		logger: logger,
		level:  level,
	}
}

func (m logMetrics) Increment(key string, keyValueTags ...string) {
	m.record(key, 1, keyValueTags)
}

func (m logMetrics) Duration(key string, duration time.Duration, keyValueTags ...string) {
	m.record(key, duration.Seconds(), keyValueTags)
}

func (m logMetrics) record(key string, value any, keyValueTags []string) {
	fields := make(log.Fields, len(keyValueTags)/2+2)
	for i := 0; i+1 < len(keyValueTags); i += 2 {
		fields[keyValueTags[i]] = keyValueTags[i+1]
	}
	fields["metric"] = key
	fields["value"] = value

	m.logger.With(fields).Log(context.Background(), m.level, "metric recorded")
}

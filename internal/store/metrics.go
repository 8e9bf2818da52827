package store

import (
	"time"

	"gitea.jw6.us/james/elternrat/internal/metrics"
)

func observePersist(operation string, start time.Time) {
	metrics.ObservePersistLatency(operation, start)
}

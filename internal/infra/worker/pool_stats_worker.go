package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type SnapshotSource interface {
	Snapshot() usecase.PoolState
}

// StatsSink receives per-queue counts; the metrics package implements it.
type StatsSink interface {
	SetPoolSize(source, state string, n int)
}

type PoolStat struct {
	Source     entity.LeadSource
	Assigned   int
	Unassigned int
}

// PoolStatsWorker periodically publishes how many leads sit in each queue.
type PoolStatsWorker struct {
	source       SnapshotSource
	sink         StatsSink
	logger       *slog.Logger
	tickInterval time.Duration
}

func NewPoolStatsWorker(source SnapshotSource, sink StatsSink, interval time.Duration, logger *slog.Logger) *PoolStatsWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PoolStatsWorker{
		source:       source,
		sink:         sink,
		logger:       logger,
		tickInterval: interval,
	}
}

func (w *PoolStatsWorker) Start(ctx context.Context) {
	w.logger.Info("pool stats worker started", "interval", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Collect()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("pool stats worker stopped")
			return
		case <-ticker.C:
			w.Collect()
		}
	}
}

// Collect takes one snapshot and pushes its counts to the sink.
func (w *PoolStatsWorker) Collect() []PoolStat {
	stats := ComputePoolStats(w.source.Snapshot())

	unassigned := 0
	for _, s := range stats {
		w.sink.SetPoolSize(string(s.Source), "assigned", s.Assigned)
		w.sink.SetPoolSize(string(s.Source), "unassigned", s.Unassigned)
		unassigned += s.Unassigned
	}
	if unassigned > 0 {
		w.logger.Info("leads waiting for a manager", "unassigned", unassigned)
	}
	return stats
}

// ComputePoolStats returns one entry per known queue, in queue order.
func ComputePoolStats(state usecase.PoolState) []PoolStat {
	index := make(map[entity.LeadSource]int, len(entity.LeadSources))
	stats := make([]PoolStat, len(entity.LeadSources))
	for i, s := range entity.LeadSources {
		stats[i].Source = s
		index[s] = i
	}

	for _, l := range state.Leads {
		i, ok := index[l.Source]
		if !ok {
			continue
		}
		if l.IsAssigned() {
			stats[i].Assigned++
		} else {
			stats[i].Unassigned++
		}
	}
	return stats
}

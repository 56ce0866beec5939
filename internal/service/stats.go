// stats.go — сервис статистики с кэшированием.
// Статистика по странам запрашивается у backend и кэшируется
// в expirable LRU с TTL; повторные запросы панели не бьют по backend.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/main-salman/haqnow/admin-module/internal/backend"
)

// Метрики кэша статистики.
var (
	statsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hq_stats_cache_hits_total",
		Help: "Число попаданий в кэш статистики",
	})
	statsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hq_stats_cache_misses_total",
		Help: "Число промахов кэша статистики",
	})
)

// StatsBackend — операции backend API над статистикой.
type StatsBackend interface {
	GetCountryStats(ctx context.Context) ([]backend.CountryStat, error)
}

// StatsEntry — закэшированная статистика с моментом получения.
type StatsEntry struct {
	Data      []backend.CountryStat `json:"data"`
	FetchedAt time.Time             `json:"fetched_at"`
	TTL       time.Duration         `json:"-"`
}

// Fresh сообщает, не протухла ли запись к моменту now.
func (e *StatsEntry) Fresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < e.TTL
}

// StatsService — сервис статистики с кэшированием.
type StatsService struct {
	backend StatsBackend
	cache   *expirable.LRU[string, *StatsEntry]
	ttl     time.Duration
	logger  *slog.Logger

	// now подменяется в тестах
	now func() time.Time
}

// NewStatsService создаёт сервис статистики.
func NewStatsService(b StatsBackend, ttl time.Duration, size int, logger *slog.Logger) *StatsService {
	return &StatsService{
		backend: b,
		cache:   expirable.NewLRU[string, *StatsEntry](size, nil, ttl),
		ttl:     ttl,
		logger:  logger.With(slog.String("component", "stats_service")),
		now:     time.Now,
	}
}

const countryStatsKey = "country_stats"

// CountryStats возвращает статистику документов по странам.
// Свежая запись отдаётся из кэша; протухшая или отсутствующая —
// запрашивается у backend и кэшируется заново.
func (s *StatsService) CountryStats(ctx context.Context) (*StatsEntry, error) {
	now := s.now()

	if entry, ok := s.cache.Get(countryStatsKey); ok && entry.Fresh(now) {
		statsCacheHits.Inc()
		return entry, nil
	}
	statsCacheMisses.Inc()

	stats, err := s.backend.GetCountryStats(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	entry := &StatsEntry{
		Data:      stats,
		FetchedAt: now,
		TTL:       s.ttl,
	}
	s.cache.Add(countryStatsKey, entry)

	s.logger.Debug("Статистика по странам обновлена",
		slog.Int("countries", len(stats)),
	)

	return entry, nil
}

// Invalidate сбрасывает кэш статистики (после массовых изменений).
func (s *StatsService) Invalidate() {
	s.cache.Purge()
}

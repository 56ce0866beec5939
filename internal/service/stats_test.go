package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/backend"
)

// fakeStatsBackend — подмена backend API для тестов.
type fakeStatsBackend struct {
	calls atomic.Int64
	stats []backend.CountryStat
}

func (f *fakeStatsBackend) GetCountryStats(_ context.Context) ([]backend.CountryStat, error) {
	f.calls.Add(1)
	return f.stats, nil
}

func TestCountryStats_CacheHit(t *testing.T) {
	fb := &fakeStatsBackend{stats: []backend.CountryStat{{Country: "Jordan", Count: 12}}}
	svc := NewStatsService(fb, 5*time.Minute, 16, testLogger())

	first, err := svc.CountryStats(context.Background())
	if err != nil {
		t.Fatalf("CountryStats() вернул ошибку: %v", err)
	}
	second, err := svc.CountryStats(context.Background())
	if err != nil {
		t.Fatalf("повторный CountryStats() вернул ошибку: %v", err)
	}

	if n := fb.calls.Load(); n != 1 {
		t.Errorf("backend вызван %d раз, ожидается 1 (второй запрос из кэша)", n)
	}
	if !first.FetchedAt.Equal(second.FetchedAt) {
		t.Error("вторая запись получена не из кэша")
	}
}

func TestCountryStats_StaleEntryRefetched(t *testing.T) {
	fb := &fakeStatsBackend{stats: []backend.CountryStat{{Country: "Jordan", Count: 12}}}
	svc := NewStatsService(fb, 5*time.Minute, 16, testLogger())

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if _, err := svc.CountryStats(context.Background()); err != nil {
		t.Fatalf("CountryStats() вернул ошибку: %v", err)
	}

	// Запись протухла
	svc.now = func() time.Time { return base.Add(6 * time.Minute) }

	if _, err := svc.CountryStats(context.Background()); err != nil {
		t.Fatalf("CountryStats() после TTL вернул ошибку: %v", err)
	}
	if n := fb.calls.Load(); n != 2 {
		t.Errorf("backend вызван %d раз, протухшая запись должна перечитываться", n)
	}
}

func TestCountryStats_Invalidate(t *testing.T) {
	fb := &fakeStatsBackend{}
	svc := NewStatsService(fb, 5*time.Minute, 16, testLogger())

	_, _ = svc.CountryStats(context.Background())
	svc.Invalidate()
	_, _ = svc.CountryStats(context.Background())

	if n := fb.calls.Load(); n != 2 {
		t.Errorf("backend вызван %d раз, после Invalidate кэш должен быть пуст", n)
	}
}

func TestStatsEntry_Fresh(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	entry := &StatsEntry{FetchedAt: now, TTL: 5 * time.Minute}

	if !entry.Fresh(now.Add(4 * time.Minute)) {
		t.Error("Fresh() = false внутри TTL")
	}
	if entry.Fresh(now.Add(5 * time.Minute)) {
		t.Error("Fresh() = true на границе TTL, ожидается false")
	}
}

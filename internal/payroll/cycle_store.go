package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// State insurance eligibility is locked per contribution cycle: an
// employee eligible at the start of a cycle stays eligible for that
// whole cycle even if the wage later crosses the limit. Cycles run
// April through September and October through March.
type CycleStore interface {
	ForcedEligible(ctx context.Context, companyID, employeeID string, period PeriodContext) (bool, error)
	MarkEligible(ctx context.Context, companyID, employeeID string, period PeriodContext) error
}

// CycleStart returns the first month of the contribution cycle the
// given period falls into, formatted YYYY-MM.
func CycleStart(period PeriodContext) string {
	year := period.Year
	var start time.Month
	switch {
	case period.Month >= time.April && period.Month <= time.September:
		start = time.April
	case period.Month >= time.October:
		start = time.October
	default: // January through March belong to the previous October cycle
		start = time.October
		year--
	}
	return fmt.Sprintf("%04d-%02d", year, int(start))
}

func cycleKey(companyID, employeeID string, period PeriodContext) string {
	return fmt.Sprintf("esi:cycle:%s:%s:%s", companyID, CycleStart(period), employeeID)
}

type redisCycleStore struct {
	rdb *redis.Client
}

func NewRedisCycleStore(rdb *redis.Client) CycleStore {
	return &redisCycleStore{rdb: rdb}
}

func (s *redisCycleStore) ForcedEligible(ctx context.Context, companyID, employeeID string, period PeriodContext) (bool, error) {
	_, err := s.rdb.Get(ctx, cycleKey(companyID, employeeID, period)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisCycleStore) MarkEligible(ctx context.Context, companyID, employeeID string, period PeriodContext) error {
	// A cycle lasts six months; seven months of TTL covers late runs.
	return s.rdb.Set(ctx, cycleKey(companyID, employeeID, period), "1", 7*31*24*time.Hour).Err()
}

// memoryCycleStore backs tests and single-node deployments without
// Redis.
type memoryCycleStore struct {
	mu   sync.RWMutex
	seen map[string]bool
}

func NewMemoryCycleStore() CycleStore {
	return &memoryCycleStore{seen: make(map[string]bool)}
}

func (s *memoryCycleStore) ForcedEligible(ctx context.Context, companyID, employeeID string, period PeriodContext) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen[cycleKey(companyID, employeeID, period)], nil
}

func (s *memoryCycleStore) MarkEligible(ctx context.Context, companyID, employeeID string, period PeriodContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[cycleKey(companyID, employeeID, period)] = true
	return nil
}

package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/payroll"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestCycleStart(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  string
	}{
		{time.April, 2025, "2025-04"},
		{time.September, 2025, "2025-04"},
		{time.October, 2025, "2025-10"},
		{time.December, 2025, "2025-10"},
		{time.January, 2026, "2025-10"},
		{time.March, 2026, "2025-10"},
	}
	for _, tc := range cases {
		got := payroll.CycleStart(payroll.PeriodContext{Month: tc.month, Year: tc.year})
		assert.Equal(t, tc.want, got, "%s %d", tc.month, tc.year)
	}
}

func TestMemoryCycleStore_MarkSpansWholeCycle(t *testing.T) {
	store := payroll.NewMemoryCycleStore()
	ctx := context.Background()

	july := payroll.PeriodContext{Month: time.July, Year: 2025}
	august := payroll.PeriodContext{Month: time.August, Year: 2025}
	october := payroll.PeriodContext{Month: time.October, Year: 2025}

	forced, err := store.ForcedEligible(ctx, "c1", "e1", july)
	assert.NoError(t, err)
	assert.False(t, forced)

	assert.NoError(t, store.MarkEligible(ctx, "c1", "e1", july))

	// Same cycle: still locked in.
	forced, _ = store.ForcedEligible(ctx, "c1", "e1", august)
	assert.True(t, forced)

	// Next cycle: the lock has lapsed.
	forced, _ = store.ForcedEligible(ctx, "c1", "e1", october)
	assert.False(t, forced)

	// Other employees and tenants are unaffected.
	forced, _ = store.ForcedEligible(ctx, "c1", "e2", august)
	assert.False(t, forced)
	forced, _ = store.ForcedEligible(ctx, "c2", "e1", august)
	assert.False(t, forced)
}

func TestRedisCycleStore_KeysByCycleStart(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := payroll.NewRedisCycleStore(rdb)
	ctx := context.Background()

	july := payroll.PeriodContext{Month: time.July, Year: 2025}
	key := "esi:cycle:c1:2025-04:e1"

	mock.ExpectGet(key).RedisNil()
	forced, err := store.ForcedEligible(ctx, "c1", "e1", july)
	assert.NoError(t, err)
	assert.False(t, forced)

	mock.ExpectSet(key, "1", 7*31*24*time.Hour).SetVal("OK")
	assert.NoError(t, store.MarkEligible(ctx, "c1", "e1", july))

	mock.ExpectGet(key).SetVal("1")
	forced, err = store.ForcedEligible(ctx, "c1", "e1", july)
	assert.NoError(t, err)
	assert.True(t, forced)

	assert.NoError(t, mock.ExpectationsWereMet())
}

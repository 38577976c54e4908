package service

import (
	"clipchain/config"
	"clipchain/dao"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 可手动拨动的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newLedger(start time.Time) (*LedgerService, *dao.MemoryLedger, *fakeClock) {
	store := dao.NewMemoryLedger()
	clock := &fakeClock{now: start}
	return &LedgerService{
		Store:  store,
		Config: &config.Ledger{GenerationRewardEvery: 5},
		Clock:  clock.Now,
	}, store, clock
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newLedger(day(2025, 3, 10))

	acc, isNew, err := svc.GetOrCreate(ctx, 42, "0xABCdef0000000000000000000000000000000001")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.EqualValues(t, 3, acc.CreditBalance)
	assert.EqualValues(t, 3, acc.TotalCreditsEarned)
	assert.Equal(t, "0xabcdef0000000000000000000000000000000001", acc.Wallet())
	assert.Nil(t, acc.LastActiveAt)

	acc, isNew, err = svc.GetOrCreate(ctx, 42, "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.EqualValues(t, 3, acc.CreditBalance)

	txs, err := store.ListTransactions(ctx, 42, dao.DirectionAll, 0, 10)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestGetOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newLedger(day(2025, 3, 10))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = svc.GetOrCreate(ctx, 7, "")
		}()
	}
	wg.Wait()

	acc, err := svc.GetAccount(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, acc.CreditBalance)
	txs, _ := store.ListTransactions(ctx, 7, dao.DirectionAll, 0, 100)
	assert.Len(t, txs, 1)
}

func TestInvalidFid(t *testing.T) {
	svc, _, _ := newLedger(day(2025, 3, 10))
	_, _, err := svc.GetOrCreate(context.Background(), 0, "")
	assert.ErrorIs(t, err, ErrInvalidFid)
	_, err = svc.Spend(context.Background(), 0, GenerationText)
	assert.ErrorIs(t, err, ErrInvalidFid)
}

func TestSpendUntilEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 10))

	_, _, err := svc.GetOrCreate(ctx, 100, "")
	require.NoError(t, err)

	for want := int64(2); want >= 0; want-- {
		resp, err := svc.Spend(ctx, 100, GenerationProfile)
		require.NoError(t, err)
		assert.Equal(t, want, resp.RemainingBalance)
	}

	_, err = svc.Spend(ctx, 100, GenerationProfile)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	acc, err := svc.GetAccount(ctx, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 0, acc.CreditBalance)
	assert.EqualValues(t, 3, acc.TotalCreditsSpent)
	assert.EqualValues(t, 3, acc.TotalVideosCreated)
	assert.NotNil(t, acc.LastActiveAt)
}

func TestSpendUnknownAccount(t *testing.T) {
	svc, _, _ := newLedger(day(2025, 3, 10))
	_, err := svc.Spend(context.Background(), 555, GenerationText)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConcurrentSpendNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 10))
	_, _, err := svc.GetOrCreate(ctx, 9, "")
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Spend(ctx, 9, GenerationText); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	acc, _ := svc.GetAccount(ctx, 9)
	assert.EqualValues(t, 0, acc.CreditBalance)
}

func TestRefundRestoresBalance(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 10))
	_, _, _ = svc.GetOrCreate(ctx, 11, "")
	_, err := svc.Spend(ctx, 11, GenerationBio)
	require.NoError(t, err)

	acc, err := svc.Refund(ctx, 11, "Generation failed")
	require.NoError(t, err)
	assert.EqualValues(t, 3, acc.CreditBalance)
	// 退款不计入累计获得，累计消费只增不减
	assert.EqualValues(t, 3, acc.TotalCreditsEarned)
	assert.EqualValues(t, 1, acc.TotalCreditsSpent)
}

func TestTransactionsReplayToBalance(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newLedger(day(2025, 3, 1))
	_, _, _ = svc.GetOrCreate(ctx, 12, "")

	for i := 0; i < 7; i++ {
		clock.Set(day(2025, 3, 1+i))
		_, _ = svc.ClaimDailyConnectionReward(ctx, 12)
		_, _ = svc.Spend(ctx, 12, GenerationText)
		_, _ = svc.AdvanceDailyStreak(ctx, 12)
		_, _ = svc.AdvanceLoginStreak(ctx, 12)
		_, _ = svc.RecordGeneration(ctx, 12)
	}
	_, _ = svc.UseFreeGeneration(ctx, 12)
	_, _ = svc.Refund(ctx, 12, "Generation failed")

	acc, err := svc.GetAccount(ctx, 12)
	require.NoError(t, err)
	txs, err := store.ListTransactions(ctx, 12, dao.DirectionAll, 0, 1000)
	require.NoError(t, err)

	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}
	assert.Equal(t, acc.CreditBalance, sum)
	// 最新一条的快照等于当前余额
	assert.Equal(t, acc.CreditBalance, txs[0].BalanceAfter)
}

func TestAdvanceDailyStreak(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newLedger(day(2025, 3, 1))
	_, _, _ = svc.GetOrCreate(ctx, 20, "")

	res, err := svc.AdvanceDailyStreak(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)
	assert.False(t, res.StreakContinued)
	assert.False(t, res.AlreadyToday)

	// 同一天再次生成不变
	res, err = svc.AdvanceDailyStreak(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)
	assert.Zero(t, res.BonusAwarded)
	assert.True(t, res.AlreadyToday)

	clock.Set(day(2025, 3, 2))
	res, _ = svc.AdvanceDailyStreak(ctx, 20)
	assert.Equal(t, 2, res.Streak)
	assert.True(t, res.StreakContinued)
	assert.False(t, res.AlreadyToday)

	clock.Set(day(2025, 3, 3))
	res, _ = svc.AdvanceDailyStreak(ctx, 20)
	assert.Equal(t, 3, res.Streak)
	assert.EqualValues(t, 1, res.BonusAwarded)
	assert.EqualValues(t, 4, res.CreditBalance)

	// 隔一天中断，从 1 开始，最长记录保留
	clock.Set(day(2025, 3, 5))
	res, _ = svc.AdvanceDailyStreak(ctx, 20)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 3, res.LongestStreak)
	assert.True(t, res.StreakBroken)
}

func TestDailyStreakSevenDayBonus(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newLedger(day(2025, 3, 1))
	_, _, _ = svc.GetOrCreate(ctx, 21, "")

	var total int64
	for i := 0; i < 7; i++ {
		clock.Set(day(2025, 3, 1+i))
		res, err := svc.AdvanceDailyStreak(ctx, 21)
		require.NoError(t, err)
		total += res.BonusAwarded
	}
	assert.EqualValues(t, 3, total)

	acc, _ := svc.GetAccount(ctx, 21)
	assert.EqualValues(t, 6, acc.CreditBalance)
	assert.EqualValues(t, 6, acc.TotalCreditsEarned)
}

func TestAdvanceLoginStreakAwardsOnSeventhDay(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newLedger(day(2025, 3, 1))

	for i := 0; i < 6; i++ {
		clock.Set(day(2025, 3, 1+i))
		res, err := svc.AdvanceLoginStreak(ctx, 30)
		require.NoError(t, err)
		assert.False(t, res.FreeVideoAwarded)
	}

	clock.Set(day(2025, 3, 7))
	res, err := svc.AdvanceLoginStreak(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 7, res.LoginStreak)
	assert.True(t, res.FreeVideoAwarded)
	assert.Equal(t, 1, res.TotalFreeVideos)
	assert.Equal(t, 1, res.FreeVideosFromLogin)
	assert.Equal(t, 7, res.DaysUntilReward)

	// 同一天重复打卡不会再次奖励
	res, err = svc.AdvanceLoginStreak(ctx, 30)
	require.NoError(t, err)
	assert.False(t, res.FreeVideoAwarded)
	assert.Equal(t, 1, res.TotalFreeVideos)
}

func TestLoginStreakRestartResetsRewardWindow(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newLedger(day(2025, 4, 1))

	for i := 0; i < 4; i++ {
		clock.Set(day(2025, 4, 1+i))
		res, err := svc.AdvanceLoginStreak(ctx, 32)
		require.NoError(t, err)
		assert.False(t, res.FreeVideoAwarded)
	}

	// 4 月 5 日缺席，6 日重新从 1 开始
	for i := 0; i < 7; i++ {
		clock.Set(day(2025, 4, 6+i))
		res, err := svc.AdvanceLoginStreak(ctx, 32)
		require.NoError(t, err)
		assert.Equal(t, i+1, res.LoginStreak)
		assert.Equal(t, i == 0, res.StreakBroken)
		// 第 7 个日历日（4 月 7 日）不发奖，重启后的第 7 天才发
		assert.Equal(t, i == 6, res.FreeVideoAwarded, "day %d", i+1)
	}

	res, err := svc.LoginStreakStatus(ctx, 32)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalFreeVideos)
	assert.Equal(t, 7, res.LongestLoginStreak)
}

func TestLoginStreakStatusShowsBrokenStreak(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newLedger(day(2025, 3, 1))
	_, _ = svc.AdvanceLoginStreak(ctx, 31)
	clock.Set(day(2025, 3, 2))
	_, _ = svc.AdvanceLoginStreak(ctx, 31)

	res, err := svc.LoginStreakStatus(ctx, 31)
	require.NoError(t, err)
	assert.Equal(t, 2, res.LoginStreak)
	assert.Equal(t, 5, res.DaysUntilReward)

	clock.Set(day(2025, 3, 10))
	res, err = svc.LoginStreakStatus(ctx, 31)
	require.NoError(t, err)
	assert.Equal(t, 0, res.LoginStreak)
	assert.Equal(t, 2, res.LongestLoginStreak)
}

func TestDailyConnectionReward(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newLedger(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))

	status, err := svc.DailyRewardStatus(ctx, 40)
	require.NoError(t, err)
	assert.True(t, status.Available)

	res, err := svc.ClaimDailyConnectionReward(ctx, 40)
	require.NoError(t, err)
	assert.True(t, res.CreditAwarded)
	assert.EqualValues(t, 4, res.CreditBalance)

	clock.Set(time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC))
	res, err = svc.ClaimDailyConnectionReward(ctx, 40)
	require.NoError(t, err)
	assert.True(t, res.AlreadyClaimed)
	assert.EqualValues(t, 4, res.CreditBalance)

	clock.Set(time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC))
	res, err = svc.ClaimDailyConnectionReward(ctx, 40)
	require.NoError(t, err)
	assert.True(t, res.CreditAwarded)
	assert.EqualValues(t, 5, res.CreditBalance)
}

func TestSpendMarksDailyRewardClaimed(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 1))
	_, _, _ = svc.GetOrCreate(ctx, 41, "")
	_, err := svc.Spend(ctx, 41, GenerationText)
	require.NoError(t, err)

	status, err := svc.DailyRewardStatus(ctx, 41)
	require.NoError(t, err)
	assert.False(t, status.Available)
}

func TestFreeGenerations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 1))
	_, _, _ = svc.GetOrCreate(ctx, 50, "")

	_, err := svc.UseFreeGeneration(ctx, 50)
	assert.ErrorIs(t, err, ErrNoFreeGenerations)

	left, err := svc.GrantFreeGeneration(ctx, 50, "test grant")
	require.NoError(t, err)
	assert.Equal(t, 1, left)

	left, err = svc.UseFreeGeneration(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	acc, _ := svc.GetAccount(ctx, 50)
	assert.EqualValues(t, 3, acc.CreditBalance)
	assert.EqualValues(t, 1, acc.TotalVideosCreated)
}

func TestFreeGenerationCap(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 1))
	svc.Config.MaxFreeGenerations = 1
	_, _, _ = svc.GetOrCreate(ctx, 51, "")

	_, err := svc.GrantFreeGeneration(ctx, 51, "first")
	require.NoError(t, err)
	_, err = svc.GrantFreeGeneration(ctx, 51, "second")
	assert.ErrorIs(t, err, ErrFreeGenerationCap)
}

func TestRecordGenerationMilestone(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 1))

	for i := 1; i <= 4; i++ {
		res, err := svc.RecordGeneration(ctx, 60)
		require.NoError(t, err)
		assert.False(t, res.FreeGenAwarded)
		assert.EqualValues(t, 5-i, res.UntilNextReward)
	}
	res, err := svc.RecordGeneration(ctx, 60)
	require.NoError(t, err)
	assert.True(t, res.FreeGenAwarded)
	assert.EqualValues(t, 5, res.Count)
	assert.Equal(t, 1, res.FreeGenerations)
	assert.EqualValues(t, 5, res.UntilNextReward)

	// 生成计数不影响每日连续天数
	acc, _ := svc.GetAccount(ctx, 60)
	assert.Equal(t, 0, acc.CurrentStreak)
}

func TestListTransactionsPaging(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(day(2025, 3, 1))
	_, _, _ = svc.GetOrCreate(ctx, 70, "")
	for i := 0; i < 3; i++ {
		_, _ = svc.Spend(ctx, 70, GenerationText)
	}

	page, err := svc.ListTransactions(ctx, 70, dao.DirectionAll, 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "EXPENSE", page.Records[0].OrderType)

	page, err = svc.ListTransactions(ctx, 70, dao.DirectionAll, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.False(t, page.HasMore)
	assert.Equal(t, "signup", page.Records[1].Type)
	assert.Equal(t, "INCOME", page.Records[1].OrderType)

	income, err := svc.ListTransactions(ctx, 70, dao.DirectionIncome, 0, 10)
	require.NoError(t, err)
	assert.Len(t, income.Records, 1)
}

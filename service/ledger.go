package service

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/models"
	"clipchain/pkg/log"
	"clipchain/pkg/utils"
	"clipchain/types"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	SignupCredits      int64 = 3
	DailyRewardCredits int64 = 1
	// 每连续登录 7 天奖励一次免费生成
	LoginRewardEvery = 7
)

type LedgerService struct {
	Store  dao.LedgerStore
	Config *config.Ledger
	Clock  func() time.Time `wire:"-"`
}

var _ ILedgerService = (*LedgerService)(nil)

type ILedgerService interface {
	GetOrCreate(ctx context.Context, fid uint64, wallet string) (*models.Account, bool, error)
	GetAccount(ctx context.Context, fid uint64) (*models.Account, error)
	Spend(ctx context.Context, fid uint64, generationType string) (*types.SpendResp, error)
	Refund(ctx context.Context, fid uint64, reason string) (*models.Account, error)

	AdvanceDailyStreak(ctx context.Context, fid uint64) (*types.DailyStreakResult, error)
	AdvanceLoginStreak(ctx context.Context, fid uint64) (*types.LoginStreakResp, error)
	LoginStreakStatus(ctx context.Context, fid uint64) (*types.LoginStreakResp, error)

	DailyRewardStatus(ctx context.Context, fid uint64) (*types.DailyRewardStatusResp, error)
	ClaimDailyConnectionReward(ctx context.Context, fid uint64) (*types.DailyRewardClaimResp, error)

	UseFreeGeneration(ctx context.Context, fid uint64) (int, error)
	GrantFreeGeneration(ctx context.Context, fid uint64, reason string) (int, error)
	RecordGeneration(ctx context.Context, fid uint64) (*types.GenerationCountResp, error)
	GenerationCountStatus(ctx context.Context, fid uint64) (*types.GenerationCountResp, error)

	ListTransactions(ctx context.Context, fid uint64, action string, cursor uint64, limit int) (*types.ListCreditRecords, error)
}

func (s *LedgerService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// update 统一把存储层的 not found 转成业务错误
func (s *LedgerService) update(ctx context.Context, fid uint64, fn func(acc *models.Account) ([]*models.CreditTransaction, error)) (*models.Account, error) {
	if fid == 0 {
		return nil, ErrInvalidFid
	}
	acc, err := s.Store.Update(ctx, fid, fn)
	if errors.Is(err, dao.ErrAccountNotFound) {
		return nil, ErrUserNotFound
	}
	return acc, err
}

// GetOrCreate 首次访问开户并赠送注册积分；重复调用不会重复赠送
func (s *LedgerService) GetOrCreate(ctx context.Context, fid uint64, wallet string) (*models.Account, bool, error) {
	if fid == 0 {
		return nil, false, ErrInvalidFid
	}
	wallet = utils.NormalizeAddress(wallet)

	acc := &models.Account{
		Fid:                fid,
		CreditBalance:      SignupCredits,
		TotalCreditsEarned: SignupCredits,
	}
	if wallet != "" {
		acc.WalletAddress = &wallet
	}
	created, err := s.Store.Create(ctx, acc, &models.CreditTransaction{
		Amount:       SignupCredits,
		Type:         models.TxSignup,
		Description:  "Welcome bonus",
		BalanceAfter: SignupCredits,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create account: %w", err)
	}
	if created {
		creditEvents.WithLabelValues(string(models.TxSignup)).Inc()
		log.L.Info("account created", zap.Uint64("fid", fid), zap.String("wallet", wallet))
		return acc, true, nil
	}

	existing, err := s.Store.Get(ctx, fid)
	if err != nil {
		return nil, false, err
	}
	if wallet == "" || existing.Wallet() == wallet {
		return existing, false, nil
	}
	existing, err = s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		a.WalletAddress = &wallet
		return nil, nil
	})
	return existing, false, err
}

func (s *LedgerService) GetAccount(ctx context.Context, fid uint64) (*models.Account, error) {
	if fid == 0 {
		return nil, ErrInvalidFid
	}
	acc, err := s.Store.Get(ctx, fid)
	if errors.Is(err, dao.ErrAccountNotFound) {
		return nil, ErrUserNotFound
	}
	return acc, err
}

// Spend 扣 1 积分，余额不足时不做任何修改
func (s *LedgerService) Spend(ctx context.Context, fid uint64, generationType string) (*types.SpendResp, error) {
	now := s.now()
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		if a.CreditBalance < 1 {
			return nil, ErrInsufficientCredits
		}
		a.CreditBalance--
		a.TotalCreditsSpent++
		a.TotalVideosCreated++
		a.LastActiveAt = &now
		return []*models.CreditTransaction{{
			Amount:       -1,
			Type:         models.TxSpend,
			Description:  fmt.Sprintf("Video generation (%s)", generationType),
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	creditEvents.WithLabelValues(string(models.TxSpend)).Inc()
	return &types.SpendResp{Success: true, RemainingBalance: acc.CreditBalance}, nil
}

// Refund 无条件返还 1 积分
func (s *LedgerService) Refund(ctx context.Context, fid uint64, reason string) (*models.Account, error) {
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		a.CreditBalance++
		return []*models.CreditTransaction{{
			Amount:       1,
			Type:         models.TxRefund,
			Description:  reason,
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	creditEvents.WithLabelValues(string(models.TxRefund)).Inc()
	log.L.Info("credit refunded", zap.Uint64("fid", fid), zap.String("reason", reason))
	return acc, nil
}

// AdvanceDailyStreak 生成成功后推进连续天数，第 3/7/30 天发放奖励积分
func (s *LedgerService) AdvanceDailyStreak(ctx context.Context, fid uint64) (*types.DailyStreakResult, error) {
	now := s.now()
	today := UTCDay(now)
	var (
		outcome StreakOutcome
		bonus   int64
	)
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		var next int
		next, outcome = AdvanceStreak(a.CurrentStreak, a.LastGenerationDate, now)
		bonus = 0
		if outcome == StreakSameDay {
			return nil, nil
		}
		a.CurrentStreak = next
		a.LongestStreak = max(a.LongestStreak, next)
		a.LastGenerationDate = &today

		bonus = DailyStreakBonus(next)
		if bonus == 0 {
			return nil, nil
		}
		a.CreditBalance += bonus
		a.TotalCreditsEarned += bonus
		return []*models.CreditTransaction{{
			Amount:       bonus,
			Type:         models.TxStreak,
			Description:  fmt.Sprintf("%d day streak bonus", next),
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	if bonus > 0 {
		creditEvents.WithLabelValues(string(models.TxStreak)).Inc()
	}
	return &types.DailyStreakResult{
		Streak:          acc.CurrentStreak,
		LongestStreak:   acc.LongestStreak,
		BonusAwarded:    bonus,
		CreditBalance:   acc.CreditBalance,
		StreakContinued: outcome == StreakContinued,
		StreakBroken:    outcome == StreakBroken,
		AlreadyToday:    outcome == StreakSameDay,
	}, nil
}

// AdvanceLoginStreak 登录打卡。连续天数为 7 的倍数时奖励一次免费生成，
// 读取、判断与写入在同一把行锁内完成。
func (s *LedgerService) AdvanceLoginStreak(ctx context.Context, fid uint64) (*types.LoginStreakResp, error) {
	if _, _, err := s.GetOrCreate(ctx, fid, ""); err != nil {
		return nil, err
	}
	now := s.now()
	today := UTCDay(now)
	var (
		outcome StreakOutcome
		awarded bool
	)
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		var next int
		next, outcome = AdvanceStreak(a.LoginStreak, a.LastLoginDate, now)
		awarded = false
		if outcome == StreakSameDay {
			return nil, nil
		}
		a.LoginStreak = next
		a.LongestLoginStreak = max(a.LongestLoginStreak, next)
		a.LastLoginDate = &today

		if next%LoginRewardEvery != 0 || s.atFreeCap(a) {
			return nil, nil
		}
		awarded = true
		a.FreeGenerations++
		a.FreeVideosFromLogin++
		return []*models.CreditTransaction{{
			Type:         models.TxFreeGrant,
			Description:  fmt.Sprintf("%d day login streak reward", next),
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	if awarded {
		creditEvents.WithLabelValues(string(models.TxFreeGrant)).Inc()
	}
	resp := loginStreakResp(acc, acc.LoginStreak)
	resp.FreeVideoAwarded = awarded
	resp.StreakContinued = outcome == StreakContinued
	resp.StreakBroken = outcome == StreakBroken
	return resp, nil
}

// LoginStreakStatus 只读，不推进
func (s *LedgerService) LoginStreakStatus(ctx context.Context, fid uint64) (*types.LoginStreakResp, error) {
	acc, _, err := s.GetOrCreate(ctx, fid, "")
	if err != nil {
		return nil, err
	}
	return loginStreakResp(acc, EffectiveStreak(acc.LoginStreak, acc.LastLoginDate, s.now())), nil
}

func loginStreakResp(acc *models.Account, streak int) *types.LoginStreakResp {
	return &types.LoginStreakResp{
		LoginStreak:         streak,
		LongestLoginStreak:  acc.LongestLoginStreak,
		FreeVideosFromLogin: acc.FreeVideosFromLogin,
		TotalFreeVideos:     acc.FreeGenerations,
		DaysUntilReward:     LoginRewardEvery - streak%LoginRewardEvery,
	}
}

func (s *LedgerService) DailyRewardStatus(ctx context.Context, fid uint64) (*types.DailyRewardStatusResp, error) {
	acc, _, err := s.GetOrCreate(ctx, fid, "")
	if err != nil {
		return nil, err
	}
	return &types.DailyRewardStatusResp{
		Available:     acc.LastActiveAt == nil || !SameUTCDay(*acc.LastActiveAt, s.now()),
		CreditBalance: acc.CreditBalance,
	}, nil
}

// ClaimDailyConnectionReward 每个 UTC 自然日 +1，以 lastActiveAt 判断是否已领取
func (s *LedgerService) ClaimDailyConnectionReward(ctx context.Context, fid uint64) (*types.DailyRewardClaimResp, error) {
	if _, _, err := s.GetOrCreate(ctx, fid, ""); err != nil {
		return nil, err
	}
	now := s.now()
	claimed := false
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		claimed = a.LastActiveAt != nil && SameUTCDay(*a.LastActiveAt, now)
		if claimed {
			return nil, nil
		}
		a.CreditBalance += DailyRewardCredits
		a.TotalCreditsEarned += DailyRewardCredits
		a.LastActiveAt = &now
		return []*models.CreditTransaction{{
			Amount:       DailyRewardCredits,
			Type:         models.TxDaily,
			Description:  "Daily connection reward",
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	if !claimed {
		creditEvents.WithLabelValues(string(models.TxDaily)).Inc()
	}
	return &types.DailyRewardClaimResp{
		AlreadyClaimed: claimed,
		CreditAwarded:  !claimed,
		CreditBalance:  acc.CreditBalance,
	}, nil
}

// UseFreeGeneration 消耗一次免费生成，余额不变但记一条 0 积分流水
func (s *LedgerService) UseFreeGeneration(ctx context.Context, fid uint64) (int, error) {
	now := s.now()
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		if a.FreeGenerations <= 0 {
			return nil, ErrNoFreeGenerations
		}
		a.FreeGenerations--
		a.TotalVideosCreated++
		a.LastActiveAt = &now
		return []*models.CreditTransaction{{
			Type:         models.TxFreeUse,
			Description:  "Free generation used",
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return 0, err
	}
	creditEvents.WithLabelValues(string(models.TxFreeUse)).Inc()
	return acc.FreeGenerations, nil
}

// GrantFreeGeneration 返还或奖励一次免费生成，受 max_free_generations 限制
func (s *LedgerService) GrantFreeGeneration(ctx context.Context, fid uint64, reason string) (int, error) {
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		if s.atFreeCap(a) {
			return nil, ErrFreeGenerationCap
		}
		a.FreeGenerations++
		return []*models.CreditTransaction{{
			Type:         models.TxFreeGrant,
			Description:  reason,
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return 0, err
	}
	creditEvents.WithLabelValues(string(models.TxFreeGrant)).Inc()
	return acc.FreeGenerations, nil
}

// RecordGeneration 累计生成次数，与按天计算的连续天数互不影响
func (s *LedgerService) RecordGeneration(ctx context.Context, fid uint64) (*types.GenerationCountResp, error) {
	if _, _, err := s.GetOrCreate(ctx, fid, ""); err != nil {
		return nil, err
	}
	every := int64(s.rewardEvery())
	awarded := false
	acc, err := s.update(ctx, fid, func(a *models.Account) ([]*models.CreditTransaction, error) {
		a.GenerationCount++
		awarded = false
		if a.GenerationCount%every != 0 || s.atFreeCap(a) {
			return nil, nil
		}
		awarded = true
		a.FreeGenerations++
		return []*models.CreditTransaction{{
			Type:         models.TxFreeGrant,
			Description:  fmt.Sprintf("%d generations milestone", a.GenerationCount),
			BalanceAfter: a.CreditBalance,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	if awarded {
		creditEvents.WithLabelValues(string(models.TxFreeGrant)).Inc()
	}
	resp := s.generationCountResp(acc)
	resp.FreeGenAwarded = awarded
	return resp, nil
}

func (s *LedgerService) GenerationCountStatus(ctx context.Context, fid uint64) (*types.GenerationCountResp, error) {
	acc, _, err := s.GetOrCreate(ctx, fid, "")
	if err != nil {
		return nil, err
	}
	return s.generationCountResp(acc), nil
}

func (s *LedgerService) generationCountResp(acc *models.Account) *types.GenerationCountResp {
	every := int64(s.rewardEvery())
	return &types.GenerationCountResp{
		Count:           acc.GenerationCount,
		FreeGenerations: acc.FreeGenerations,
		UntilNextReward: every - acc.GenerationCount%every,
	}
}

func (s *LedgerService) rewardEvery() int {
	if s.Config == nil || s.Config.GenerationRewardEvery <= 0 {
		return 5
	}
	return s.Config.GenerationRewardEvery
}

func (s *LedgerService) atFreeCap(a *models.Account) bool {
	return s.Config != nil && s.Config.MaxFreeGenerations > 0 && a.FreeGenerations >= s.Config.MaxFreeGenerations
}

func (s *LedgerService) ListTransactions(ctx context.Context, fid uint64, action string, cursor uint64, limit int) (*types.ListCreditRecords, error) {
	if fid == 0 {
		return nil, ErrInvalidFid
	}
	logs, err := s.Store.ListTransactions(ctx, fid, action, cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	resp := &types.ListCreditRecords{
		Records: make([]types.CreditRecord, 0, len(logs)),
	}
	if len(logs) > limit {
		resp.HasMore = true
		logs = logs[:limit]
		resp.NextCursor = logs[len(logs)-1].ID
	}
	for _, l := range logs {
		orderType := "NEUTRAL"
		switch {
		case l.Amount > 0:
			orderType = "INCOME"
		case l.Amount < 0:
			orderType = "EXPENSE"
		}
		resp.Records = append(resp.Records, types.CreditRecord{
			ID:           l.ID,
			Amount:       l.Amount,
			Type:         string(l.Type),
			Description:  l.Description,
			BalanceAfter: l.BalanceAfter,
			OrderType:    orderType,
			CreatedAt:    l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

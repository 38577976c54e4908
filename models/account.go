package models

import "time"

// Account 以 Farcaster fid 为主键的积分账户
type Account struct {
	Fid           uint64  `gorm:"primaryKey;column:fid;autoIncrement:false"`
	WalletAddress *string `gorm:"column:wallet_address;size:64"`

	CreditBalance      int64 `gorm:"column:credit_balance;default:0"`
	TotalCreditsEarned int64 `gorm:"column:total_credits_earned;default:0"`
	TotalCreditsSpent  int64 `gorm:"column:total_credits_spent;default:0"`
	TotalVideosCreated int64 `gorm:"column:total_videos_created;default:0;index"`

	// 每日生成连续天数
	CurrentStreak      int        `gorm:"column:current_streak;default:0"`
	LongestStreak      int        `gorm:"column:longest_streak;default:0;index"`
	LastGenerationDate *time.Time `gorm:"column:last_generation_date;type:date"`

	// 每日登录连续天数
	LoginStreak        int        `gorm:"column:login_streak;default:0"`
	LongestLoginStreak int        `gorm:"column:longest_login_streak;default:0"`
	LastLoginDate      *time.Time `gorm:"column:last_login_date;type:date"`

	FreeGenerations     int   `gorm:"column:free_generations;default:0"`
	FreeVideosFromLogin int   `gorm:"column:free_videos_from_login;default:0"`
	// 累计生成次数，与每日连续天数分开计数
	GenerationCount     int64 `gorm:"column:generation_count;default:0"`

	LastActiveAt *time.Time `gorm:"column:last_active_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) Wallet() string {
	if a.WalletAddress == nil {
		return ""
	}
	return *a.WalletAddress
}

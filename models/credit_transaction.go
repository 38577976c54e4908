package models

import "time"

type CreditTxType string

// 积分流水类型
const (
	TxSignup    CreditTxType = "signup"
	TxDaily     CreditTxType = "daily"
	TxStreak    CreditTxType = "streak"
	TxSpend     CreditTxType = "spend"
	TxRefund    CreditTxType = "refund"
	TxShare     CreditTxType = "share"
	TxReferral  CreditTxType = "referral"
	TxPurchase  CreditTxType = "purchase"
	TxBonus     CreditTxType = "bonus"
	TxFreeUse   CreditTxType = "free_generation_use"   // 消耗一次免费生成，amount 恒为 0
	TxFreeGrant CreditTxType = "free_generation_grant" // 奖励或返还一次免费生成，amount 恒为 0
)

// CreditTransaction 只追加的积分流水，BalanceAfter 为变动后的余额快照
type CreditTransaction struct {
	ID             uint64       `gorm:"primaryKey;column:id"`
	Fid            uint64       `gorm:"column:fid;index:idx_fid_id,priority:1"`
	Amount         int64        `gorm:"column:amount"`
	Type           CreditTxType `gorm:"column:type;size:32"`
	Description    string       `gorm:"column:description;size:255"`
	BalanceAfter   int64        `gorm:"column:balance_after"`
	RelatedVideoID string       `gorm:"column:related_video_id;size:128"`
	CreatedAt      time.Time    `gorm:"column:created_at;autoCreateTime"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

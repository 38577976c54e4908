package models

import "time"

type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundSent      RefundStatus = "sent"
	RefundConfirmed RefundStatus = "confirmed"
	RefundFailed    RefundStatus = "failed"
)

// RefundRequest 直付生成失败后待人工结算的退款义务
type RefundRequest struct {
	ID               int64        `gorm:"primaryKey;column:id;autoIncrement:false"`
	TransactionHash  string       `gorm:"column:transaction_hash;size:80;uniqueIndex"`
	RecipientAddress string       `gorm:"column:recipient_address;size:64"`
	Amount           string       `gorm:"column:amount;size:32"`
	Token            string       `gorm:"column:token;size:16"`
	Chain            string       `gorm:"column:chain;size:16"`
	Reason           string       `gorm:"column:reason;size:512"`
	Status           RefundStatus `gorm:"column:status;size:16;index"`
	SettlementTxHash string       `gorm:"column:settlement_tx_hash;size:80"`
	FailureReason    string       `gorm:"column:failure_reason;size:512"`
	CreatedAt        time.Time    `gorm:"column:created_at"`
	UpdatedAt        time.Time    `gorm:"column:updated_at"`
}

func (RefundRequest) TableName() string {
	return "refund_requests"
}

package dao

import (
	"github.com/google/wire"
	"gorm.io/gorm"
)

var ProviderSet = wire.NewSet(
	NewLedgerStore,
	NewTemplateStore,
	NewRefundStore,
)

// 未配置 mysql 时 db 为 nil，退回内存实现

func NewLedgerStore(db *gorm.DB) LedgerStore {
	if db == nil {
		return NewMemoryLedger()
	}
	return NewAccountDAO(db)
}

func NewTemplateStore(db *gorm.DB) TemplateStore {
	if db == nil {
		return NewMemoryTemplates()
	}
	return NewTemplateDAO(db)
}

func NewRefundStore(db *gorm.DB) RefundStore {
	if db == nil {
		return NewMemoryRefunds()
	}
	return NewRefundDAO(db)
}

package dao

import (
	"clipchain/models"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAccountNotFound = errors.New("account not found")

// 流水筛选方向
const (
	DirectionAll     = ""
	DirectionIncome  = "income"
	DirectionExpense = "expense"
)

// 排行榜排序字段
const (
	RankByStreak = "longest_streak"
	RankByVideos = "total_videos_created"
)

// LedgerStore 账户与积分流水的存储。
// 所有余额变动都必须通过 Update 完成：同一 fid 的读改写在锁内串行执行，
// 账户快照与本次产生的流水同时提交或同时回滚。
type LedgerStore interface {
	// Create 账户不存在时插入账户及初始流水，已存在时不做任何修改
	Create(ctx context.Context, acc *models.Account, txs ...*models.CreditTransaction) (bool, error)
	Get(ctx context.Context, fid uint64) (*models.Account, error)
	Update(ctx context.Context, fid uint64, fn func(acc *models.Account) ([]*models.CreditTransaction, error)) (*models.Account, error)
	ListTransactions(ctx context.Context, fid uint64, direction string, cursor uint64, limit int) ([]models.CreditTransaction, error)
	TopAccounts(ctx context.Context, orderBy string, limit int) ([]models.Account, error)
}

type AccountDAO struct {
	Repo[models.Account]
}

var _ LedgerStore = (*AccountDAO)(nil)

func NewAccountDAO(db *gorm.DB) *AccountDAO {
	return &AccountDAO{
		Repo: NewRepo[models.Account](db),
	}
}

func (d *AccountDAO) Create(ctx context.Context, acc *models.Account, txs ...*models.CreditTransaction) (bool, error) {
	created := false
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 并发首次访问时只有一个请求能插入成功
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(acc)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		for _, t := range txs {
			t.Fid = acc.Fid
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return created, err
}

func (d *AccountDAO) Get(ctx context.Context, fid uint64) (*models.Account, error) {
	acc, err := d.FindOne(ctx, "fid = ?", fid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	return acc, err
}

func (d *AccountDAO) Update(ctx context.Context, fid uint64, fn func(acc *models.Account) ([]*models.CreditTransaction, error)) (*models.Account, error) {
	var acc models.Account
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("fid = ?", fid).First(&acc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		txs, err := fn(&acc)
		if err != nil {
			return err
		}
		if err := tx.Save(&acc).Error; err != nil {
			return err
		}
		for _, t := range txs {
			t.Fid = fid
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListTransactions 按 id 倒序的游标分页
func (d *AccountDAO) ListTransactions(ctx context.Context, fid uint64, direction string, cursor uint64, limit int) ([]models.CreditTransaction, error) {
	var list []models.CreditTransaction
	query := d.Db.WithContext(ctx).Where("fid = ?", fid)

	switch direction {
	case DirectionIncome:
		query = query.Where("amount > ?", 0)
	case DirectionExpense:
		query = query.Where("amount < ?", 0)
	}
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (d *AccountDAO) TopAccounts(ctx context.Context, orderBy string, limit int) ([]models.Account, error) {
	if orderBy != RankByVideos {
		orderBy = RankByStreak
	}
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(orderBy+" > ?", 0).
			Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}, Desc: true}).
			Order("fid ASC").
			Limit(limit)
	})
}

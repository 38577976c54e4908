package dao

import (
	"clipchain/models"
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRefundNotFound  = errors.New("refund request not found")
	ErrStatusConflict  = errors.New("refund request status does not allow this change")
	ErrDuplicateRefund = errors.New("refund request already exists for transaction")
)

type RefundStore interface {
	Create(ctx context.Context, r *models.RefundRequest) error
	Get(ctx context.Context, id int64) (*models.RefundRequest, error)
	GetByTxHash(ctx context.Context, hash string) (*models.RefundRequest, error)
	List(ctx context.Context, status models.RefundStatus, limit int) ([]models.RefundRequest, error)
	// Transition 当前状态属于 from 时执行 apply 并保存，否则返回 ErrStatusConflict
	Transition(ctx context.Context, id int64, from []models.RefundStatus, apply func(r *models.RefundRequest)) (*models.RefundRequest, error)
}

type RefundDAO struct {
	Repo[models.RefundRequest]
}

var _ RefundStore = (*RefundDAO)(nil)

func NewRefundDAO(db *gorm.DB) *RefundDAO {
	return &RefundDAO{
		Repo: NewRepo[models.RefundRequest](db),
	}
}

func (d *RefundDAO) Create(ctx context.Context, r *models.RefundRequest) error {
	err := d.Repo.Create(ctx, r)
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicateRefund
	}
	return err
}

func (d *RefundDAO) Get(ctx context.Context, id int64) (*models.RefundRequest, error) {
	r, err := d.FindOne(ctx, "id = ?", id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRefundNotFound
	}
	return r, err
}

func (d *RefundDAO) GetByTxHash(ctx context.Context, hash string) (*models.RefundRequest, error) {
	r, err := d.FindOne(ctx, "transaction_hash = ?", hash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRefundNotFound
	}
	return r, err
}

// List status 为空时返回全部，按创建时间正序（先欠先还）
func (d *RefundDAO) List(ctx context.Context, status models.RefundStatus, limit int) ([]models.RefundRequest, error) {
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db.Order("created_at ASC").Order("id ASC").Limit(limit)
	})
}

func (d *RefundDAO) Transition(ctx context.Context, id int64, from []models.RefundStatus, apply func(r *models.RefundRequest)) (*models.RefundRequest, error) {
	var r models.RefundRequest
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&r).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRefundNotFound
		}
		if err != nil {
			return err
		}
		if !slices.Contains(from, r.Status) {
			return ErrStatusConflict
		}
		apply(&r)
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

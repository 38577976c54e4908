package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用的单表操作，具体 DAO 通过嵌入复用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, v *T) error {
	return r.Db.WithContext(ctx).Create(v).Error
}

func (r *Repo[T]) FindOne(ctx context.Context, where string, args ...any) (*T, error) {
	var v T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo[T]) FindAll(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	var list []T
	err := r.Db.WithContext(ctx).Scopes(scopes...).Find(&list).Error
	return list, err
}

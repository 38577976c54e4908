package dao

import (
	"clipchain/models"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrDuplicateUse     = errors.New("template use already recorded")
)

type TemplateStore interface {
	Create(ctx context.Context, t *models.VideoTemplate) error
	Get(ctx context.Context, id string) (*models.VideoTemplate, error)
	// ListTrending 公开的非官方模板，按使用次数、创建时间倒序
	ListTrending(ctx context.Context, limit int) ([]models.VideoTemplate, error)
	ListByCreator(ctx context.Context, fid uint64, limit int) ([]models.VideoTemplate, error)
	CreateUse(ctx context.Context, use *models.TemplateUse) error
	// IncrementUses 使用次数 +1，预览视频为空时用本次生成结果回填；模板不存在返回 false
	IncrementUses(ctx context.Context, id string, videoURL string) (bool, error)
}

type TemplateDAO struct {
	Repo[models.VideoTemplate]
}

var _ TemplateStore = (*TemplateDAO)(nil)

func NewTemplateDAO(db *gorm.DB) *TemplateDAO {
	return &TemplateDAO{
		Repo: NewRepo[models.VideoTemplate](db),
	}
}

func (d *TemplateDAO) Get(ctx context.Context, id string) (*models.VideoTemplate, error) {
	t, err := d.FindOne(ctx, "id = ?", id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	return t, err
}

func (d *TemplateDAO) ListTrending(ctx context.Context, limit int) ([]models.VideoTemplate, error) {
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_public = ? AND is_official = ?", true, false).
			Order("uses_count DESC").
			Order("created_at DESC").
			Limit(limit)
	})
}

func (d *TemplateDAO) ListByCreator(ctx context.Context, fid uint64, limit int) ([]models.VideoTemplate, error) {
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_fid = ?", fid).Order("created_at DESC").Limit(limit)
	})
}

func (d *TemplateDAO) CreateUse(ctx context.Context, use *models.TemplateUse) error {
	err := d.Db.WithContext(ctx).Create(use).Error
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicateUse
	}
	return err
}

func (d *TemplateDAO) IncrementUses(ctx context.Context, id string, videoURL string) (bool, error) {
	updates := map[string]interface{}{
		// gorm.Expr 保证并发下计数不丢失
		"uses_count": gorm.Expr("uses_count + ?", 1),
	}
	if videoURL != "" {
		// 第一次成功使用的结果作为模板预览
		updates["video_url"] = gorm.Expr("CASE WHEN video_url IS NULL OR video_url = '' THEN ? ELSE video_url END", videoURL)
	}
	res := d.Db.WithContext(ctx).Model(&models.VideoTemplate{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 未开启 TranslateError 时 mysql 返回 Error 1062
	return strings.Contains(err.Error(), "1062")
}

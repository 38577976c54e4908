package models

import (
	"time"

	"gorm.io/datatypes"
)

// VideoTemplate 用户保存的可复用生成配置
type VideoTemplate struct {
	ID             string            `gorm:"primaryKey;column:id;size:36"`
	CreatorFid     uint64            `gorm:"column:creator_fid;index"`
	Name           string            `gorm:"column:name;size:128"`
	Description    string            `gorm:"column:description;size:512"`
	Prompt         string            `gorm:"column:prompt;type:text"`
	GenerationType string            `gorm:"column:generation_type;size:16"`
	VideoURL       string            `gorm:"column:video_url;size:1024"`
	ThumbnailURL   string            `gorm:"column:thumbnail_url;size:1024"`
	Settings       datatypes.JSONMap `gorm:"column:settings"`
	CastHash       string            `gorm:"column:cast_hash;size:80"`
	CastURL        string            `gorm:"column:cast_url;size:512"`
	IsFeatured     bool              `gorm:"column:is_featured;default:false"`
	IsPublic       bool              `gorm:"column:is_public;index:idx_trending,priority:1"`
	IsOfficial     bool              `gorm:"column:is_official;default:false;index:idx_trending,priority:2"`
	UsesCount      int64             `gorm:"column:uses_count;default:0;index:idx_trending,priority:3"`
	CreatedAt      time.Time         `gorm:"column:created_at;index:idx_trending,priority:4"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
}

func (VideoTemplate) TableName() string {
	return "video_templates"
}

// TemplateUse 模板使用记录
type TemplateUse struct {
	ID                uint64    `gorm:"primaryKey;column:id"`
	TemplateID        string    `gorm:"column:template_id;size:36;uniqueIndex:uk_use,priority:1"`
	UserFid           uint64    `gorm:"column:user_fid;uniqueIndex:uk_use,priority:2"`
	GeneratedVideoURL string    `gorm:"column:generated_video_url;size:512;uniqueIndex:uk_use,priority:3"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TemplateUse) TableName() string {
	return "template_uses"
}

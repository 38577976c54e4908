package types

import "time"

type SaveTemplateReq struct {
	CreatorFid     uint64         `json:"creatorFid"`
	Name           string         `json:"name" binding:"max=128"`
	Description    string         `json:"description" binding:"max=512"`
	Prompt         string         `json:"prompt"`
	GenerationType string         `json:"generationType" binding:"omitempty,oneof=profile bio text"`
	VideoURL       string         `json:"videoUrl"`
	ThumbnailURL   string         `json:"thumbnailUrl"`
	Settings       map[string]any `json:"settings"`
	CastHash       string         `json:"castHash"`
	CastURL        string         `json:"castUrl"`
	IsPublic       *bool          `json:"isPublic"`
}

type UseTemplateReq struct {
	TemplateID        string `json:"templateId"`
	UserFid           uint64 `json:"userFid"`
	GeneratedVideoURL string `json:"generatedVideoUrl"`
}

type TemplateCreator struct {
	Fid         uint64 `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName"`
	PfpURL      string `json:"pfpUrl,omitempty"`
}

type Template struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Prompt         string          `json:"prompt"`
	GenerationType string          `json:"generationType"`
	VideoURL       string          `json:"videoUrl"`
	ThumbnailURL   string          `json:"thumbnailUrl"`
	Settings       map[string]any  `json:"settings,omitempty"`
	UsesCount      int64           `json:"usesCount"`
	CastHash       string          `json:"castHash,omitempty"`
	CastURL        string          `json:"castUrl,omitempty"`
	IsOfficial     bool            `json:"isOfficial"`
	IsFeatured     bool            `json:"isFeatured"`
	IsPublic       bool            `json:"isPublic"`
	Creator        TemplateCreator `json:"creator"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type TrendingReq struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

type TrendingResp struct {
	Templates         []Template `json:"templates"`
	OfficialTemplates []Template `json:"officialTemplates"`
	UserTemplates     []Template `json:"userTemplates"`
	Count             int        `json:"count"`
}

type CreatorTemplatesReq struct {
	Fid   uint64 `form:"fid"`
	Limit int    `form:"limit,default=20" binding:"min=1,max=100"`
}

package service

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/models"
	"clipchain/pkg/log"
	"clipchain/types"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// 热门列表缓存的深度，与接口允许的最大 limit 一致
const trendingDepth = 100

// TrendingStore 热门列表缓存，未命中时回源
type TrendingStore interface {
	Get(ctx context.Context) ([]models.VideoTemplate, bool)
	Set(ctx context.Context, list []models.VideoTemplate)
	Invalidate(ctx context.Context)
}

var officialCreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// 内置官方模板，不落库，读取时与用户模板合并
var officialTemplates = []models.VideoTemplate{
	{
		ID:             "official-profile-cinematic",
		Name:           "Cinematic Portrait",
		Description:    "Your profile picture comes alive with a slow cinematic push-in",
		Prompt:         "Slow cinematic push-in on the portrait, soft rim light, subtle head turn, shallow depth of field",
		GenerationType: GenerationProfile,
		IsOfficial:     true,
		IsFeatured:     true,
		IsPublic:       true,
		CreatedAt:      officialCreatedAt,
	},
	{
		ID:             "official-bio-story",
		Name:           "Bio Story",
		Description:    "A short scene written from your Farcaster bio",
		Prompt:         "A short, vivid scene that tells the story of this bio",
		GenerationType: GenerationBio,
		IsOfficial:     true,
		IsFeatured:     true,
		IsPublic:       true,
		CreatedAt:      officialCreatedAt,
	},
	{
		ID:             "official-text-dreamscape",
		Name:           "Dreamscape",
		Description:    "Surreal floating landscapes from a single line of text",
		Prompt:         "A surreal dreamscape of floating islands at golden hour, drifting clouds, gentle camera orbit",
		GenerationType: GenerationText,
		IsOfficial:     true,
		IsFeatured:     true,
		IsPublic:       true,
		CreatedAt:      officialCreatedAt,
	},
}

func isOfficialTemplate(id string) bool {
	for _, t := range officialTemplates {
		if t.ID == id {
			return true
		}
	}
	return false
}

type TemplateService struct {
	Store    dao.TemplateStore
	Trending TrendingStore
	Profiles *ProfileService
	Media    IMediaService
	Config   *config.Templates
}

var _ ITemplateService = (*TemplateService)(nil)

type ITemplateService interface {
	Save(ctx context.Context, req *types.SaveTemplateReq) (*types.Template, error)
	// RecordUse 尽力而为，内部失败只记日志
	RecordUse(ctx context.Context, req *types.UseTemplateReq) error
	ListTrending(ctx context.Context, limit int) (*types.TrendingResp, error)
	ListByCreator(ctx context.Context, fid uint64, limit int) ([]types.Template, error)
}

func (s *TemplateService) Save(ctx context.Context, req *types.SaveTemplateReq) (*types.Template, error) {
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.CreatorFid == 0 || req.VideoURL == "" || req.Prompt == "" {
		return nil, ErrTemplateInvalid
	}
	if !validGenerationType(req.GenerationType) {
		return nil, ErrInvalidGenerationType
	}

	t := &models.VideoTemplate{
		ID:             uuid.NewString(),
		CreatorFid:     req.CreatorFid,
		Name:           req.Name,
		Description:    req.Description,
		Prompt:         req.Prompt,
		GenerationType: req.GenerationType,
		VideoURL:       req.VideoURL,
		ThumbnailURL:   req.ThumbnailURL,
		Settings:       datatypes.JSONMap(req.Settings),
		CastHash:       req.CastHash,
		CastURL:        req.CastURL,
		IsPublic:       req.IsPublic == nil || *req.IsPublic,
	}
	if t.Name == "" {
		t.Name = defaultTemplateName(t.Prompt)
	}
	s.mirror(ctx, t)

	if err := s.Store.Create(ctx, t); err != nil {
		return nil, err
	}
	s.Trending.Invalidate(ctx)
	log.L.Info("template saved", zap.String("id", t.ID), zap.Uint64("creator", t.CreatorFid))

	out := toTemplate(t)
	if u, err := s.Profiles.Lookup(ctx, t.CreatorFid); err == nil {
		out.Creator = creatorFromProfile(t.CreatorFid, u.Username, u.DisplayName, u.PfpURL)
	}
	return &out, nil
}

// mirror 第三方生成地址会过期，开启后转存到 oss，失败保留原地址
func (s *TemplateService) mirror(ctx context.Context, t *models.VideoTemplate) {
	if s.Config == nil || !s.Config.MirrorMedia || s.Media == nil || !s.Media.Enabled() {
		return
	}
	if u, err := s.Media.Mirror(ctx, t.VideoURL, "videos"); err == nil {
		t.VideoURL = u
	} else {
		log.L.Warn("mirror template video failed", zap.String("url", t.VideoURL), zap.Error(err))
	}
	if t.ThumbnailURL == "" {
		return
	}
	if u, err := s.Media.Mirror(ctx, t.ThumbnailURL, "thumbnails"); err == nil {
		t.ThumbnailURL = u
	} else {
		log.L.Warn("mirror template thumbnail failed", zap.String("url", t.ThumbnailURL), zap.Error(err))
	}
}

func (s *TemplateService) RecordUse(ctx context.Context, req *types.UseTemplateReq) error {
	if req.TemplateID == "" || req.UserFid == 0 {
		return ErrTemplateInvalid
	}

	err := s.Store.CreateUse(ctx, &models.TemplateUse{
		TemplateID:        req.TemplateID,
		UserFid:           req.UserFid,
		GeneratedVideoURL: req.GeneratedVideoURL,
	})
	switch {
	case errors.Is(err, dao.ErrDuplicateUse):
		log.L.Debug("template use already recorded", zap.String("template", req.TemplateID), zap.Uint64("fid", req.UserFid))
	case err != nil:
		log.L.Warn("record template use failed", zap.String("template", req.TemplateID), zap.Error(err))
	}

	// 官方模板不计数
	if isOfficialTemplate(req.TemplateID) {
		return nil
	}
	found, err := s.Store.IncrementUses(ctx, req.TemplateID, req.GeneratedVideoURL)
	if err != nil {
		log.L.Warn("increment template uses failed", zap.String("template", req.TemplateID), zap.Error(err))
		return nil
	}
	if !found {
		log.L.Debug("template use for unknown template", zap.String("template", req.TemplateID))
		return nil
	}
	s.Trending.Invalidate(ctx)
	return nil
}

func (s *TemplateService) ListTrending(ctx context.Context, limit int) (*types.TrendingResp, error) {
	list, ok := s.Trending.Get(ctx)
	if !ok {
		var err error
		list, err = s.Store.ListTrending(ctx, trendingDepth)
		if err != nil {
			return nil, err
		}
		s.Trending.Set(ctx, list)
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	official := make([]types.Template, 0, len(officialTemplates))
	for i := range officialTemplates {
		t := toTemplate(&officialTemplates[i])
		t.UsesCount = 0
		t.Creator = types.TemplateCreator{DisplayName: "ClipChain"}
		official = append(official, t)
	}
	users := s.withCreators(ctx, list)

	all := make([]types.Template, 0, len(official)+len(users))
	all = append(all, official...)
	all = append(all, users...)
	return &types.TrendingResp{
		Templates:         all,
		OfficialTemplates: official,
		UserTemplates:     users,
		Count:             len(all),
	}, nil
}

func (s *TemplateService) ListByCreator(ctx context.Context, fid uint64, limit int) ([]types.Template, error) {
	if fid == 0 {
		return nil, ErrInvalidFid
	}
	list, err := s.Store.ListByCreator(ctx, fid, limit)
	if err != nil {
		return nil, err
	}
	return s.withCreators(ctx, list), nil
}

// withCreators 补充创作者资料，单个查询失败降级为 Community Template
func (s *TemplateService) withCreators(ctx context.Context, list []models.VideoTemplate) []types.Template {
	fids := make([]uint64, 0, len(list))
	for _, t := range list {
		fids = append(fids, t.CreatorFid)
	}
	profiles := s.Profiles.LookupMany(ctx, fids)

	out := make([]types.Template, 0, len(list))
	for i := range list {
		t := toTemplate(&list[i])
		if u, ok := profiles[list[i].CreatorFid]; ok {
			t.Creator = creatorFromProfile(list[i].CreatorFid, u.Username, u.DisplayName, u.PfpURL)
		}
		out = append(out, t)
	}
	return out
}

func toTemplate(t *models.VideoTemplate) types.Template {
	return types.Template{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Prompt:         t.Prompt,
		GenerationType: t.GenerationType,
		VideoURL:       t.VideoURL,
		ThumbnailURL:   t.ThumbnailURL,
		Settings:       t.Settings,
		UsesCount:      t.UsesCount,
		CastHash:       t.CastHash,
		CastURL:        t.CastURL,
		IsOfficial:     t.IsOfficial,
		IsFeatured:     t.IsFeatured,
		IsPublic:       t.IsPublic,
		Creator:        types.TemplateCreator{Fid: t.CreatorFid, DisplayName: CommunityTemplateLabel},
		CreatedAt:      t.CreatedAt,
	}
}

func creatorFromProfile(fid uint64, username, displayName, pfp string) types.TemplateCreator {
	if displayName == "" {
		displayName = username
	}
	if displayName == "" {
		displayName = CommunityTemplateLabel
	}
	return types.TemplateCreator{Fid: fid, Username: username, DisplayName: displayName, PfpURL: pfp}
}

func defaultTemplateName(prompt string) string {
	r := []rune(prompt)
	if len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return prompt
}

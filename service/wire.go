package service

import (
	"clipchain/dao/cache"
	"clipchain/pkg/llm"
	"clipchain/pkg/neynar"
	"clipchain/pkg/rocketmq"
	"clipchain/pkg/videogen"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(LedgerService), "*"),
	wire.Bind(new(ILedgerService), new(*LedgerService)),

	wire.Struct(new(ProfileService), "*"),
	wire.Bind(new(ProfileLookup), new(*neynar.Client)),

	NewMediaService,
	wire.Bind(new(IMediaService), new(*MediaService)),

	wire.Struct(new(TemplateService), "*"),
	wire.Bind(new(ITemplateService), new(*TemplateService)),
	wire.Bind(new(TrendingStore), new(*cache.TrendingCache)),

	wire.Struct(new(RefundService), "*"),
	wire.Bind(new(IRefundService), new(*RefundService)),
	wire.Bind(new(EventPublisher), new(*rocketmq.Publisher)),

	wire.Struct(new(GenerationGate), "*"),
	wire.Bind(new(IGenerationGate), new(*GenerationGate)),
	wire.Bind(new(VideoGenerator), new(*videogen.Client)),
	wire.Bind(new(BioPrompter), new(*llm.Prompter)),

	wire.Struct(new(LeaderboardService), "*"),
	wire.Bind(new(ILeaderboardService), new(*LeaderboardService)),
)

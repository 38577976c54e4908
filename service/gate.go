package service

import (
	"clipchain/pkg/log"
	"clipchain/pkg/utils"
	"clipchain/pkg/videogen"
	"clipchain/types"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// 支付路径
const (
	PathPayment = "payment"
	PathFree    = "free_generation"
	PathCredit  = "credit"
)

const defaultProfilePrompt = "Bring this profile picture to life with subtle natural motion, cinematic lighting, gentle camera drift"

// VideoGenerator 第三方视频生成
type VideoGenerator interface {
	Generate(ctx context.Context, req videogen.Request) (*videogen.Result, error)
}

// BioPrompter 把 bio 改写为提示词，自身负责降级，不返回错误
type BioPrompter interface {
	BioPrompt(ctx context.Context, username, bio string) string
}

// GenerationError 生成失败，Failure 描述已经做过的补偿
type GenerationError struct {
	Failure types.GenerateFailure
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type GenerationGate struct {
	Ledger    ILedgerService
	Templates ITemplateService
	Refunds   IRefundService
	Profiles  *ProfileService
	Generator VideoGenerator
	Prompter  BioPrompter
}

var _ IGenerationGate = (*GenerationGate)(nil)

type IGenerationGate interface {
	Generate(ctx context.Context, req *types.GenerateReq) (*types.GenerateResp, error)
}

// Generate 授权、生成、对账。校验失败不产生任何副作用；
// 生成失败时按扣费路径补偿：退积分、还免费次数或登记退款义务。
func (g *GenerationGate) Generate(ctx context.Context, req *types.GenerateReq) (*types.GenerateResp, error) {
	if req.Fid == 0 {
		return nil, ErrInvalidFid
	}
	if !validGenerationType(req.GenerationType) {
		return nil, ErrInvalidGenerationType
	}
	if err := checkPaymentProof(req); err != nil {
		return nil, err
	}
	genReq, err := g.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	path, err := g.authorize(ctx, req)
	if err != nil {
		generationOutcomes.WithLabelValues("none", "denied").Inc()
		return nil, err
	}

	res, err := g.Generator.Generate(ctx, genReq)
	if err != nil {
		generationOutcomes.WithLabelValues(path, "failed").Inc()
		log.L.Warn("video generation failed",
			zap.Uint64("fid", req.Fid),
			zap.String("path", path),
			zap.String("type", req.GenerationType),
			zap.Error(err),
		)
		return nil, &GenerationError{Failure: g.compensate(ctx, req, path, err), Err: err}
	}
	generationOutcomes.WithLabelValues(path, "succeeded").Inc()

	resp := &types.GenerateResp{
		VideoURL:     res.VideoURL,
		ThumbnailURL: res.ThumbnailURL,
		Prompt:       genReq.Prompt,
		PaymentPath:  path,
	}
	if streak, err := g.Ledger.AdvanceDailyStreak(ctx, req.Fid); err == nil {
		resp.Streak = streak.Streak
		resp.StreakBonus = streak.BonusAwarded
	} else {
		log.L.Warn("advance daily streak failed", zap.Uint64("fid", req.Fid), zap.Error(err))
	}
	if req.TemplateID != "" {
		_ = g.Templates.RecordUse(ctx, &types.UseTemplateReq{
			TemplateID:        req.TemplateID,
			UserFid:           req.Fid,
			GeneratedVideoURL: res.VideoURL,
		})
	}
	if acc, err := g.Ledger.GetAccount(ctx, req.Fid); err == nil {
		resp.RemainingCredits = acc.CreditBalance
		resp.RemainingFreeGenerations = acc.FreeGenerations
	}
	return resp, nil
}

func (g *GenerationGate) buildRequest(ctx context.Context, req *types.GenerateReq) (videogen.Request, error) {
	prompt := strings.TrimSpace(req.Prompt)
	switch req.GenerationType {
	case GenerationProfile:
		image := strings.TrimSpace(req.ImageURL)
		if image == "" {
			if u, err := g.Profiles.Lookup(ctx, req.Fid); err == nil {
				image = u.PfpURL
			}
		}
		if image == "" {
			return videogen.Request{}, ErrImageRequired
		}
		if prompt == "" {
			prompt = defaultProfilePrompt
		}
		return videogen.Request{Prompt: prompt, ImageURL: image}, nil

	case GenerationBio:
		u, err := g.Profiles.Lookup(ctx, req.Fid)
		if err != nil {
			return videogen.Request{}, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
		}
		bio := u.Bio
		if prompt != "" {
			bio = prompt
		}
		return videogen.Request{Prompt: g.Prompter.BioPrompt(ctx, u.Username, bio)}, nil

	default:
		if prompt == "" {
			return videogen.Request{}, ErrPromptRequired
		}
		return videogen.Request{Prompt: prompt}, nil
	}
}

// checkPaymentProof 直付必须带可退款的钱包地址，钱包地址会落到账户上，格式不对直接拒绝
func checkPaymentProof(req *types.GenerateReq) error {
	req.PaymentTxHash = strings.TrimSpace(req.PaymentTxHash)
	if req.PaymentWallet != "" || req.PaymentTxHash != "" {
		req.PaymentWallet = utils.NormalizeAddress(req.PaymentWallet)
		if !utils.IsHexAddress(req.PaymentWallet) {
			return ErrInvalidWallet
		}
	}
	return nil
}

// authorize 优先级：支付凭证 > 免费次数 > 积分。支付凭证只做存在性检查，不做链上校验。
func (g *GenerationGate) authorize(ctx context.Context, req *types.GenerateReq) (string, error) {
	acc, _, err := g.Ledger.GetOrCreate(ctx, req.Fid, req.PaymentWallet)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.PaymentTxHash) != "" {
		return PathPayment, nil
	}

	if acc.FreeGenerations > 0 && (req.UseFreeGeneration || acc.CreditBalance < 1) {
		_, err := g.Ledger.UseFreeGeneration(ctx, req.Fid)
		if err == nil {
			return PathFree, nil
		}
		if !errors.Is(err, ErrNoFreeGenerations) {
			return "", err
		}
	}

	_, err = g.Ledger.Spend(ctx, req.Fid, req.GenerationType)
	if errors.Is(err, ErrInsufficientCredits) {
		return "", ErrPaymentRequired
	}
	if err != nil {
		return "", err
	}
	return PathCredit, nil
}

// compensate 补偿失败只记日志，不覆盖原始错误
func (g *GenerationGate) compensate(ctx context.Context, req *types.GenerateReq, path string, cause error) types.GenerateFailure {
	var f types.GenerateFailure
	reason := "Video generation failed: " + cause.Error()

	switch path {
	case PathCredit:
		if _, err := g.Ledger.Refund(ctx, req.Fid, reason); err != nil {
			log.L.Error("refund credit failed", zap.Uint64("fid", req.Fid), zap.Error(err))
		} else {
			f.CreditRefunded = true
		}

	case PathFree:
		if _, err := g.Ledger.GrantFreeGeneration(ctx, req.Fid, reason); err != nil {
			log.L.Error("restore free generation failed", zap.Uint64("fid", req.Fid), zap.Error(err))
		} else {
			f.FreeGenerationRestored = true
		}

	case PathPayment:
		if req.PaymentTxHash == "" || req.PaymentWallet == "" {
			return f
		}
		f.RefundRequested = true
		rec, err := g.Refunds.Notify(ctx, req.PaymentTxHash, req.PaymentWallet, reason)
		if err != nil {
			log.L.Error("record refund obligation failed",
				zap.Uint64("fid", req.Fid),
				zap.String("transactionHash", req.PaymentTxHash),
				zap.Error(err),
			)
			return f
		}
		f.RefundReference = rec.Reference
	}
	return f
}

package service

import "errors"

// 业务错误，handler 统一映射为 HTTP 状态码
var (
	ErrInvalidFid            = errors.New("fid is required")
	ErrUserNotFound          = errors.New("user not found")
	ErrInsufficientCredits   = errors.New("insufficient credits")
	ErrNoFreeGenerations     = errors.New("no free generations available")
	ErrFreeGenerationCap     = errors.New("free generation limit reached")
	ErrPaymentRequired       = errors.New("no credits, free generations or payment supplied")
	ErrInvalidGenerationType = errors.New("generationType must be one of profile, bio, text")
	ErrPromptRequired        = errors.New("prompt is required")
	ErrImageRequired         = errors.New("no image available for profile generation")
	ErrProfileUnavailable    = errors.New("farcaster profile unavailable")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateInvalid       = errors.New("creatorFid, videoUrl and prompt are required")
	ErrRefundNotFound        = errors.New("refund request not found")
	ErrInvalidRefund         = errors.New("transaction hash and recipient address are required")
	ErrRefundTransition      = errors.New("refund request cannot move to this status")
	ErrInvalidWallet         = errors.New("paymentWalletAddress must be a 0x-prefixed 40 hex digit address")
)

const (
	GenerationProfile = "profile"
	GenerationBio     = "bio"
	GenerationText    = "text"
)

func validGenerationType(t string) bool {
	switch t {
	case GenerationProfile, GenerationBio, GenerationText:
		return true
	}
	return false
}

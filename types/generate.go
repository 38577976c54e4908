package types

type GenerateReq struct {
	Fid               uint64 `json:"fid"`
	GenerationType    string `json:"generationType" binding:"required,oneof=profile bio text"`
	Prompt            string `json:"prompt" binding:"max=2000"`
	ImageURL          string `json:"imageUrl"`
	TemplateID        string `json:"templateId"`
	UseFreeGeneration bool   `json:"useFreeGeneration"`
	// USDC 直付的交易哈希，服务端不做链上校验
	PaymentTxHash     string `json:"paymentTransactionHash"`
	PaymentWallet     string `json:"paymentWalletAddress"`
}

type GenerateResp struct {
	VideoURL                 string `json:"videoUrl"`
	ThumbnailURL             string `json:"thumbnailUrl,omitempty"`
	Prompt                   string `json:"prompt"`
	PaymentPath              string `json:"paymentPath"`
	RemainingCredits         int64  `json:"remainingCredits"`
	RemainingFreeGenerations int    `json:"remainingFreeGenerations"`
	Streak                   int    `json:"streak"`
	StreakBonus              int64  `json:"streakBonus"`
}

// GenerateFailure 生成失败时随错误一起返回
type GenerateFailure struct {
	RefundRequested        bool   `json:"refundRequested"`
	RefundReference        string `json:"refundReference,omitempty"`
	CreditRefunded         bool   `json:"creditRefunded"`
	FreeGenerationRestored bool   `json:"freeGenerationRestored"`
}

package types

type CreditsReq struct {
	Fid    uint64 `form:"fid"`
	Wallet string `form:"wallet"`
}

type FidReq struct {
	Fid uint64 `form:"fid" json:"fid"`
}

type CreditsUser struct {
	Fid     uint64 `json:"fid"`
	Wallet  string `json:"wallet"`
	Credits int64  `json:"credits"`
	Streak  int    `json:"streak"`
}

type CreditsResp struct {
	Credits         int64       `json:"credits"`
	Streak          int         `json:"streak"`
	LongestStreak   int         `json:"longestStreak"`
	TotalVideos     int64       `json:"totalVideos"`
	FreeGenerations int         `json:"freeGenerations"`
	IsNewUser       bool        `json:"isNewUser"`
	User            CreditsUser `json:"user"`
}

type SpendReq struct {
	Fid            uint64 `json:"fid"`
	GenerationType string `json:"generationType" binding:"required,oneof=profile bio text"`
}

type SpendResp struct {
	Success          bool  `json:"success"`
	RemainingBalance int64 `json:"remainingBalance"`
}

// DailyStreakResult 每日生成连续天数推进结果
type DailyStreakResult struct {
	Streak          int   `json:"streak"`
	LongestStreak   int   `json:"longestStreak"`
	BonusAwarded    int64 `json:"bonusAwarded"`
	CreditBalance   int64 `json:"creditBalance"`
	StreakContinued bool  `json:"streakContinued"`
	StreakBroken    bool  `json:"streakBroken"`
	// 今天已经计入过，本次为空操作
	AlreadyToday    bool  `json:"alreadyToday"`
}

type DailyRewardStatusResp struct {
	Available     bool  `json:"available"`
	CreditBalance int64 `json:"creditBalance"`
}

type DailyRewardClaimResp struct {
	AlreadyClaimed bool  `json:"alreadyClaimed"`
	CreditAwarded  bool  `json:"creditAwarded"`
	CreditBalance  int64 `json:"creditBalance"`
}

type LoginStreakResp struct {
	LoginStreak         int  `json:"loginStreak"`
	LongestLoginStreak  int  `json:"longestLoginStreak"`
	FreeVideosFromLogin int  `json:"freeVideosFromLogin"`
	TotalFreeVideos     int  `json:"totalFreeVideos"`
	DaysUntilReward     int  `json:"daysUntilReward"`
	FreeVideoAwarded    bool `json:"freeVideoAwarded"`
	StreakContinued     bool `json:"streakContinued"`
	StreakBroken        bool `json:"streakBroken"`
}

type GenerationCountResp struct {
	Count           int64 `json:"count"`
	FreeGenerations int   `json:"freeGenerations"`
	FreeGenAwarded  bool  `json:"freeGenAwarded"`
	UntilNextReward int64 `json:"untilNextReward"`
}

type FreeGenerationResp struct {
	RemainingFreeGenerations int `json:"remainingFreeGenerations"`
}

// CreditRecord 每一条积分流水
type CreditRecord struct {
	ID           uint64 `json:"id"`
	Amount       int64  `json:"amount"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	BalanceAfter int64  `json:"balanceAfter"`
	OrderType    string `json:"orderType"` // INCOME / EXPENSE / NEUTRAL
	CreatedAt    string `json:"createdAt"`
}

type ListCreditRecordsReq struct {
	Fid    uint64 `form:"fid"`
	Action string `form:"action" binding:"omitempty,oneof=income expense"`
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}

type ListCreditRecords struct {
	Records    []CreditRecord `json:"records"`
	NextCursor uint64         `json:"nextCursor"`
	HasMore    bool           `json:"hasMore"`
}

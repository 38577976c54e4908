package types

type LeaderboardReq struct {
	By    string `form:"by,default=streak" binding:"oneof=streak videos"`
	Limit int    `form:"limit,default=20" binding:"min=1,max=100"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Fid           uint64 `json:"fid"`
	Username      string `json:"username,omitempty"`
	DisplayName   string `json:"displayName"`
	PfpURL        string `json:"pfpUrl,omitempty"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	TotalVideos   int64  `json:"totalVideos"`
}

type LeaderboardResp struct {
	By      string             `json:"by"`
	Entries []LeaderboardEntry `json:"entries"`
}

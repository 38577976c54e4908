package service

import (
	"clipchain/dao"
	"clipchain/types"
	"context"
	"strconv"
)

type LeaderboardService struct {
	Store    dao.LedgerStore
	Profiles *ProfileService
}

var _ ILeaderboardService = (*LeaderboardService)(nil)

type ILeaderboardService interface {
	Top(ctx context.Context, by string, limit int) (*types.LeaderboardResp, error)
}

// Top by=videos 按生成数量排序，其余按最长连续天数
func (s *LeaderboardService) Top(ctx context.Context, by string, limit int) (*types.LeaderboardResp, error) {
	orderBy := dao.RankByStreak
	if by == "videos" {
		orderBy = dao.RankByVideos
	} else {
		by = "streak"
	}
	accounts, err := s.Store.TopAccounts(ctx, orderBy, limit)
	if err != nil {
		return nil, err
	}

	fids := make([]uint64, 0, len(accounts))
	for _, a := range accounts {
		fids = append(fids, a.Fid)
	}
	profiles := s.Profiles.LookupMany(ctx, fids)

	resp := &types.LeaderboardResp{
		By:      by,
		Entries: make([]types.LeaderboardEntry, 0, len(accounts)),
	}
	for i, a := range accounts {
		e := types.LeaderboardEntry{
			Rank:          i + 1,
			Fid:           a.Fid,
			DisplayName:   "fid:" + strconv.FormatUint(a.Fid, 10),
			CurrentStreak: a.CurrentStreak,
			LongestStreak: a.LongestStreak,
			TotalVideos:   a.TotalVideosCreated,
		}
		if u, ok := profiles[a.Fid]; ok {
			e.Username = u.Username
			e.PfpURL = u.PfpURL
			if u.DisplayName != "" {
				e.DisplayName = u.DisplayName
			} else if u.Username != "" {
				e.DisplayName = u.Username
			}
		}
		resp.Entries = append(resp.Entries, e)
	}
	return resp, nil
}

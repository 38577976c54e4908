package neynar

import (
	"clipchain/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var (
	ErrUserNotFound = errors.New("farcaster user not found")
	ErrDisabled     = errors.New("identity api not configured")
)

// 单次批量查询上限
const maxBulkFids = 100

type User struct {
	Fid          uint64   `json:"fid"`
	Username     string   `json:"username"`
	DisplayName  string   `json:"displayName"`
	PfpURL       string   `json:"pfpUrl"`
	Bio          string   `json:"bio"`
	EthAddresses []string `json:"ethAddresses,omitempty"`
}

// Client Farcaster 身份服务
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(conf *config.Neynar) *Client {
	if conf == nil || conf.BaseURL == "" {
		return &Client{}
	}
	timeout := conf.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		apiKey:  conf.ApiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) GetUser(ctx context.Context, fid uint64) (*User, error) {
	users, err := c.GetUsers(ctx, []uint64{fid})
	if err != nil {
		return nil, err
	}
	u, ok := users[fid]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetUsers 批量查询，不存在的 fid 不会出现在结果中
func (c *Client) GetUsers(ctx context.Context, fids []uint64) (map[uint64]*User, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	result := make(map[uint64]*User, len(fids))
	for start := 0; start < len(fids); start += maxBulkFids {
		end := min(start+maxBulkFids, len(fids))
		if err := c.bulk(ctx, fids[start:end], result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *Client) bulk(ctx context.Context, fids []uint64, out map[uint64]*User) error {
	ids := make([]string, 0, len(fids))
	for _, fid := range fids {
		ids = append(ids, strconv.FormatUint(fid, 10))
	}
	q := url.Values{}
	q.Set("fids", strings.Join(ids, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/farcaster/user/bulk?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("identity api: read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity api: status %d: %s", resp.StatusCode, gjson.GetBytes(body, "message").String())
	}

	for _, u := range ParseUsers(body) {
		out[u.Fid] = u
	}
	return nil
}

// ParseUsers 解析 bulk 接口返回
func ParseUsers(body []byte) []*User {
	users := make([]*User, 0)
	gjson.GetBytes(body, "users").ForEach(func(_, v gjson.Result) bool {
		u := &User{
			Fid:         v.Get("fid").Uint(),
			Username:    v.Get("username").String(),
			DisplayName: v.Get("display_name").String(),
			PfpURL:      v.Get("pfp_url").String(),
			Bio:         v.Get("profile.bio.text").String(),
		}
		for _, addr := range v.Get("verified_addresses.eth_addresses").Array() {
			u.EthAddresses = append(u.EthAddresses, addr.String())
		}
		if u.Fid != 0 {
			users = append(users, u)
		}
		return true
	})
	return users
}

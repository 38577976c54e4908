package videogen

import (
	"bytes"
	"clipchain/config"
	"clipchain/pkg/log"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	ErrGenerationFailed = errors.New("video generation failed")
	ErrDisabled         = errors.New("video generation api not configured")
)

// MissingResultError 上游返回成功但找不到视频地址
type MissingResultError struct {
	JobID  string
	Status string
}

func (e *MissingResultError) Error() string {
	return fmt.Sprintf("video generation returned no video url (job=%s status=%s)", e.JobID, e.Status)
}

// 不同模型/版本的返回结构不一致，按顺序探测
var (
	videoPaths = []string{
		"video.url",
		"video_url",
		"videoUrl",
		"output.video_url",
		"output.video.url",
		"output.0",
		"data.video_url",
		"data.video.url",
		"data.0.url",
		"result.video.url",
		"result.url",
		"url",
	}
	thumbnailPaths = []string{
		"thumbnail.url",
		"thumbnail_url",
		"thumbnailUrl",
		"output.thumbnail_url",
		"data.thumbnail_url",
		"result.thumbnail.url",
	}
	idPaths     = []string{"id", "request_id", "task_id", "data.id", "data.task_id"}
	statusPaths = []string{"status", "state", "data.status", "data.state"}
)

type Request struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"image_url,omitempty"`
	Model    string `json:"model,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

type Result struct {
	JobID        string
	VideoURL     string
	ThumbnailURL string
}

type Client struct {
	baseURL      string
	apiKey       string
	model        string
	pollInterval time.Duration
	timeout      time.Duration
	http         *http.Client
}

func NewClient(conf *config.Video) *Client {
	if conf == nil || conf.BaseURL == "" {
		return &Client{}
	}
	c := &Client{
		baseURL:      strings.TrimRight(conf.BaseURL, "/"),
		apiKey:       conf.ApiKey,
		model:        conf.Model,
		pollInterval: conf.PollInterval,
		timeout:      conf.Timeout,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 3 * time.Second
	}
	if c.timeout <= 0 {
		c.timeout = 3 * time.Minute
	}
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Generate 提交任务，异步任务会轮询直到完成、失败或超时
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if req.Model == "" {
		req.Model = c.model
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/generations", payload)
	if err != nil {
		return nil, err
	}

	// 轮询结果不一定带 id，沿用提交时拿到的任务号
	jobID := ""
	for {
		res, done, err := interpret(body, jobID)
		if done || err != nil {
			return res, err
		}
		jobID = res.JobID
		log.L.Debug("video generation pending", zap.String("job", jobID))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
		case <-time.After(c.pollInterval):
		}
		body, err = c.do(ctx, http.MethodGet, c.baseURL+"/generations/"+jobID, nil)
		if err != nil {
			return nil, err
		}
	}
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrGenerationFailed, err)
	}
	if resp.StatusCode >= 300 {
		msg := firstString(body, []string{"error.message", "error", "message", "detail"})
		return nil, fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, resp.StatusCode, msg)
	}
	return body, nil
}

// Interpret 把上游返回归一化。
// done=false 表示任务仍在进行，Result.JobID 可用于轮询。
func Interpret(body []byte) (*Result, bool, error) {
	return interpret(body, "")
}

func interpret(body []byte, jobID string) (*Result, bool, error) {
	res := &Result{
		JobID:        firstString(body, idPaths),
		VideoURL:     firstString(body, videoPaths),
		ThumbnailURL: firstString(body, thumbnailPaths),
	}
	if res.JobID == "" {
		res.JobID = jobID
	}
	status := strings.ToLower(firstString(body, statusPaths))

	switch status {
	case "failed", "failure", "error", "canceled", "cancelled":
		msg := firstString(body, []string{"error.message", "error", "message", "data.error"})
		return nil, true, fmt.Errorf("%w: %s", ErrGenerationFailed, msg)
	case "queued", "pending", "processing", "running", "in_progress", "in_queue", "submitted":
		if res.JobID == "" {
			return nil, true, &MissingResultError{Status: status}
		}
		return res, false, nil
	}

	if res.VideoURL == "" {
		return nil, true, &MissingResultError{JobID: res.JobID, Status: status}
	}
	return res, true, nil
}

func firstString(body []byte, paths []string) string {
	for _, p := range paths {
		v := gjson.GetBytes(body, p)
		if v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

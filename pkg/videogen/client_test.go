package videogen

import (
	"clipchain/config"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret_ResponseShapes(t *testing.T) {
	cases := map[string]string{
		"nested video":  `{"video": {"url": "https://v/1.mp4"}}`,
		"flat":          `{"video_url": "https://v/1.mp4", "status": "completed"}`,
		"output list":   `{"status": "succeeded", "output": ["https://v/1.mp4"]}`,
		"data list":     `{"data": [{"url": "https://v/1.mp4"}]}`,
		"result nested": `{"result": {"video": {"url": "https://v/1.mp4"}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			res, done, err := Interpret([]byte(body))
			require.NoError(t, err)
			assert.True(t, done)
			assert.Equal(t, "https://v/1.mp4", res.VideoURL)
		})
	}
}

func TestInterpret_Thumbnail(t *testing.T) {
	res, _, err := Interpret([]byte(`{"video_url": "v.mp4", "thumbnail": {"url": "t.jpg"}}`))
	require.NoError(t, err)
	assert.Equal(t, "t.jpg", res.ThumbnailURL)
}

func TestInterpret_MissingResult(t *testing.T) {
	_, done, err := Interpret([]byte(`{"id": "job-1", "status": "completed"}`))
	assert.True(t, done)

	var missing *MissingResultError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "job-1", missing.JobID)
}

func TestInterpret_Pending(t *testing.T) {
	res, done, err := Interpret([]byte(`{"request_id": "job-2", "status": "IN_QUEUE"}`))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "job-2", res.JobID)
}

func TestInterpret_Failed(t *testing.T) {
	_, done, err := Interpret([]byte(`{"id": "job-3", "status": "failed", "error": {"message": "nsfw"}}`))
	assert.True(t, done)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorContains(t, err, "nsfw")
}

func TestGenerate_Polls(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/generations":
			var req Request
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "a cat surfing", req.Prompt)
			assert.Equal(t, "clip-standard", req.Model)
			_, _ = w.Write([]byte(`{"id": "job-9", "status": "queued"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/generations/job-9":
			if atomic.AddInt32(&polls, 1) < 2 {
				_, _ = w.Write([]byte(`{"id": "job-9", "status": "processing"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id": "job-9", "status": "completed", "video": {"url": "https://v/9.mp4"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(&config.Video{BaseURL: srv.URL, Model: "clip-standard", PollInterval: 10 * time.Millisecond, Timeout: 5 * time.Second})
	res, err := c.Generate(context.Background(), Request{Prompt: "a cat surfing"})
	require.NoError(t, err)
	assert.Equal(t, "https://v/9.mp4", res.VideoURL)
	assert.Equal(t, int32(2), atomic.LoadInt32(&polls))
}

func TestGenerate_PollWithoutID(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/generations":
			_, _ = w.Write([]byte(`{"id": "job-1", "status": "queued"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/generations/job-1":
			// 状态查询只返回 status，不带 id
			if atomic.AddInt32(&polls, 1) < 3 {
				_, _ = w.Write([]byte(`{"status": "processing"}`))
				return
			}
			_, _ = w.Write([]byte(`{"status": "completed", "video_url": "https://v/1.mp4"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(&config.Video{BaseURL: srv.URL, PollInterval: 10 * time.Millisecond, Timeout: 5 * time.Second})
	res, err := c.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://v/1.mp4", res.VideoURL)
	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message": "overloaded"}`))
	}))
	defer srv.Close()

	c := NewClient(&config.Video{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorContains(t, err, "overloaded")
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "job-slow", "status": "processing"}`))
	}))
	defer srv.Close()

	c := NewClient(&config.Video{BaseURL: srv.URL, PollInterval: 20 * time.Millisecond, Timeout: 100 * time.Millisecond})
	_, err := c.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_Disabled(t *testing.T) {
	_, err := NewClient(nil).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrDisabled)
}

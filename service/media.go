package service

import (
	"bytes"
	"clipchain/config"
	"clipchain/pkg/snowflake"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
)

var (
	ErrMirrorDisabled = errors.New("object storage not configured")
	ErrMediaTooLarge  = errors.New("media exceeds size limit")
)

// 单个媒体文件上限
const maxMediaSize int64 = 100 << 20

var mediaExt = map[string]string{
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectPutter oss.Client 的上传能力
type ObjectPutter interface {
	PutObject(ctx context.Context, request *oss.PutObjectRequest, optFns ...func(*oss.Options)) (*oss.PutObjectResult, error)
}

type MediaService struct {
	Client  ObjectPutter
	Config  *config.OssConfig
	HTTP    *http.Client `wire:"-"`
	MaxSize int64        `wire:"-"` // 0 表示 maxMediaSize
}

var _ IMediaService = (*MediaService)(nil)

type IMediaService interface {
	Enabled() bool
	// Mirror 把第三方临时地址的媒体转存到自有 bucket，返回新的访问地址
	Mirror(ctx context.Context, srcURL string, kind string) (string, error)
}

// NewMediaService 未配置 oss 时 client 为 nil，转存直接跳过
func NewMediaService(client *oss.Client, conf *config.OssConfig) *MediaService {
	s := &MediaService{Config: conf}
	if client != nil {
		s.Client = client
	}
	return s
}

func (s *MediaService) Enabled() bool {
	return s != nil && s.Client != nil && s.Config != nil && s.Config.Bucket != ""
}

func (s *MediaService) Mirror(ctx context.Context, srcURL string, kind string) (string, error) {
	if !s.Enabled() {
		return srcURL, ErrMirrorDisabled
	}
	if base := s.publicBase(); base != "" && strings.HasPrefix(srcURL, base) {
		return srcURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return srcURL, err
	}
	client := s.HTTP
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	resp, err := client.Do(req)
	if err != nil {
		return srcURL, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return srcURL, fmt.Errorf("download %s: status %d", srcURL, resp.StatusCode)
	}
	limit := s.maxSize()
	if resp.ContentLength > limit {
		return srcURL, fmt.Errorf("%w: %d bytes", ErrMediaTooLarge, resp.ContentLength)
	}

	// 读前 512 字节判断类型
	head := make([]byte, 512)
	n, err := io.ReadFull(resp.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return srcURL, err
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := mediaExt[contentType]
	if !ok {
		return srcURL, fmt.Errorf("unsupported media type: %s", contentType)
	}

	objectKey := fmt.Sprintf("%s%s/%s/%d%s",
		s.prefix(),
		kind,
		time.Now().UTC().Format("2006/01/02"),
		snowflake.GenID(),
		ext,
	)
	// 没有 Content-Length 时边读边计数，超限让上传失败，保留原地址
	body := &limitedBody{r: io.MultiReader(bytes.NewReader(head), resp.Body), left: limit}
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.Config.Bucket),
		Key:         oss.Ptr(objectKey),
		ContentType: oss.Ptr(contentType),
		Body:        body,
	}); err != nil {
		return srcURL, err
	}
	if body.exceeded {
		return srcURL, ErrMediaTooLarge
	}
	return s.publicURL(objectKey), nil
}

func (s *MediaService) maxSize() int64 {
	if s.MaxSize > 0 {
		return s.MaxSize
	}
	return maxMediaSize
}

type limitedBody struct {
	r        io.Reader
	left     int64
	exceeded bool
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, ErrMediaTooLarge
	}
	// 多读 1 字节用来判断是否超限
	if int64(len(p)) > l.left+1 {
		p = p[:l.left+1]
	}
	n, err := l.r.Read(p)
	l.left -= int64(n)
	if l.left < 0 {
		l.exceeded = true
		return 0, ErrMediaTooLarge
	}
	return n, err
}

func (s *MediaService) prefix() string {
	p := strings.Trim(s.Config.Prefix, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func (s *MediaService) publicBase() string {
	return strings.TrimRight(s.Config.PublicBaseURL, "/")
}

func (s *MediaService) publicURL(objectKey string) string {
	if base := s.publicBase(); base != "" {
		return base + "/" + objectKey
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(s.Config.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.Config.Bucket, endpoint, objectKey)
}

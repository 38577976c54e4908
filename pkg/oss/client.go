package oss

import (
	"clipchain/config"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// NewClient 未配置 oss 时返回 nil
func NewClient(conf *config.OssConfig) *oss.Client {
	if conf == nil || conf.Bucket == "" {
		return nil
	}
	var provider credentials.CredentialsProvider = credentials.NewEnvironmentVariableCredentialsProvider()
	if conf.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret)
	}
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(provider).
		WithEndpoint(conf.Endpoint).
		WithRegion(conf.Region)
	return oss.NewClient(cfg)
}

package rocketmq

import (
	"clipchain/config"
	"clipchain/pkg/log"
	"context"
	"errors"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("rocketmq not configured")

func init() {
	rlog.SetLogLevel("error")
}

// Publisher 发送业务事件，未配置 rocketmq 时所有发送返回 ErrDisabled
type Publisher struct {
	producer rocketmq.Producer
}

func NewPublisher(cfg *config.RocketMQConfig) *Publisher {
	if cfg == nil || len(cfg.NameServer) == 0 {
		return &Publisher{}
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		log.L.Error("init producer failed", zap.Error(err))
		return &Publisher{}
	}
	if err = p.Start(); err != nil {
		log.L.Error("start producer failed", zap.Error(err))
		return &Publisher{}
	}
	log.L.Info("init producer success")
	return &Publisher{producer: p}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.producer != nil
}

func (p *Publisher) Send(ctx context.Context, topic string, key string, body []byte) error {
	if !p.Enabled() || topic == "" {
		return ErrDisabled
	}
	msg := primitive.NewMessage(topic, body)
	if key != "" {
		msg.WithKeys([]string{key})
	}

	// 发送同步消息
	res, err := p.producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("topic", topic), zap.String("msgId", res.MsgID))
	return nil
}

func (p *Publisher) Shutdown() error {
	if !p.Enabled() {
		return nil
	}
	return p.producer.Shutdown()
}

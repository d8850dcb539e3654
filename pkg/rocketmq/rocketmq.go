package rocketmq

import (
	"Focus/config"
	"Focus/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Producer 奖励领域事件投递，未配置 nameserver 时只打日志
type Producer struct {
	producer rocketmq.Producer
}

func InitProducer(cfg *config.Config) *Producer {
	if !cfg.RocketMQ.Enabled() {
		log.L.Info("rocketmq disabled, reward events will only be logged")
		return &Producer{}
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.RocketMQ.NameServer),
		producer.WithGroupName(cfg.RocketMQ.Producer.Group),
		producer.WithRetry(cfg.RocketMQ.Producer.Retry),
	)
	if err != nil {
		log.L.Error("init producer failed", zap.Error(err))
		return &Producer{}
	}
	if err = p.Start(); err != nil {
		log.L.Error("start producer failed", zap.Error(err))
		return &Producer{}
	}
	log.L.Info("init producer success")

	return &Producer{producer: p}
}

func (p *Producer) Publish(ctx context.Context, topic string, body []byte) error {
	if p == nil || p.producer == nil {
		log.L.Debug("reward event", zap.String("topic", topic), zap.ByteString("body", body))
		return nil
	}

	// 发送同步消息
	res, err := p.producer.SendSync(ctx, primitive.NewMessage(topic, body))
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("topic", topic), zap.String("msg_id", res.MsgID))
	return nil
}

func (p *Producer) Shutdown() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Shutdown()
}

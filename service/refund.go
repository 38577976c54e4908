package service

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/models"
	"clipchain/pkg/log"
	"clipchain/pkg/rocketmq"
	"clipchain/pkg/snowflake"
	"clipchain/pkg/utils"
	"clipchain/types"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EventPublisher 退款事件投递，未配置 mq 时返回 rocketmq.ErrDisabled
type EventPublisher interface {
	Send(ctx context.Context, topic string, key string, body []byte) error
}

var _ EventPublisher = (*rocketmq.Publisher)(nil)

type RefundService struct {
	Store     dao.RefundStore
	Publisher EventPublisher
	Payment   *config.Payment
	MQ        *config.RocketMQConfig
}

var _ IRefundService = (*RefundService)(nil)

type IRefundService interface {
	// Notify 记录一笔待结算的退款义务，同一交易哈希只记一次
	Notify(ctx context.Context, txHash, recipient, reason string) (*types.RefundRecord, error)
	List(ctx context.Context, status string, limit int) ([]types.RefundRecord, error)
	// Resolve 接受内部 ID 或对外编号
	Resolve(ctx context.Context, ref string) (int64, error)
	MarkSent(ctx context.Context, id int64, settlementTxHash string) (*types.RefundRecord, error)
	Confirm(ctx context.Context, id int64) (*types.RefundRecord, error)
	Fail(ctx context.Context, id int64, reason string) (*types.RefundRecord, error)
	Retry(ctx context.Context, id int64) (*types.RefundRecord, error)
}

func (s *RefundService) Notify(ctx context.Context, txHash, recipient, reason string) (*types.RefundRecord, error) {
	txHash = strings.TrimSpace(txHash)
	recipient = utils.NormalizeAddress(recipient)
	if txHash == "" || !utils.IsHexAddress(recipient) {
		return nil, ErrInvalidRefund
	}

	if existing, err := s.Store.GetByTxHash(ctx, txHash); err == nil {
		return s.record(existing), nil
	} else if !errors.Is(err, dao.ErrRefundNotFound) {
		return nil, err
	}

	r := &models.RefundRequest{
		ID:               snowflake.GenID(),
		TransactionHash:  txHash,
		RecipientAddress: recipient,
		Amount:           s.Payment.PriceUSDC,
		Token:            s.Payment.Token,
		Chain:            s.Payment.Chain,
		Reason:           truncateRunes(reason, 500),
		Status:           models.RefundPending,
	}
	err := s.Store.Create(ctx, r)
	if errors.Is(err, dao.ErrDuplicateRefund) {
		existing, getErr := s.Store.GetByTxHash(ctx, txHash)
		if getErr != nil {
			return nil, getErr
		}
		return s.record(existing), nil
	}
	if err != nil {
		return nil, err
	}

	refundRequests.WithLabelValues(string(models.RefundPending)).Inc()
	rec := s.record(r)
	log.L.Info("refund obligation recorded",
		zap.Int64("id", r.ID),
		zap.String("reference", rec.Reference),
		zap.String("transactionHash", r.TransactionHash),
		zap.String("recipient", r.RecipientAddress),
		zap.String("amount", r.Amount),
		zap.String("token", r.Token),
		zap.String("reason", r.Reason),
	)
	s.publish(ctx, rec)
	return rec, nil
}

// publish 投递失败不影响退款单，离线结算以数据库为准
func (s *RefundService) publish(ctx context.Context, rec *types.RefundRecord) {
	if s.Publisher == nil || s.MQ == nil {
		return
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return
	}
	err = s.Publisher.Send(ctx, s.MQ.Topics.Refund, rec.TransactionHash, body)
	if err != nil && !errors.Is(err, rocketmq.ErrDisabled) {
		log.L.Warn("publish refund event failed", zap.Int64("id", rec.ID), zap.Error(err))
	}
}

func (s *RefundService) List(ctx context.Context, status string, limit int) ([]types.RefundRecord, error) {
	list, err := s.Store.List(ctx, models.RefundStatus(status), limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.RefundRecord, 0, len(list))
	for i := range list {
		out = append(out, *s.record(&list[i]))
	}
	return out, nil
}

func (s *RefundService) Resolve(ctx context.Context, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		id, err = utils.DecodeHashID(s.Payment.RefundSalt, ref)
		if err != nil {
			return 0, ErrRefundNotFound
		}
	}
	if _, err := s.Store.Get(ctx, id); err != nil {
		if errors.Is(err, dao.ErrRefundNotFound) {
			return 0, ErrRefundNotFound
		}
		return 0, err
	}
	return id, nil
}

// 状态流转：pending→sent→confirmed，pending|sent→failed，failed→pending

func (s *RefundService) MarkSent(ctx context.Context, id int64, settlementTxHash string) (*types.RefundRecord, error) {
	return s.transition(ctx, id, models.RefundSent, []models.RefundStatus{models.RefundPending}, func(r *models.RefundRequest) {
		r.SettlementTxHash = strings.TrimSpace(settlementTxHash)
	})
}

func (s *RefundService) Confirm(ctx context.Context, id int64) (*types.RefundRecord, error) {
	return s.transition(ctx, id, models.RefundConfirmed, []models.RefundStatus{models.RefundSent}, nil)
}

func (s *RefundService) Fail(ctx context.Context, id int64, reason string) (*types.RefundRecord, error) {
	return s.transition(ctx, id, models.RefundFailed, []models.RefundStatus{models.RefundPending, models.RefundSent}, func(r *models.RefundRequest) {
		r.FailureReason = truncateRunes(reason, 500)
	})
}

func (s *RefundService) Retry(ctx context.Context, id int64) (*types.RefundRecord, error) {
	return s.transition(ctx, id, models.RefundPending, []models.RefundStatus{models.RefundFailed}, func(r *models.RefundRequest) {
		r.SettlementTxHash = ""
	})
}

func (s *RefundService) transition(ctx context.Context, id int64, to models.RefundStatus, from []models.RefundStatus, apply func(r *models.RefundRequest)) (*types.RefundRecord, error) {
	r, err := s.Store.Transition(ctx, id, from, func(r *models.RefundRequest) {
		if apply != nil {
			apply(r)
		}
		r.Status = to
	})
	switch {
	case errors.Is(err, dao.ErrRefundNotFound):
		return nil, ErrRefundNotFound
	case errors.Is(err, dao.ErrStatusConflict):
		return nil, ErrRefundTransition
	case err != nil:
		return nil, err
	}
	refundRequests.WithLabelValues(string(to)).Inc()
	log.L.Info("refund status changed", zap.Int64("id", id), zap.String("status", string(to)))
	return s.record(r), nil
}

func (s *RefundService) record(r *models.RefundRequest) *types.RefundRecord {
	return &types.RefundRecord{
		ID:               r.ID,
		Reference:        utils.GenHashID(s.Payment.RefundSalt, r.ID),
		TransactionHash:  r.TransactionHash,
		RecipientAddress: r.RecipientAddress,
		Amount:           r.Amount,
		Token:            r.Token,
		Chain:            r.Chain,
		Reason:           r.Reason,
		Status:           string(r.Status),
		SettlementTxHash: r.SettlementTxHash,
		FailureReason:    r.FailureReason,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

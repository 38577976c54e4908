package service

import (
	"clipchain/pkg/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTxHash = "0x5f2b0c7a9d1e4f3b8a6c2d0e1f4a7b9c3d5e8f0a1b2c3d4e5f6a7b8c9d0e1f2a"
	testWallet = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"
)

func TestNotifyRecordsPendingRefund(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := newRefundService(pub)

	rec, err := svc.Notify(ctx, testTxHash, testWallet, "Video generation failed: upstream 500")
	require.NoError(t, err)
	assert.Equal(t, "pending", rec.Status)
	assert.Equal(t, "0.25", rec.Amount)
	assert.Equal(t, "USDC", rec.Token)
	assert.Equal(t, utils.NormalizeAddress(testWallet), rec.RecipientAddress)
	assert.NotEmpty(t, rec.Reference)
	assert.Equal(t, []string{"clipchain_refund/" + testTxHash}, pub.sent)

	// 同一笔交易重复通知返回原记录
	again, err := svc.Notify(ctx, testTxHash, testWallet, "retry")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, again.ID)
	assert.Len(t, pub.sent, 1)

	list, err := svc.List(ctx, "pending", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotifyValidation(t *testing.T) {
	svc := newRefundService(nil)
	_, err := svc.Notify(context.Background(), "", testWallet, "x")
	assert.ErrorIs(t, err, ErrInvalidRefund)
	_, err = svc.Notify(context.Background(), testTxHash, "not-a-wallet", "x")
	assert.ErrorIs(t, err, ErrInvalidRefund)
}

func TestRefundTransitions(t *testing.T) {
	ctx := context.Background()
	svc := newRefundService(nil)
	rec, err := svc.Notify(ctx, testTxHash, testWallet, "failed")
	require.NoError(t, err)

	// 未发送不能确认
	_, err = svc.Confirm(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrRefundTransition)

	sent, err := svc.MarkSent(ctx, rec.ID, "0xsettle")
	require.NoError(t, err)
	assert.Equal(t, "sent", sent.Status)
	assert.Equal(t, "0xsettle", sent.SettlementTxHash)

	failed, err := svc.Fail(ctx, rec.ID, "reverted")
	require.NoError(t, err)
	assert.Equal(t, "failed", failed.Status)
	assert.Equal(t, "reverted", failed.FailureReason)

	retried, err := svc.Retry(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", retried.Status)
	assert.Empty(t, retried.SettlementTxHash)

	_, err = svc.MarkSent(ctx, rec.ID, "0xsettle2")
	require.NoError(t, err)
	confirmed, err := svc.Confirm(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	_, err = svc.Fail(ctx, rec.ID, "too late")
	assert.ErrorIs(t, err, ErrRefundTransition)

	_, err = svc.Confirm(ctx, 12345)
	assert.ErrorIs(t, err, ErrRefundNotFound)
}

func TestResolveRefundReference(t *testing.T) {
	ctx := context.Background()
	svc := newRefundService(nil)
	rec, err := svc.Notify(ctx, testTxHash, testWallet, "failed")
	require.NoError(t, err)

	id, err := svc.Resolve(ctx, rec.Reference)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	id, err = svc.Resolve(ctx, utils.GenHashID("test-salt", rec.ID))
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	_, err = svc.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, ErrRefundNotFound)
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"credit_backend/internal/feature/letter/domain/entity"
)

type mockProvider struct {
	CompleteFunc func(ctx context.Context, system, prompt string) (string, error)
	calls        int
}

func (m *mockProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	m.calls++
	return m.CompleteFunc(ctx, system, prompt)
}

type denyLimiter struct{}

func (denyLimiter) Allow() bool { return false }

func sampleRequest() entity.Request {
	return entity.Request{
		DisputeTitle:      "Unknown collection",
		DisputeReason:     "not_mine",
		AdditionalDetails: "I have never had an account with this agency.",
	}
}

func newTestUsecase(p Provider, opts Options) (*LetterUsecase, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	u := NewLetterUsecase(p, opts, zap.New(core))
	u.now = func() time.Time { return fixedNow }
	return u, logs
}

func TestLetterUsecase_ProviderSuccess(t *testing.T) {
	p := &mockProvider{CompleteFunc: func(ctx context.Context, system, prompt string) (string, error) {
		assert.Equal(t, SystemInstruction, system)
		assert.Contains(t, prompt, "Dispute Reason: not_mine")
		return "Dear Bureau, please fix this.", nil
	}}
	u, logs := newTestUsecase(p, Options{})

	got, err := u.Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "Dear Bureau, please fix this.", got.Letter)
	assert.Equal(t, "not_mine", got.DisputeReason)
	assert.Equal(t, 1, got.EstimatedReadingTime)
	assert.Equal(t, fixedNow, got.GeneratedAt)
	assert.Equal(t, 0, logs.Len())
}

func TestLetterUsecase_FallsBackOnProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
		opts Options
	}{
		{name: "provider error", err: errors.New("502 bad gateway")},
		{name: "empty output", text: "   "},
		{name: "timeout", err: context.DeadlineExceeded},
		{name: "rate limited", text: "unused", opts: Options{Limiter: denyLimiter{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProvider{CompleteFunc: func(ctx context.Context, system, prompt string) (string, error) {
				return tt.text, tt.err
			}}
			u, logs := newTestUsecase(p, tt.opts)

			got, err := u.Generate(context.Background(), sampleRequest())

			require.NoError(t, err)
			assert.Equal(t, RenderTemplate(sampleRequest(), fixedNow), got.Letter)
			assert.Equal(t, 1, logs.FilterMessage("letter provider failed, falling back to template").Len())
		})
	}
}

func TestLetterUsecase_RateLimitSkipsProvider(t *testing.T) {
	p := &mockProvider{CompleteFunc: func(ctx context.Context, system, prompt string) (string, error) {
		return "text", nil
	}}
	u, _ := newTestUsecase(p, Options{Limiter: denyLimiter{}})

	_, err := u.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, p.calls)
}

func TestLetterUsecase_TimeoutBoundsProviderCall(t *testing.T) {
	p := &mockProvider{CompleteFunc: func(ctx context.Context, system, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	u, logs := newTestUsecase(p, Options{Timeout: 10 * time.Millisecond})

	got, err := u.Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Contains(t, got.Letter, "does not belong to me")
	assert.Equal(t, 1, logs.FilterMessage("letter provider failed, falling back to template").Len())
}

func TestLetterUsecase_MockModeNeverCallsProvider(t *testing.T) {
	p := &mockProvider{CompleteFunc: func(ctx context.Context, system, prompt string) (string, error) {
		return "text", nil
	}}
	u, logs := newTestUsecase(p, Options{UseMock: true})

	got, err := u.Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, 0, p.calls)
	assert.Contains(t, got.Letter, "does not belong to me")
	assert.Equal(t, 1, logs.FilterMessage("letter provider disabled, using templates").Len())
}

func TestLetterUsecase_NilProviderUsesTemplates(t *testing.T) {
	u, _ := newTestUsecase(nil, Options{})

	got, err := u.Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, RenderTemplate(sampleRequest(), fixedNow), got.Letter)
	assert.Equal(t, ReadingTime(got.Letter), got.EstimatedReadingTime)
}

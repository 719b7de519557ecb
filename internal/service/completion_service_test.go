package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/llm"
	mock_llm "yanyu/backend/internal/llm/mocks"
	"yanyu/backend/internal/model"
	"yanyu/backend/internal/service"
)

func TestCompletionService_Stream(t *testing.T) {
	ctx := context.Background()
	req := &service.CompletionRequest{Messages: []model.ChatMessage{{Role: model.RoleUser, Content: "hi"}}, MaxTokens: 64}

	t.Run("Not configured", func(t *testing.T) {
		svc := service.NewCompletionService(nil)
		assert.False(t, svc.Enabled())

		_, err := svc.Stream(ctx, req, nil)
		assert.ErrorIs(t, err, app_errors.ErrBackendUnavailable)
	})

	t.Run("Tokens are forwarded", func(t *testing.T) {
		client := mock_llm.NewMockCompletionsProvider(t)
		svc := service.NewCompletionService(client)
		assert.True(t, svc.Enabled())

		client.On("StreamChat", ctx, mock.MatchedBy(func(r llm.CompletionRequest) bool {
			return r.MaxTokens == 64 && len(r.Messages) == 1
		}), mock.Anything).
			Run(func(args mock.Arguments) {
				opts := args.Get(2).(llm.StreamOptions)
				opts.OnToken("Hi")
				opts.OnToken("!")
			}).
			Return("Hi!", nil).Once()

		var tokens []string
		text, err := svc.Stream(ctx, req, func(tok string) { tokens = append(tokens, tok) })
		require.NoError(t, err)
		assert.Equal(t, "Hi!", text)
		assert.Equal(t, []string{"Hi", "!"}, tokens)
	})
}

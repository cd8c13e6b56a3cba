package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-assistant/internal/completion"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

type CompletionClientMock struct {
	mock.Mock
}

func (m *CompletionClientMock) CreateChatCompletion(ctx context.Context, req completion.ChatRequest) (*completion.ChatResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*completion.ChatResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatResponse(content string) *completion.ChatResponse {
	return &completion.ChatResponse{
		Choices: []completion.ChatChoice{
			{Message: completion.ChatMessage{Role: "assistant", Content: content}},
		},
	}
}

func TestGetTips(t *testing.T) {
	cfg := Config{TipsModel: "gpt-3.5-turbo", BreakdownModel: "gpt-3.5-turbo-1106"}

	t.Run("Success", func(t *testing.T) {
		client := new(CompletionClientMock)
		cache := new(CacheMock)
		svc := NewAssistantService(client, cache, cfg, newNoopLogger())

		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req completion.ChatRequest) bool {
			return req.Model == "gpt-3.5-turbo" &&
				len(req.Messages) == 2 &&
				req.Messages[1].Content == "Give me tips for this task: buy groceries" &&
				req.ResponseFormat == nil
		})).Return(chatResponse("1. Make a list."), nil)
		cache.On("Set", mock.Anything, mock.Anything, "1. Make a list.", tipsCacheTTL).Return(nil)

		tips, err := svc.GetTips(context.Background(), "buy groceries")
		require.NoError(t, err)
		assert.Equal(t, "1. Make a list.", tips)
		client.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("CacheHitSkipsUpstream", func(t *testing.T) {
		client := new(CompletionClientMock)
		cache := new(CacheMock)
		svc := NewAssistantService(client, cache, cfg, newNoopLogger())

		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			ptr := args.Get(2).(*string)
			*ptr = "cached tips"
		}).Return(true, nil)

		tips, err := svc.GetTips(context.Background(), "buy groceries")
		require.NoError(t, err)
		assert.Equal(t, "cached tips", tips)
		client.AssertNotCalled(t, "CreateChatCompletion", mock.Anything, mock.Anything)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		client := new(CompletionClientMock)
		cache := new(CacheMock)
		svc := NewAssistantService(client, cache, cfg, newNoopLogger())

		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		client.On("CreateChatCompletion", mock.Anything, mock.Anything).
			Return(nil, completion.ErrMissingAPIKey)

		_, err := svc.GetTips(context.Background(), "buy groceries")
		require.Error(t, err)
		assert.ErrorIs(t, err, completion.ErrMissingAPIKey)
	})
}

func TestGetBreakdown(t *testing.T) {
	cfg := Config{TipsModel: "gpt-3.5-turbo", BreakdownModel: "gpt-3.5-turbo-1106"}

	newSvc := func(content string, upstreamErr error) (*AssistantService, *CompletionClientMock) {
		client := new(CompletionClientMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		if upstreamErr != nil {
			client.On("CreateChatCompletion", mock.Anything, mock.Anything).Return(nil, upstreamErr)
		} else {
			client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req completion.ChatRequest) bool {
				return req.Model == "gpt-3.5-turbo-1106" &&
					req.ResponseFormat != nil && req.ResponseFormat.Type == "json_object"
			})).Return(chatResponse(content), nil)
		}
		return NewAssistantService(client, cache, cfg, newNoopLogger()), client
	}

	t.Run("Success", func(t *testing.T) {
		svc, client := newSvc(`{"subtasks":[{"step":1,"title":"Plan","details":"Write a plan"},{"step":2,"title":"Do","details":"Execute it"}]}`, nil)

		subtasks, err := svc.GetBreakdown(context.Background(), "clean the garage")
		require.NoError(t, err)
		require.Len(t, subtasks, 2)
		assert.Equal(t, models.Subtask{Step: 1, Title: "Plan", Details: "Write a plan"}, subtasks[0])
		assert.Equal(t, 2, subtasks[1].Step)
		client.AssertExpectations(t)
	})

	t.Run("InvalidJSONFallsBack", func(t *testing.T) {
		svc, _ := newSvc("sure, here are the steps: 1) ...", nil)

		subtasks, err := svc.GetBreakdown(context.Background(), "clean the garage")
		require.NoError(t, err)
		require.Len(t, subtasks, 1)
		assert.Equal(t, 1, subtasks[0].Step)
		assert.Equal(t, "Error breaking down task", subtasks[0].Title)
	})

	t.Run("EmptySubtasksFallsBack", func(t *testing.T) {
		svc, _ := newSvc(`{"subtasks":[]}`, nil)

		subtasks, err := svc.GetBreakdown(context.Background(), "clean the garage")
		require.NoError(t, err)
		require.Len(t, subtasks, 1)
		assert.Equal(t, "Error breaking down task", subtasks[0].Title)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		upstreamErr := errors.New("completion service: unexpected status code: 503")
		svc, _ := newSvc("", upstreamErr)

		_, err := svc.GetBreakdown(context.Background(), "clean the garage")
		require.Error(t, err)
		assert.ErrorIs(t, err, upstreamErr)
	})
}

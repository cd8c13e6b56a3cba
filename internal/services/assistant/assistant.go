// Package services содержит бизнес-логику ассистента: советы по задаче
// и разбивка задачи на шаги через сервис генерации текста.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/todo-assistant/internal/completion"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// Время жизни кеша ответов ассистента.
const tipsCacheTTL = time.Hour

const tipsSystemPrompt = "You are a helpful task management assistant. " +
	"Provide 2-3 short, practical tips for completing the given task effectively. " +
	"Be concise and specific."

const breakdownSystemPrompt = "You are a task breakdown assistant. " +
	"You must respond with a JSON object containing a 'subtasks' array. " +
	"Each subtask must have a 'step' (number), 'title' (string), and 'details' (string). " +
	`Example: {"subtasks": [{"step": 1, "title": "First step", "details": "Details here"}, ` +
	`{"step": 2, "title": "Second step", "details": "More details"}]}`

// CompletionClient описывает клиент сервиса генерации текста.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req completion.ChatRequest) (*completion.ChatResponse, error)
}

// Cache описывает методы для кэширования ответов ассистента.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Config — модели, используемые для советов и разбивки.
type Config struct {
	TipsModel      string
	BreakdownModel string
}

// AssistantService проксирует запросы к сервису генерации и нормализует ответы.
// Запросы одноразовые: без ретраев и стриминга.
type AssistantService struct {
	client CompletionClient
	cache  Cache
	cfg    Config
	log    *slog.Logger
}

// NewAssistantService создает новый экземпляр AssistantService.
func NewAssistantService(client CompletionClient, cache Cache, cfg Config, log *slog.Logger) *AssistantService {
	return &AssistantService{
		client: client,
		cache:  cache,
		cfg:    cfg,
		log:    log,
	}
}

func assistantCacheKey(kind, task string) string {
	sum := sha256.Sum256([]byte(task))
	return fmt.Sprintf("assistant:%s:%s", kind, hex.EncodeToString(sum[:8]))
}

// GetTips возвращает короткие советы по выполнению задачи.
// Ошибки вышестоящего сервиса поднимаются наверх как есть.
func (s *AssistantService) GetTips(ctx context.Context, task string) (string, error) {
	cacheKey := assistantCacheKey("tips", task)
	var cached string
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read tips from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, completion.ChatRequest{
		Model: s.cfg.TipsModel,
		Messages: []completion.ChatMessage{
			{Role: "system", Content: tipsSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Give me tips for this task: %s", task)},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	tips := resp.Choices[0].Message.Content
	if err := s.cache.Set(ctx, cacheKey, tips, tipsCacheTTL); err != nil {
		s.log.Warn("failed to cache tips", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return tips, nil
}

// breakdownBody — ожидаемая форма структурированного ответа разбивки.
type breakdownBody struct {
	Subtasks []models.Subtask `json:"subtasks"`
}

// fallbackBreakdown — единственный синтетический шаг на случай некорректного
// ответа разбивки. Деградация вместо ошибки, чтобы интерфейс оставался заполненным.
func fallbackBreakdown() []models.Subtask {
	return []models.Subtask{{
		Step:    1,
		Title:   "Error breaking down task",
		Details: "The AI had trouble breaking down this task. Please try again with more specific details.",
	}}
}

// GetBreakdown возвращает пошаговую разбивку задачи.
//
// От сервиса требуется строгий JSON-объект с непустым массивом subtasks;
// любой некорректный ответ заменяется единственным синтетическим шагом,
// ошибка при этом не возвращается. Ошибка самого вызова (ключ не задан,
// сервис недоступен) поднимается наверх.
func (s *AssistantService) GetBreakdown(ctx context.Context, task string) ([]models.Subtask, error) {
	cacheKey := assistantCacheKey("breakdown", task)
	var cached []models.Subtask
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read breakdown from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, completion.ChatRequest{
		Model: s.cfg.BreakdownModel,
		Messages: []completion.ChatMessage{
			{Role: "system", Content: breakdownSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Break down this task into 3-5 steps: %q. Respond ONLY with the JSON object exactly as specified in the format above.", task)},
		},
		MaxTokens:      500,
		Temperature:    0.3,
		ResponseFormat: &completion.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var body breakdownBody
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &body); err != nil {
		s.log.Warn("breakdown response is not valid json", slog.Any("err", err))
		return fallbackBreakdown(), nil
	}
	if len(body.Subtasks) == 0 {
		s.log.Warn("breakdown response has no subtasks")
		return fallbackBreakdown(), nil
	}

	if err := s.cache.Set(ctx, cacheKey, body.Subtasks, tipsCacheTTL); err != nil {
		s.log.Warn("failed to cache breakdown", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return body.Subtasks, nil
}

// Package models содержит доменные структуры списка задач,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Допустимые категории задачи.
const (
	CategoryWork     = "work"
	CategoryPersonal = "personal"
	CategoryShopping = "shopping"
	CategoryOther    = "other"
)

// Todo представляет собой задачу пользователя,
// используемую в бизнес-логике и хранилище.
// Каждая задача принадлежит ровно одному пользователю (UserUID).
type Todo struct {
	ID          string    `json:"id"`
	UserUID     string    `json:"-"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	Priority    *string   `json:"priority,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyTodo используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Todo.
// Категория валидируется по закрытому списку; пустая категория означает "other".
type DummyTodo struct {
	Text        string  `json:"text" validate:"required"`                                      // Текст задачи (обязателен, непустой)
	Category    string  `json:"category" validate:"omitempty,oneof=work personal shopping other"` // Категория из закрытого списка
	Priority    *string `json:"priority,omitempty"`                                            // Необязательная пометка приоритета
	Description *string `json:"description,omitempty"`                                         // Необязательное описание
}

// Subtask — один шаг разбивки задачи, возвращаемый ассистентом.
type Subtask struct {
	Step    int    `json:"step"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, срок пробного периода и флаг оплаченной подписки.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет пользователя сервиса.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная, внешний ключ идентичности)
	TrialEndDate time.Time // Дата истечения пробного периода
	IsSubscribed bool      // Признак оплаченной подписки
	CreatedAt    time.Time // Дата создания учётной записи
}

// Identity — разрешённый контекст аутентифицированного запроса.
// Заполняется при входе из строки пользователя и переносится в claims токена.
type Identity struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	TrialEnds    time.Time `json:"trial_ends"`
	IsSubscribed bool      `json:"is_subscribed"`
}

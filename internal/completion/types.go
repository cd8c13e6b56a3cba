package completion

// ChatMessage — одно сообщение диалога.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat задаёт требуемый формат ответа (например, json_object).
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest — запрос на генерацию ответа.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatChoice — один вариант ответа модели.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponse — ответ сервиса генерации.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// apiErrorBody — тело ошибки сервиса генерации.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

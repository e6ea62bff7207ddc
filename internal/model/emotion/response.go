package emotion

// ErrorResponse 错误响应体，suggestion 只在可以给出改进建议时出现
type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Ready    bool   `json:"ready"`
}

package emotion

// AnalyzeRequest 情绪分析请求体
type AnalyzeRequest struct {
	Text string `json:"text"`
}

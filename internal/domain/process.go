package domain

// ============================================================
// Echo processing — POST /process
// ============================================================

const (
	// ResultPrefix is prepended to the query to build the echo result.
	ResultPrefix = "Hello! You said: "

	ModelName    = "hello-world-model"
	ModelVersion = "0.1.0"

	// ProcessingTimeMs is reported on every response; nothing is measured.
	ProcessingTimeMs = 50
)

// ProcessRequest is the body of POST /process. A missing query decodes to "".
type ProcessRequest struct {
	Query string `json:"query"`
}

// TokenUsage counts whitespace-delimited words, not model tokens.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ModelInfo identifies the (fake) model that produced a result.
type ModelInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ProcessResponse is returned by POST /process.
type ProcessResponse struct {
	Result           string     `json:"result"`
	TokenUsage       TokenUsage `json:"token_usage"`
	ProcessingTimeMs int        `json:"processing_time_ms"`
	Model            ModelInfo  `json:"model"`
}

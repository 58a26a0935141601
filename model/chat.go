package model

// Message roles used throughout the chat pipeline.
const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// ChatMessage is one entry of the ordered message history sent to the model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatTurn is a prior conversation turn supplied by the client.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents an incoming chat request.
type ChatRequest struct {
	Question string     `json:"question" binding:"required"`
	History  []ChatTurn `json:"history,omitempty"`
}

// ChatResponse carries the extracted answer text back to the client.
type ChatResponse struct {
	Answer string `json:"answer"`
}

package model

// QueryRequest represents the incoming retrieval request from ChatGPT custom GPT
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Passage represents a single scripture passage returned for RAG retrieval
type Passage struct {
	Title  string `json:"title"`  // Title of the passage (e.g. "John 3")
	Source string `json:"source"` // Source URI or translation identifier
	Text   string `json:"text"`   // The actual passage content
}

// QueryResponse represents the response containing passages for ChatGPT custom GPT
type QueryResponse struct {
	Query    string    `json:"query"`    // Echo back the query
	Passages []Passage `json:"passages"` // Retrieved passages with source and title
}

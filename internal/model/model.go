package model

import (
	"encoding/json"
	"time"
)

// Message roles accepted on the wire and in the store.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single message exchanged with the inference backend.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// StreamChunk is one frame of a backend reply. /api/generate frames carry the text in
// Response while /api/chat frames carry it in Message; Normalize folds the latter into
// the former so the rest of the service only reads Response.
type StreamChunk struct {
	Model     string       `json:"model"`
	CreatedAt time.Time    `json:"created_at"`
	Response  string       `json:"response"`
	Message   *ChatMessage `json:"message,omitempty"`
	Done      bool         `json:"done"`

	DoneReason      string `json:"done_reason,omitempty"`
	TotalDuration   int64  `json:"total_duration,omitempty"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`

	// Raw is the backend's reply as received, set on buffered replies only.
	Raw json.RawMessage `json:"-"`
}

// Normalize copies Message.Content into Response when the backend used the chat shape.
func (c *StreamChunk) Normalize() {
	if c.Response == "" && c.Message != nil {
		c.Response = c.Message.Content
	}
}

// OllamaModel is a read-only catalog entry returned by the backend's /api/tags.
type OllamaModel struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
	ModifiedAt time.Time `json:"modified_at"`
}

// PullProgress is one NDJSON frame of a model download.
type PullProgress struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Project groups files and chat messages. Files holds file ids; the store does not
// keep it in sync with the files collection.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Files       []string  `json:"files"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// File is a stored file body belonging to a project.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	ProjectID string    `json:"projectId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatRecord is a chat message persisted in the local store.
type ChatRecord struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	ProjectID *string   `json:"projectId,omitempty"`
}

// Stats is the dashboard summary of the store.
type Stats struct {
	TotalProjects int `json:"totalProjects"`
	TotalFiles    int `json:"totalFiles"`
	TotalMessages int `json:"totalMessages"`
}

// CompletionFrame is what the completions relay writes for every token and, with
// Done set, once at the end.
type CompletionFrame struct {
	Token      string `json:"token,omitempty"`
	Done       bool   `json:"done,omitempty"`
	Completion string `json:"completion,omitempty"`
}

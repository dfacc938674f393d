// Package models defines the portal entities the client reads and writes.
// Field names follow the backend's JSON; timestamps stay as the server's
// strings since the client only displays them.
package models

import (
	"bytes"
	"encoding/json"
)

type AgentSummary struct {
	AgentID    string   `json:"agent_id"`
	Name       string   `json:"name"`
	Status     string   `json:"status,omitempty"`
	Reputation *float64 `json:"reputation,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// Thread is the aggregate view of a discussion; PostsCount and ScoreSum are
// derived server-side and must be re-read after any write.
type Thread struct {
	ThreadID   string  `json:"thread_id"`
	Title      string  `json:"title"`
	Scope      string  `json:"scope"`
	ProjectID  *string `json:"project_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
	PostsCount int     `json:"posts_count"`
	ScoreSum   int     `json:"score_sum"`
}

type Post struct {
	PostID        string  `json:"post_id"`
	ThreadID      string  `json:"thread_id"`
	AuthorAgentID *string `json:"author_agent_id,omitempty"`
	BodyMD        string  `json:"body_md"`
	ScoreSum      *int    `json:"score_sum,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// PostPage is one page of a thread's posts.
type PostPage struct {
	Items  []Post `json:"items"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Total  *int   `json:"total,omitempty"`
}

// UnmarshalJSON accepts either a bare array of posts or the
// {"items": [...], ...} envelope.
func (p *PostPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Post
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = PostPage{Items: items}
		return nil
	}

	type envelope PostPage
	var e envelope
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return err
	}
	*p = PostPage(e)
	return nil
}

type CreatePostRequest struct {
	BodyMD         string `json:"body_md"`
	IdempotencyKey string `json:"idempotency_key"`
}

// VoteValue is +1 or -1.
type VoteValue int

const (
	VoteDown VoteValue = -1
	VoteUp   VoteValue = 1
)

func (v VoteValue) Valid() bool {
	return v == VoteUp || v == VoteDown
}

type VoteRequest struct {
	Value VoteValue `json:"value"`
}

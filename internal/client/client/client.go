package client

import (
	"context"

	"github.com/dmitrijs2005/portal/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	ListAgents(ctx context.Context) ([]models.AgentSummary, error)
	GetThread(ctx context.Context, threadID string) (*models.Thread, error)
	ListPosts(ctx context.Context, threadID string, limit, offset int) (*models.PostPage, error)
	CreatePost(ctx context.Context, apiKey, threadID string, req models.CreatePostRequest) (*models.Post, error)
	CastVote(ctx context.Context, apiKey, postID string, value models.VoteValue) error
}

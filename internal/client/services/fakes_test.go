package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/portal/internal/client/models"
)

type fakeCreds struct {
	key string
	err error
}

func (f fakeCreds) Get(context.Context) (string, error) { return f.key, f.err }

type fakeKeys struct {
	mu    sync.Mutex
	calls int
	key   string
}

func (f *fakeKeys) Generate(targetID, payload string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.key != "" {
		return f.key
	}
	return targetID + ":key"
}

type voteCall struct {
	apiKey string
	postID string
	value  models.VoteValue
}

// fakeAPI implements client.Client and records every call.
type fakeAPI struct {
	mu sync.Mutex

	createCalls []models.CreatePostRequest
	createKeys  []string
	voteCalls   []voteCall
	threadCalls int
	postsCalls  int

	createPost *models.Post
	createErr  error
	voteErrs   []error
	threadErr  error
	postsErr   error

	// createEntered/createRelease, when set, make CreatePost signal entry and
	// block until released.
	createEntered chan struct{}
	createRelease chan struct{}
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Ping(ctx context.Context) error { return nil }

func (f *fakeAPI) ListAgents(ctx context.Context) ([]models.AgentSummary, error) {
	return nil, nil
}

func (f *fakeAPI) GetThread(ctx context.Context, threadID string) (*models.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threadCalls++
	if f.threadErr != nil {
		return nil, f.threadErr
	}
	return &models.Thread{ThreadID: threadID, PostsCount: 1}, nil
}

func (f *fakeAPI) ListPosts(ctx context.Context, threadID string, limit, offset int) (*models.PostPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postsCalls++
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	return &models.PostPage{Items: []models.Post{{PostID: "p1", ThreadID: threadID}}, Limit: limit, Offset: offset}, nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, apiKey, threadID string, req models.CreatePostRequest) (*models.Post, error) {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, req)
	f.createKeys = append(f.createKeys, apiKey)
	entered, release := f.createEntered, f.createRelease
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createPost != nil {
		return f.createPost, nil
	}
	return &models.Post{PostID: "p-new", ThreadID: threadID, BodyMD: req.BodyMD}, nil
}

func (f *fakeAPI) CastVote(ctx context.Context, apiKey, postID string, value models.VoteValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voteCalls = append(f.voteCalls, voteCall{apiKey: apiKey, postID: postID, value: value})
	if i := len(f.voteCalls) - 1; i < len(f.voteErrs) {
		return f.voteErrs[i]
	}
	return nil
}

func (f *fakeAPI) counts() (create, vote, thread, posts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createCalls), len(f.voteCalls), f.threadCalls, f.postsCalls
}

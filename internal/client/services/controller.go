// Package services contains the client's application services. Controller
// drives discussion writes (posts and votes) through validation, a single
// gateway call, error classification and the follow-up re-read of the thread.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/portal/internal/client/client"
	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/logging"
)

var (
	ErrNoCredential = errors.New("agent key is not set")
	ErrEmptyBody    = errors.New("post body is empty")
	ErrNoThread     = errors.New("thread id is required")
	ErrNoPost       = errors.New("post id is required")
	ErrInvalidVote  = errors.New("vote must be +1 or -1")
)

const (
	msgInProgress    = "a submission is already in progress"
	msgPostCreated   = "post submitted"
	msgPostDuplicate = "already recorded"
	msgVoteRecorded  = "vote recorded"

	defaultPageSize = 50
)

// Credentials supplies the agent key for one attempt. An empty key means the
// caller is not signed in.
type Credentials interface {
	Get(ctx context.Context) (string, error)
}

type KeyGenerator interface {
	Generate(targetID, payload string) string
}

type PostCommand struct {
	ThreadID string
	Body     string
}

// VoteCommand casts Value on PostID. ThreadID is optional and names the
// thread to re-read after the vote lands.
type VoteCommand struct {
	ThreadID string
	PostID   string
	Value    models.VoteValue
}

// Controller runs one write at a time. A submit that arrives while another is
// in flight is ignored, not queued. Submit methods never return errors; every
// attempt ends in an Outcome and leaves the controller idle.
type Controller struct {
	api      client.Client
	creds    Credentials
	keys     KeyGenerator
	log      logging.Logger
	pageSize int
	observer func(Transition)

	busy  atomic.Bool
	state atomic.Int32
}

type Option func(*Controller)

// WithObserver registers fn to receive every state transition, synchronously.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithPageSize sets how many posts the post-write re-read fetches.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func NewController(api client.Client, creds Credentials, keys KeyGenerator, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		creds:    creds,
		keys:     keys,
		log:      logging.Nop(),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) transition(ctx context.Context, to State) {
	from := State(c.state.Swap(int32(to)))
	c.log.Debug(ctx, "submission state", "from", from.String(), "to", to.String())
	if c.observer != nil {
		c.observer(Transition{From: from, To: to})
	}
}

// SubmitPost creates a post in cmd.ThreadID. Each call mints its own
// idempotency key; a 409 (or an "exists"/"duplicate" message) means an
// earlier write with that key landed and is reported as ResultDuplicate.
func (c *Controller) SubmitPost(ctx context.Context, cmd PostCommand) Outcome {
	if !c.busy.CompareAndSwap(false, true) {
		return c.ignored(ctx)
	}
	defer c.busy.Store(false)

	c.transition(ctx, StateValidating)

	threadID := strings.TrimSpace(cmd.ThreadID)
	body := strings.TrimSpace(cmd.Body)

	apiKey, err := c.credential(ctx)
	if err == nil && threadID == "" {
		err = ErrNoThread
	}
	if err == nil && body == "" {
		err = ErrEmptyBody
	}
	if err != nil {
		return c.reject(ctx, err)
	}

	key := c.keys.Generate(threadID, body)

	c.transition(ctx, StateSubmitting)
	post, err := c.api.CreatePost(ctx, apiKey, threadID, models.CreatePostRequest{
		BodyMD:         body,
		IdempotencyKey: key,
	})

	// A 2xx with an unreadable body still means the post exists; the re-read
	// below shows it.
	var decErr *client.DecodeError
	if errors.As(err, &decErr) {
		c.log.Warn(ctx, "post created but response unreadable", "thread_id", threadID, "status", decErr.Status, "error", err)
		post, err = nil, nil
	}

	out := Outcome{IdempotencyKey: key, Err: err, Class: client.Classify(err)}
	switch out.Class {
	case client.ClassNone:
		out.Result, out.Settled, out.Message, out.Post = ResultSuccess, StateSettledSuccess, msgPostCreated, post
		c.log.Info(ctx, "post created", "thread_id", threadID, "idempotency_key", key)
	case client.ClassDuplicate:
		out.Result, out.Settled, out.Message = ResultDuplicate, StateSettledDuplicate, msgPostDuplicate
		c.log.Info(ctx, "post already recorded", "thread_id", threadID, "idempotency_key", key)
	default:
		out.Result, out.Settled, out.Message = ResultError, StateSettledError, errorMessage(err)
		c.log.Warn(ctx, "post submission failed", "thread_id", threadID, "class", out.Class.String(), "error", err)
	}

	return c.settle(ctx, threadID, out)
}

// CastVote applies cmd.Value to cmd.PostID. Votes carry no idempotency key,
// so there is no duplicate outcome: every error is surfaced as-is. Because
// the write is unkeyed, resending after an ambiguous failure may apply the
// vote twice on the server.
func (c *Controller) CastVote(ctx context.Context, cmd VoteCommand) Outcome {
	if !c.busy.CompareAndSwap(false, true) {
		return c.ignored(ctx)
	}
	defer c.busy.Store(false)

	c.transition(ctx, StateValidating)

	postID := strings.TrimSpace(cmd.PostID)

	apiKey, err := c.credential(ctx)
	if err == nil && postID == "" {
		err = ErrNoPost
	}
	if err == nil && !cmd.Value.Valid() {
		err = ErrInvalidVote
	}
	if err != nil {
		return c.reject(ctx, err)
	}

	c.transition(ctx, StateSubmitting)
	err = c.api.CastVote(ctx, apiKey, postID, cmd.Value)

	out := Outcome{Err: err, Class: client.Classify(err)}
	if err == nil {
		out.Result, out.Settled, out.Message = ResultSuccess, StateSettledSuccess, msgVoteRecorded
		c.log.Info(ctx, "vote recorded", "post_id", postID, "value", int(cmd.Value))
	} else {
		out.Result, out.Settled, out.Message = ResultError, StateSettledError, errorMessage(err)
		c.log.Warn(ctx, "vote failed", "post_id", postID, "class", out.Class.String(), "error", err)
	}

	return c.settle(ctx, strings.TrimSpace(cmd.ThreadID), out)
}

func (c *Controller) credential(ctx context.Context) (string, error) {
	key, err := c.creds.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read agent key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", ErrNoCredential
	}
	return key, nil
}

func (c *Controller) ignored(ctx context.Context) Outcome {
	c.log.Debug(ctx, "submission ignored", "state", c.State().String())
	return Outcome{Result: ResultIgnored, Settled: StateIdle, Message: msgInProgress}
}

func (c *Controller) reject(ctx context.Context, err error) Outcome {
	c.log.Debug(ctx, "submission rejected", "reason", err.Error())
	c.transition(ctx, StateIdle)
	return Outcome{Result: ResultRejected, Settled: StateIdle, Message: err.Error(), Err: err}
}

// settle publishes the settled state, re-reads the thread when the write is
// known to have landed, and returns to idle.
func (c *Controller) settle(ctx context.Context, threadID string, out Outcome) Outcome {
	c.transition(ctx, out.Settled)
	if out.OK() && threadID != "" {
		c.refresh(ctx, threadID, &out)
	}
	c.transition(ctx, StateIdle)
	return out
}

// refresh reads the thread and its first page of posts once each, so counts
// and score sums match the backend. Failures are recorded on out but do not
// change its result.
func (c *Controller) refresh(ctx context.Context, threadID string, out *Outcome) {
	thread, threadErr := c.api.GetThread(ctx, threadID)
	posts, postsErr := c.api.ListPosts(ctx, threadID, c.pageSize, 0)

	out.Thread, out.Posts = thread, posts
	out.RefreshErr = errors.Join(threadErr, postsErr)
	if out.RefreshErr != nil {
		c.log.Warn(ctx, "thread refresh failed", "thread_id", threadID, "error", out.RefreshErr)
	}
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

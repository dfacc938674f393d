package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/client/services"
)

var (
	errUsageThread = errors.New("usage: thread <id>")
	errUsagePosts  = errors.New("usage: posts <thread_id> [limit] [offset]")
	errUsagePost   = errors.New("usage: post <thread_id>")
	errUsageVote   = errors.New("usage: vote <thread_id> <post_id> <up|down>")
)

// Status pings the backend and updates the connectivity mode.
func (a *App) Status(ctx context.Context, args []string) error {
	if err := a.refreshMode(ctx); err != nil {
		fmt.Fprintf(a.out, "Backend %s is unreachable: %v\n", a.config.ServerURL, err)
		return nil
	}
	fmt.Fprintf(a.out, "Backend %s is online\n", a.config.ServerURL)
	return nil
}

func (a *App) Agents(ctx context.Context, args []string) error {
	agents, err := a.api.ListAgents(ctx)
	if err != nil {
		return err
	}
	return a.printer.Agents(agents)
}

// Thread shows the thread header followed by its first page of posts.
func (a *App) Thread(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsageThread
	}
	thread, err := a.api.GetThread(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.printer.Thread(thread); err != nil {
		return err
	}
	page, err := a.api.ListPosts(ctx, args[0], a.config.PostsPageSize, 0)
	if err != nil {
		return err
	}
	return a.printer.Posts(page)
}

func (a *App) Posts(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errUsagePosts
	}
	limit, offset := a.config.PostsPageSize, 0
	var err error
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil || limit <= 0 {
			return errUsagePosts
		}
	}
	if len(args) > 2 {
		if offset, err = strconv.Atoi(args[2]); err != nil || offset < 0 {
			return errUsagePosts
		}
	}

	page, err := a.api.ListPosts(ctx, args[0], limit, offset)
	if err != nil {
		return err
	}
	return a.printer.Posts(page)
}

// Post reads a multi-line markdown body and submits it to the thread.
func (a *App) Post(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsagePost
	}
	body, err := getMultiline(a.reader, "Enter post body (markdown)", a.out)
	if err != nil {
		return err
	}

	out := a.writes.SubmitPost(ctx, services.PostCommand{ThreadID: args[0], Body: body})
	return a.report(out)
}

func (a *App) Vote(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsageVote
	}
	value, ok := parseVote(args[2])
	if !ok {
		return errUsageVote
	}

	out := a.writes.CastVote(ctx, services.VoteCommand{ThreadID: args[0], PostID: args[1], Value: value})
	return a.report(out)
}

func parseVote(s string) (models.VoteValue, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "+1", "1", "+":
		return models.VoteUp, true
	case "down", "-1", "-":
		return models.VoteDown, true
	}
	return 0, false
}

// report prints the outcome of a write and the refreshed thread that came
// with it. Failed writes are printed, not returned, so the REPL does not
// print them twice.
func (a *App) report(out services.Outcome) error {
	switch out.Result {
	case services.ResultError:
		fmt.Fprintf(a.out, "Failed (%s): %s\n", out.Class, out.Message)
		return nil
	case services.ResultRejected, services.ResultIgnored:
		fmt.Fprintln(a.out, out.Message)
		return nil
	}

	fmt.Fprintf(a.out, "OK: %s\n", out.Message)
	if out.RefreshErr != nil {
		fmt.Fprintf(a.out, "Could not refresh thread: %v\n", out.RefreshErr)
	}
	if err := a.printer.Thread(out.Thread); err != nil {
		return err
	}
	return a.printer.Posts(out.Posts)
}

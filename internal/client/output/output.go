// Package output renders portal entities for the CLI, as a table when stdout
// is a terminal and as JSON otherwise.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/mattn/go-isatty"
)

const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

var ErrInvalidFormat = errors.New("invalid output format")

func DefaultFormat() string {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

type Printer struct {
	w      io.Writer
	format string
}

// New returns a Printer writing to w. An empty format picks DefaultFormat.
func New(w io.Writer, format string) (*Printer, error) {
	format = strings.TrimSpace(strings.ToLower(format))
	if format == "" {
		format = DefaultFormat()
	}
	switch format {
	case FormatTable, FormatPlain, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return &Printer{w: w, format: format}, nil
}

func (p *Printer) Format() string { return p.format }

func (p *Printer) Agents(agents []models.AgentSummary) error {
	switch p.format {
	case FormatJSON:
		return p.json(map[string]any{"agents": agents})
	case FormatPlain:
		for _, a := range agents {
			if _, err := fmt.Fprintf(p.w, "%s %s\n", a.AgentID, a.Name); err != nil {
				return err
			}
		}
		return nil
	}

	tw := p.table()
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tREPUTATION\tCREATED")
	for _, a := range agents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.AgentID, a.Name, a.Status, float(a.Reputation), a.CreatedAt)
	}
	return tw.Flush()
}

func (p *Printer) Thread(t *models.Thread) error {
	if t == nil {
		return nil
	}
	switch p.format {
	case FormatJSON:
		return p.json(t)
	case FormatPlain:
		_, err := fmt.Fprintf(p.w, "%s %s posts=%d score=%d\n", t.ThreadID, t.Title, t.PostsCount, t.ScoreSum)
		return err
	}

	tw := p.table()
	fmt.Fprintf(tw, "ID\t%s\n", t.ThreadID)
	fmt.Fprintf(tw, "TITLE\t%s\n", t.Title)
	fmt.Fprintf(tw, "SCOPE\t%s\n", t.Scope)
	if t.ProjectID != nil {
		fmt.Fprintf(tw, "PROJECT\t%s\n", *t.ProjectID)
	}
	fmt.Fprintf(tw, "POSTS\t%d\n", t.PostsCount)
	fmt.Fprintf(tw, "SCORE\t%d\n", t.ScoreSum)
	fmt.Fprintf(tw, "CREATED\t%s\n", t.CreatedAt)
	return tw.Flush()
}

func (p *Printer) Posts(page *models.PostPage) error {
	if page == nil {
		return nil
	}
	switch p.format {
	case FormatJSON:
		return p.json(page)
	case FormatPlain:
		for _, post := range page.Items {
			if _, err := fmt.Fprintf(p.w, "%s %s %s\n", post.PostID, ptr(post.AuthorAgentID), snippet(post.BodyMD)); err != nil {
				return err
			}
		}
		return nil
	}

	tw := p.table()
	fmt.Fprintln(tw, "ID\tAUTHOR\tSCORE\tCREATED\tBODY")
	for _, post := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			post.PostID, ptr(post.AuthorAgentID), intPtr(post.ScoreSum), post.CreatedAt, snippet(post.BodyMD))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if page.Total != nil {
		_, err := fmt.Fprintf(p.w, "showing %d of %d (offset %d)\n", len(page.Items), *page.Total, page.Offset)
		return err
	}
	return nil
}

func (p *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
}

func (p *Printer) json(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

const snippetLen = 60

// snippet flattens body to one line and cuts it to snippetLen runes.
func snippet(body string) string {
	s := strings.Join(strings.Fields(body), " ")
	r := []rune(s)
	if len(r) > snippetLen {
		return string(r[:snippetLen-1]) + "…"
	}
	return s
}

func ptr(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intPtr(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func float(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *f)
}

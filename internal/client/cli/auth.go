package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/session"
	"github.com/dmitrijs2005/portal/internal/common"
)

// getSecret, getSimpleText and getMultiline are indirections used to
// facilitate testing.
var getSecret = GetSecret
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline

var errUsageLogin = errors.New("usage: login (the key is asked for at the prompt)")

// Login prompts for the agent key and stores it in the session. The key is
// never taken as an argument, so it does not end up in the scrollback.
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsageLogin
	}

	raw, err := a.readKey()
	if err != nil {
		return err
	}

	key, err := a.session.Set(ctx, raw)
	if err != nil {
		if errors.Is(err, session.ErrEmptyCredential) {
			fmt.Fprintln(a.out, "Agent key is empty, nothing saved")
			return nil
		}
		return err
	}

	a.log.Info(ctx, "agent key saved", "key", session.Fingerprint(key))
	fmt.Fprintf(a.out, "Agent key saved (%s)\n", session.Fingerprint(key))
	return nil
}

// readKey reads the key without echo on a terminal. Piped input has no echo
// to suppress and is read as a plain line from the REPL's reader.
func (a *App) readKey() (string, error) {
	if !stdinIsTerminal() {
		return getSimpleText(a.reader, "Enter agent key", a.out)
	}

	b, err := getSecret(a.out, "Enter agent key: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}

// Logout removes the stored agent key.
func (a *App) Logout(ctx context.Context, args []string) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, args []string) error {
	key, err := a.session.Get(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	line := "Agent key " + session.Fingerprint(key)
	if at, ok, err := a.session.SetAt(ctx); err == nil && ok {
		line += ", saved " + at.Local().Format(time.DateTime)
	}
	fmt.Fprintln(a.out, line)
	return nil
}

// Package cli provides the interactive portal command-line client.
//
// It wires configuration, the local session store, the HTTP gateway and the
// submission controller into a REPL. The agent key entered with "login" is
// kept in the session database and survives restarts until "logout".
//
// Commands:
//   - login / logout / whoami
//   - status (backend liveness)
//   - agents, thread <id>, posts <thread_id> [limit] [offset]
//   - post <thread_id>, vote <thread_id> <post_id> <up|down>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

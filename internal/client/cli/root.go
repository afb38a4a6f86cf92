package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt status: the cached display name while logged
// in.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	name := a.authService.Username()
	if name == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", name)
}

// Root greets the user, resumes a persisted session and runs the REPL until
// the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to prepa CLI (type 'help' for commands)")
	a.resume(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

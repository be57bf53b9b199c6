package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/storage"
)

// Login prompts for credentials and signs the user in. A successful sign-in
// refreshes the session-wide status so the prompt reflects the new user.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username:", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.SignIn(ctx, username, password)
	if err != nil {
		printlnFn("Sign-in failed:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Signed in as %s (karma %d)", user.Username, user.Karma))

	if err := a.appState.Init(ctx); err != nil {
		a.log.Warn(ctx, "status refresh after sign-in failed", "error", err)
	}
	return nil
}

// Logout invalidates the session on the server and locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		printlnFn("Sign-out failed:", err)
		return err
	}
	// Server state cached for the old session is stale now; drop it together
	// with the session row. Drafts survive sign-out.
	if err := a.store.Reset(ctx, storage.SessionKey, cache.StoragePrefix); err != nil {
		a.log.Warn(ctx, "stored state reset failed", "error", err)
	}
	a.local.Clear()
	a.appState.SetUnauthorized()
	printlnFn("Signed out")
	return nil
}

// Status prints the signed-in user, the active site and the unread counters
// maintained by the status poller.
func (a *App) Status(ctx context.Context) error {
	user := a.appState.User()
	if user == nil {
		printlnFn("Not signed in")
		return nil
	}
	watch := a.appState.WatchCounters()
	printlnFn(fmt.Sprintf("%s on %s, karma %d", user.Username, a.appState.SiteName(), user.Karma))
	printlnFn(fmt.Sprintf("Watched: %d posts, %d new comments; %d notifications",
		watch.Posts, watch.Comments, a.appState.Notifications()))
	for _, site := range a.appState.Subscriptions() {
		printlnFn("  /s/" + site.Site + " " + site.Name)
	}
	return nil
}

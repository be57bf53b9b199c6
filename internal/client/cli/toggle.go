package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
)

// Watch subscribes to or unsubscribes from a post's comment activity:
// "watch 7 on" / "watch 7 off".
func (a *App) Watch(ctx context.Context, args []string) error {
	postID, on, ok := parseToggle(args)
	if !ok {
		printlnFn("usage: watch <postID> <on|off>")
		return nil
	}

	watching, err := a.posts.Watch(ctx, postID, on)
	if err != nil {
		printlnFn("Watch failed:", err)
		return err
	}
	a.patchFeeds(postID, models.PostPatch{Watch: &watching})
	printlnFn(fmt.Sprintf("Watch for #%d: %v", postID, watching))
	return nil
}

// Bookmark adds or removes a post bookmark: "bookmark 7 on" / "bookmark 7 off".
func (a *App) Bookmark(ctx context.Context, args []string) error {
	postID, on, ok := parseToggle(args)
	if !ok {
		printlnFn("usage: bookmark <postID> <on|off>")
		return nil
	}

	bookmarked, err := a.posts.Bookmark(ctx, postID, on)
	if err != nil {
		printlnFn("Bookmark failed:", err)
		return err
	}
	a.patchFeeds(postID, models.PostPatch{Bookmark: &bookmarked})
	printlnFn(fmt.Sprintf("Bookmark for #%d: %v", postID, bookmarked))
	return nil
}

// NewPost creates a post on the current site from an interactive title and
// body prompt.
func (a *App) NewPost(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title:", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Post text:", os.Stdout)
	if err != nil || content == "" {
		return err
	}

	post, err := a.posts.Create(ctx, a.appState.SiteName(), title, content)
	if err != nil {
		printlnFn("Post creation failed:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Created post #%d", post.ID))
	return nil
}

// Theme shows or persists the UI theme preference: "theme" / "theme dark".
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Theme:", a.prefs.Theme(ctx, "light"))
		return nil
	}
	if err := a.prefs.SetTheme(ctx, args[0]); err != nil {
		printlnFn("Theme not saved:", err)
		return err
	}
	printlnFn("Theme:", args[0])
	return nil
}

// Menu shows or persists whether the site menu is expanded: "menu" /
// "menu on" / "menu off".
func (a *App) Menu(ctx context.Context, args []string) error {
	if len(args) == 0 {
		open := "off"
		if a.prefs.MenuOpen(ctx) {
			open = "on"
		}
		printlnFn("Menu:", open)
		return nil
	}
	var open bool
	switch args[0] {
	case "on":
		open = true
	case "off":
		open = false
	default:
		printlnFn("usage: menu [on|off]")
		return nil
	}
	if err := a.prefs.SetMenuOpen(ctx, open); err != nil {
		printlnFn("Menu preference not saved:", err)
		return err
	}
	printlnFn("Menu:", args[0])
	return nil
}

func (a *App) patchFeeds(postID int, patch models.PostPatch) {
	for _, feed := range a.feeds {
		feed.UpdatePost(postID, patch)
	}
}

func parseToggle(args []string) (int, bool, bool) {
	if len(args) != 2 {
		return 0, false, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, false, false
	}
	switch args[1] {
	case "on":
		return id, true, true
	case "off":
		return id, false, true
	default:
		return 0, false, false
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
	"github.com/spaceshelter/orbitar-sub001/internal/client/state"
)

// Open loads a post with its comment tree and makes it the current post.
// Reopening the already-open post triggers a plain reload.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("usage: open <postID>")
		return nil
	}
	postID, err := strconv.Atoi(args[0])
	if err != nil || postID < 1 {
		printlnFn("usage: open <postID>")
		return nil
	}

	siteName := a.appState.SiteName()
	if a.post == nil {
		a.post = state.NewPostState(ctx, a.posts, a.entities, a.local, a.log, siteName, postID, false)
		err = a.post.Load(ctx)
	} else {
		err = a.post.Switch(ctx, siteName, postID, false)
	}
	if err != nil {
		printlnFn("Post load failed:", err)
		return err
	}

	a.printPost()
	return nil
}

// Unread toggles the unread-only comment view: "unread on" shows the paths
// to unread comments only, "unread off" restores the full tree. With no
// argument it flips the current mode.
func (a *App) Unread(ctx context.Context, args []string) error {
	if a.post == nil {
		printlnFn("No post open")
		return nil
	}

	unreadOnly := !a.post.UnreadOnly()
	if len(args) > 0 {
		switch args[0] {
		case "on":
			unreadOnly = true
		case "off":
			unreadOnly = false
		default:
			printlnFn("usage: unread [on|off]")
			return nil
		}
	}

	if err := a.post.SetUnreadOnly(ctx, unreadOnly); err != nil {
		printlnFn("Unread view failed:", err)
		return err
	}
	a.printPost()
	return nil
}

// Reply answers the open post, or one of its comments when a comment id is
// given. The draft is kept in local storage until the answer is accepted.
func (a *App) Reply(ctx context.Context, args []string) error {
	if a.post == nil {
		printlnFn("No post open")
		return nil
	}

	parentCommentID := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			printlnFn("usage: reply [commentID]")
			return nil
		}
		parentCommentID = n
	}

	post := a.post.Post()
	if post == nil {
		printlnFn("No post open")
		return nil
	}
	draftKey := fmt.Sprintf("answer:%d:%d", post.ID, parentCommentID)

	text, err := a.composeText(ctx, draftKey, "Reply text:")
	if err != nil || text == "" {
		return err
	}

	comment, err := a.post.Answer(ctx, text, parentCommentID)
	if err != nil {
		printlnFn("Reply failed:", err)
		return err
	}
	if err := a.drafts.Save(ctx, draftKey, ""); err != nil {
		a.log.Warn(ctx, "draft cleanup failed", "error", err)
	}
	printlnFn(fmt.Sprintf("Posted comment #%d", comment.ID))
	return nil
}

// Edit replaces the content of one of the open post's comments.
func (a *App) Edit(ctx context.Context, args []string) error {
	if a.post == nil {
		printlnFn("No post open")
		return nil
	}
	if len(args) != 1 {
		printlnFn("usage: edit <commentID>")
		return nil
	}
	commentID, err := strconv.Atoi(args[0])
	if err != nil || commentID < 1 {
		printlnFn("usage: edit <commentID>")
		return nil
	}

	text, err := GetMultiline(a.reader, "New comment text:", os.Stdout)
	if err != nil || text == "" {
		return err
	}

	comment, err := a.post.EditComment(ctx, text, commentID)
	if err != nil {
		printlnFn("Edit failed:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Edited comment #%d", comment.ID))
	return nil
}

// composeText restores a saved draft for key if one exists, otherwise it
// prompts for a fresh text and persists it as a draft before returning.
func (a *App) composeText(ctx context.Context, draftKey, prompt string) (string, error) {
	if draft, err := a.drafts.Load(ctx, draftKey); err == nil && draft != "" {
		use, err := GetSimpleText(a.reader, "Restore draft? [y/N]\n"+draft, os.Stdout)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(use, "y") {
			return draft, nil
		}
	}

	text, err := GetMultiline(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if text != "" {
		if err := a.drafts.Save(ctx, draftKey, text); err != nil {
			a.log.Warn(ctx, "draft save failed", "error", err)
		}
	}
	return text, nil
}

func (a *App) printPost() {
	post := a.post.Post()
	if post == nil {
		return
	}
	author := "?"
	if post.Author != nil {
		author = post.Author.Username
	}
	printlnFn(fmt.Sprintf("#%d %s by %s [%+d]", post.ID, post.Title, author, post.Rating))
	if post.Content != "" {
		printlnFn(post.Content)
	}
	for _, comment := range a.post.Comments() {
		printComment(comment, 0)
	}
}

func printComment(c *models.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	marker := " "
	if c.IsNew {
		marker = "*"
	}
	author := "?"
	if c.Author != nil {
		author = c.Author.Username
	}
	content := c.Content
	if c.Deleted {
		content = "(deleted)"
	}
	printlnFn(fmt.Sprintf("%s%s #%d %s [%+d]: %s", indent, marker, c.ID, author, c.Rating, content))
	for _, answer := range c.Answers {
		printComment(answer, depth+1)
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Feed loads and prints a feed page. The first argument may name the
// source ("site", "subs", "all", "watch"); a numeric argument selects the
// page. "feed" alone reloads the current page of the current source.
func (a *App) Feed(ctx context.Context, args []string) error {
	name := a.feedName
	page := 0

	for _, arg := range args {
		switch arg {
		case feedSite, feedSubscriptions, feedAll, feedWatch:
			name = arg
		default:
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				printlnFn("usage: feed [site|subs|all|watch] [page]")
				return nil
			}
			page = n
		}
	}

	a.feedName = name
	feed := a.feedState(name)
	if page == 0 {
		page = feed.Page()
	}

	if err := feed.LoadPage(ctx, page); err != nil {
		printlnFn("Feed load failed:", err)
		return err
	}

	printlnFn(fmt.Sprintf("-- %s feed, page %d of %d --", name, feed.Page(), feed.Pages()))
	for _, post := range feed.Posts() {
		marker := " "
		if post.NewComments > 0 {
			marker = "*"
		}
		author := "?"
		if post.Author != nil {
			author = post.Author.Username
		}
		printlnFn(fmt.Sprintf("%s #%-6d %+d  %-18s %s (%d comments)",
			marker, post.ID, post.Rating, author, post.Title, post.Comments))
	}
	return nil
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c(id int, isNew bool, answers ...*Comment) *Comment {
	return &Comment{ID: id, IsNew: isNew, Answers: answers}
}

func TestFindComment_FindsNested(t *testing.T) {
	tree := []*Comment{
		c(1, false,
			c(2, false,
				c(3, false)),
			c(4, false)),
		c(5, false),
	}

	found := FindComment(tree, 3)
	require.NotNil(t, found)
	assert.Equal(t, 3, found.ID)
}

func TestFindComment_Missing_ReturnsNil(t *testing.T) {
	tree := []*Comment{c(1, false, c(2, false))}
	assert.Nil(t, FindComment(tree, 42))
	assert.Nil(t, FindComment(nil, 1))
}

func TestFilterComments_KeepsPathToUnread(t *testing.T) {
	// 1 (read)
	//   2 (read)
	//     3 (unread)
	//   4 (read)
	// 5 (read)
	tree := []*Comment{
		c(1, false,
			c(2, false,
				c(3, true)),
			c(4, false)),
		c(5, false),
	}

	filtered := FilterComments(tree, true)
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
	require.Len(t, filtered[0].Answers, 1)
	assert.Equal(t, 2, filtered[0].Answers[0].ID)
	require.Len(t, filtered[0].Answers[0].Answers, 1)
	assert.Equal(t, 3, filtered[0].Answers[0].Answers[0].ID)
}

func TestFilterComments_UnreadKeepsWholeSubtree(t *testing.T) {
	// An unread comment keeps its read descendants.
	tree := []*Comment{
		c(1, true,
			c(2, false,
				c(3, false))),
	}

	filtered := FilterComments(tree, true)
	require.Len(t, filtered, 1)
	require.Len(t, filtered[0].Answers, 1)
	assert.Equal(t, 2, filtered[0].Answers[0].ID)
	require.Len(t, filtered[0].Answers[0].Answers, 1)
}

func TestFilterComments_KeptAncestorsAreClones(t *testing.T) {
	inner := c(3, true)
	mid := c(2, false, inner)
	root := c(1, false, mid, c(4, false))
	tree := []*Comment{root}

	filtered := FilterComments(tree, true)
	require.Len(t, filtered, 1)

	// Non-new ancestors are shallow clones; the source tree keeps its full
	// answer lists.
	assert.NotSame(t, root, filtered[0])
	assert.NotSame(t, mid, filtered[0].Answers[0])
	assert.Len(t, root.Answers, 2)
	assert.Len(t, filtered[0].Answers, 1)

	// The unread node itself is shared, not cloned.
	assert.Same(t, inner, filtered[0].Answers[0].Answers[0])
}

func TestFilterComments_NothingUnread_ReturnsEmpty(t *testing.T) {
	tree := []*Comment{c(1, false, c(2, false))}
	assert.Empty(t, FilterComments(tree, true))
}

func TestFilterComments_UnreadOnlyOff_Identity(t *testing.T) {
	tree := []*Comment{c(1, false, c(2, true))}
	filtered := FilterComments(tree, false)
	assert.Equal(t, tree, filtered)
	assert.Same(t, tree[0], filtered[0])
}

func TestCountComments(t *testing.T) {
	tree := []*Comment{
		c(1, false, c(2, false, c(3, false)), c(4, false)),
		c(5, false),
	}
	assert.Equal(t, 5, CountComments(tree))
	assert.Equal(t, 0, CountComments(nil))
}

func TestMaxCommentID(t *testing.T) {
	tree := []*Comment{
		c(1, false, c(9, false, c(3, false))),
		c(5, false),
	}
	assert.Equal(t, 9, MaxCommentID(tree))
	assert.Equal(t, 0, MaxCommentID(nil))
}

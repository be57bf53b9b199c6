package api

// Wire-level entities as the server sends them: author fields are bare user
// ids and timestamps are ISO strings. The services layer resolves them into
// view models.

type UserEntity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Gender   int    `json:"gender"`
	Name     string `json:"name"`
	Karma    int    `json:"karma"`
	Vote     *int   `json:"vote,omitempty"`
}

type SiteSubscriptionEntity struct {
	Main      bool `json:"main"`
	Bookmarks bool `json:"bookmarks"`
}

type SiteEntity struct {
	ID        int                     `json:"id"`
	Site      string                  `json:"site"`
	Name      string                  `json:"name"`
	Owner     *UserEntity             `json:"owner,omitempty"`
	Subscribe *SiteSubscriptionEntity `json:"subscribe,omitempty"`
}

type PostEntity struct {
	ID          int    `json:"id"`
	Site        string `json:"site"`
	Author      int    `json:"author"`
	Created     string `json:"created"`
	Title       string `json:"title,omitempty"`
	Content     string `json:"content"`
	Rating      int    `json:"rating"`
	Comments    int    `json:"comments"`
	NewComments int    `json:"newComments"`
	EditFlag    int    `json:"editFlag,omitempty"`
	Vote        *int   `json:"vote,omitempty"`
	Watch       bool   `json:"watch,omitempty"`
	Bookmark    bool   `json:"bookmark,omitempty"`
	CanEdit     bool   `json:"canEdit,omitempty"`
}

type CommentEntity struct {
	ID            int              `json:"id"`
	Created       string           `json:"created"`
	Author        int              `json:"author"`
	Deleted       bool             `json:"deleted,omitempty"`
	Content       string           `json:"content"`
	Rating        int              `json:"rating"`
	Vote          *int             `json:"vote,omitempty"`
	IsNew         bool             `json:"isNew,omitempty"`
	EditFlag      int              `json:"editFlag,omitempty"`
	Post          int              `json:"post"`
	Site          string           `json:"site"`
	ParentComment int              `json:"parentComment,omitempty"`
	Answers       []*CommentEntity `json:"answers,omitempty"`
	CanEdit       bool             `json:"canEdit,omitempty"`
}

type WatchCounters struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

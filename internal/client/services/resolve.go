// Package services contains the application services of the Orbitar client:
// normalization of wire entities into resolved view models, session and
// status handling, and the optimistic vote controller.
package services

import (
	"time"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
)

// resolver turns wire entities into view models: bare author ids become
// cached *models.User references and server timestamps get the clock-skew
// correction applied.
type resolver struct {
	cache  *cache.EntityCache
	client *api.Client
}

func (r *resolver) user(entity *api.UserEntity) *models.User {
	if entity == nil {
		return nil
	}
	return r.cache.SetUser(&models.User{
		ID:       entity.ID,
		Username: entity.Username,
		Name:     entity.Name,
		Gender:   models.UserGender(entity.Gender),
		Karma:    entity.Karma,
		Vote:     voteValue(entity.Vote),
	})
}

// author resolves a bare user id through the response's user map, falling
// back to the entity cache for ids the response did not include.
func (r *resolver) author(users map[int]*api.UserEntity, id int) *models.User {
	if entity, ok := users[id]; ok {
		return r.user(entity)
	}
	return r.cache.GetUser(id)
}

func (r *resolver) site(entity *api.SiteEntity) *models.Site {
	if entity == nil {
		return nil
	}
	site := &models.Site{
		ID:    entity.ID,
		Site:  entity.Site,
		Name:  entity.Name,
		Owner: r.user(entity.Owner),
	}
	if entity.Subscribe != nil {
		site.Subscribe = &models.SiteSubscription{
			Main:      entity.Subscribe.Main,
			Bookmarks: entity.Subscribe.Bookmarks,
		}
	}
	return r.cache.SetSite(site)
}

func (r *resolver) post(entity *api.PostEntity, users map[int]*api.UserEntity) *models.Post {
	if entity == nil {
		return nil
	}
	return &models.Post{
		ID:          entity.ID,
		Site:        entity.Site,
		Author:      r.author(users, entity.Author),
		Created:     r.created(entity.Created),
		Title:       entity.Title,
		Content:     entity.Content,
		Rating:      entity.Rating,
		Comments:    entity.Comments,
		NewComments: entity.NewComments,
		EditFlag:    models.EditFlag(entity.EditFlag),
		Vote:        voteValue(entity.Vote),
		Watch:       entity.Watch,
		Bookmark:    entity.Bookmark,
		CanEdit:     entity.CanEdit,
	}
}

func (r *resolver) comment(entity *api.CommentEntity, users map[int]*api.UserEntity) *models.Comment {
	comment := &models.Comment{
		ID:       entity.ID,
		Created:  r.created(entity.Created),
		Author:   r.author(users, entity.Author),
		Deleted:  entity.Deleted,
		Content:  entity.Content,
		Rating:   entity.Rating,
		Vote:     voteValue(entity.Vote),
		IsNew:    entity.IsNew,
		EditFlag: models.EditFlag(entity.EditFlag),
		PostLink: models.PostLink{ID: entity.Post, Site: entity.Site},
		ParentID: entity.ParentComment,
		CanEdit:  entity.CanEdit,
	}
	if len(entity.Answers) > 0 {
		comment.Answers = r.comments(entity.Answers, users)
	}
	return comment
}

func (r *resolver) comments(entities []*api.CommentEntity, users map[int]*api.UserEntity) []*models.Comment {
	comments := make([]*models.Comment, 0, len(entities))
	for _, entity := range entities {
		comments = append(comments, r.comment(entity, users))
	}
	return comments
}

func (r *resolver) created(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return r.client.FixDate(t)
}

func voteValue(vote *int) int {
	if vote == nil {
		return 0
	}
	return *vote
}

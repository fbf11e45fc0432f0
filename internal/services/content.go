package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/internal/apperr"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// ListLimit caps every public listing.
const ListLimit = 20

type CreatePostInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Slug        string  `json:"slug" validate:"required,max=255,slug"`
	Content     string  `json:"content" validate:"required,notblank"`
	Excerpt     *string `json:"excerpt"`
	Published   bool    `json:"published"`
	CategoryIDs []uint  `json:"categoryIds"`
}

// UpdatePostInput carries only the fields the caller sent. An absent
// field is left alone; a null excerpt clears it; a null categoryIds
// clears the category set.
type UpdatePostInput struct {
	Title       models.Optional[string] `json:"title"`
	Slug        models.Optional[string] `json:"slug"`
	Content     models.Optional[string] `json:"content"`
	Excerpt     models.Optional[string] `json:"excerpt"`
	Published   models.Optional[bool]   `json:"published"`
	CategoryIDs models.Optional[[]uint] `json:"categoryIds"`
}

type ContentService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewContentService(conn *gorm.DB) *ContentService {
	return &ContentService{db: conn, now: time.Now}
}

// published is the base query for public listings: published posts,
// newest publication first.
func (s *ContentService) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("posts.published = ?", true).
		Order("posts.published_at DESC").
		Order("posts.id DESC").
		Limit(ListLimit)
}

func (s *ContentService) List(ctx context.Context) ([]models.PostView, error) {
	var posts []models.Post
	if err := s.published(ctx).Find(&posts).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return s.annotate(ctx, posts, false)
}

// Search matches query as a literal, case-sensitive substring of the
// title or content of published posts.
func (s *ContentService) Search(ctx context.Context, query string) ([]models.PostView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("Search query is required")
	}

	pattern := "%" + escapeLike(query) + "%"
	var posts []models.Post
	err := s.published(ctx).
		Where(`(posts.title LIKE ? ESCAPE '\' OR posts.content LIKE ? ESCAPE '\')`, pattern, pattern).
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.annotate(ctx, posts, false)
}

// ListByCategory returns an empty list, not an error, for an unknown slug.
func (s *ContentService) ListByCategory(ctx context.Context, categorySlug string) ([]models.PostView, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", categorySlug).First(&category).Error
	if err != nil {
		if db.IsNotFound(err) {
			return []models.PostView{}, nil
		}
		return nil, apperr.Internal(err)
	}

	var posts []models.Post
	err = s.published(ctx).
		Where("posts.id IN (?)", s.db.Model(&models.PostCategory{}).
			Select("post_id").
			Where("category_id = ?", category.ID)).
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.annotate(ctx, posts, false)
}

// GetBySlug returns any post, draft or published, by slug.
func (s *ContentService) GetBySlug(ctx context.Context, postSlug string) (models.PostDetail, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Where("slug = ?", postSlug).First(&post).Error
	if err != nil {
		if db.IsNotFound(err) {
			return models.PostDetail{}, apperr.NotFound("Post not found")
		}
		return models.PostDetail{}, apperr.Internal(err)
	}

	views, err := s.annotate(ctx, []models.Post{post}, true)
	if err != nil {
		return models.PostDetail{}, err
	}
	return models.PostDetail{
		PostView:    views[0],
		ContentHTML: utils.RenderMarkdown(post.Content),
		WordCount:   utils.WordCount(post.Content),
		ReadingTime: utils.ReadingTime(post.Content),
	}, nil
}

// MyPosts returns every post the user owns, newest created first.
func (s *ContentService) MyPosts(ctx context.Context, userID uint) ([]models.PostView, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.annotate(ctx, posts, false)
}

func (s *ContentService) GetByID(ctx context.Context, userID, id uint) (models.PostView, error) {
	post, err := ownedPost(s.db.WithContext(ctx), id, userID, "edit")
	if err != nil {
		return models.PostView{}, err
	}
	return s.view(ctx, post)
}

func (s *ContentService) Create(ctx context.Context, userID uint, in CreatePostInput) (models.PostView, error) {
	if err := validateStruct(&in); err != nil {
		return models.PostView{}, err
	}

	post := models.Post{
		Title:     in.Title,
		Slug:      in.Slug,
		Content:   in.Content,
		Excerpt:   nonEmpty(in.Excerpt),
		Published: in.Published,
		AuthorID:  userID,
	}
	if in.Published {
		now := s.now()
		post.PublishedAt = &now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugFree(tx, post.Slug, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return err
		}
		return replaceCategories(tx, post.ID, in.CategoryIDs)
	})
	if err != nil {
		return models.PostView{}, writeError(err)
	}
	return s.view(ctx, &post)
}

func (s *ContentService) Update(ctx context.Context, userID, id uint, in UpdatePostInput) (models.PostView, error) {
	updates := map[string]interface{}{}

	for _, f := range []struct {
		name  string
		value models.Optional[string]
	}{{"title", in.Title}, {"content", in.Content}} {
		if !f.value.Set {
			continue
		}
		if f.value.Null || strings.TrimSpace(f.value.Value) == "" {
			return models.PostView{}, apperr.Validation(f.name + " cannot be empty")
		}
		updates[f.name] = f.value.Value
	}
	if in.Slug.Set {
		if in.Slug.Null {
			return models.PostView{}, apperr.Validation("slug cannot be empty")
		}
		if err := validateSlug(in.Slug.Value); err != nil {
			return models.PostView{}, err
		}
		updates["slug"] = in.Slug.Value
	}
	if in.Excerpt.Set {
		if in.Excerpt.Null {
			updates["excerpt"] = nil
		} else {
			updates["excerpt"] = nonEmpty(&in.Excerpt.Value)
		}
	}
	if in.Published.Set && in.Published.Null {
		return models.PostView{}, apperr.Validation("published cannot be null")
	}

	var post *models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		post, err = ownedPost(tx, id, userID, "edit")
		if err != nil {
			return err
		}

		if newSlug, ok := updates["slug"].(string); ok && newSlug != post.Slug {
			if err := ensureSlugFree(tx, newSlug, post.ID); err != nil {
				return err
			}
		}
		if in.Published.Set {
			updates["published"] = in.Published.Value
			// unpublishing keeps the original timestamp
			if in.Published.Value && post.PublishedAt == nil {
				updates["published_at"] = s.now()
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(post).Omit(clause.Associations).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.CategoryIDs.Set {
			if err := replaceCategories(tx, post.ID, in.CategoryIDs.Value); err != nil {
				return err
			}
		}
		return tx.First(post, post.ID).Error
	})
	if err != nil {
		return models.PostView{}, writeError(err)
	}
	return s.view(ctx, post)
}

// TogglePublish flips the published flag. Unlike Update it clears
// publishedAt when unpublishing.
func (s *ContentService) TogglePublish(ctx context.Context, userID, id uint) (models.PostView, error) {
	var post *models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		post, err = ownedPost(tx, id, userID, "update")
		if err != nil {
			return err
		}

		published := !post.Published
		var publishedAt *time.Time
		if published {
			now := s.now()
			publishedAt = &now
		}
		err = tx.Model(post).Omit(clause.Associations).Updates(map[string]interface{}{
			"published":    published,
			"published_at": publishedAt,
		}).Error
		if err != nil {
			return err
		}
		return tx.First(post, post.ID).Error
	})
	if err != nil {
		return models.PostView{}, writeError(err)
	}
	return s.view(ctx, post)
}

// Delete removes the post's category links and then the post.
func (s *ContentService) Delete(ctx context.Context, userID, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, id, userID, "delete")
		if err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	return writeError(err)
}

func (s *ContentService) view(ctx context.Context, post *models.Post) (models.PostView, error) {
	views, err := s.annotate(ctx, []models.Post{*post}, false)
	if err != nil {
		return models.PostView{}, err
	}
	return views[0], nil
}

type postCategoryRow struct {
	PostID uint
	models.Category
}

// annotate attaches author fields and ordered categories to posts using
// one query per relation.
func (s *ContentService) annotate(ctx context.Context, posts []models.Post, withBio bool) ([]models.PostView, error) {
	views := make([]models.PostView, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	seenAuthor := map[uint]bool{}
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if !seenAuthor[p.AuthorID] {
			seenAuthor[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	conn := s.db.WithContext(ctx)

	var authors []models.User
	if err := conn.Select("id", "name", "avatar", "bio").Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	byAuthor := make(map[uint]models.User, len(authors))
	for _, a := range authors {
		byAuthor[a.ID] = a
	}

	var rows []postCategoryRow
	err := conn.Table("post_categories").
		Select("post_categories.post_id, categories.id, categories.name, categories.slug, categories.description, categories.created_at").
		Joins("JOIN categories ON categories.id = post_categories.category_id").
		Where("post_categories.post_id IN ?", postIDs).
		Order("post_categories.position ASC").
		Order("categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byPost := make(map[uint][]models.Category, len(posts))
	for _, r := range rows {
		byPost[r.PostID] = append(byPost[r.PostID], r.Category)
	}

	for i, p := range posts {
		v := models.PostView{Post: p, Categories: byPost[p.ID]}
		if v.Categories == nil {
			v.Categories = []models.Category{}
		}
		if a, ok := byAuthor[p.AuthorID]; ok {
			summary := &models.AuthorSummary{ID: a.ID, Name: a.Name, Avatar: a.Avatar}
			if withBio {
				summary.Bio = a.Bio
			}
			v.AuthorName = a.Name
			v.Author = summary
		}
		views[i] = v
	}
	return views, nil
}

// ownedPost loads a post and checks the caller owns it.
func ownedPost(tx *gorm.DB, id, userID uint, action string) (*models.Post, error) {
	var post models.Post
	if err := tx.First(&post, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal(err)
	}
	if err := authorize(&post, userID, action); err != nil {
		return nil, err
	}
	return &post, nil
}

func ensureSlugFree(tx *gorm.DB, postSlug string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.Post{}).Where("slug = ?", postSlug)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Slug already in use")
	}
	return nil
}

// replaceCategories swaps the post's category set for ids, keeping the
// order given and dropping repeats.
func replaceCategories(tx *gorm.DB, postID uint, ids []uint) error {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	if len(unique) > 0 {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(unique)) {
			return apperr.Validation("Unknown category id")
		}
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.PostCategory{}).Error; err != nil {
		return err
	}
	if len(unique) == 0 {
		return nil
	}

	rows := make([]models.PostCategory, len(unique))
	for i, id := range unique {
		rows[i] = models.PostCategory{PostID: postID, CategoryID: id, Position: i}
	}
	return tx.Create(&rows).Error
}

// writeError keeps classified errors and maps the rest.
func writeError(err error) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	if db.IsDuplicateKey(err) {
		return apperr.Conflict("Slug already in use")
	}
	return apperr.Internal(err)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

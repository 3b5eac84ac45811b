package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"pressroom/pkg/logger"
	"pressroom/pkg/queue"
	"pressroom/pkg/s3"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/entity"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/viewstate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const postList = "posts"

type PostInput struct {
	Title      string
	Body       string
	CategoryID *int64
	Slug       string
}

type PostUseCase interface {
	ListPosts(viewer visibility.Viewer, viewID string, params persistent.PostListParams) ([]*entity.Post, int64, error)
	GetPost(viewer visibility.Viewer, id int64) (*entity.Post, error)
	CreatePost(authorID int64, input PostInput, cover *multipart.FileHeader) (*entity.Post, error)
	UpdatePost(viewer visibility.Viewer, id int64, input PostInput) (*entity.Post, error)
	DeletePost(viewer visibility.Viewer, id int64) error
	SetPublished(viewer visibility.Viewer, id int64, publish bool, at *time.Time) (*entity.Post, error)
	BulkAction(viewer visibility.Viewer, viewID, action string) (bulk.Outcome, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	views       viewstate.Store
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
	now         func() time.Time
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	views viewstate.Store,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		views:       views,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      logger,
		now:         time.Now,
	}
}

// ListPosts returns one visibility-scoped page and records the page's ids in
// the view's selection state so select-all stays scoped to what is on screen.
func (uc *postUseCase) ListPosts(viewer visibility.Viewer, viewID string, params persistent.PostListParams) ([]*entity.Post, int64, error) {
	posts, total, err := uc.postRepo.List(viewer, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	if viewID != "" {
		pageIDs := make([]int64, len(posts))
		for i, p := range posts {
			pageIDs[i] = p.ID
		}
		state, err := uc.views.Selection(viewID, postList)
		if err == nil {
			state.SetCurrentPageIDs(pageIDs)
			if err := uc.views.SaveSelection(viewID, postList, state); err != nil {
				uc.logger.Warn("failed to save page ids for view %s: %v", viewID, err)
			}
		}
	}

	return posts, total, nil
}

func (uc *postUseCase) GetPost(viewer visibility.Viewer, id int64) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !visibility.Visible(viewer, post.AuthorID, post.PublishedAt, uc.now()) {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (uc *postUseCase) CreatePost(authorID int64, input PostInput, cover *multipart.FileHeader) (*entity.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	coverURL := ""
	if cover != nil {
		url, err := uc.uploadCover(authorID, cover)
		if err != nil {
			return nil, err
		}
		coverURL = url
	}

	post := &entity.Post{
		AuthorID:   authorID,
		Title:      input.Title,
		Slug:       input.Slug,
		Body:       input.Body,
		CategoryID: input.CategoryID,
		CoverURL:   coverURL,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) UpdatePost(viewer visibility.Viewer, id int64, input PostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := canMutatePost(viewer, post); err != nil {
		return nil, err
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Body != "" {
		post.Body = input.Body
	}
	if input.Slug != "" {
		post.Slug = input.Slug
	}
	if input.CategoryID != nil {
		post.CategoryID = input.CategoryID
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) DeletePost(viewer visibility.Viewer, id int64) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := canMutatePost(viewer, post); err != nil {
		return err
	}
	return uc.postRepo.Delete(id)
}

// SetPublished publishes or unpublishes one post. Publishing an already
// published post (or unpublishing a draft) succeeds without touching the
// record: re-applying the target state is idempotent.
func (uc *postUseCase) SetPublished(viewer visibility.Viewer, id int64, publish bool, at *time.Time) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := canMutatePost(viewer, post); err != nil {
		return nil, err
	}

	if publish {
		when := uc.now()
		if at != nil {
			when = *at
		}
		if post.PublishedAt == nil {
			if err := uc.postRepo.SetPublishedAt(id, &when); err != nil {
				return nil, fmt.Errorf("failed to publish post: %w", err)
			}
			post.PublishedAt = &when
			uc.announcePublished(post)
		}
	} else if post.PublishedAt != nil {
		if err := uc.postRepo.SetPublishedAt(id, nil); err != nil {
			return nil, fmt.Errorf("failed to unpublish post: %w", err)
		}
		post.PublishedAt = nil
	}

	return post, nil
}

// BulkAction applies the named action to every selected post, one at a time.
// On full success the selection is cleared; on partial failure it is reseeded
// with exactly the failed ids so the user can retry just those.
func (uc *postUseCase) BulkAction(viewer visibility.Viewer, viewID, action string) (bulk.Outcome, error) {
	state, err := uc.views.Selection(viewID, postList)
	if err != nil {
		return bulk.Outcome{}, fmt.Errorf("failed to load selection: %w", err)
	}
	ids := state.SelectedIDs()

	var apply func(id int64) error
	switch action {
	case "publish":
		apply = func(id int64) error { return uc.publishOne(viewer, id) }
	case "unpublish":
		apply = func(id int64) error { return uc.unpublishOne(viewer, id) }
	case "delete":
		apply = func(id int64) error { return uc.deleteOne(viewer, id) }
	default:
		return bulk.Outcome{}, fmt.Errorf("unknown bulk action %q", action)
	}

	outcome := bulk.Run(ids, apply)

	if outcome.FullSuccess() {
		state.Clear()
	} else {
		state.Replace(outcome.FailedIDs())
	}
	if err := uc.views.SaveSelection(viewID, postList, state); err != nil {
		uc.logger.Error("failed to save selection after bulk %s: %v", action, err)
	}

	return outcome, nil
}

func (uc *postUseCase) publishOne(viewer visibility.Viewer, id int64) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bulk.ErrNotFound
		}
		return err
	}
	if err := canMutatePost(viewer, post); err != nil {
		return err
	}
	if post.PublishedAt != nil {
		return nil // already published or scheduled
	}
	when := uc.now()
	if err := uc.postRepo.SetPublishedAt(id, &when); err != nil {
		return err
	}
	post.PublishedAt = &when
	uc.announcePublished(post)
	return nil
}

func (uc *postUseCase) unpublishOne(viewer visibility.Viewer, id int64) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bulk.ErrNotFound
		}
		return err
	}
	if err := canMutatePost(viewer, post); err != nil {
		return err
	}
	if post.PublishedAt == nil {
		return nil
	}
	return uc.postRepo.SetPublishedAt(id, nil)
}

func (uc *postUseCase) deleteOne(viewer visibility.Viewer, id int64) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bulk.ErrNotFound
		}
		return err
	}
	if err := canMutatePost(viewer, post); err != nil {
		return err
	}
	return uc.postRepo.Delete(id)
}

func (uc *postUseCase) announcePublished(post *entity.Post) {
	if uc.queueClient == nil {
		return
	}
	task := map[string]interface{}{
		"type":      "post_published",
		"post_id":   post.ID,
		"author_id": post.AuthorID,
		"slug":      post.Slug,
	}
	if err := uc.queueClient.PublishPostPublished(task); err != nil {
		uc.logger.Error("failed to announce published post %d: %v", post.ID, err)
	}
}

func (uc *postUseCase) uploadCover(authorID int64, cover *multipart.FileHeader) (string, error) {
	if uc.s3Client == nil {
		return "", fmt.Errorf("media storage is not configured")
	}
	src, err := cover.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open cover file: %w", err)
	}
	defer src.Close()

	contentType := cover.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("covers/%d/%s%s", authorID, uuid.New().String(), fileExtension(cover.Filename))

	url, err := uc.s3Client.UploadFile(key, src, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}
	return url, nil
}

func canMutatePost(viewer visibility.Viewer, post *entity.Post) error {
	if viewer.Role == visibility.RoleAdmin {
		return nil
	}
	if viewer.Role == visibility.RoleAuthor && viewer.UserID == post.AuthorID {
		return nil
	}
	return bulk.ErrNotAuthorized
}

func fileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}

package usecase

import (
	"time"

	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/editsession"
	"pressroom/services/admin/internal/entity"
	"pressroom/services/admin/internal/repo/persistent"
	"pressroom/services/admin/internal/selection"

	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) GetByID(id int64) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) List(viewer visibility.Viewer, params persistent.PostListParams) ([]*entity.Post, int64, error) {
	args := m.Called(viewer, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateField(id int64, column string, value interface{}) error {
	args := m.Called(id, column, value)
	return args.Error(0)
}

func (m *MockPostRepository) SetPublishedAt(id int64, at *time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) GetByID(id int64) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) List(params persistent.CommentListParams) ([]*models.Comment, int64, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateStatus(id int64, status models.CommentStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetByID(id int64) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List() ([]*models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.CategoryRepository = (*MockCategoryRepository)(nil)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int) ([]*models.User, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// fakeViewStore keeps view state in memory, standing in for Redis.
type fakeViewStore struct {
	selections map[string]selection.Snapshot
	edits      map[string]*editsession.Session
}

func newFakeViewStore() *fakeViewStore {
	return &fakeViewStore{
		selections: make(map[string]selection.Snapshot),
		edits:      make(map[string]*editsession.Session),
	}
}

func (f *fakeViewStore) Selection(viewID, list string) (*selection.State, error) {
	if snap, ok := f.selections[viewID+"/"+list]; ok {
		return selection.Restore(snap), nil
	}
	return selection.NewState(), nil
}

func (f *fakeViewStore) SaveSelection(viewID, list string, state *selection.State) error {
	f.selections[viewID+"/"+list] = state.Snapshot()
	return nil
}

func (f *fakeViewStore) EditSession(viewID string) (*editsession.Session, error) {
	if s, ok := f.edits[viewID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeViewStore) SaveEditSession(viewID string, session *editsession.Session) error {
	copied := *session
	f.edits[viewID] = &copied
	return nil
}

func (f *fakeViewStore) ClearEditSession(viewID string) error {
	delete(f.edits, viewID)
	return nil
}

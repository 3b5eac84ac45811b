package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressroom/pkg/logger"
	"pressroom/services/admin/internal/selection"
	"pressroom/services/admin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSelectionUseCase is a mock implementation of SelectionUseCase
type MockSelectionUseCase struct {
	mock.Mock
}

func (m *MockSelectionUseCase) Get(viewID, list string) (selection.Snapshot, error) {
	args := m.Called(viewID, list)
	return args.Get(0).(selection.Snapshot), args.Error(1)
}

func (m *MockSelectionUseCase) Toggle(viewID, list string, id int64) (selection.Snapshot, error) {
	args := m.Called(viewID, list, id)
	return args.Get(0).(selection.Snapshot), args.Error(1)
}

func (m *MockSelectionUseCase) SetSelectAll(viewID, list string, on bool) (selection.Snapshot, error) {
	args := m.Called(viewID, list, on)
	return args.Get(0).(selection.Snapshot), args.Error(1)
}

func (m *MockSelectionUseCase) Replace(viewID, list string, rawIDs []string) (selection.Snapshot, error) {
	args := m.Called(viewID, list, rawIDs)
	return args.Get(0).(selection.Snapshot), args.Error(1)
}

func (m *MockSelectionUseCase) Clear(viewID, list string) (selection.Snapshot, error) {
	args := m.Called(viewID, list)
	return args.Get(0).(selection.Snapshot), args.Error(1)
}

var _ usecase.SelectionUseCase = (*MockSelectionUseCase)(nil)

func TestToggleSelection(t *testing.T) {
	mockUseCase := new(MockSelectionUseCase)
	handler := NewSelectionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/selection/:list/toggle", asAdmin(handler.Toggle))

	snap := selection.Snapshot{Selected: []int64{5}, CurrentPageIDs: []int64{5, 6}}
	mockUseCase.On("Toggle", "view-1", "posts", int64(5)).Return(snap, nil)

	body, _ := json.Marshal(map[string]int64{"id": 5})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/selection/posts/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ViewIDHeader, "view-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response selection.Snapshot
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, snap, response)
}

func TestSetSelectAll_RequiresFlag(t *testing.T) {
	handler := NewSelectionHandler(new(MockSelectionUseCase), logger.New())

	router := setupTestRouter()
	router.POST("/selection/:list/all", asAdmin(handler.SetSelectAll))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/selection/posts/all", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingViewID_GeneratesOne(t *testing.T) {
	mockUseCase := new(MockSelectionUseCase)
	handler := NewSelectionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/selection/:list", asAdmin(handler.Get))

	mockUseCase.On("Get", mock.AnythingOfType("string"), "posts").Return(selection.Snapshot{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/selection/posts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// The generated id comes back so the client can stick with it.
	assert.NotEmpty(t, w.Header().Get(ViewIDHeader))
}

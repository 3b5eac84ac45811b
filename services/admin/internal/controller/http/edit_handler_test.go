package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressroom/pkg/logger"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/editsession"
	"pressroom/services/admin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEditUseCase is a mock implementation of EditUseCase
type MockEditUseCase struct {
	mock.Mock
}

func (m *MockEditUseCase) StartEdit(viewer visibility.Viewer, viewID, entityName string, recordID int64, field string) (*editsession.Session, error) {
	args := m.Called(viewer, viewID, entityName, recordID, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*editsession.Session), args.Error(1)
}

func (m *MockEditUseCase) SaveEdit(viewer visibility.Viewer, viewID, token, value string) (*editsession.Session, error) {
	args := m.Called(viewer, viewID, token, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*editsession.Session), args.Error(1)
}

func (m *MockEditUseCase) CancelEdit(viewID, token string) (*editsession.Session, error) {
	args := m.Called(viewID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*editsession.Session), args.Error(1)
}

func (m *MockEditUseCase) CurrentEdit(viewID string) (*editsession.Session, error) {
	args := m.Called(viewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*editsession.Session), args.Error(1)
}

var _ usecase.EditUseCase = (*MockEditUseCase)(nil)

func TestSaveEdit_ValidationFailureCarriesSession(t *testing.T) {
	mockUseCase := new(MockEditUseCase)
	handler := NewEditHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/edit/save", asAdmin(handler.Save))

	session := &editsession.Session{
		Token:    "tok-1",
		Entity:   "post",
		RecordID: 1,
		Field:    "title",
		Original: "Original Title",
		Proposed: "",
		Active:   true,
	}
	mockUseCase.On("SaveEdit", mock.Anything, "view-1", "tok-1", "").
		Return(session, &usecase.FieldError{Field: "title", Message: "title is required"})

	body, _ := json.Marshal(map[string]string{"token": "tok-1", "value": ""})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/edit/save", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ViewIDHeader, "view-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "title is required", response["error"])
	assert.Equal(t, "title", response["field"])
	// The failed value is still what the view shows.
	payload := response["session"].(map[string]interface{})
	assert.Equal(t, "", payload["value"])
	assert.Equal(t, true, payload["active"])
}

func TestCancelEdit_ReturnsOriginal(t *testing.T) {
	mockUseCase := new(MockEditUseCase)
	handler := NewEditHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/edit/cancel", asAdmin(handler.Cancel))

	session := &editsession.Session{
		Token:    "tok-1",
		Entity:   "post",
		RecordID: 1,
		Field:    "title",
		Original: "Original Title",
		Proposed: "Original Title",
		Active:   false,
	}
	mockUseCase.On("CancelEdit", "view-1", "tok-1").Return(session, nil)

	body, _ := json.Marshal(map[string]string{"token": "tok-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/edit/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ViewIDHeader, "view-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Original Title", response["value"])
	assert.Equal(t, false, response["active"])
}

func TestSaveEdit_StaleToken(t *testing.T) {
	mockUseCase := new(MockEditUseCase)
	handler := NewEditHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/edit/save", asAdmin(handler.Save))

	mockUseCase.On("SaveEdit", mock.Anything, "view-1", "stale", "x").
		Return(nil, usecase.ErrEditNotFound)

	body, _ := json.Marshal(map[string]string{"token": "stale", "value": "x"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/edit/save", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ViewIDHeader, "view-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCurrentEdit_NoneActive(t *testing.T) {
	mockUseCase := new(MockEditUseCase)
	handler := NewEditHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/edit", asAdmin(handler.Current))

	mockUseCase.On("CurrentEdit", "view-1").Return(nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/edit", nil)
	req.Header.Set(ViewIDHeader, "view-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

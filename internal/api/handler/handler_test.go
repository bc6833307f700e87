package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/priority"
	"github.com/marvinpacsands/Project-List-Designers/internal/service"
	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock BootstrapService ──

type mockBootstrapService struct {
	result *dto.BootstrapResponse
	err    error
}

func (m *mockBootstrapService) Bootstrap(_ context.Context, _ string) (*dto.BootstrapResponse, error) {
	return m.result, m.err
}

// ── Mock ProjectService ──

type mockProjectService struct {
	listResult   *dto.ProjectListResponse
	listErr      error
	updateResult *dto.UpdateResponse
	updateErr    error
	orderErr     error

	lastUpdate *dto.UpdateRequest
	lastOrder  *dto.CustomOrderRequest
}

func (m *mockProjectService) List(_ context.Context, _ *dto.ProjectListRequest) (*dto.ProjectListResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockProjectService) Update(_ context.Context, req *dto.UpdateRequest) (*dto.UpdateResponse, error) {
	m.lastUpdate = req
	return m.updateResult, m.updateErr
}
func (m *mockProjectService) SaveCustomOrder(_ context.Context, req *dto.CustomOrderRequest) error {
	m.lastOrder = req
	return m.orderErr
}

// ── Mock RawDataService ──

type mockRawDataService struct {
	doc        *model.Document
	getErr     error
	replace    *dto.RawDataResponse
	replaceErr error
}

func (m *mockRawDataService) GetRaw(_ context.Context) (*model.Document, error) {
	return m.doc, m.getErr
}
func (m *mockRawDataService) ReplaceRaw(_ context.Context, _ *dto.RawDataRequest) (*dto.RawDataResponse, error) {
	return m.replace, m.replaceErr
}
func (m *mockRawDataService) Rebalance(_ context.Context) (priority.Result, error) {
	return priority.Result{}, nil
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	list   []model.Notification
	err    error
	ackErr error

	ackedID, ackedBy string
}

func (m *mockNotificationService) ListUnread(_ context.Context, _, _ string) ([]model.Notification, error) {
	return m.list, m.err
}
func (m *mockNotificationService) Acknowledge(_ context.Context, id, identity string) error {
	m.ackedID, m.ackedBy = id, identity
	return m.ackErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportProjects(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func rawBody(s string) io.Reader {
	return strings.NewReader(s)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, path string, handler gin.HandlerFunc, target string, body io.Reader) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, path, handler)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, status, code int) response.Response {
	t.Helper()
	if w.Code != status {
		t.Errorf("expected HTTP %d, got %d (%s)", status, w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp.Code != code {
		t.Errorf("expected code %d, got %d", code, resp.Code)
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// BootstrapHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBootstrapHandler_MissingEmail(t *testing.T) {
	h := NewBootstrapHandler(&mockBootstrapService{})

	w := serve("GET", "/api/bootstrap", h.Bootstrap, "/api/bootstrap", nil)
	expectCode(t, w, http.StatusBadRequest, 10001)
}

func TestBootstrapHandler_UnknownUser(t *testing.T) {
	h := NewBootstrapHandler(&mockBootstrapService{err: service.ErrUserNotFound})

	w := serve("GET", "/api/bootstrap", h.Bootstrap, "/api/bootstrap?email=x@example.com", nil)
	expectCode(t, w, http.StatusNotFound, 40001)
}

func TestBootstrapHandler_Success(t *testing.T) {
	h := NewBootstrapHandler(&mockBootstrapService{result: &dto.BootstrapResponse{Name: "Bob", IsPM: true}})

	w := serve("GET", "/api/bootstrap", h.Bootstrap, "/api/bootstrap?email=bob@example.com", nil)
	resp := expectCode(t, w, http.StatusOK, 0)
	data, _ := resp.Data.(map[string]interface{})
	if data["name"] != "Bob" || data["isPM"] != true {
		t.Errorf("unexpected data: %v", resp.Data)
	}
}

// ═══════════════════════════════════════════════════════════
// ProjectHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProjectHandler_List_MissingMode(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})

	w := serve("GET", "/api/projects", h.ListProjects, "/api/projects?email=bob@example.com", nil)
	expectCode(t, w, http.StatusBadRequest, 10001)
}

func TestProjectHandler_List_Errors(t *testing.T) {
	cases := []struct {
		name         string
		err          error
		status, code int
	}{
		{"invalid mode", service.ErrInvalidMode, http.StatusBadRequest, 20002},
		{"unknown user", service.ErrUserNotFound, http.StatusNotFound, 40001},
		{"store failure", errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewProjectHandler(&mockProjectService{listErr: tc.err})
			w := serve("GET", "/api/projects", h.ListProjects, "/api/projects?email=bob@example.com&mode=pm", nil)
			expectCode(t, w, tc.status, tc.code)
		})
	}
}

func TestProjectHandler_List_Success(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{listResult: &dto.ProjectListResponse{
		Projects:        []dto.ProjectView{{RowIndex: 2, ProjectName: "Harbor House"}},
		People:          []dto.Person{},
		CustomSortOrder: []int64{},
	}})

	w := serve("GET", "/api/projects", h.ListProjects, "/api/projects?email=bob@example.com&mode=pm&pmName=__ALL__", nil)
	resp := expectCode(t, w, http.StatusOK, 0)
	data, _ := resp.Data.(map[string]interface{})
	projects, _ := data["projects"].([]interface{})
	if len(projects) != 1 {
		t.Errorf("unexpected projects: %v", data["projects"])
	}
}

func TestProjectHandler_Update_MissingRowIndex(t *testing.T) {
	mock := &mockProjectService{}
	h := NewProjectHandler(mock)

	w := serve("POST", "/api/update", h.UpdateProject, "/api/update",
		rawBody(`{"email":"bob@example.com","mode":"pm","payload":{}}`))
	expectCode(t, w, http.StatusBadRequest, 10001)
	if mock.lastUpdate != nil {
		t.Error("service should not be called")
	}
}

func TestProjectHandler_Update_NumericFieldsAccepted(t *testing.T) {
	mock := &mockProjectService{updateResult: &dto.UpdateResponse{OK: true, SavedAtDisplay: "3:04:05 PM"}}
	h := NewProjectHandler(mock)

	w := serve("POST", "/api/update", h.UpdateProject, "/api/update",
		rawBody(`{"email":"alice@example.com","mode":"mine","payload":{"rowIndex":5,"priority":2,"notes":"on it"}}`))
	expectCode(t, w, http.StatusOK, 0)

	p := mock.lastUpdate.Payload
	if p.RowIndex != "5" || p.Priority == nil || *p.Priority != "2" || p.Notes == nil || *p.Notes != "on it" {
		t.Errorf("unexpected payload: %+v", p)
	}
	if p.PMNotes != nil || p.Designer1 != nil {
		t.Error("absent fields must stay nil")
	}
}

func TestProjectHandler_Update_Errors(t *testing.T) {
	cases := []struct {
		name         string
		err          error
		status, code int
	}{
		{"not found", service.ErrProjectNotFound, http.StatusNotFound, 20001},
		{"not assigned", service.ErrNotAssigned, http.StatusForbidden, 20003},
		{"unknown user", service.ErrUserNotFound, http.StatusNotFound, 40001},
		{"write failure", errors.New("disk full"), http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewProjectHandler(&mockProjectService{updateErr: tc.err})
			w := serve("POST", "/api/update", h.UpdateProject, "/api/update", jsonBody(map[string]interface{}{
				"email": "bob@example.com", "mode": "pm", "payload": map[string]interface{}{"rowIndex": "2"},
			}))
			expectCode(t, w, tc.status, tc.code)
		})
	}
}

func TestProjectHandler_SaveCustomOrder(t *testing.T) {
	mock := &mockProjectService{}
	h := NewProjectHandler(mock)

	w := serve("POST", "/api/custom-order", h.SaveCustomOrder, "/api/custom-order",
		rawBody(`{"email":"bob@example.com","pmName":"__ALL__","orderedRowIndexes":[5,"2",3]}`))
	expectCode(t, w, http.StatusOK, 0)
	if mock.lastOrder == nil || len(mock.lastOrder.OrderedRowIndexes) != 3 || mock.lastOrder.OrderedRowIndexes[1] != 2 {
		t.Errorf("unexpected order: %+v", mock.lastOrder)
	}
}

// ═══════════════════════════════════════════════════════════
// RawDataHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRawDataHandler_Get(t *testing.T) {
	doc := model.NewDocument()
	doc.Projects = append(doc.Projects, model.Project{RowIndex: 2, ProjectName: "Harbor House"})
	h := NewRawDataHandler(&mockRawDataService{doc: doc})

	w := serve("GET", "/api/raw-data", h.GetRawData, "/api/raw-data", nil)
	resp := expectCode(t, w, http.StatusOK, 0)
	data, _ := resp.Data.(map[string]interface{})
	if _, ok := data["notifications"]; !ok {
		t.Errorf("document should carry every collection: %v", data)
	}
}

func TestRawDataHandler_Replace_BadJSON(t *testing.T) {
	h := NewRawDataHandler(&mockRawDataService{})

	w := serve("POST", "/api/raw-data", h.ReplaceRawData, "/api/raw-data", rawBody(`{"projects": [`))
	resp := expectCode(t, w, http.StatusBadRequest, 10001)
	if resp.Details == "" {
		t.Error("expected decode details")
	}
}

func TestRawDataHandler_Replace_InvalidDocument(t *testing.T) {
	h := NewRawDataHandler(&mockRawDataService{replaceErr: service.ErrInvalidDocument})

	w := serve("POST", "/api/raw-data", h.ReplaceRawData, "/api/raw-data", rawBody(`{}`))
	expectCode(t, w, http.StatusBadRequest, 20004)
}

func TestRawDataHandler_Replace_Success(t *testing.T) {
	h := NewRawDataHandler(&mockRawDataService{replace: &dto.RawDataResponse{Success: true, Count: 1, NotifsGenerated: 2}})

	w := serve("POST", "/api/raw-data", h.ReplaceRawData, "/api/raw-data",
		rawBody(`{"projects":[{"rowIndex":"2","projectNumber":1001,"priority1":3}]}`))
	resp := expectCode(t, w, http.StatusOK, 0)
	data, _ := resp.Data.(map[string]interface{})
	if data["notifsGenerated"] != float64(2) {
		t.Errorf("unexpected data: %v", data)
	}
}

// ═══════════════════════════════════════════════════════════
// NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestNotificationHandler_List_MissingIdentity(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{})

	w := serve("GET", "/api/notifications", h.ListNotifications, "/api/notifications", nil)
	expectCode(t, w, http.StatusBadRequest, 30001)
}

func TestNotificationHandler_List_Success(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{list: []model.Notification{
		{ID: "n-1", Title: "New Assignment", TargetRole: model.TargetDesigner, TargetName: "alice", ReadBy: []string{}},
	}})

	w := serve("GET", "/api/notifications", h.ListNotifications, "/api/notifications?name=Alice", nil)
	resp := expectCode(t, w, http.StatusOK, 0)
	data, _ := resp.Data.(map[string]interface{})
	list, _ := data["list"].([]interface{})
	if len(list) != 1 {
		t.Errorf("unexpected list: %v", data["list"])
	}
}

func TestNotificationHandler_List_Failure(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{err: errors.New("boom")})

	w := serve("GET", "/api/notifications", h.ListNotifications, "/api/notifications?email=a@example.com", nil)
	expectCode(t, w, http.StatusInternalServerError, 50000)
}

func TestNotificationHandler_Ack_NumericID(t *testing.T) {
	mock := &mockNotificationService{}
	h := NewNotificationHandler(mock)

	w := serve("POST", "/api/notifications/ack", h.AcknowledgeNotification, "/api/notifications/ack",
		rawBody(`{"id":1712345678901,"email":"alice@example.com"}`))
	expectCode(t, w, http.StatusOK, 0)
	if mock.ackedID != "1712345678901" || mock.ackedBy != "alice@example.com" {
		t.Errorf("acked %q by %q", mock.ackedID, mock.ackedBy)
	}
}

func TestNotificationHandler_Ack_MissingEmail(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{})

	w := serve("POST", "/api/notifications/ack", h.AcknowledgeNotification, "/api/notifications/ack", rawBody(`{"id":"n-1"}`))
	expectCode(t, w, http.StatusBadRequest, 10001)
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportProjects_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{buf: bytes.NewBufferString("xlsx-bytes"), filename: "projects_20260304.xlsx"})

	w := serve("GET", "/api/export/projects", h.ExportProjects, "/api/export/projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename*=UTF-8''projects_20260304.xlsx" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestExportHandler_ExportProjects_NoProjects(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoProjects})

	w := serve("GET", "/api/export/projects", h.ExportProjects, "/api/export/projects", nil)
	expectCode(t, w, http.StatusNotFound, 20101)
}

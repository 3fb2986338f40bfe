package task

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"citizengate/internal/profile"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	profiles *profile.InMemoryStore
	store    *InMemoryStore
	router   chi.Router
}

func (s *HandlerSuite) SetupTest() {
	s.profiles = profile.NewInMemoryStore()
	s.store = NewInMemoryStore()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := audit.NewPublisher(audit.NewInMemoryStore())
	engine := NewEngine(s.store, s.profiles, publisher, nil, logger)

	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithUserID(r.Context(), "u-1")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	NewHandler(engine, logger).Register(s.router)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func (s *HandlerSuite) seedEligibleProfile() {
	_, err := s.profiles.Upsert(context.Background(), "u-1", profile.Profile{
		"full_name":      "Ali bin Abu",
		"ic_number":      "900101-10-1234",
		"phone":          "+60123456789",
		"email":          "ali@example.com",
		"monthly_income": "4500",
	})
	s.Require().NoError(err)
}

func (s *HandlerSuite) TestCreate() {
	rec := s.do(http.MethodPost, "/task/create", `{"task_type":"tax_filing"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	body := s.decode(rec)
	s.Contains(body["message"], "Task created")

	task, ok := body["task"].(map[string]any)
	s.Require().True(ok)
	s.Equal("u-1", task["user_id"])
	s.Equal(float64(1), task["current_step"])
}

func (s *HandlerSuite) TestCreateUnknownService() {
	rec := s.do(http.MethodPost, "/task/create", `{"task_type":"dog_license"}`)
	s.Require().Equal(http.StatusNotFound, rec.Code)

	body := s.decode(rec)
	s.Equal("not_found", body["error"])
	s.NotEmpty(body["valid_services"])
}

func (s *HandlerSuite) TestCreateMalformedBody() {
	rec := s.do(http.MethodPost, "/task/create", `{`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestCreateBodyUserOverride() {
	rec := s.do(http.MethodPost, "/task/create", `{"task_type":"tax_filing","user_id":"u-2"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	task := s.decode(rec)["task"].(map[string]any)
	s.Equal("u-2", task["user_id"])
}

func (s *HandlerSuite) TestCreateGatedFailureEnvelope() {
	// No profile seeded: the gate fails but the endpoint still answers 200
	// with the verification report attached.
	rec := s.do(http.MethodPost, "/task/start-with-verification", `{"task_type":"tax_filing"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	body := s.decode(rec)
	s.Equal(false, body["success"])
	s.NotNil(body["auto_verification"])
	s.Equal("Please update your profile to fix the failed checks", body["action_required"])
}

func (s *HandlerSuite) TestCreateGatedSuccess() {
	s.seedEligibleProfile()

	rec := s.do(http.MethodPost, "/task/start-with-verification", `{"task_type":"tax_filing"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	body := s.decode(rec)
	s.Equal(true, body["success"])

	task := body["task"].(map[string]any)
	s.Equal(float64(2), task["current_step"])
}

func (s *HandlerSuite) TestLifecycleRoutes() {
	created := s.decode(s.do(http.MethodPost, "/task/create", `{"task_type":"tax_filing"}`))
	taskID := created["task"].(map[string]any)["id"].(string)

	s.Run("get", func() {
		rec := s.do(http.MethodGet, "/task/"+taskID, "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal(taskID, s.decode(rec)["id"])
	})

	s.Run("list", func() {
		rec := s.do(http.MethodGet, "/tasks", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Len(s.decode(rec)["tasks"], 1)
	})

	s.Run("advance", func() {
		rec := s.do(http.MethodPost, "/task/"+taskID+"/advance", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(s.decode(rec)["message"], "Moved to step")
	})

	s.Run("upload and documents", func() {
		rec := s.do(http.MethodPost, "/task/"+taskID+"/upload",
			`{"filename":"payslip.pdf","content_type":"application/pdf","size":2048,"step":2}`)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(s.decode(rec)["message"], "payslip.pdf")

		rec = s.do(http.MethodGet, "/task/"+taskID+"/documents", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Len(s.decode(rec)["documents"], 1)
	})

	s.Run("cancel", func() {
		rec := s.do(http.MethodPost, "/task/"+taskID+"/cancel", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(s.decode(rec)["message"], "Task cancelled")
	})

	s.Run("delete", func() {
		rec := s.do(http.MethodDelete, "/task/"+taskID, "")
		s.Require().Equal(http.StatusOK, rec.Code)

		rec = s.do(http.MethodGet, "/task/"+taskID, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestAdvanceConflictSurfacesAs409() {
	created := s.decode(s.do(http.MethodPost, "/task/create", `{"task_type":"tax_filing"}`))
	taskID := created["task"].(map[string]any)["id"].(string)

	rec := s.do(http.MethodPost, "/task/"+taskID+"/cancel", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/task/"+taskID+"/advance", "")
	s.Require().Equal(http.StatusConflict, rec.Code)
	s.Equal("conflict", s.decode(rec)["error"])
}

func (s *HandlerSuite) TestUploadValidation() {
	created := s.decode(s.do(http.MethodPost, "/task/create", `{"task_type":"tax_filing"}`))
	taskID := created["task"].(map[string]any)["id"].(string)

	rec := s.do(http.MethodPost, "/task/"+taskID+"/upload", `{"content_type":"application/pdf"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestListIsEmptyArrayNotNull() {
	rec := s.do(http.MethodGet, "/tasks", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"tasks":[]`)
}

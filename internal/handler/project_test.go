package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// stubProjectService lets each test pin the behavior of exactly the
// methods the handler under test calls.
type stubProjectService struct {
	listFn    func(ctx context.Context, viewer models.Identity, scope models.Scope, filters []models.ProjectFilter) ([]models.Project, error)
	createFn  func(ctx context.Context, viewer models.Identity, req *services.CreateProjectRequest) (*models.Project, error)
	getFn     func(ctx context.Context, viewer models.Identity, id string) (*models.Project, error)
	updateFn  func(ctx context.Context, viewer models.Identity, id string, req *services.UpdateProjectRequest) (*models.Project, error)
	archiveFn func(ctx context.Context, viewer models.Identity, id string) (*models.Project, error)
	restoreFn func(ctx context.Context, viewer models.Identity, id string) (*models.Project, error)
	destroyFn func(ctx context.Context, viewer models.Identity, id string) error
	addFn     func(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error)
	removeFn  func(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error)
}

func (s *stubProjectService) ListProjects(ctx context.Context, viewer models.Identity, scope models.Scope, filters []models.ProjectFilter) ([]models.Project, error) {
	return s.listFn(ctx, viewer, scope, filters)
}

func (s *stubProjectService) CreateProject(ctx context.Context, viewer models.Identity, req *services.CreateProjectRequest) (*models.Project, error) {
	return s.createFn(ctx, viewer, req)
}

func (s *stubProjectService) GetProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error) {
	return s.getFn(ctx, viewer, id)
}

func (s *stubProjectService) UpdateProject(ctx context.Context, viewer models.Identity, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	return s.updateFn(ctx, viewer, id, req)
}

func (s *stubProjectService) ArchiveProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error) {
	return s.archiveFn(ctx, viewer, id)
}

func (s *stubProjectService) RestoreProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error) {
	return s.restoreFn(ctx, viewer, id)
}

func (s *stubProjectService) DestroyProject(ctx context.Context, viewer models.Identity, id string) error {
	return s.destroyFn(ctx, viewer, id)
}

func (s *stubProjectService) AddMember(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error) {
	return s.addFn(ctx, viewer, projectID, userID)
}

func (s *stubProjectService) RemoveMember(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error) {
	return s.removeFn(ctx, viewer, projectID, userID)
}

func newTestHandler(svc services.ProjectService) *ProjectHandler {
	return NewProjectHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newRequest builds a request carrying the viewer identity and an
// optional {id} path value, the way the router and auth middleware
// would hand it to the handler.
func newRequest(method, target string, body string, viewer models.Identity, pathID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	r = httputil.WithIdentity(r, viewer)
	if pathID != "" {
		r.SetPathValue("id", pathID)
	}
	return r
}

func sampleProject(id, ownerID string, visibility models.Visibility) *models.Project {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Project{
		ID:          id,
		OwnerID:     ownerID,
		Title:       "Sample",
		Description: "Sample project",
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestGetProject_StatusMapping(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"missing", fmt.Errorf("project: %w", domain.ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("view: %w", domain.ErrForbidden), http.StatusForbidden},
		{"unauthorized", fmt.Errorf("view: %w", domain.ErrUnauthorized), http.StatusUnauthorized},
		{"unexpected", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubProjectService{
				getFn: func(_ context.Context, _ models.Identity, id string) (*models.Project, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return sampleProject(id, viewer.UserID, models.VisibilityPrivate), nil
				},
			})

			w := httptest.NewRecorder()
			h.GetProject(w, newRequest(http.MethodGet, "/projects/prj-1", "", viewer, "prj-1"))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK && w.Header().Get("Content-Type") != "application/problem+json" {
				t.Errorf("error content type = %q, want application/problem+json", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestCreateProject(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		createFn: func(_ context.Context, v models.Identity, req *services.CreateProjectRequest) (*models.Project, error) {
			p := sampleProject("prj-new", v.UserID, models.VisibilityPrivate)
			p.Title = req.Title
			return p, nil
		},
	})

	w := httptest.NewRecorder()
	body := `{"title":"New board","description":"desc"}`
	h.CreateProject(w, newRequest(http.MethodPost, "/projects", body, viewer, ""))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var got models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Title != "New board" || got.OwnerID != viewer.UserID {
		t.Errorf("response = %+v, want title/owner echoed back", got)
	}
}

func TestCreateProject_ValidationBody(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		createFn: func(context.Context, models.Identity, *services.CreateProjectRequest) (*models.Project, error) {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"title": "cannot be blank",
			}}
		},
	})

	w := httptest.NewRecorder()
	h.CreateProject(w, newRequest(http.MethodPost, "/projects", `{"description":"d"}`, viewer, ""))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var problem struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem body: %v", err)
	}
	if problem.Errors["title"] != "cannot be blank" {
		t.Errorf("problem errors = %v, want title message", problem.Errors)
	}
}

func TestCreateProject_MalformedBody(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		createFn: func(context.Context, models.Identity, *services.CreateProjectRequest) (*models.Project, error) {
			t.Fatal("service called for malformed body")
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	h.CreateProject(w, newRequest(http.MethodPost, "/projects", `{"title": `, viewer, ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGuestsBlockedFromMutations(t *testing.T) {
	// Every mutating handler rejects anonymous callers before parsing
	// the body or calling the service.
	svc := &stubProjectService{
		createFn: func(context.Context, models.Identity, *services.CreateProjectRequest) (*models.Project, error) {
			t.Fatal("service called for anonymous viewer")
			return nil, nil
		},
		updateFn: func(context.Context, models.Identity, string, *services.UpdateProjectRequest) (*models.Project, error) {
			t.Fatal("service called for anonymous viewer")
			return nil, nil
		},
		archiveFn: func(context.Context, models.Identity, string) (*models.Project, error) {
			t.Fatal("service called for anonymous viewer")
			return nil, nil
		},
		restoreFn: func(context.Context, models.Identity, string) (*models.Project, error) {
			t.Fatal("service called for anonymous viewer")
			return nil, nil
		},
		destroyFn: func(context.Context, models.Identity, string) error {
			t.Fatal("service called for anonymous viewer")
			return nil
		},
		addFn: func(context.Context, models.Identity, string, string) (*models.Project, error) {
			t.Fatal("service called for anonymous viewer")
			return nil, nil
		},
		removeFn: func(context.Context, models.Identity, string, string) (*models.Project, error) {
			t.Fatal("service called for anonymous viewer")
			return nil, nil
		},
	}
	h := newTestHandler(svc)
	anon := models.Identity{}

	tests := []struct {
		name  string
		serve func(w http.ResponseWriter, r *http.Request)
		req   *http.Request
	}{
		{"create", h.CreateProject, newRequest(http.MethodPost, "/projects", `{}`, anon, "")},
		{"update", h.UpdateProject, newRequest(http.MethodPatch, "/projects/prj-1", `{}`, anon, "prj-1")},
		{"archive", h.ArchiveProject, newRequest(http.MethodDelete, "/projects/prj-1/archive", "", anon, "prj-1")},
		{"restore", h.RestoreProject, newRequest(http.MethodPatch, "/projects/prj-1/restore", "", anon, "prj-1")},
		{"destroy", h.DestroyProject, newRequest(http.MethodDelete, "/projects/prj-1", "", anon, "prj-1")},
		{"add member", h.AddMember, newRequest(http.MethodPost, "/projects/prj-1/members", `{}`, anon, "prj-1")},
		{"remove member", h.RemoveMember, newRequest(http.MethodDelete, "/projects/prj-1/members", `{}`, anon, "prj-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.serve(w, tt.req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestListProjects_AnonymousSeesPublicOnly(t *testing.T) {
	h := newTestHandler(&stubProjectService{
		listFn: func(_ context.Context, viewer models.Identity, scope models.Scope, _ []models.ProjectFilter) ([]models.Project, error) {
			if viewer.Authenticated() {
				t.Errorf("viewer = %+v, want anonymous", viewer)
			}
			return []models.Project{*sampleProject("prj-pub", "usr-1", models.VisibilityPublic)}, nil
		},
	})

	w := httptest.NewRecorder()
	h.ListProjects(w, newRequest(http.MethodGet, "/projects", "", models.Identity{}, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var got []models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != "prj-pub" {
		t.Errorf("listing = %v, want the public project", got)
	}
}

func TestListProjects_PassesScopeAndFilters(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		listFn: func(_ context.Context, _ models.Identity, scope models.Scope, filters []models.ProjectFilter) ([]models.Project, error) {
			if scope != models.ScopeTrashed {
				t.Errorf("scope = %q, want %q", scope, models.ScopeTrashed)
			}
			if len(filters) != 1 || filters[0].Kind != models.FilterByOwner || filters[0].OwnerID != "usr-2" {
				t.Errorf("filters = %v, want single by=usr-2", filters)
			}
			return []models.Project{}, nil
		},
	})

	w := httptest.NewRecorder()
	h.ListProjects(w, newRequest(http.MethodGet, "/projects?scope=trashed&by=usr-2", "", viewer, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("empty listing body = %q, want []", body)
	}
}

func TestDestroyProject_EmptyBody(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		destroyFn: func(_ context.Context, _ models.Identity, id string) error {
			if id != "prj-1" {
				t.Errorf("id = %q, want prj-1", id)
			}
			return nil
		},
	})

	w := httptest.NewRecorder()
	h.DestroyProject(w, newRequest(http.MethodDelete, "/projects/prj-1", "", viewer, "prj-1"))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestAddMember(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		addFn: func(_ context.Context, _ models.Identity, projectID, userID string) (*models.Project, error) {
			if projectID != "prj-1" || userID != "usr-2" {
				t.Errorf("attach args = (%q, %q), want (prj-1, usr-2)", projectID, userID)
			}
			p := sampleProject(projectID, viewer.UserID, models.VisibilityPrivate)
			p.Members = []string{userID}
			return p, nil
		},
	})

	w := httptest.NewRecorder()
	h.AddMember(w, newRequest(http.MethodPost, "/projects/prj-1/members", `{"id":"usr-2"}`, viewer, "prj-1"))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var got models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0] != "usr-2" {
		t.Errorf("members = %v, want [usr-2]", got.Members)
	}
}

func TestAddMember_UnknownUser(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		addFn: func(context.Context, models.Identity, string, string) (*models.Project, error) {
			return nil, fmt.Errorf("user usr-ghost: %w", domain.ErrNotFound)
		},
	})

	w := httptest.NewRecorder()
	h.AddMember(w, newRequest(http.MethodPost, "/projects/prj-1/members", `{"id":"usr-ghost"}`, viewer, "prj-1"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRemoveMember(t *testing.T) {
	viewer := models.Identity{UserID: "usr-1"}
	h := newTestHandler(&stubProjectService{
		removeFn: func(_ context.Context, _ models.Identity, projectID, userID string) (*models.Project, error) {
			p := sampleProject(projectID, viewer.UserID, models.VisibilityPrivate)
			p.Members = []string{}
			return p, nil
		},
	})

	w := httptest.NewRecorder()
	h.RemoveMember(w, newRequest(http.MethodDelete, "/projects/prj-1/members", `{"id":"usr-2"}`, viewer, "prj-1"))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

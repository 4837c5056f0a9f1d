package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-admin/internal/common/errors"
	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/common/metrics"
	"portfolio-admin/internal/models"
)

// ==========================
// Test backend
// ==========================

// stubBackend is a conforming in-memory portfolio API for one collection.
type stubBackend struct {
	mu       sync.Mutex
	items    map[string]map[string]interface{}
	nextID   int
	requests []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{items: map[string]map[string]interface{}{}}
}

func (s *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && len(parts) == 2 && parts[1] == "fetch":
		list := make([]map[string]interface{}, 0, len(s.items))
		for _, item := range s.items {
			list = append(list, item)
		}
		json.NewEncoder(w).Encode(list)
	case r.Method == http.MethodPost && len(parts) == 1:
		var item map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.nextID++
		item["id"] = strconv.Itoa(s.nextID)
		s.items[item["id"].(string)] = item
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item)
	case r.Method == http.MethodGet && len(parts) == 2:
		item, ok := s.items[parts[1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(item)
	case r.Method == http.MethodPut && len(parts) == 2:
		if _, ok := s.items[parts[1]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var item map[string]interface{}
		json.NewDecoder(r.Body).Decode(&item)
		item["id"] = parts[1]
		s.items[parts[1]] = item
		json.NewEncoder(w).Encode(item)
	case r.Method == http.MethodDelete && len(parts) == 2:
		delete(s.items, parts[1])
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestAPI(t *testing.T, baseURL string) *Client {
	httpClient := commonhttp.NewClient(commonhttp.Options{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Logger:  logger.NewTestLogger(t),
	})
	return New(httpClient, logger.NewTestLogger(t))
}

func unreachableURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}

// ==========================
// Reads
// ==========================

func TestGetAll_UnreachableBackendReturnsEmpty(t *testing.T) {
	c := newTestAPI(t, unreachableURL())
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.ListDegraded.WithLabelValues("projects"))

	assertEmpty := func(name string, n int, isNil bool) {
		assert.Equal(t, 0, n, name)
		assert.False(t, isNil, name)
	}
	pi := c.PersonalInfo.GetAll(ctx)
	assertEmpty("personal-info", len(pi), pi == nil)
	pr := c.Projects.GetAll(ctx)
	assertEmpty("projects", len(pr), pr == nil)
	jh := c.JobHistory.GetAll(ctx)
	assertEmpty("job-history", len(jh), jh == nil)
	eh := c.EducationHistory.GetAll(ctx)
	assertEmpty("education-history", len(eh), eh == nil)
	ps := c.ProfessionalSkills.GetAll(ctx)
	assertEmpty("professional-skills", len(ps), ps == nil)
	pd := c.ProjectDetails.GetAll(ctx)
	assertEmpty("project-detail-content", len(pd), pd == nil)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ListDegraded.WithLabelValues("projects")))
}

func TestGetAll_ServerErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	skills := newTestAPI(t, server.URL).ProfessionalSkills.GetAll(context.Background())
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestGetAll_NullBodyReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	got := newTestAPI(t, server.URL).EducationHistory.GetAll(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProjects_GetAll_Demo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects/fetch", r.URL.Path)
		w.Write([]byte(`[{"id":"1","projectName":"Demo","projectDescription":"<p>d</p>","projectLink":"https://demo","projectContentType":"IMAGE","projectTechnologies":"Go","displayOrder":1}]`))
	}))
	defer server.Close()

	projects := newTestAPI(t, server.URL+"/api").Projects.GetAll(context.Background())

	require.Len(t, projects, 1)
	assert.Equal(t, "1", projects[0].ID)
	assert.Equal(t, "Demo", projects[0].ProjectName)
	assert.Equal(t, models.ProjectImage, projects[0].ProjectContentType)
	assert.Equal(t, 1, projects[0].DisplayOrder)
}

// ==========================
// Writes
// ==========================

func TestCreateThenGetByID_RoundTrip(t *testing.T) {
	backend := newStubBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	c := newTestAPI(t, server.URL)
	ctx := context.Background()

	job := models.JobHistory{
		CompanyName:  "Acme",
		JobTitle:     "Engineer",
		StartDate:    "2021-03-01",
		EndDate:      models.StringPtr("2023-04-30"),
		Description:  "Built things",
		Location:     "Remote",
		DisplayOrder: 2,
	}
	created, err := c.JobHistory.Create(ctx, job)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := c.JobHistory.GetByID(ctx, created.ID)
	require.NoError(t, err)

	job.ID = created.ID
	assert.Equal(t, job, *fetched)

	job.Location = "Austin"
	updated, err := c.JobHistory.Update(ctx, created.ID, job)
	require.NoError(t, err)
	assert.Equal(t, "Austin", updated.Location)

	require.NoError(t, c.JobHistory.Delete(ctx, created.ID))
	_, err = c.JobHistory.GetByID(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	assert.Equal(t, []string{
		"POST /job-history",
		"GET /job-history/" + created.ID,
		"PUT /job-history/" + created.ID,
		"DELETE /job-history/" + created.ID,
		"GET /job-history/" + created.ID,
	}, backend.requests)
}

func TestWrites_PropagateErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Display order must be greater than 0"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestAPI(t, server.URL)
	ctx := context.Background()

	_, err := c.ProfessionalSkills.Create(ctx, models.ProfessionalSkill{SkillName: "Go"})
	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, http.StatusBadRequest, stdErr.Status)
	assert.Equal(t, "Display order must be greater than 0", stdErr.UserMessage(""))

	_, err = c.EducationHistory.Update(ctx, "1", models.EducationHistory{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(err))

	err = c.Projects.Delete(ctx, "1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeServer, errors.Normalize(err).Code)

	_, err = c.PersonalInfo.GetByID(ctx, "1")
	assert.Error(t, err)
}

func TestWrites_UnreachableBackend(t *testing.T) {
	c := newTestAPI(t, unreachableURL())
	_, err := c.Projects.Create(context.Background(), models.Project{ProjectName: "x"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNetwork, errors.Normalize(err).Code)
}

func TestItemPath_EscapesID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestAPI(t, server.URL).Projects.GetByID(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/projects/a%2Fb", gotPath)
}

// ==========================
// Multipart
// ==========================

func TestProjects_CreateWithMedia(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		mu.Unlock()

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, []string{"Demo"}, r.MultipartForm.Value["projectName"])
		assert.Equal(t, []string{"3"}, r.MultipartForm.Value["displayOrder"])
		assert.Equal(t, []string{"VIDEO"}, r.MultipartForm.Value["projectContentType"])
		assert.Equal(t, []string{""}, r.MultipartForm.Value["projectLink2"])
		require.Len(t, r.MultipartForm.File[models.FieldMediaFile], 1)

		w.Write([]byte(`{"id":"42","projectName":"Demo","projectContent":"projects/demo.mp4","displayOrder":3}`))
	}))
	defer server.Close()

	project := models.Project{
		ProjectName:         "Demo",
		ProjectDescription:  "<p>d</p>",
		ProjectLink:         "https://demo",
		ProjectContentType:  models.ProjectVideo,
		ProjectTechnologies: "Go",
		DisplayOrder:        3,
	}
	form := project.ToForm().AttachFile(models.FieldMediaFile, "demo.mp4", strings.NewReader("video"))

	created, err := newTestAPI(t, server.URL).Projects.CreateWithMedia(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)
	assert.Equal(t, "projects/demo.mp4", created.ProjectContent)
	assert.Equal(t, []string{"POST /projects/with-media"}, requests)
}

func TestPersonalInfo_UpdateWithMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/personal-info/7/with-media", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File[models.FieldProfilePicture], 1)
		assert.Len(t, r.MultipartForm.File[models.FieldResume], 1)
		w.Write([]byte(`{"id":"7","name":"Berkay"}`))
	}))
	defer server.Close()

	form := models.PersonalInfo{Name: "Berkay"}.ToForm().
		AttachFile(models.FieldProfilePicture, "me.jpg", strings.NewReader("jpg")).
		AttachFile(models.FieldResume, "cv.pdf", strings.NewReader("pdf"))

	updated, err := newTestAPI(t, server.URL).PersonalInfo.UpdateWithMedia(context.Background(), "7", form)
	require.NoError(t, err)
	assert.Equal(t, "Berkay", updated.Name)
}

func TestMediaResources_FileFields(t *testing.T) {
	c := newTestAPI(t, "http://unused")
	assert.Equal(t, []string{"profilePicture", "resume"}, c.PersonalInfo.FileFields())
	assert.Equal(t, []string{"mediaFile"}, c.Projects.FileFields())
	assert.Equal(t, []string{"companyLogo"}, c.JobHistory.FileFields())
	assert.Equal(t, []string{"mediaFile"}, c.ProjectDetails.FileFields())
	assert.Equal(t, "project-detail-content", c.ProjectDetails.Name())
}

// ==========================
// Project details
// ==========================

func TestProjectDetails_GetByProjectID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project-detail-content/project/p1":
			w.Write([]byte(`[{"id":"b1","projectId":"p1","projectDetailContentType":"TEXT","projectDetailContent":"<p/>","displayOrder":1}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := newTestAPI(t, server.URL)

	blocks, err := c.ProjectDetails.GetByProjectID(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, models.DetailText, blocks[0].ProjectDetailContentType)

	_, err = c.ProjectDetails.GetByProjectID(context.Background(), "p2")
	assert.Error(t, err)
}

// ==========================
// Auth & media endpoints
// ==========================

func TestAuthAPI_Endpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/auth/login":
			assert.JSONEq(t, `{"username":"admin","password":"secret"}`, string(body))
			w.Write([]byte(`{"token":"jwt","username":"admin","message":"Login successful"}`))
		case "/auth/change-password":
			assert.JSONEq(t, `{"username":"admin","newPassword":"n3w"}`, string(body))
			w.Write([]byte(`{"message":"Password changed successfully"}`))
		case "/auth/change-username":
			assert.JSONEq(t, `{"oldUsername":"admin","newUsername":"root"}`, string(body))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Username already exists"}`))
		}
	}))
	defer server.Close()

	a := newTestAPI(t, server.URL).Auth
	ctx := context.Background()

	login, err := a.Login(ctx, models.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", login.Token)
	assert.Equal(t, "Login successful", login.Message)

	msg, err := a.ChangePassword(ctx, models.ChangePasswordRequest{Username: "admin", NewPassword: "n3w"})
	require.NoError(t, err)
	assert.Equal(t, "Password changed successfully", msg.Message)

	_, err = a.ChangeUsername(ctx, models.ChangeUsernameRequest{OldUsername: "admin", NewUsername: "root"})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", errors.Normalize(err).ServerMessage)
}

func TestMediaAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/media/upload":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "projects", r.FormValue("folder"))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "shot.png", header.Filename)
			w.Write([]byte(`{"key":"projects/shot.png","url":"https://s3/signed","message":"File uploaded successfully"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/media/presigned-url":
			assert.Equal(t, "projects/shot.png", r.URL.Query().Get("key"))
			w.Write([]byte(`{"url":"https://s3/signed2"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/media/delete":
			assert.Equal(t, "https://s3/x.png", r.URL.Query().Get("fileUrl"))
			w.Write([]byte(`{"message":"File deleted successfully"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	m := newTestAPI(t, server.URL).Media
	ctx := context.Background()

	res, err := m.Upload(ctx, "projects", "shot.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "projects/shot.png", res.Key)
	assert.Equal(t, "https://s3/signed", res.URL)

	u, err := m.PresignedURL(ctx, "projects/shot.png")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/signed2", u)

	require.NoError(t, m.Delete(ctx, "https://s3/x.png"))
}

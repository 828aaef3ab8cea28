package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/admingate/adapters/auth"
	"github.com/artpar/admingate/adapters/clock"
	"github.com/artpar/admingate/adapters/hasher"
	"github.com/artpar/admingate/adapters/idgen"
	"github.com/artpar/admingate/adapters/memory"
	"github.com/artpar/admingate/core/options"
	"github.com/artpar/admingate/core/registry"
)

func boolPtr(b bool) *bool { return &b }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	adapter := memory.NewAdapter()
	posts := memory.NewResource("posts", "posts", "test", []memory.PropertySpec{
		{Name: "id", Type: "string", IsID: true, IsSortable: true},
		{Name: "title", Type: "string", IsTitle: true, IsSortable: true},
		{Name: "body", Type: "string"},
	}, idgen.NewSequential("post"))
	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := posts.AddRecord(map[string]any{"title": title, "body": "text"}); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}
	adapter.AddResource(posts)

	hideInList := options.Visibility{List: boolPtr(false)}
	opts := map[string]options.ResourceOptions{
		"posts": {
			Name: "Articles",
			Properties: map[string]options.PropertyOptions{
				"body": {IsVisible: &hideInList},
			},
		},
	}

	reg, err := registry.Build(context.Background(), adapter, opts, registry.Branding{
		CompanyName: "Test Admin",
		RootPath:    "/admin",
	})
	if err != nil {
		t.Fatalf("registry.Build: %v", err)
	}
	return reg
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	reg := testRegistry(t)
	return NewHandler(Deps{
		Registry: func() *registry.Registry { return reg },
		Logger:   zerolog.Nop(),
	})
}

func newAuthedHandler(t *testing.T) *Handler {
	t.Helper()
	reg := testRegistry(t)

	fake := hasher.Fake{}
	hash, _ := fake.Hash("hunter2")
	authenticator := auth.NewAuthenticator([]auth.Account{
		{Email: "admin@example.com", PasswordHash: hash, Role: "admin"},
	}, fake)
	sessions := auth.NewSessionService("test-secret", clock.Real{})

	return NewHandler(Deps{
		Registry:      func() *registry.Registry { return reg },
		Sessions:      sessions,
		Authenticator: authenticator,
		SessionTTL:    time.Hour,
		Logger:        zerolog.Nop(),
	})
}

func doRequest(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode body: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestPages(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/pages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		CompanyName string `json:"companyName"`
		RootPath    string `json:"rootPath"`
		Datasources []struct {
			Name      string `json:"name"`
			Type      string `json:"type"`
			Resources int    `json:"resources"`
		} `json:"datasources"`
	}
	decodeBody(t, rec, &body)

	if body.CompanyName != "Test Admin" {
		t.Errorf("companyName = %s, want Test Admin", body.CompanyName)
	}
	if body.RootPath != "/admin" {
		t.Errorf("rootPath = %s, want /admin", body.RootPath)
	}
	if len(body.Datasources) != 1 {
		t.Fatalf("len(datasources) = %d, want 1", len(body.Datasources))
	}
	if body.Datasources[0].Type != "memory" {
		t.Errorf("datasource type = %s, want memory", body.Datasources[0].Type)
	}
	if body.Datasources[0].Resources != 1 {
		t.Errorf("datasource resources = %d, want 1", body.Datasources[0].Resources)
	}
}

func TestListResources(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Resources []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Href string `json:"href"`
		} `json:"resources"`
	}
	decodeBody(t, rec, &body)

	if len(body.Resources) != 1 {
		t.Fatalf("len(resources) = %d, want 1", len(body.Resources))
	}
	if body.Resources[0].Name != "Articles" {
		t.Errorf("name = %s, want Articles", body.Resources[0].Name)
	}
	if body.Resources[0].Href != "/admin/resources/posts" {
		t.Errorf("href = %s, want /admin/resources/posts", body.Resources[0].Href)
	}
}

func TestGetResource(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/posts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		ID            string `json:"id"`
		TitleProperty struct {
			Name string `json:"name"`
		} `json:"titleProperty"`
		ResourceActions []struct {
			Name string `json:"name"`
		} `json:"resourceActions"`
	}
	decodeBody(t, rec, &body)

	if body.ID != "posts" {
		t.Errorf("id = %s, want posts", body.ID)
	}
	if body.TitleProperty.Name != "title" {
		t.Errorf("titleProperty = %s, want title", body.TitleProperty.Name)
	}
	if len(body.ResourceActions) != 2 {
		t.Errorf("len(resourceActions) = %d, want 2 (list, new)", len(body.ResourceActions))
	}
}

func TestGetResource_NotFound(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListRecords(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/posts/records", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body RecordsResponse
	decodeBody(t, rec, &body)

	if body.Total != 3 {
		t.Errorf("total = %d, want 3", body.Total)
	}
	if len(body.Records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(body.Records))
	}
	if body.Records[0].Title == "" {
		t.Error("record title should be populated")
	}
	if body.Page != 1 || body.PerPage != DefaultPerPage {
		t.Errorf("page/perPage = %d/%d, want 1/%d", body.Page, body.PerPage, DefaultPerPage)
	}

	// List records carry only list-context values
	if _, ok := body.Records[0].Params["body"]; ok {
		t.Error("params should not include properties hidden in list")
	}
	if _, ok := body.Records[0].Params["title"]; !ok {
		t.Error("params should include list properties")
	}
}

func TestListRecords_SortAndPaginate(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/resources/posts/records?sortBy=title&direction=desc&page=1&perPage=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body RecordsResponse
	decodeBody(t, rec, &body)

	if len(body.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(body.Records))
	}
	if body.Records[0].Title != "Third" {
		t.Errorf("first record = %s, want Third", body.Records[0].Title)
	}
	if body.Total != 3 {
		t.Errorf("total = %d, want 3", body.Total)
	}
}

func TestListRecords_UnsortableProperty(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/posts/records?sortBy=body", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListRecords_UnknownSortProperty(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/posts/records?sortBy=missing", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	if body.Error.Code != "configuration_error" {
		t.Errorf("error code = %s, want configuration_error", body.Error.Code)
	}
}

func TestGetRecord(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/posts/records/post-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		ID     string         `json:"id"`
		Title  string         `json:"title"`
		Params map[string]any `json:"params"`
	}
	decodeBody(t, rec, &body)

	if body.ID != "post-1" {
		t.Errorf("id = %s, want post-1", body.ID)
	}
	if body.Title != "First" {
		t.Errorf("title = %s, want First", body.Title)
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/api/resources/posts/records/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	h := newAuthedHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/session",
		`{"email":"admin@example.com","password":"hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	var body LoginResponse
	decodeBody(t, rec, &body)
	if body.Token == "" {
		t.Error("token should not be empty")
	}
	if body.Admin.Email != "admin@example.com" {
		t.Errorf("admin email = %s", body.Admin.Email)
	}

	// Session cookie should be set
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == SessionCookie && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newAuthedHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/session",
		`{"email":"admin@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_AuthDisabled(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodPost, "/api/session",
		`{"email":"x@example.com","password":"y"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestProtectedEndpoints_RequireAuth(t *testing.T) {
	h := newAuthedHandler(t)

	for _, path := range []string{
		"/api/pages",
		"/api/resources",
		"/api/resources/posts",
		"/api/resources/posts/records",
	} {
		rec := doRequest(t, h, http.MethodGet, path, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, rec.Code)
		}
	}
}

func TestProtectedEndpoints_WithToken(t *testing.T) {
	h := newAuthedHandler(t)

	login := doRequest(t, h, http.MethodPost, "/api/session",
		`{"email":"admin@example.com","password":"hunter2"}`)
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d", login.Code)
	}
	var lr LoginResponse
	decodeBody(t, login, &lr)

	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer "+lr.Token)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Admin *AdminInfo `json:"admin"`
	}
	decodeBody(t, rec, &body)
	if body.Admin == nil || body.Admin.Email != "admin@example.com" {
		t.Errorf("admin = %+v, want admin@example.com", body.Admin)
	}
}

func TestProtectedEndpoints_InvalidToken(t *testing.T) {
	h := newAuthedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newAuthedHandler(t)

	rec := doRequest(t, h, http.MethodDelete, "/api/session", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}
}

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artpar/admingate/core/decorator"
	"github.com/artpar/admingate/core/registry"
	"github.com/artpar/admingate/ports"
)

// DefaultPerPage is the list page size when the client sends none.
const DefaultPerPage = 10

// MaxPerPage caps the list page size.
const MaxPerPage = 500

// -----------------------------------------------------------------------------
// Session
// -----------------------------------------------------------------------------

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     AdminInfo `json:"admin"`
}

// AdminInfo represents the authenticated admin.
type AdminInfo struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Login authenticates an admin and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.authenticator == nil || h.sessions == nil {
		writeError(w, http.StatusNotFound, "auth_disabled", "Authentication is not configured")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials", "Email and password are required")
		return
	}

	admin, ok := h.authenticator.Authenticate(req.Email, req.Password)
	if !ok {
		if h.metrics != nil {
			h.metrics.AuthFailures.Inc()
		}
		h.logger.Warn().Str("email", req.Email).Msg("login failed")
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.sessions.Issue(admin, h.sessionTTL)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue session token")
		writeError(w, http.StatusInternalServerError, "session_error", "Could not create session")
		return
	}

	expires := time.Now().Add(h.sessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info().Str("email", admin.Email).Msg("admin logged in")
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expires.UTC(),
		Admin:     AdminInfo{Email: admin.Email, Role: admin.Role},
	})
}

// Logout clears the session cookie. Tokens are stateless so the server
// keeps nothing to revoke.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// Pages
// -----------------------------------------------------------------------------

// PagesResponse is the bootstrap payload the front end loads first.
type PagesResponse struct {
	CompanyName string              `json:"companyName"`
	Logo        string              `json:"logo,omitempty"`
	RootPath    string              `json:"rootPath"`
	Sidebar     any                 `json:"sidebar"`
	Admin       *AdminInfo          `json:"admin,omitempty"`
	Datasources []DatasourceSummary `json:"datasources"`
}

// DatasourceSummary describes one connected database.
type DatasourceSummary struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon"`
	Resources int    `json:"resources"`
}

// Pages returns branding, navigation and datasource summaries.
func (h *Handler) Pages(w http.ResponseWriter, r *http.Request) {
	reg := h.registry()
	branding := reg.Branding()

	resp := PagesResponse{
		CompanyName: branding.CompanyName,
		Logo:        branding.Logo,
		RootPath:    branding.RootPath,
		Sidebar:     reg.Sidebar(),
		Datasources: datasourceSummaries(reg),
	}
	if admin := adminFrom(r.Context()); !admin.IsZero() {
		resp.Admin = &AdminInfo{Email: admin.Email, Role: admin.Role}
	}

	writeJSON(w, http.StatusOK, resp)
}

func datasourceSummaries(reg *registry.Registry) []DatasourceSummary {
	var out []DatasourceSummary
	index := make(map[string]int)
	for _, res := range reg.List() {
		raw := res.Raw()
		key := raw.DatabaseName()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DatasourceSummary{
				Name: raw.DatabaseName(),
				Type: raw.DatabaseType(),
				Icon: res.Parent().Icon,
			})
		}
		out[i].Resources++
	}
	return out
}

// -----------------------------------------------------------------------------
// Resources
// -----------------------------------------------------------------------------

// ListResources returns snapshots of every registered resource for the
// acting admin.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	reg := h.registry()

	snapshots, err := reg.JSON(adminFrom(r.Context()))
	if err != nil {
		h.writeDecoratorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"resources": snapshots})
}

// GetResource returns the snapshot of one resource.
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	res, ok := h.registry().Get(chi.URLParam(r, "resourceID"))
	if !ok {
		writeError(w, http.StatusNotFound, "resource_not_found", "No such resource")
		return
	}

	snapshot, err := res.JSON(adminFrom(r.Context()))
	if err != nil {
		h.writeDecoratorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// -----------------------------------------------------------------------------
// Records
// -----------------------------------------------------------------------------

// RecordsResponse is a page of records plus pagination metadata.
type RecordsResponse struct {
	Records []decorator.RecordJSON `json:"records"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"perPage"`
}

// ListRecords returns a page of records for the list view.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	res, ok := h.registry().Get(chi.URLParam(r, "resourceID"))
	if !ok {
		writeError(w, http.StatusNotFound, "resource_not_found", "No such resource")
		return
	}

	page := parseIntQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := parseIntQuery(r, "perPage", DefaultPerPage)
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	params := listParams(r, page, perPage)
	if params.SortBy != "" {
		prop, err := res.PropertyByKey(params.SortBy)
		if err != nil {
			h.writeDecoratorError(w, err)
			return
		}
		if !prop.IsSortable() {
			writeError(w, http.StatusBadRequest, "not_sortable", "Cannot sort by "+params.SortBy)
			return
		}
	}

	admin := adminFrom(r.Context())
	raw := res.Raw()

	listProps, err := res.ListProperties()
	if err != nil {
		h.writeDecoratorError(w, err)
		return
	}

	records, err := raw.List(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Str("resource", res.ID()).Msg("list records")
		writeError(w, http.StatusInternalServerError, "list_failed", "Could not list records")
		return
	}
	total, err := raw.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Str("resource", res.ID()).Msg("count records")
		writeError(w, http.StatusInternalServerError, "count_failed", "Could not count records")
		return
	}

	resp := RecordsResponse{
		Records: make([]decorator.RecordJSON, 0, len(records)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for _, record := range records {
		rj := res.RecordJSON(record, admin)
		rj.Params = restrictParams(rj.Params, listProps)
		resp.Records = append(resp.Records, rj)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetRecord returns one record for the show view.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	res, ok := h.registry().Get(chi.URLParam(r, "resourceID"))
	if !ok {
		writeError(w, http.StatusNotFound, "resource_not_found", "No such resource")
		return
	}

	record, err := res.Raw().Find(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "record_not_found", "No such record")
		return
	}

	writeJSON(w, http.StatusOK, res.RecordJSON(record, adminFrom(r.Context())))
}

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

// Health reports liveness and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// writeDecoratorError maps configuration errors to a 500 that points
// at the offending option path.
func (h *Handler) writeDecoratorError(w http.ResponseWriter, err error) {
	var confErr *decorator.ConfigurationError
	if errors.As(err, &confErr) {
		h.logger.Error().
			Str("resource", confErr.Resource).
			Str("path", confErr.Path).
			Msg("resource configuration error")
		writeError(w, http.StatusInternalServerError, "configuration_error", confErr.Error())
		return
	}
	h.logger.Error().Err(err).Msg("decorator error")
	writeError(w, http.StatusInternalServerError, "internal_error", "Internal error")
}

func listParams(r *http.Request, page, perPage int) (params ports.ListParams) {
	q := r.URL.Query()
	params.SortBy = q.Get("sortBy")
	params.Direction = q.Get("direction")
	params.Limit = perPage
	params.Offset = (page - 1) * perPage
	return params
}

// restrictParams keeps only the values shown in the list context.
func restrictParams(params map[string]any, props []*decorator.Property) map[string]any {
	out := make(map[string]any, len(props))
	for _, p := range props {
		if v, ok := params[p.Name()]; ok {
			out[p.Name()] = v
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func parseIntQuery(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

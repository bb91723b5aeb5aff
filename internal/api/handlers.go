package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/versionforge/pkg/buildinfo"
	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/httputil"
	"github.com/matzehuels/versionforge/pkg/migration"
	"github.com/matzehuels/versionforge/pkg/observability"
	"github.com/matzehuels/versionforge/pkg/validator"
)

// =============================================================================
// Request and response bodies
// =============================================================================

type componentRequest struct {
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	MinVersion string            `json:"min_version,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	DependsOn  []string          `json:"depends_on,omitempty"`
}

type componentResponse struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	MinVersion string   `json:"min_version"`
	DependsOn  []string `json:"depends_on"`
}

type dependencyRequest struct {
	Dependent  string `json:"dependent"`
	Dependency string `json:"dependency"`
}

type validateResponse struct {
	Valid       bool              `json:"valid"`
	Errors      []string          `json:"errors"`
	Issues      []validator.Issue `json:"issues"`
	Suggestions []string          `json:"suggestions"`
}

type planRequest struct {
	Targets map[string]string `json:"targets"`
}

type planResponse struct {
	Steps validator.Plan `json:"steps"`
}

type compatibleResponse struct {
	Component  string `json:"component"`
	Dependency string `json:"dependency"`
	Compatible bool   `json:"compatible"`
	Version    string `json:"version,omitempty"`
	Required   string `json:"required"`
}

type compatibilityRequest struct {
	Component   string `json:"component"`
	Version     string `json:"version"`
	With        string `json:"with"`
	WithVersion string `json:"with_version"`
}

type verifyResponse struct {
	compatibilityRequest
	Compatible bool `json:"compatible"`
}

type migrationRequest struct {
	Component       string   `json:"component"`
	From            string   `json:"from"`
	To              string   `json:"to"`
	BreakingChanges []string `json:"breaking_changes,omitempty"`
	NewFeatures     []string `json:"new_features,omitempty"`
	Deprecations    []string `json:"deprecations,omitempty"`
}

// =============================================================================
// Service
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, buildinfo.Current())
}

// =============================================================================
// Dependency validation
// =============================================================================

func (s *Server) handleRegisterComponent(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidateComponentName(req.Name); err != nil {
		s.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Version) == "" {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "version is required"))
		return
	}
	for _, dep := range req.DependsOn {
		if err := errors.ValidateComponentName(dep); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	info := component.Info{
		CurrentVersion: req.Version,
		MinimumVersion: req.MinVersion,
		Attributes:     req.Metadata,
	}

	s.mu.Lock()
	s.validator.RegisterComponent(req.Name, info)
	s.matrix.RegisterComponent(req.Name, info)
	for _, dep := range req.DependsOn {
		s.validator.RegisterDependency(req.Name, dep)
	}
	resp := componentResponse{
		Name:       req.Name,
		Version:    info.Version().String(),
		MinVersion: s.validator.EffectiveMinVersion(req.Name).String(),
		DependsOn:  nonNil(s.validator.Dependencies(req.Name)),
	}
	s.mu.Unlock()

	_ = httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRegisterDependency(w http.ResponseWriter, r *http.Request) {
	var req dependencyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	for _, name := range []string{req.Dependent, req.Dependency} {
		if err := errors.ValidateComponentName(name); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	s.mu.Lock()
	s.validator.RegisterDependency(req.Dependent, req.Dependency)
	s.mu.Unlock()

	_ = httputil.WriteJSON(w, http.StatusCreated, req)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	start := time.Now()
	res := s.validator.Validate()
	suggestions := s.validator.Suggestions()
	components := len(s.validator.Components())
	s.mu.RUnlock()

	observability.Engine().OnValidate(r.Context(), components, len(res.Issues), time.Since(start))
	_ = httputil.WriteJSON(w, http.StatusOK, validateResponse{
		Valid:       res.Valid,
		Errors:      res.Errors(),
		Issues:      res.Issues,
		Suggestions: nonNil(suggestions),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.RLock()
	start := time.Now()
	plan, err := s.validator.UpgradePlan(req.Targets)
	s.mu.RUnlock()

	observability.Engine().OnPlan(r.Context(), len(req.Targets), len(plan), time.Since(start), err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, planResponse{Steps: plan})
}

func (s *Server) handleFindCompatible(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	dependency := chi.URLParam(r, "dependency")

	s.mu.RLock()
	_, known := s.validator.Component(name)
	found, ok := s.validator.FindCompatibleVersion(name, dependency)
	required := s.validator.EffectiveMinVersion(name).String()
	s.mu.RUnlock()

	if !known {
		s.fail(w, r, errors.New(errors.ErrCodeComponentNotFound, "unknown component %q", name))
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, compatibleResponse{
		Component:  name,
		Dependency: dependency,
		Compatible: ok,
		Version:    found,
		Required:   required,
	})
}

// =============================================================================
// Compatibility matrix
// =============================================================================

func (s *Server) handleRegisterCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	s.matrix.RegisterCompatibility(req.Component, req.Version, req.With, req.WithVersion)
	var saveErr error
	if s.store != nil {
		saveErr = s.store.Save(r.Context(), s.matrixKey, s.matrix)
	}
	s.mu.Unlock()

	if saveErr != nil {
		s.logger.Warn("matrix not persisted", "key", s.matrixKey, "err", saveErr)
	}
	_ = httputil.WriteJSON(w, http.StatusCreated, req)
}

func (req compatibilityRequest) validate() error {
	for _, name := range []string{req.Component, req.With} {
		if err := errors.ValidateComponentName(name); err != nil {
			return err
		}
	}
	if req.Version == "" || req.WithVersion == "" {
		return errors.New(errors.ErrCodeInvalidInput, "version and with_version are required")
	}
	return nil
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := compatibilityRequest{
		Component:   q.Get("component"),
		Version:     q.Get("version"),
		With:        q.Get("with"),
		WithVersion: q.Get("with_version"),
	}
	if err := req.validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.RLock()
	ok := s.matrix.Verify(req.Component, req.Version, req.With, req.WithVersion)
	s.mu.RUnlock()

	observability.Engine().OnVerify(r.Context(), ok)
	_ = httputil.WriteJSON(w, http.StatusOK, verifyResponse{compatibilityRequest: req, Compatible: ok})
}

func (s *Server) handleCompatibleVersions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "component")
	v := chi.URLParam(r, "version")

	s.mu.RLock()
	result := s.matrix.CompatibleVersions(name, v)
	s.mu.RUnlock()

	_ = httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.matrix.Report()
	s.mu.RUnlock()

	_ = httputil.WriteJSON(w, http.StatusOK, report)
}

// =============================================================================
// Migration guides
// =============================================================================

func (s *Server) handleRegisterMigration(w http.ResponseWriter, r *http.Request) {
	var req migrationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidateComponentName(req.Component); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.From == "" || req.To == "" {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "from and to are required"))
		return
	}

	s.mu.Lock()
	s.guides.Register(req.Component, req.From, req.To, migration.Info{
		BreakingChanges: req.BreakingChanges,
		NewFeatures:     req.NewFeatures,
		Deprecations:    req.Deprecations,
	})
	s.mu.Unlock()

	_ = httputil.WriteJSON(w, http.StatusCreated, req)
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "component")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "query parameters from and to are required"))
		return
	}

	s.mu.RLock()
	guide := s.guides.Guide(name, from, to)
	s.mu.RUnlock()

	observability.Engine().OnGuide(r.Context(), string(guide.UpgradeType), string(guide.EstimatedEffort))
	_ = httputil.WriteJSON(w, http.StatusOK, guide)
}

// =============================================================================
// Helpers
// =============================================================================

// fail writes err and reports its code to the HTTP hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "route", route, "err", err)
	}
}

func notFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

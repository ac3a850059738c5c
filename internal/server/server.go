//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/console"
	"github.com/opsdeck/backoffice/internal/privacy"
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/selection"
	"github.com/opsdeck/backoffice/internal/view"
)

// OperatorRepo validates back-office operator credentials.
type OperatorRepo interface {
	ValidateOperator(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	console      *console.Console
	operators    OperatorRepo
	auditManager *AuditManager
	logger       *zap.Logger

	server  *http.Server
	baseCtx context.Context
}

func New(c *console.Console, operators OperatorRepo, auditManager *AuditManager, logger *zap.Logger) *Server {
	return &Server{
		console:      c,
		operators:    operators,
		auditManager: auditManager,
		logger:       logger,
	}
}

func (s *Server) Run(ctx context.Context, addr string) error {
	s.baseCtx = ctx
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.auditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("addr", addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.console.Shutdown()
	s.auditManager.Shutdown(ctx)

	s.logger.Info("server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	root := mux.NewRouter()
	root.Handle("/metrics", promhttp.Handler())

	api := root.PathPrefix("/").Subrouter()
	api.Use(s.basicAuthMiddleware, s.auditMiddleware)

	api.HandleFunc("/records/{domain}", s.handleListRecords).Methods(http.MethodGet)
	api.HandleFunc("/records/{domain}/activate", s.handleActivateDomain).Methods(http.MethodPost)
	api.HandleFunc("/records/{domain}/criteria", s.handleSetCriteria).Methods(http.MethodPut)
	api.HandleFunc("/records/{domain}/sort", s.handleSetSort).Methods(http.MethodPut)
	api.HandleFunc("/records/{domain}/page", s.handleSetPage).Methods(http.MethodPut)
	api.HandleFunc("/records/{domain}/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/records/{domain}/polling", s.handleSetPolling).Methods(http.MethodPut)
	api.HandleFunc("/records/{domain}/stats", s.handleStatistics).Methods(http.MethodGet)

	api.HandleFunc("/selection/toggle", s.handleToggleSelect).Methods(http.MethodPost)
	api.HandleFunc("/selection/all", s.handleSelectAllVisible).Methods(http.MethodPost)
	api.HandleFunc("/selection", s.handleGetSelection).Methods(http.MethodGet)
	api.HandleFunc("/selection", s.handleClearSelection).Methods(http.MethodDelete)
	api.HandleFunc("/bulk", s.handleBulkApply).Methods(http.MethodPost)

	api.HandleFunc("/privacy/{identity}/reveal", s.handleRequestReveal).Methods(http.MethodPost)
	api.HandleFunc("/privacy/{identity}/verify", s.handleVerify).Methods(http.MethodPost)
	api.HandleFunc("/privacy/{identity}/cancel", s.handleCancelVerification).Methods(http.MethodPost)
	api.HandleFunc("/privacy/{identity}/fields/{field}", s.handleToggleField).Methods(http.MethodPut)
	api.HandleFunc("/privacy/{identity}/fields/{field}", s.handleFieldVisibility).Methods(http.MethodGet)

	return root
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.operators.ValidateOperator(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func viewableDomain(r *http.Request) (records.Domain, bool) {
	domain := records.Domain(mux.Vars(r)["domain"])
	for _, d := range records.ViewableDomains {
		if domain == d {
			return domain, true
		}
	}
	return "", false
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	result := s.console.VisiblePage(domain)

	// Protected user fields leave the process masked unless the gate says
	// otherwise.
	if domain == records.DomainUser {
		gate := s.console.Gate()
		items := make([]records.Record, len(result.Items))
		for i, item := range result.Items {
			if user, ok := item.(records.User); ok {
				items[i] = privacy.RedactUser(gate, user)
			} else {
				items[i] = item
			}
		}
		result.Items = items
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleActivateDomain(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	if err := s.console.SwitchDomain(domain); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"active": string(domain)})
}

func (s *Server) handleSetCriteria(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	var criteria view.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.console.SetCriteria(domain, criteria)
	respondJSON(w, http.StatusOK, s.console.VisiblePage(domain))
}

func (s *Server) handleSetSort(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	var sortSpec view.Sort
	if err := json.NewDecoder(r.Body).Decode(&sortSpec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.console.SetSort(domain, sortSpec)
	respondJSON(w, http.StatusOK, s.console.VisiblePage(domain))
}

func (s *Server) handleSetPage(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	var pageRequest struct {
		Number int `json:"number"`
		Size   int `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&pageRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if pageRequest.Size > 0 {
		s.console.SetPageSize(domain, pageRequest.Size)
	}
	if pageRequest.Number > 0 {
		s.console.SetPage(domain, pageRequest.Number)
	}

	respondJSON(w, http.StatusOK, s.console.VisiblePage(domain))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	if err := s.console.Refresh(r.Context(), domain); err != nil {
		respondError(w, http.StatusBadGateway, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, s.console.VisiblePage(domain))
}

func (s *Server) handleSetPolling(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	var pollingRequest struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&pollingRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The polling loop outlives the request, so it runs on the server's
	// base context.
	s.console.SetPolling(s.baseCtx, domain, pollingRequest.Enabled)

	respondJSON(w, http.StatusOK, map[string]bool{
		"enabled": s.console.PollingEnabled(domain),
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	domain, ok := viewableDomain(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown domain")
		return
	}

	stats, err := s.console.Statistics(r.Context(), domain)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleToggleSelect(w http.ResponseWriter, r *http.Request) {
	var toggleRequest struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&toggleRequest); err != nil || toggleRequest.ID == "" {
		respondError(w, http.StatusBadRequest, "Missing record id")
		return
	}

	selected := s.console.ToggleSelect(toggleRequest.ID)
	respondJSON(w, http.StatusOK, map[string]bool{"selected": selected})
}

func (s *Server) handleSelectAllVisible(w http.ResponseWriter, r *http.Request) {
	ids := s.console.SelectAllVisible()
	respondJSON(w, http.StatusOK, map[string]interface{}{"selected": ids})
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"selected": s.console.SelectedIDs()})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.console.ClearSelection()
	respondJSON(w, http.StatusOK, map[string]interface{}{"selected": []string{}})
}

func (s *Server) handleBulkApply(w http.ResponseWriter, r *http.Request) {
	var bulkRequest struct {
		Action string           `json:"action"`
		Params selection.Params `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&bulkRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.console.BulkApply(r.Context(), selection.Action(bulkRequest.Action), bulkRequest.Params)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrNoAction),
			errors.Is(err, selection.ErrNoSelection),
			errors.Is(err, selection.ErrMissingParam):
			respondError(w, http.StatusBadRequest, "Error: "+err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Error processing bulk action: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func parseField(r *http.Request) (privacy.Field, bool) {
	return privacy.ParseField(mux.Vars(r)["field"])
}

func (s *Server) handleRequestReveal(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	var revealRequest struct {
		Field string `json:"field"`
	}
	if err := json.NewDecoder(r.Body).Decode(&revealRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	field, ok := privacy.ParseField(revealRequest.Field)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown field")
		return
	}

	s.console.Gate().RequestReveal(identity, field)
	respondJSON(w, http.StatusOK, map[string]string{
		"state": string(s.console.Gate().State(identity)),
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	var creds privacy.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.console.Gate().Submit(r.Context(), identity, creds); err != nil {
		switch {
		case errors.Is(err, privacy.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, "Error: "+err.Error())
		case errors.Is(err, privacy.ErrNoPendingVerification):
			respondError(w, http.StatusConflict, "Error: "+err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"state": string(s.console.Gate().State(identity)),
	})
}

func (s *Server) handleCancelVerification(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]
	s.console.Gate().Cancel(identity)
	respondJSON(w, http.StatusOK, map[string]string{
		"state": string(s.console.Gate().State(identity)),
	})
}

func (s *Server) handleToggleField(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]
	field, ok := parseField(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown field")
		return
	}

	visible := s.console.Gate().ToggleField(identity, field)
	respondJSON(w, http.StatusOK, map[string]bool{"visible": visible})
}

func (s *Server) handleFieldVisibility(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]
	field, ok := parseField(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown field")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{
		"visible": s.console.Gate().IsFieldVisible(identity, field),
	})
}

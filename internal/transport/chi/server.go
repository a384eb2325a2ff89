package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
	answeruc "github.com/shoplight/shoplight/internal/usecase/answer"
	healthuc "github.com/shoplight/shoplight/internal/usecase/health"
)

// Answerer runs the retrieval-augmented answer pipeline.
type Answerer interface {
	Answer(ctx context.Context, req *answeruc.Request) (*answeruc.Response, error)
}

// Cataloger manages the durable product index.
type Cataloger interface {
	Insert(ctx context.Context, platform, vendor string, records []domain.IndexRecord) error
	Query(ctx context.Context, platform, vendor, query string) ([]domain.IndexHit, error)
	Update(ctx context.Context, platform, vendor string, record domain.IndexRecord) error
	Delete(ctx context.Context, platform, vendor, id string) error
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server is the HTTP API: the answer pipeline plus the durable index
// endpoints. Paths keep the original chat surface contract.
type Server struct {
	answers  Answerer
	catalog  Cataloger
	health   HealthChecker
	validate *validator.Validate
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(answers Answerer, catalog Cataloger, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{
		answers:  answers,
		catalog:  catalog,
		health:   health,
		validate: newValidator(),
		logger:   logger,
	}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/ai-response", s.handleAnswer)
	r.Post("/api/pinecone-insert", s.handleInsert)
	r.Post("/api/pinecone-get-data", s.handleGetData)
	r.Post("/api/pinecone-update", s.handleUpdate)
	r.Post("/api/pinecone-delete", s.handleDelete)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleAnswer handles POST /api/ai-response.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"Invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, validationMessages(err))
		return
	}

	res, err := s.answers.Answer(r.Context(), &answeruc.Request{
		Question: req.Question,
		Products: req.Products,
		Files:    req.Files,
		Links:    req.Links,
		QAPairs:  req.QAData,
		Settings: req.Settings,
	})
	if err != nil {
		s.logger.Error("Answer pipeline failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, pipelineErrorResponse{
			Message: "Agent failed to process embeddings",
			Error:   err.Error(),
		})
		return
	}

	products := res.Products
	if products == nil {
		products = []domain.ExtractedProduct{}
	}
	writeJSON(w, http.StatusOK, answerResponse{Response: res.Answer, Products: products})
}

// handleInsert handles POST /api/pinecone-insert.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"Invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, validationMessages(err))
		return
	}

	records := make([]domain.IndexRecord, len(req.Products))
	for i, p := range req.Products {
		records[i] = p.record()
	}

	if err := s.catalog.Insert(r.Context(), req.Platform, req.Vendor, records); err != nil {
		s.handleIndexError(w, "Failed to store products", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Products successfully stored in Pinecone"})
}

// handleGetData handles POST /api/pinecone-get-data.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	var req getDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"Invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, validationMessages(err))
		return
	}

	hits, err := s.catalog.Query(r.Context(), req.Platform, req.Vendor, req.Query)
	if err != nil {
		s.handleIndexError(w, "Failed to query products", err)
		return
	}
	if hits == nil {
		hits = []domain.IndexHit{}
	}

	writeJSON(w, http.StatusOK, getDataResponse{Results: hits})
}

// handleUpdate handles POST /api/pinecone-update.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"Invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, validationMessages(err))
		return
	}

	if err := s.catalog.Update(r.Context(), req.Platform, req.Vendor, req.Product.record()); err != nil {
		s.handleIndexError(w, "Failed to update product", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Product successfully updated"})
}

// handleDelete handles POST /api/pinecone-delete. Deleting an unknown
// id completes as a no-op.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"Invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, validationMessages(err))
		return
	}

	if err := s.catalog.Delete(r.Context(), req.Platform, req.Vendor, req.ID); err != nil {
		s.handleIndexError(w, "Failed to delete product", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Product successfully deleted"})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleIndexError surfaces a durable index failure: a generic message
// plus the underlying error text.
func (s *Server) handleIndexError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, pipelineErrorResponse{
		Message: msg,
		Error:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidationError(w http.ResponseWriter, msgs []string) {
	writeJSON(w, http.StatusBadRequest, validationErrorResponse{Error: msgs})
}

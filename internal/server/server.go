package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortizer/internal/config"
	"github.com/iwvelando/loan-amortizer/internal/store"
	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/output"
	"github.com/iwvelando/loan-amortizer/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const plansPath = "/api/plans/"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	engine        *amortization.Engine
	plans         store.PlanStore
	metrics       *metrics
}

// NewHandler constructs the HTTP handler that serves the amortization API.
// A nil plan store keeps saved plans in memory.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, plans store.PlanStore) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if plans == nil {
		plans = store.NewMemoryStore(logger)
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		engine:        amortization.NewEngine(logger),
		plans:         plans,
		metrics:       newMetrics(),
	}

	mux := http.NewServeMux()

	// Schedule generation from a JSON loan definition
	mux.HandleFunc("/api/schedule", h.instrument("schedule", h.handleSchedule))

	// Recalculation after a manual payment edit
	mux.HandleFunc("/api/schedule/edit", h.instrument("schedule_edit", h.handleScheduleEdit))

	// Schedule generation from an uploaded loan file
	mux.HandleFunc("/api/schedule/upload", h.instrument("schedule_upload", h.handleScheduleUpload))

	// Loan file serialization for CLI use
	mux.HandleFunc("/api/export", h.instrument("export", h.handleExport))

	// Saved plans
	mux.HandleFunc("/api/plans", h.instrument("plans", h.handlePlans))
	mux.HandleFunc(plansPath, h.instrument("plan", h.handlePlan))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.Handle("/metrics", h.metrics.handler())

	return mux
}

type loanRequest struct {
	Principal            decimal.Decimal `json:"principal"`
	AnnualRatePercent    decimal.Decimal `json:"annualRatePercent"`
	TermLength           int             `json:"termLength"`
	TermUnit             string          `json:"termUnit"`
	StartDate            string          `json:"startDate"`
	CompoundingFrequency string          `json:"compoundingFrequency"`
	PaymentFrequency     string          `json:"paymentFrequency"`
}

func (l loanRequest) toLoanInput() (amortization.LoanInput, error) {
	return config.BuildLoanInput(l.Principal, l.AnnualRatePercent, l.TermLength,
		l.TermUnit, l.StartDate, l.CompoundingFrequency, l.PaymentFrequency)
}

type editRequest struct {
	PaymentNumber int             `json:"paymentNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

type scheduleRequest struct {
	Loan          loanRequest                 `json:"loan"`
	ExtraPayments []amortization.ExtraPayment `json:"extraPayments"`
	Edit          *editRequest                `json:"edit,omitempty"`
	Page          int                         `json:"page,omitempty"`
	PageSize      int                         `json:"pageSize,omitempty"`
}

type pageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
}

type scheduleResponse struct {
	Rows     []amortization.PaymentEntry       `json:"rows"`
	Page     *pageInfo                         `json:"page,omitempty"`
	Summary  amortization.PaymentSummary       `json:"summary"`
	Savings  amortization.Savings              `json:"savings"`
	Yearly   []amortization.YearlySummaryEntry `json:"yearly"`
	Balances []output.BalancePoint             `json:"balances"`
	CSV      string                            `json:"csv"`
	Warnings []string                          `json:"warnings,omitempty"`
	Duration string                            `json:"duration"`
}

// scheduleRun is everything needed to generate and render one schedule.
type scheduleRun struct {
	loan     amortization.LoanInput
	extras   []amortization.ExtraPayment
	edit     *editRequest
	page     int
	pageSize int
	warnings []string
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req scheduleRequest
	if !h.decodeRequest(w, r, &req, "server.handleSchedule") {
		return
	}
	h.runScheduleRequest(w, req, start, "server.handleSchedule")
}

func (h *handler) handleScheduleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req scheduleRequest
	if !h.decodeRequest(w, r, &req, "server.handleScheduleEdit") {
		return
	}
	if req.Edit == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing edit", "server.handleScheduleEdit")
		return
	}
	h.runScheduleRequest(w, req, start, "server.handleScheduleEdit")
}

func (h *handler) handleScheduleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheduleUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing loan file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read loan file: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	loan, err := cfg.ToLoanInput()
	if err != nil {
		h.respondError(w, err, op)
		return
	}

	run := scheduleRun{
		loan:     loan,
		extras:   cfg.ToExtraPayments(),
		warnings: cfg.ValidateConfiguration(),
	}
	if cfg.Edit != nil {
		run.edit = &editRequest{PaymentNumber: cfg.Edit.PaymentNumber, Amount: cfg.Edit.EditAmount()}
	}
	h.runSchedule(w, run, start, op)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req scheduleRequest
	if !h.decodeRequest(w, r, &req, op) {
		return
	}
	loan, err := req.Loan.toLoanInput()
	if err != nil {
		h.respondError(w, err, op)
		return
	}

	conf := config.FromLoanInput(loan, req.ExtraPayments)
	if req.Edit != nil {
		conf.Edit = &config.EditConfig{
			PaymentNumber: req.Edit.PaymentNumber,
			Amount:        req.Edit.Amount.InexactFloat64(),
		}
	}

	yamlBytes, err := yaml.Marshal(conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode loan file: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handlePlans(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlans"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req scheduleRequest
	if !h.decodeRequest(w, r, &req, op) {
		return
	}
	loan, err := req.Loan.toLoanInput()
	if err != nil {
		h.respondError(w, err, op)
		return
	}
	schedule, err := h.generate(loan, req.ExtraPayments, req.Edit)
	if err != nil {
		h.respondError(w, err, op)
		return
	}

	plan := store.Plan{
		Loan:          loan,
		ExtraPayments: req.ExtraPayments,
		Schedule:      schedule,
	}
	if req.Edit != nil {
		plan.Edit = &store.PlanEdit{PaymentNumber: req.Edit.PaymentNumber, Amount: req.Edit.Amount}
	}
	id, err := h.plans.Save(r.Context(), plan)
	if err != nil {
		h.respondError(w, err, op)
		return
	}

	h.logger.Info("plan saved",
		zap.String("op", op),
		zap.String("id", id),
		zap.Int("payments", len(schedule)),
	)
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlan"
	id := strings.TrimPrefix(r.URL.Path, plansPath)
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !store.ValidID(id) {
		h.respondError(w, store.ErrPlanNotFound, op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		plan, err := h.plans.Load(r.Context(), id)
		if err != nil {
			h.respondError(w, err, op)
			return
		}
		h.writeJSON(w, http.StatusOK, plan)
	case http.MethodDelete:
		if err := h.plans.Delete(r.Context(), id); err != nil {
			h.respondError(w, err, op)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runScheduleRequest(w http.ResponseWriter, req scheduleRequest, start time.Time, op string) {
	loan, err := req.Loan.toLoanInput()
	if err != nil {
		h.respondError(w, err, op)
		return
	}
	h.runSchedule(w, scheduleRun{
		loan:     loan,
		extras:   req.ExtraPayments,
		edit:     req.Edit,
		page:     req.Page,
		pageSize: req.PageSize,
	}, start, op)
}

func (h *handler) runSchedule(w http.ResponseWriter, run scheduleRun, start time.Time, op string) {
	schedule, err := h.generate(run.loan, run.extras, run.edit)
	if err != nil {
		h.respondError(w, err, op)
		return
	}

	savings, err := h.engine.CompareToBaseline(run.loan, schedule)
	if err != nil {
		h.respondError(w, err, op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.WriteCSV(&csvBuf, schedule); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	summary := amortization.Summarize(run.loan, schedule)
	warnings := run.warnings
	if warnings == nil {
		warnings = planWarnings(summary, run.extras, run.edit)
	}

	response := scheduleResponse{
		Rows:     schedule,
		Summary:  summary,
		Savings:  savings,
		Yearly:   amortization.ToYearlyView(schedule),
		Balances: output.BalanceSeries(schedule),
		CSV:      csvBuf.String(),
		Warnings: warnings,
	}
	if run.page > 0 {
		page := output.Paginate(schedule, run.page, run.pageSize)
		response.Rows = page.Entries
		response.Page = &pageInfo{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
			TotalRows:  page.TotalRows,
		}
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.Int("payments", len(schedule)),
		zap.Bool("edited", run.edit != nil),
		zap.Int("extra_payments", len(run.extras)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) generate(loan amortization.LoanInput, extras []amortization.ExtraPayment, edit *editRequest) ([]amortization.PaymentEntry, error) {
	if edit != nil {
		schedule, err := h.engine.RecalculateFromEdit(loan, extras, edit.PaymentNumber, edit.Amount)
		if err == nil {
			h.metrics.schedules.WithLabelValues("edit").Inc()
		}
		return schedule, err
	}
	schedule, err := h.engine.BuildSchedule(loan, extras)
	if err == nil {
		h.metrics.schedules.WithLabelValues("build").Inc()
	}
	return schedule, err
}

// planWarnings flags extra payments and edits that are accepted but probably
// not what the user meant.
func planWarnings(summary amortization.PaymentSummary, extras []amortization.ExtraPayment, edit *editRequest) []string {
	validator := &validation.PlanValidator{
		TotalPayments:    summary.NominalPayments,
		ScheduledPayment: summary.ScheduledPayment.InexactFloat64(),
	}
	for i, extra := range extras {
		validator.ExtraPayments = append(validator.ExtraPayments, validation.ExtraPaymentConfig{
			Name:          fmt.Sprintf("extraPayments[%d]", i),
			PaymentNumber: extra.PaymentNumber,
			Recurring:     extra.Recurring,
		})
	}
	if edit != nil {
		validator.Edit = &validation.EditConfig{
			PaymentNumber: edit.PaymentNumber,
			Amount:        edit.Amount.InexactFloat64(),
		}
	}
	return validator.ValidateAll()
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

// respondError maps engine and store errors onto HTTP statuses.
func (h *handler) respondError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, amortization.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrPlanNotFound):
		status = http.StatusNotFound
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("amortization request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

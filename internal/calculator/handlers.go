package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves one calculator Session over HTTP. It plays the input
// adapter (keys, buttons) and renderer (display, history) roles.
type Handler struct {
	session *Session
}

func NewHandler(session *Session) *Handler {
	return &Handler{session: session}
}

// ---------------------------------------------------------------------------
// Handlers: input
// ---------------------------------------------------------------------------

// Key handles POST /calculator/keys
func (h *Handler) Key(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.key")
	defer span.End()

	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "key", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.key", req.Key))

	action, ok := keypad.FromKey(req.Key)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "key", "unsupported key", fmt.Errorf("key %q", req.Key), http.StatusBadRequest, w)
		return
	}

	resp := h.dispatch(ctx, span, logger, action)
	resp.PreventDefault = keypad.PreventsDefault(req.Key)
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Button handles POST /calculator/buttons/{button}
func (h *Handler) Button(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	name := chi.URLParam(r, "button")

	ctx, span := tracer.Start(ctx, "calculator.button",
		trace.WithAttributes(attribute.String("calculator.button", name)),
	)
	defer span.End()

	action, ok := keypad.FromButton(name)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "button", "unsupported button", fmt.Errorf("button %q", name), http.StatusBadRequest, w)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, h.dispatch(ctx, span, logger, action))
}

// dispatch runs one action through the session and records its telemetry.
func (h *Handler) dispatch(ctx context.Context, span trace.Span, logger *zap.Logger, action engine.Action) DisplayResponse {
	requestID := observability.RequestIDFromContext(ctx)

	span.SetAttributes(
		attribute.String("calculator.action", action.Name()),
		attribute.String("request.id", requestID),
	)

	start := time.Now()
	out := h.session.Dispatch(ctx, action)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("action", action.Name()))
	actionsCounter.Add(ctx, 1, attrs)
	actionsHistogram.Record(ctx, elapsed, attrs)

	if c := out.Calculation; c != nil {
		opAttrs := metric.WithAttributes(attribute.String("operation", c.Operator.String()))
		opsCounter.Add(ctx, 1, opAttrs)
		resultGauge.Record(ctx, c.Result, opAttrs)
		if c.Operator == engine.Divide && c.Right == 0 {
			divZeroCounter.Add(ctx, 1)
			span.AddEvent("division_by_zero")
		}

		span.AddEvent("computation.complete", trace.WithAttributes(
			attribute.String("expression", c.Expression()),
			attribute.Float64("result", c.Result),
		))

		logger.Info("calculation completed",
			zap.String("operation", c.Operator.String()),
			zap.Float64("a", c.Left),
			zap.Float64("b", c.Right),
			zap.Float64("result", c.Result),
			zap.String("request_id", requestID),
		)
	}

	span.SetAttributes(attribute.String("calculator.display", out.Display.Value))
	span.SetStatus(codes.Ok, "")

	logger.Debug("action applied",
		zap.String("action", action.Name()),
		zap.String("value", out.Display.Value),
		zap.String("equation", out.Display.Equation),
		zap.Float64("duration_ms", elapsed),
	)

	return DisplayResponse{
		Value:    out.Display.Value,
		Equation: out.Display.Equation,
		Recorded: out.Entry,
	}
}

// ---------------------------------------------------------------------------
// Handlers: display and history
// ---------------------------------------------------------------------------

// Display handles GET /calculator/display
func (h *Handler) Display(w http.ResponseWriter, r *http.Request) {
	d := h.session.Display()
	handlers.WriteJSON(w, http.StatusOK, DisplayResponse{Value: d.Value, Equation: d.Equation})
}

// History handles GET /calculator/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, historyResponse(h.session.History()))
}

// TogglePanel handles POST /calculator/history/toggle
func (h *Handler) TogglePanel(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, historyResponse(h.session.TogglePanel()))
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.history.clear")
	defer span.End()

	if err := h.session.ClearHistory(ctx); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "clear_history", "failed to clear history", err, http.StatusInternalServerError, w)
		return
	}

	logger.Info("history cleared", zap.String("request_id", observability.RequestIDFromContext(ctx)))
	span.SetStatus(codes.Ok, "")
	w.WriteHeader(http.StatusNoContent)
}

// UseEntry handles POST /calculator/history/{index}/use
func (h *Handler) UseEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.history.use")
	defer span.End()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "use_entry", "invalid history index", err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.Int("history.index", index))

	d, err := h.session.UseEntry(index)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrEntryNotFound) {
			status = http.StatusNotFound
		}
		observability.RecordError(ctx, span, logger, errorCounter, "use_entry", err.Error(), err, status, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, DisplayResponse{Value: d.Value, Equation: d.Equation})
}

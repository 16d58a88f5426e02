package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"vapredict/autopsy"
	"vapredict/logger"
	"vapredict/monitoring"
)

const (
	metricPredictions       = "predictions_total"
	metricPredictionSeconds = "prediction_seconds"
)

// Handlers 预测服务的HTTP处理器
type Handlers struct {
	predictor *autopsy.Predictor
	metrics   *monitoring.MetricsCollector
	logger    *zap.Logger
	openapi   []byte
}

func NewHandlers(predictor *autopsy.Predictor, metrics *monitoring.MetricsCollector, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewMetricsCollector()
	}
	metrics.Describe(metricPredictions, "Prediction requests by outcome")
	metrics.Describe(metricPredictionSeconds, "Time spent in model inference")
	doc, err := json.Marshal(OpenAPISpec())
	if err != nil {
		log.Error("failed to render openapi document", zap.Error(err))
	}
	return &Handlers{predictor: predictor, metrics: metrics, logger: log, openapi: doc}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/model", h.handleModel)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
	mux.HandleFunc("GET /openapi.json", h.handleOpenAPI)
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeDetail(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	data, err := autopsy.DecodeHealthData(body)
	if err != nil {
		var reqErr *autopsy.RequestError
		if errors.As(err, &reqErr) {
			log.Info("rejected health data", zap.Error(err))
			h.countPrediction("invalid")
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": reqErr.Fields})
			return
		}
		h.countPrediction("invalid")
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	start := time.Now()
	result, err := h.predictor.Predict(r.Context(), data)
	if errors.Is(err, autopsy.ErrModelUnavailable) {
		h.countPrediction("model_unavailable")
		writeDetail(w, http.StatusInternalServerError, autopsy.Detail(err))
		return
	}
	h.metrics.Observe(metricPredictionSeconds, time.Since(start).Seconds(), nil)
	if err != nil {
		h.countPrediction("error")
		writeDetail(w, http.StatusInternalServerError, autopsy.Detail(err))
		return
	}
	if result.Conclusion == autopsy.PositiveConclusion {
		h.countPrediction("positive")
	} else {
		h.countPrediction("negative")
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) countPrediction(outcome string) {
	h.metrics.IncrCounter(metricPredictions, 1, map[string]string{"outcome": outcome})
}

func (h *Handlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	io.WriteString(w, h.metrics.ExportPrometheus())
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"model_loaded": h.predictor.Ready(),
	})
}

func (h *Handlers) handleModel(w http.ResponseWriter, r *http.Request) {
	if !h.predictor.Ready() {
		writeDetail(w, http.StatusServiceUnavailable, autopsy.Detail(autopsy.ErrModelUnavailable))
		return
	}
	columns := h.predictor.ExpectedColumns()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expected_columns": columns,
		"column_count":     len(columns),
	})
}

func (h *Handlers) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if h.openapi == nil {
		writeDetail(w, http.StatusInternalServerError, "openapi document unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.openapi)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

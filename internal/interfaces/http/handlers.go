package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/internal/domain/qsar"
	"github.com/molscreen/molscreen/internal/infrastructure/metrics"
	"github.com/molscreen/molscreen/internal/infrastructure/modelstore"
	"github.com/molscreen/molscreen/pkg/errors"
)

type handler struct {
	service screening.Service
	store   *modelstore.Store
	metrics *metrics.Metrics
}

// errorBody is the JSON error envelope returned by every endpoint.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps an application error to its HTTP status and envelope.
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	var body errorBody
	body.Error.Code = code.String()
	body.Error.Message = err.Error()
	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), body)
}

func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		writeError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────────────────────────────────────

func (h *handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyz reports 503 until a trained model is loaded, since the prediction
// endpoints cannot serve without one.
func (h *handler) readyz(c *gin.Context) {
	if h.store != nil {
		if _, err := h.store.Predictor(); err == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready", "model_loaded": true})
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "model_loaded": false})
}

// ─────────────────────────────────────────────────────────────────────────────
// Screening
// ─────────────────────────────────────────────────────────────────────────────

type screenRequest struct {
	SMILES         string `json:"smiles" binding:"required"`
	Name           string `json:"name"`
	SkipSolubility bool   `json:"skip_solubility"`
}

func (h *handler) screen(c *gin.Context) {
	var req screenRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.service.Screen(c.Request.Context(), &screening.ScreenInput{
		SMILES:         req.SMILES,
		Name:           req.Name,
		SkipSolubility: req.SkipSolubility,
	})
	if h.metrics != nil {
		h.metrics.ObserveScreening(err)
		if errors.IsCode(err, errors.CodeChemParseFailed) {
			h.metrics.ParseFailuresTotal.Inc()
		}
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type batchMolecule struct {
	SMILES string `json:"smiles" binding:"required"`
	Name   string `json:"name"`
}

type batchRequest struct {
	Molecules      []batchMolecule `json:"molecules" binding:"required"`
	SkipSolubility bool            `json:"skip_solubility"`
}

func (h *handler) screenBatch(c *gin.Context) {
	var req batchRequest
	if !bindJSON(c, &req) {
		return
	}
	entries := make([]screening.BatchEntry, len(req.Molecules))
	for i, m := range req.Molecules {
		entries[i] = screening.BatchEntry{Name: m.Name, SMILES: m.SMILES}
	}
	result, err := h.service.ScreenBatch(c.Request.Context(), &screening.BatchInput{
		Entries:        entries,
		SkipSolubility: req.SkipSolubility,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.BatchRowsTotal.WithLabelValues("ok").Add(float64(len(result.Reports)))
		h.metrics.BatchRowsTotal.WithLabelValues("skipped").Add(float64(len(result.Skipped)))
	}
	c.JSON(http.StatusOK, result)
}

// ─────────────────────────────────────────────────────────────────────────────
// Prediction
// ─────────────────────────────────────────────────────────────────────────────

type predictRequest struct {
	SMILES string `json:"smiles" binding:"required"`
}

type predictResponse struct {
	SMILES     string          `json:"smiles"`
	Prediction qsar.Prediction `json:"prediction"`
}

// predict returns just the solubility prediction, without the full
// drug-likeness report.
func (h *handler) predict(c *gin.Context) {
	var req predictRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.store.Predictor()
	if err != nil {
		writeError(c, err)
		return
	}
	mol, err := chem.ParseSMILES(req.SMILES)
	if err != nil {
		if h.metrics != nil {
			h.metrics.ParseFailuresTotal.Inc()
		}
		writeError(c, err)
		return
	}
	pred, err := p.PredictMolecule(mol)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObservePrediction(pred.LogS)
	}
	c.JSON(http.StatusOK, predictResponse{SMILES: req.SMILES, Prediction: pred})
}

// ─────────────────────────────────────────────────────────────────────────────
// Similarity
// ─────────────────────────────────────────────────────────────────────────────

type similarRequest struct {
	Query      string          `json:"query" binding:"required"`
	Candidates []batchMolecule `json:"candidates" binding:"required"`
	TopK       int             `json:"top_k"`
}

func (h *handler) similar(c *gin.Context) {
	var req similarRequest
	if !bindJSON(c, &req) {
		return
	}
	candidates := make([]chem.Candidate, len(req.Candidates))
	for i, m := range req.Candidates {
		candidates[i] = chem.Candidate{Name: m.Name, SMILES: m.SMILES}
	}
	result, err := h.service.Similar(c.Request.Context(), &screening.SimilarInput{
		QuerySMILES: req.Query,
		Candidates:  candidates,
		TopK:        req.TopK,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ─────────────────────────────────────────────────────────────────────────────
// Model introspection
// ─────────────────────────────────────────────────────────────────────────────

type modelInfoResponse struct {
	FormatVersion int                  `json:"format_version"`
	CreatedAt     string               `json:"created_at"`
	NumTrees      int                  `json:"num_trees"`
	FeatureNames  []string             `json:"feature_names"`
	Hyperparams   qsar.Hyperparams     `json:"hyperparams"`
	Metrics       qsar.TrainingMetrics `json:"metrics"`
}

func (h *handler) modelInfo(c *gin.Context) {
	p, err := h.store.Predictor()
	if err != nil {
		writeError(c, err)
		return
	}
	m := p.Model()
	c.JSON(http.StatusOK, modelInfoResponse{
		FormatVersion: m.FormatVersion,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
		NumTrees:      len(m.Forest.Trees),
		FeatureNames:  m.FeatureNames,
		Hyperparams:   m.Hyperparams,
		Metrics:       m.Metrics,
	})
}

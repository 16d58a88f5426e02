package autopsy

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"vapredict/logger"
	"vapredict/ml"
)

type Result struct {
	Conclusion  string  `json:"conclusion"`
	Explanation string  `json:"explanation"`
	Probability float64 `json:"probability"`
}

// Predictor holds the process-wide classifier and its expected columns. Both
// are set once at construction and only read afterwards, so a Predictor is
// safe for concurrent use.
type Predictor struct {
	model    ml.Classifier
	expected []string
	logger   *zap.Logger
	cache    *lru.Cache[HealthData, Result]
}

type Option func(*Predictor)

// WithCache keeps the results of the last size distinct records. Sizes below
// one disable the cache.
func WithCache(size int) Option {
	return func(p *Predictor) {
		if size < 1 {
			return
		}
		cache, err := lru.New[HealthData, Result](size)
		if err != nil {
			p.logger.Warn("result cache disabled", zap.Int("size", size), zap.Error(err))
			return
		}
		p.cache = cache
	}
}

// NewPredictor wraps an already loaded classifier. A nil model yields a
// predictor that answers every request with ErrModelUnavailable.
func NewPredictor(model ml.Classifier, expected []string, log *zap.Logger, opts ...Option) *Predictor {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Predictor{
		model:    model,
		expected: append([]string(nil), expected...),
		logger:   log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadPredictor loads the ensemble at path. It never fails: load errors are
// logged and surface later as ErrModelUnavailable on every prediction.
func LoadPredictor(path string, log *zap.Logger, opts ...Option) *Predictor {
	if log == nil {
		log = zap.NewNop()
	}
	model, expected, err := ml.LoadVotingModel(path)
	if err != nil {
		log.Error("error loading model", zap.String("path", path), zap.Error(err))
		return NewPredictor(nil, nil, log, opts...)
	}
	log.Info("model loaded",
		zap.String("path", path),
		zap.String("voting", string(model.Voting())),
		zap.Int("estimators", len(model.Estimators())),
		zap.Int("columns", len(expected)))
	return NewPredictor(model, expected, log, opts...)
}

func (p *Predictor) Ready() bool {
	return p.model != nil
}

func (p *Predictor) ExpectedColumns() []string {
	return append([]string(nil), p.expected...)
}

// Predict infers whether heart disease caused the death described by data.
func (p *Predictor) Predict(ctx context.Context, data HealthData) (result *Result, err error) {
	if p.model == nil {
		return nil, ErrModelUnavailable
	}
	log := logger.FromContext(ctx, p.logger)

	if p.cache != nil {
		if cached, ok := p.cache.Get(data); ok {
			log.Debug("prediction served from cache")
			return &cached, nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PredictionError{Err: fmt.Errorf("%v", r)}
			log.Error("error in prediction", zap.Error(err))
			result = nil
		}
	}()

	encoded, err := ml.GetDummies(data.Columns())
	if err != nil {
		return nil, p.fail(log, err)
	}
	row := ml.Align(encoded, p.expected)
	log.Debug("received data",
		zap.Strings("encoded_columns", encoded.Names),
		zap.Float64s("row", row))

	label, err := p.model.Predict(row)
	if err != nil {
		return nil, p.fail(log, err)
	}
	proba, err := p.model.PredictProba(row)
	if err != nil {
		return nil, p.fail(log, err)
	}
	if len(proba) < 2 {
		return nil, p.fail(log, fmt.Errorf("index 1 is out of bounds for probabilities of size %d", len(proba)))
	}

	res := Explain(label, proba[1])
	if p.cache != nil {
		p.cache.Add(data, res)
	}
	log.Info("prediction complete", zap.Int("label", label), zap.Float64("probability", res.Probability))
	return &res, nil
}

func (p *Predictor) fail(log *zap.Logger, err error) error {
	log.Error("error in prediction", zap.Error(err))
	return &PredictionError{Err: err}
}

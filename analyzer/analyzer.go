// Package analyzer sequences the per-request pipeline: detect →
// translate in → classify → resolve severity → generate roadmap →
// translate back → recommend. All collaborators arrive via the
// constructor so tests can swap in fixed-response fakes.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sentiment-insight/config"
	"sentiment-insight/models"
	"sentiment-insight/oracles"
	"sentiment-insight/roadmap"
	"sentiment-insight/severity"
)

// ValidationError marks client-caused failures so handlers can answer
// with a 400 instead of a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Analyzer runs the full pipeline for one or many texts.
type Analyzer struct {
	cfg      *config.Config
	resolver severity.Resolver

	detector   oracles.Detector
	translator oracles.Translator
	classifier oracles.Classifier
	distress   oracles.DistressScorer
	searcher   oracles.VideoSearcher

	log *zap.Logger
}

// New wires an analyzer. distress may be nil when the strategy does
// not use the binary classifier; searcher may be a disabled searcher.
func New(
	cfg *config.Config,
	resolver severity.Resolver,
	detector oracles.Detector,
	translator oracles.Translator,
	classifier oracles.Classifier,
	distress oracles.DistressScorer,
	searcher oracles.VideoSearcher,
	log *zap.Logger,
) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		cfg:        cfg,
		resolver:   resolver,
		detector:   detector,
		translator: translator,
		classifier: classifier,
		distress:   distress,
		searcher:   searcher,
		log:        log,
	}
}

// Analyze processes a single text end to end.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*models.AnalysisResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErrorf("text must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Oracles.TimeoutDuration())
	defer cancel()

	lang := a.detectLanguage(ctx, text)

	working, err := a.translator.Translate(ctx, text, lang, config.WorkingLanguage)
	if err != nil {
		return nil, fmt.Errorf("translate to working language: %w", err)
	}

	sentiment, err := a.classifier.Classify(ctx, working, severity.Labels)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	sig := severity.Signal{
		Sentiment:    sentiment,
		Text:         working,
		NegativeProb: a.negativeProb(ctx, working),
	}
	tier := a.resolver.Resolve(sig)

	steps := roadmap.Generate(tier)
	for i := range steps {
		translated, err := a.translator.Translate(ctx, steps[i].Text, config.WorkingLanguage, lang)
		if err != nil {
			return nil, fmt.Errorf("translate roadmap step: %w", err)
		}
		steps[i].Text = translated
	}

	top, _ := sentiment.Top()

	return &models.AnalysisResponse{
		Text:            text,
		Sentiment:       top.Label,
		Confidence:      round3(top.Score),
		Severity:        tier.String(),
		Roadmap:         steps,
		Language:        lang,
		Recommendations: a.recommend(ctx, tier),
	}, nil
}

// AnalyzeBatch processes texts concurrently, preserving input order.
// Validation is all-or-nothing: an empty list, a list beyond the
// configured cap, or any blank item rejects the whole batch before any
// processing starts.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) ([]models.AnalysisResponse, error) {
	if len(texts) == 0 {
		return nil, validationErrorf("texts must not be empty")
	}
	if len(texts) > a.cfg.Batch.MaxSize {
		return nil, validationErrorf("batch size %d exceeds maximum of %d",
			len(texts), a.cfg.Batch.MaxSize)
	}
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, validationErrorf("texts[%d] must not be empty", i)
		}
	}

	results := make([]models.AnalysisResponse, len(texts))

	// Items run independently: a failed item records its error in
	// place and never aborts its siblings, so the result list stays
	// 1:1 with the input.
	var g errgroup.Group
	g.SetLimit(a.cfg.Batch.Parallelism)
	for i, t := range texts {
		i, t := i, t
		g.Go(func() error {
			res, err := a.Analyze(ctx, t)
			if err != nil {
				a.log.Warn("batch item failed", zap.Int("index", i), zap.Error(err))
				results[i] = models.AnalysisResponse{
					Text:            t,
					Roadmap:         []models.RoadmapStep{},
					Recommendations: []models.Video{},
					Error:           err.Error(),
				}
				return nil
			}
			results[i] = *res
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// detectLanguage falls back to the configured default on oracle
// failure or an unsupported code.
func (a *Analyzer) detectLanguage(ctx context.Context, text string) string {
	code, err := a.detector.Detect(ctx, text)
	if err != nil {
		a.log.Warn("language detection failed, using default",
			zap.String("default", a.cfg.DefaultLanguage), zap.Error(err))
		return a.cfg.DefaultLanguage
	}
	if !a.cfg.Supported(code) {
		a.log.Debug("unsupported language, using default",
			zap.String("detected", code), zap.String("default", a.cfg.DefaultLanguage))
		return a.cfg.DefaultLanguage
	}
	return code
}

// negativeProb queries the fine-tuned classifier when one is wired.
// Failure degrades to zero so severity still resolves.
func (a *Analyzer) negativeProb(ctx context.Context, working string) float64 {
	if a.distress == nil {
		return 0
	}
	probs, err := a.distress.Score(ctx, []string{working})
	if err != nil || len(probs) == 0 {
		if err != nil {
			a.log.Warn("distress scorer unavailable", zap.Error(err))
		}
		return 0
	}
	return probs[0]
}

// recommend absorbs every searcher failure into an empty list, so the
// overall request never fails on the recommendation leg.
func (a *Analyzer) recommend(ctx context.Context, tier severity.Tier) []models.Video {
	if a.searcher == nil {
		return []models.Video{}
	}
	videos, err := a.searcher.Search(ctx, roadmap.BuildQuery(tier), a.cfg.Oracles.MaxResults)
	if err != nil {
		a.log.Warn("recommendation search failed", zap.Error(err))
		return []models.Video{}
	}
	if videos == nil {
		return []models.Video{}
	}
	return videos
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

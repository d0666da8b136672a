package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-insight/config"
	"sentiment-insight/models"
)

func distressResult(score float64) models.SentimentResult {
	return models.SentimentResult{
		{Label: LabelDistress, Score: score},
		{Label: LabelFatigue, Score: 0.12},
		{Label: LabelPositive, Score: 0.06},
	}
}

func defaultSeverityConfig() config.SeverityConfig {
	return config.Default().Severity
}

func TestKeywordGatedEscalatesOnDangerPhrase(t *testing.T) {
	r := New(defaultSeverityConfig(), nil)

	sig := Signal{
		Sentiment: distressResult(0.82),
		Text:      "some days I want to end my life",
	}
	assert.Equal(t, High, r.Resolve(sig))
}

func TestKeywordGatedWithoutDangerPhraseStaysMild(t *testing.T) {
	r := New(defaultSeverityConfig(), nil)

	sig := Signal{
		Sentiment: distressResult(0.82),
		Text:      "I am a bit tired",
	}
	assert.Equal(t, Mild, r.Resolve(sig))
}

func TestKeywordGatedLowConfidenceStaysMild(t *testing.T) {
	r := New(defaultSeverityConfig(), nil)

	sig := Signal{
		Sentiment: distressResult(0.60),
		Text:      "I want to end my life",
	}
	assert.Equal(t, Mild, r.Resolve(sig))
}

func TestKeywordGatedHonorsConfiguredDangerWeight(t *testing.T) {
	cfg := defaultSeverityConfig()
	// Lower the gate below the fatigue bucket weight: a fatigue
	// phrase now counts as a danger phrase.
	cfg.DangerWeight = 0.05
	r := New(cfg, nil)

	sig := Signal{
		Sentiment: distressResult(0.82),
		Text:      "I am so tired of all this",
	}
	assert.Equal(t, High, r.Resolve(sig))

	// Raise it above every bucket weight and the gate never opens.
	cfg.DangerWeight = 0.99
	r = New(cfg, nil)
	sig.Text = "some days I want to end my life"
	assert.Equal(t, Mild, r.Resolve(sig))
}

func TestKeywordGatedPositiveTopIsLow(t *testing.T) {
	r := New(defaultSeverityConfig(), nil)

	sig := Signal{
		Sentiment: models.SentimentResult{
			{Label: LabelPositive, Score: 0.91},
			{Label: LabelFatigue, Score: 0.06},
			{Label: LabelDistress, Score: 0.03},
		},
		Text: "feeling great today",
	}
	assert.Equal(t, Low, r.Resolve(sig))
}

func TestResolversDefaultToLowOnMalformedInput(t *testing.T) {
	strategies := []string{
		"keyword_gated", "score_relationship", "confidence_only",
		"label_table", "bucket_weighted",
	}
	for _, s := range strategies {
		cfg := defaultSeverityConfig()
		cfg.Strategy = s
		r := New(cfg, nil)

		assert.Equal(t, Low, r.Resolve(Signal{}), "strategy %s", s)
		assert.Equal(t, Low, r.Resolve(Signal{
			Sentiment: models.SentimentResult{{Label: "unexpected label", Score: 0.9}},
		}), "strategy %s", s)
	}
}

func TestResolversAreDeterministic(t *testing.T) {
	strategies := []string{
		"keyword_gated", "score_relationship", "confidence_only",
		"label_table", "bucket_weighted",
	}
	sig := Signal{
		Sentiment:    distressResult(0.82),
		Text:         "no reason to live, so tired",
		NegativeProb: 0.4,
	}
	for _, s := range strategies {
		cfg := defaultSeverityConfig()
		cfg.Strategy = s
		r := New(cfg, nil)

		first := r.Resolve(sig)
		second := r.Resolve(sig)
		assert.Equal(t, first, second, "strategy %s", s)
	}
}

func TestScoreRelationship(t *testing.T) {
	cfg := defaultSeverityConfig()
	cfg.Strategy = "score_relationship"
	r := New(cfg, nil)

	high := Signal{Sentiment: models.SentimentResult{
		{Label: LabelDistress, Score: 0.80},
		{Label: LabelFatigue, Score: 0.15},
		{Label: LabelPositive, Score: 0.05},
	}}
	assert.Equal(t, High, r.Resolve(high))

	mild := Signal{Sentiment: models.SentimentResult{
		{Label: LabelFatigue, Score: 0.55},
		{Label: LabelPositive, Score: 0.30},
		{Label: LabelDistress, Score: 0.15},
	}}
	assert.Equal(t, Mild, r.Resolve(mild))

	low := Signal{Sentiment: models.SentimentResult{
		{Label: LabelPositive, Score: 0.70},
		{Label: LabelFatigue, Score: 0.20},
		{Label: LabelDistress, Score: 0.10},
	}}
	assert.Equal(t, Low, r.Resolve(low))
}

func TestConfidenceOnly(t *testing.T) {
	cfg := defaultSeverityConfig()
	cfg.Strategy = "confidence_only"
	r := New(cfg, nil)

	assert.Equal(t, High, r.Resolve(Signal{Sentiment: distressResult(0.80)}))
	assert.Equal(t, Low, r.Resolve(Signal{Sentiment: distressResult(0.50)}))
	assert.Equal(t, Mild, r.Resolve(Signal{Sentiment: models.SentimentResult{
		{Label: LabelFatigue, Score: 0.60},
		{Label: LabelPositive, Score: 0.25},
		{Label: LabelDistress, Score: 0.15},
	}}))
}

func TestLabelTable(t *testing.T) {
	cfg := defaultSeverityConfig()
	cfg.Strategy = "label_table"
	r := New(cfg, nil)

	// Confidence is irrelevant for the static table.
	assert.Equal(t, High, r.Resolve(Signal{Sentiment: distressResult(0.10)}))
	assert.Equal(t, Mild, r.Resolve(Signal{Sentiment: models.SentimentResult{
		{Label: LabelFatigue, Score: 0.34},
	}}))
	assert.Equal(t, Low, r.Resolve(Signal{Sentiment: models.SentimentResult{
		{Label: LabelPositive, Score: 0.34},
	}}))
}

func TestBucketWeightedTakesMaxNeverSum(t *testing.T) {
	cfg := defaultSeverityConfig()
	cfg.Strategy = "bucket_weighted"
	r := New(cfg, nil)

	bw, ok := r.(*bucketWeighted)
	require.True(t, ok)

	// Fatigue (0.15) and existential (0.25) both match, model says
	// 0.05: the score is the max, 0.25, never 0.40.
	sig := Signal{
		Text:         "I am so tired and there is no reason to live",
		NegativeProb: 0.05,
	}
	assert.InDelta(t, 0.25, bw.Risk(sig), 1e-9)
	assert.Equal(t, Mild, r.Resolve(sig))
}

func TestBucketWeightedModelScoreCanDominate(t *testing.T) {
	cfg := defaultSeverityConfig()
	cfg.Strategy = "bucket_weighted"
	r := New(cfg, nil)

	sig := Signal{Text: "nothing matches here", NegativeProb: 0.45}
	assert.Equal(t, High, r.Resolve(sig))

	sig.NegativeProb = 0.02
	assert.Equal(t, Low, r.Resolve(sig))
}

func TestBucketWeightedSelfHarmPhraseIsHigh(t *testing.T) {
	cfg := defaultSeverityConfig()
	cfg.Strategy = "bucket_weighted"
	r := New(cfg, nil)

	sig := Signal{Text: "I will hurt myself"}
	assert.Equal(t, High, r.Resolve(sig))
}

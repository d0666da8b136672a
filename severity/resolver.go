package severity

import (
	"sentiment-insight/config"
	"sentiment-insight/models"
)

// Signal is everything a resolver may look at. Text is always the
// working-language text: phrase data is English-only, so scanning the
// untranslated input would silently disable keyword escalation for
// non-English requests.
type Signal struct {
	Sentiment models.SentimentResult
	Text      string

	// NegativeProb is the fine-tuned classifier's negative-class
	// probability, when that oracle is wired. Zero otherwise.
	NegativeProb float64
}

// Resolver maps a Signal to a Tier. Implementations are total and
// deterministic: malformed or empty sentiment input yields Low rather
// than an error, so the orchestrator always produces a response. That
// trades false negatives for availability.
type Resolver interface {
	Resolve(sig Signal) Tier
}

// New builds the resolver selected by cfg, sharing one bucket set.
func New(cfg config.SeverityConfig, buckets *BucketSet) Resolver {
	if buckets == nil {
		buckets = DefaultBuckets()
	}
	switch cfg.Strategy {
	case "score_relationship":
		return &scoreRelationship{highConfidence: cfg.HighConfidence, lowPositive: cfg.LowPositive}
	case "confidence_only":
		return &confidenceOnly{highConfidence: cfg.HighConfidence}
	case "label_table":
		return &labelTable{}
	case "bucket_weighted":
		return &bucketWeighted{buckets: buckets, high: cfg.RiskHigh, mild: cfg.RiskMild}
	default:
		return &keywordGated{
			buckets:        buckets,
			highConfidence: cfg.HighConfidence,
			dangerWeight:   cfg.DangerWeight,
		}
	}
}

// keywordGated is the default strategy: High requires the distress
// label on top with high confidence AND a danger phrase in the text;
// any distress-family label alone is Mild; everything else Low.
type keywordGated struct {
	buckets        *BucketSet
	highConfidence float64
	dangerWeight   float64
}

func (r *keywordGated) Resolve(sig Signal) Tier {
	top, ok := sig.Sentiment.Top()
	if !ok {
		return Low
	}
	if top.Label == LabelDistress &&
		top.Score >= r.highConfidence &&
		r.buckets.MaxWeight(sig.Text) >= r.dangerWeight {
		return High
	}
	if top.Label == LabelDistress || top.Label == LabelFatigue {
		return Mild
	}
	return Low
}

// scoreRelationship compares per-label scores instead of gating on
// keywords: High when distress dominates fatigue with high confidence
// and the positive score stays low; Mild when fatigue beats positive.
type scoreRelationship struct {
	highConfidence float64
	lowPositive    float64
}

func (r *scoreRelationship) Resolve(sig Signal) Tier {
	distress := sig.Sentiment.ScoreFor(LabelDistress)
	fatigue := sig.Sentiment.ScoreFor(LabelFatigue)
	positive := sig.Sentiment.ScoreFor(LabelPositive)

	if distress > r.highConfidence && distress > fatigue && positive < r.lowPositive {
		return High
	}
	if fatigue > positive {
		return Mild
	}
	return Low
}

// confidenceOnly ignores the text entirely: exact top-label match
// plus a confidence floor decides everything.
type confidenceOnly struct {
	highConfidence float64
}

func (r *confidenceOnly) Resolve(sig Signal) Tier {
	top, ok := sig.Sentiment.Top()
	if !ok {
		return Low
	}
	if top.Label == LabelDistress && top.Score >= r.highConfidence {
		return High
	}
	if top.Label == LabelFatigue {
		return Mild
	}
	return Low
}

// labelTable is the threshold-free variant: a fixed label → tier map.
type labelTable struct{}

var tierByLabel = map[string]Tier{
	LabelDistress: High,
	LabelFatigue:  Mild,
	LabelPositive: Low,
}

func (r *labelTable) Resolve(sig Signal) Tier {
	top, ok := sig.Sentiment.Top()
	if !ok {
		return Low
	}
	if t, found := tierByLabel[top.Label]; found {
		return t
	}
	return Low
}

// bucketWeighted folds phrase buckets and the model's negative-class
// probability into one continuous risk score, then thresholds it.
// Bucket matches take the maximum configured weight, never the sum.
type bucketWeighted struct {
	buckets *BucketSet
	high    float64
	mild    float64
}

func (r *bucketWeighted) Resolve(sig Signal) Tier {
	risk := r.buckets.MaxWeight(sig.Text)
	if sig.NegativeProb > risk {
		risk = sig.NegativeProb
	}
	switch {
	case risk >= r.high:
		return High
	case risk >= r.mild:
		return Mild
	default:
		return Low
	}
}

// Risk exposes the continuous score of the bucket-weighted strategy
// for diagnostics and tests.
func (r *bucketWeighted) Risk(sig Signal) float64 {
	risk := r.buckets.MaxWeight(sig.Text)
	if sig.NegativeProb > risk {
		risk = sig.NegativeProb
	}
	return risk
}

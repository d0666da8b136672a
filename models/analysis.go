package models

// TextRequest is the body of POST /analyze.
type TextRequest struct {
	Text string `json:"text"`
}

// BatchRequest is the body of POST /analyze-batch.
type BatchRequest struct {
	Texts []string `json:"texts"`
}

// LabelScore is one (label, confidence) pair returned by the
// zero-shot classifier, confidence in [0,1].
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentResult is the classifier output ranked by descending score.
// Labels are unique within one result.
type SentimentResult []LabelScore

// Top returns the highest-ranked label and its score, or false when
// the result is empty or malformed.
func (r SentimentResult) Top() (LabelScore, bool) {
	if len(r) == 0 {
		return LabelScore{}, false
	}
	return r[0], true
}

// ScoreFor returns the confidence of a specific label, 0 when absent.
func (r SentimentResult) ScoreFor(label string) float64 {
	for _, ls := range r {
		if ls.Label == label {
			return ls.Score
		}
	}
	return 0
}

// RoadmapStep is a single suggested action, most urgent steps first.
// Level is one of "critical", "supportive", "normal".
type RoadmapStep struct {
	Text  string `json:"text"`
	Level string `json:"level"`
}

// Video is one external recommendation search hit.
type Video struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Thumbnail     string `json:"thumbnail"`
	Channel       string `json:"channel"`
	PublishedDate string `json:"published_date"`
	ViewCount     string `json:"view_count,omitempty"`
	Duration      string `json:"duration,omitempty"`
}

// AnalysisResponse is the full result for one input text.
type AnalysisResponse struct {
	Text            string        `json:"text"`
	Sentiment       string        `json:"sentiment"`
	Confidence      float64       `json:"confidence"`
	Severity        string        `json:"severity"`
	Roadmap         []RoadmapStep `json:"roadmap"`
	Language        string        `json:"language"`
	Recommendations []Video       `json:"youtube_recommendations"`

	// Error is set only on batch items whose processing failed after
	// validation; sibling items are unaffected.
	Error string `json:"error,omitempty"`
}

// BatchResponse wraps per-item results in input order.
type BatchResponse struct {
	Results []AnalysisResponse `json:"results"`
}

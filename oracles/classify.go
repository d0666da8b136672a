package oracles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sentiment-insight/models"
)

// HTTPClassifier calls a zero-shot classification endpoint speaking
// the HuggingFace pipeline shape: parallel label and score arrays,
// ranked by descending score.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

// NewHTTPClassifier builds a classifier client.
func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify runs the candidate labels against the text.
func (c *HTTPClassifier) Classify(ctx context.Context, text string, labels []string) (models.SentimentResult, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classify API error: %s", string(msg))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Labels) != len(out.Scores) {
		return nil, fmt.Errorf("classify API returned %d labels but %d scores",
			len(out.Labels), len(out.Scores))
	}

	result := make(models.SentimentResult, len(out.Labels))
	for i, label := range out.Labels {
		result[i] = models.LabelScore{Label: label, Score: out.Scores[i]}
	}
	return result, nil
}

// HTTPDistressScorer calls the fine-tuned binary classifier endpoint,
// which scores a batch of texts in one round trip.
type HTTPDistressScorer struct {
	url    string
	client *http.Client
}

// NewHTTPDistressScorer builds a distress-scorer client.
func NewHTTPDistressScorer(url string, timeout time.Duration) *HTTPDistressScorer {
	return &HTTPDistressScorer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type distressRequest struct {
	Texts []string `json:"texts"`
}

type distressResponse struct {
	// NegativeProbs holds the negative-class probability per input
	// text, in input order.
	NegativeProbs []float64 `json:"negative_probs"`
}

// Score returns the per-text negative-class probabilities.
func (s *HTTPDistressScorer) Score(ctx context.Context, texts []string) ([]float64, error) {
	body, err := json.Marshal(distressRequest{Texts: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("distress API error: %s", string(msg))
	}

	var out distressResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.NegativeProbs) != len(texts) {
		return nil, fmt.Errorf("distress API returned %d scores for %d texts",
			len(out.NegativeProbs), len(texts))
	}
	return out.NegativeProbs, nil
}

package oracles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-insight/config"
	"sentiment-insight/severity"
)

func TestHTTPDetector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bonjour", req["text"])
		json.NewEncoder(w).Encode(map[string]string{"language": "fr"})
	}))
	defer srv.Close()

	d := NewHTTPDetector(srv.URL, time.Second)
	code, err := d.Detect(context.Background(), "bonjour")
	require.NoError(t, err)
	assert.Equal(t, "fr", code)
}

func TestHTTPDetectorEmptyLanguageIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := NewHTTPDetector(srv.URL, time.Second).Detect(context.Background(), "x")
	assert.Error(t, err)
}

func TestHTTPTranslatorSendsLocaleTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hin_Deva", req["source_lang"])
		assert.Equal(t, "eng_Latn", req["target_lang"])
		json.NewEncoder(w).Encode(map[string]string{"translation": "some text"})
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL, config.Default(), time.Second)
	out, err := tr.Translate(context.Background(), "कुछ पाठ", "hi", "en")
	require.NoError(t, err)
	assert.Equal(t, "some text", out)
}

func TestHTTPTranslatorIdentitySkipsNetwork(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL, config.Default(), time.Second)
	out, err := tr.Translate(context.Background(), "same text", "en", "en")
	require.NoError(t, err)
	assert.Equal(t, "same text", out)
	assert.Zero(t, hits)
}

func TestHTTPClassifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs     string `json:"inputs"`
			Parameters struct {
				CandidateLabels []string `json:"candidate_labels"`
			} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, severity.Labels, req.Parameters.CandidateLabels)

		json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{severity.LabelDistress, severity.LabelFatigue, severity.LabelPositive},
			"scores": []float64{0.82, 0.12, 0.06},
		})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, time.Second)
	result, err := c.Classify(context.Background(), "some text", severity.Labels)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, severity.LabelDistress, result[0].Label)
	assert.Equal(t, 0.82, result[0].Score)
}

func TestHTTPClassifierRejectsMismatchedArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"a", "b"},
			"scores": []float64{0.9},
		})
	}))
	defer srv.Close()

	_, err := NewHTTPClassifier(srv.URL, time.Second).Classify(context.Background(), "x", severity.Labels)
	assert.Error(t, err)
}

func TestHTTPDistressScorer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"negative_probs": []float64{0.7, 0.1}})
	}))
	defer srv.Close()

	probs, err := NewHTTPDistressScorer(srv.URL, time.Second).
		Score(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.7, 0.1}, probs)
}

func TestHTTPDistressScorerLengthMismatchIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"negative_probs": []float64{0.7}})
	}))
	defer srv.Close()

	_, err := NewHTTPDistressScorer(srv.URL, time.Second).
		Score(context.Background(), []string{"one", "two"})
	assert.Error(t, err)
}

func TestYouTubeSearcherWithoutKeyReturnsEmpty(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	y := NewYouTubeSearcher("", time.Second)
	y.baseURL = srv.URL

	videos, err := y.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Zero(t, hits, "no credential must mean no outbound call")
}

func TestYouTubeSearcherParsesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id": map[string]string{"videoId": "abc123"},
					"snippet": map[string]any{
						"title":        "Box breathing basics",
						"channelTitle": "Calm Channel",
						"publishedAt":  "2025-04-01T00:00:00Z",
						"thumbnails": map[string]any{
							"medium": map[string]string{"url": "http://img/abc123.jpg"},
						},
					},
				},
				{
					// Missing video id entries are skipped.
					"id":      map[string]string{},
					"snippet": map[string]any{"title": "playlist, not a video"},
				},
			},
		})
	}))
	defer srv.Close()

	y := NewYouTubeSearcher("test-key", time.Second)
	y.baseURL = srv.URL

	videos, err := y.Search(context.Background(), "breathing", 5)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].ID)
	assert.Equal(t, "Calm Channel", videos[0].Channel)
	assert.Equal(t, "http://img/abc123.jpg", videos[0].Thumbnail)
}

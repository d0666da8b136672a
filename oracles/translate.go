package oracles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LocaleMapper resolves short language codes to the translation
// model's internal locale tags (NLLB-style, e.g. "en" -> "eng_Latn").
type LocaleMapper interface {
	LocaleTag(code string) string
}

// HTTPTranslator calls an NLLB-style translation endpoint. The
// endpoint speaks locale tags; the mapper owns the finite code → tag
// table and its fallback.
type HTTPTranslator struct {
	url    string
	mapper LocaleMapper
	client *http.Client
}

// NewHTTPTranslator builds a translator client.
func NewHTTPTranslator(url string, mapper LocaleMapper, timeout time.Duration) *HTTPTranslator {
	return &HTTPTranslator{
		url:    url,
		mapper: mapper,
		client: &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// Translate posts the text for translation. Identity when src equals
// tgt, without touching the network.
func (t *HTTPTranslator) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	if src == tgt {
		return text, nil
	}

	body, err := json.Marshal(translateRequest{
		Text:       text,
		SourceLang: t.mapper.LocaleTag(src),
		TargetLang: t.mapper.LocaleTag(tgt),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate API error: %s", string(msg))
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Translation, nil
}

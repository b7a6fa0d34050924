package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harshbaithub/helio/internal/reliability"
)

type ElevenLabsConfig struct {
	APIKey              string
	BaseURL             string
	DefaultModelID      string
	DefaultOutputFormat string
}

// ElevenLabsProvider synthesizes speech through the ElevenLabs REST API.
type ElevenLabsProvider struct {
	cfg    ElevenLabsConfig
	client *http.Client
}

func NewElevenLabsProvider(cfg ElevenLabsConfig) *ElevenLabsProvider {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	if strings.TrimSpace(cfg.DefaultModelID) == "" {
		cfg.DefaultModelID = "eleven_multilingual_v2"
	}
	if strings.TrimSpace(cfg.DefaultOutputFormat) == "" {
		cfg.DefaultOutputFormat = "mp3_44100_128"
	}
	return &ElevenLabsProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (p *ElevenLabsProvider) Synthesize(ctx context.Context, text, voiceID, modelID string) ([]byte, string, error) {
	if strings.TrimSpace(voiceID) == "" {
		return nil, "", fmt.Errorf("voice_id is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = p.cfg.DefaultModelID
	}

	u, err := url.Parse(strings.TrimRight(p.cfg.BaseURL, "/") + "/v1/text-to-speech/" + url.PathEscape(voiceID))
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("output_format", p.cfg.DefaultOutputFormat)
	u.RawQuery = q.Encode()

	body, err := json.Marshal(ttsRequest{Text: text, ModelID: modelID})
	if err != nil {
		return nil, "", err
	}

	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := reliability.ExponentialBackoff(attempt, 200*time.Millisecond, 2*time.Second)
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		audio, retryable, err := p.doRequest(ctx, u.String(), body)
		if err == nil {
			return audio, p.cfg.DefaultOutputFormat, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, "", lastErr
}

func (p *ElevenLabsProvider) doRequest(ctx context.Context, url string, body []byte) (audio []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("xi-api-key", p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, reliability.IsRetryableHTTPStatus(resp.StatusCode),
			fmt.Errorf("tts request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	audio, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read tts response: %w", err)
	}
	return audio, false, nil
}

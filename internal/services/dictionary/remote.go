package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/hangbot/internal/model"
)

// DefaultRemoteURL is the Merriam-Webster collegiate dictionary endpoint
const DefaultRemoteURL = "https://dictionaryapi.com/api/v3/references/collegiate/json"

// RemoteClient looks words up in the Merriam-Webster collegiate API
type RemoteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRemoteClient creates a client; an empty baseURL uses DefaultRemoteURL
func NewRemoteClient(baseURL, apiKey string, logger *slog.Logger) *RemoteClient {
	if baseURL == "" {
		baseURL = DefaultRemoteURL
	}
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With(slog.String("component", "dictionary")),
	}
}

type remoteEntry struct {
	Shortdef []string `json:"shortdef"`
}

// Lookup implements WordSource. The API answers with an array of entry
// objects when the word is known, or an array of suggestion strings.
func (c *RemoteClient) Lookup(ctx context.Context, word string) (model.WordInfo, error) {
	endpoint := fmt.Sprintf("%s/%s?key=%s", c.baseURL, url.PathEscape(word), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.WordInfo{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.WordInfo{}, fmt.Errorf("dictionary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.WordInfo{}, fmt.Errorf("dictionary returned status %s", resp.Status)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return model.WordInfo{}, fmt.Errorf("decode dictionary response: %w", err)
	}

	info := model.WordInfo{Word: word}
	if len(raw) > 0 && strings.HasPrefix(strings.TrimSpace(string(raw[0])), "{") {
		var entry remoteEntry
		if err := json.Unmarshal(raw[0], &entry); err != nil {
			return model.WordInfo{}, fmt.Errorf("decode dictionary entry: %w", err)
		}
		info.Found = true
		if len(entry.Shortdef) > 0 {
			info.Definition = entry.Shortdef[0]
		}
		return info, nil
	}

	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			info.Suggestions = append(info.Suggestions, s)
		}
	}

	c.logger.Debug("word not in dictionary",
		slog.String("word", word),
		slog.Int("suggestions", len(info.Suggestions)),
	)
	return info, nil
}

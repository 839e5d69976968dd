package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"synapshare/internal/apperr"
	"synapshare/internal/cache"
)

const (
	defaultNewsURL = "https://newsapi.org/v2/top-headlines"
	newsCacheKey   = "news:headlines"
	newsCacheTTL   = 10 * time.Minute
)

// Article mirrors the headlines API response item; clients consume it
// unchanged.
type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type newsResponse struct {
	Status   string    `json:"status"`
	Articles []Article `json:"articles"`
}

// NewsService proxies technology headlines from a third-party API, caching
// responses so a burst of clients costs one upstream call.
type NewsService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *cache.Cache[[]Article]
}

func NewNewsService(apiKey string) *NewsService {
	c, _ := cache.New[[]Article](8) // only fails on a non-positive size
	return &NewsService{
		baseURL: defaultNewsURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   c,
	}
}

// TopHeadlines returns the current technology headlines, cached for a few
// minutes. Upstream failures are never retried.
func (s *NewsService) TopHeadlines(ctx context.Context) ([]Article, error) {
	if cached, ok := s.cache.Get(newsCacheKey); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("category", "technology")
	params.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to fetch news", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to fetch news", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to fetch news",
			fmt.Errorf("news api status %d", resp.StatusCode))
	}

	var decoded newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to fetch news", err)
	}

	s.cache.Set(newsCacheKey, decoded.Articles, newsCacheTTL)
	return decoded.Articles, nil
}

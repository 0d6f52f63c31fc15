// Package ollama implements llm.Client against a local or remote Ollama
// server.
package ollama

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"

	"github.com/000alen/ontology/pkg/llm"
	"github.com/000alen/ontology/pkg/metrics"
)

const (
	providerName = "ollama"

	defaultBaseURL       = "http://localhost:11434"
	defaultDimensions    = 768
	defaultTimeout       = 2 * time.Minute
	defaultMaxConcurrent = 4
)

// Client implements llm.Client using the Ollama HTTP API.
type Client struct {
	chatModel      string
	embeddingModel string
	dimensions     int
	timeout        time.Duration

	reqLock *semaphore.Weighted

	usageLock sync.Mutex
	usage     llm.ModelMetrics

	metrics *metrics.Registry

	baseURL *url.URL

	API *api.Client
}

// Params configures a Client.
type Params struct {
	// ChatModel serves completion requests. Required.
	ChatModel string
	// EmbeddingModel serves embedding requests. Required.
	EmbeddingModel string
	// Dimensions is the embedding width; responses are conformed to it.
	// Defaults to 768.
	Dimensions int
	// BaseURL of the Ollama server. Defaults to http://localhost:11434.
	BaseURL string
	// APIKey is sent as a bearer token when set. Local servers need none.
	APIKey string
	// Timeout bounds each request. Defaults to 2 minutes.
	Timeout time.Duration
	// MaxConcurrent bounds in-flight embedding requests. Defaults to 4.
	MaxConcurrent int64
	// Metrics records request outcomes and token usage. Optional.
	Metrics *metrics.Registry
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone so the original request is not modified.
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// New creates a Client for the Ollama server at params.BaseURL.
func New(params Params) (*Client, error) {
	if params.ChatModel == "" {
		return nil, fmt.Errorf("ollama: chat model is required")
	}
	if params.EmbeddingModel == "" {
		return nil, fmt.Errorf("ollama: embedding model is required")
	}

	base := params.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("ollama: parse base url: %w", err)
	}

	httpClient := http.DefaultClient
	if params.APIKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.APIKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	dimensions := params.Dimensions
	if dimensions <= 0 {
		dimensions = defaultDimensions
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxConcurrent := params.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &Client{
		chatModel:      params.ChatModel,
		embeddingModel: params.EmbeddingModel,
		dimensions:     dimensions,
		timeout:        timeout,
		reqLock:        semaphore.NewWeighted(maxConcurrent),
		metrics:        params.Metrics,
		baseURL:        u,
		API:            api.NewClient(u, httpClient),
	}, nil
}

var _ llm.Client = (*Client)(nil)

// Package openai implements llm.Client against the OpenAI API or any
// compatible endpoint.
package openai

import (
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"

	"github.com/000alen/ontology/pkg/llm"
	"github.com/000alen/ontology/pkg/metrics"
)

const (
	providerName = "openai"

	defaultDimensions    = 768
	defaultTimeout       = 2 * time.Minute
	defaultMaxConcurrent = 4
)

// Client implements llm.Client using the OpenAI SDK.
type Client struct {
	chatModel      string
	embeddingModel string
	dimensions     int
	timeout        time.Duration

	reqLock *semaphore.Weighted

	usageLock sync.Mutex
	usage     llm.ModelMetrics

	metrics *metrics.Registry

	API *openai.Client
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
	// BaseURL overrides the API endpoint, for OpenAI-compatible servers.
	BaseURL string
	// APIKey authenticates requests. When empty the SDK falls back to the
	// OPENAI_API_KEY environment variable.
	APIKey string
	// Timeout bounds each request. Defaults to 2 minutes.
	Timeout time.Duration
	// MaxConcurrent bounds in-flight embedding requests. Defaults to 4.
	MaxConcurrent int64
	// Metrics records request outcomes and token usage. Optional.
	Metrics *metrics.Registry
}

// New creates a Client for the OpenAI API.
func New(params Params) (*Client, error) {
	if params.ChatModel == "" {
		return nil, fmt.Errorf("openai: chat model is required")
	}
	if params.EmbeddingModel == "" {
		return nil, fmt.Errorf("openai: embedding model is required")
	}

	options := []option.RequestOption{}
	if params.APIKey != "" {
		options = append(options, option.WithAPIKey(params.APIKey))
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}
	api := openai.NewClient(options...)

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
		API:            &api,
	}, nil
}

var _ llm.Client = (*Client)(nil)

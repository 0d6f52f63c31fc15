package openai

import (
	"math"
	"time"

	"github.com/000alen/ontology/pkg/llm"
)

// ResetMetrics clears the accumulated token and timing usage.
func (c *Client) ResetMetrics() {
	c.usageLock.Lock()
	c.usage = llm.ModelMetrics{}
	c.usageLock.Unlock()
}

// GetMetrics returns the usage accumulated since the last reset.
func (c *Client) GetMetrics() llm.ModelMetrics {
	c.usageLock.Lock()
	defer c.usageLock.Unlock()
	return c.usage
}

func (c *Client) addUsage(m llm.ModelMetrics) {
	c.usageLock.Lock()
	defer c.usageLock.Unlock()

	c.usage.InputTokens += m.InputTokens
	c.usage.OutputTokens += m.OutputTokens
	c.usage.TotalTokens += m.TotalTokens
	c.usage.DurationMs += m.DurationMs
	if c.usage.DurationMs > 0 {
		perSecond := float64(c.usage.TotalTokens) * 1000.0 / float64(c.usage.DurationMs)
		c.usage.TokensPerSecond = math.Round(perSecond*100) / 100
	}
}

func (c *Client) record(operation, status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordLLMRequest(providerName, operation, status, time.Since(start))
	}
}

func (c *Client) recordTokens(prompt, completion int) {
	if c.metrics != nil {
		c.metrics.RecordLLMTokens(providerName, prompt, completion)
	}
}

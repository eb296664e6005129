// Package llm provides a chat-completion client used for grammar suggestions.
//
// The client speaks the OpenAI-compatible chat API (OpenRouter by default),
// requests JSON-only replies, and decodes them leniently. It retries HTTP
// 408/429/5xx responses, empty replies and network timeouts with exponential
// backoff, honouring Retry-After. Context cancellation aborts retries.
//
// NewClient returns a configuration error when no API key or model is set;
// the grammar check treats that as "disabled" rather than a failure.
package llm

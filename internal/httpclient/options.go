package httpclient

import "time"

// callOptions holds the per-call configuration, seeded from the client's
// defaults.
type callOptions struct {
	retries    int
	retryDelay time.Duration
	timeout    time.Duration
	headers    map[string]string
	retryAll   bool
	noLoading  bool
}

type Option func(*callOptions)

func (c *Client) callOptions(opts []Option) callOptions {
	o := callOptions{
		retries:    c.retries,
		retryDelay: c.retryDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.retries < 1 {
		o.retries = 1
	}
	return o
}

// WithRetries sets the total number of attempts for this call.
func WithRetries(n int) Option {
	return func(o *callOptions) { o.retries = n }
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *callOptions) { o.retryDelay = d }
}

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(o *callOptions) { o.timeout = d }
}

// WithHeader overrides or adds a request header.
func WithHeader(key, value string) Option {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithRetryAll retries every failure, including 4xx terminal responses,
// matching the legacy behavior of the admin pages.
func WithRetryAll() Option {
	return func(o *callOptions) { o.retryAll = true }
}

// WithoutLoading suppresses the page loading overlay for this call.
func WithoutLoading() Option {
	return func(o *callOptions) { o.noLoading = true }
}

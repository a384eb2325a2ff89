package health

import "context"

// StorePinger checks durable index availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks model provider availability. The embedding and
// chat endpoints share one account, so a single probe covers both.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}

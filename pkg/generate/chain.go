package generate

import (
	"context"
	"log/slog"
)

// Chain tries multiple transports in order until one succeeds.
type Chain struct {
	transports []Transport
	logger     *slog.Logger
}

// NewChain creates a transport chain.
// At least one transport is required.
func NewChain(transports ...Transport) (*Chain, error) {
	if len(transports) == 0 {
		return nil, ErrNoTransport
	}
	return &Chain{
		transports: transports,
		logger:     slog.Default().With("component", "generate.chain"),
	}, nil
}

// NewChainWithLogger creates a transport chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, transports ...Transport) (*Chain, error) {
	chain, err := NewChain(transports...)
	if err != nil {
		return nil, err
	}
	chain.logger = logger.With("component", "generate.chain")
	return chain, nil
}

// Generate tries each transport until one returns a reply.
func (c *Chain) Generate(ctx context.Context, req Request) (string, error) {
	var errs []error

	for i, tr := range c.transports {
		reply, err := tr.Generate(ctx, req)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback transport succeeded",
					"transport", tr.Name(),
				)
			}
			return reply, nil
		}

		errs = append(errs, err)
		c.logger.Warn("transport failed, trying next",
			"transport", tr.Name(),
			"error", err,
		)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", &ChainError{Errors: errs}
}

// Name returns "chain".
func (c *Chain) Name() string {
	return "chain"
}

// Transports returns the list of transports in the chain.
func (c *Chain) Transports() []Transport {
	return c.transports
}

var _ Transport = (*Chain)(nil)

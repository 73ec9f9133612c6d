package interaction

import (
	"github.com/rs/zerolog"
)

type ContextBuilderOption func(*contextImpl)

// WithHitRadius sets the pixel radius used to pick points and nodes.
//
// Parameters:
//   - radius: the radius in pixels
//
// Returns:
//   - ContextBuilderOption: a function that sets the hit radius
func WithHitRadius(radius float32) ContextBuilderOption {
	return func(c *contextImpl) {
		if radius > 0 {
			c.hitRadius = radius
		}
	}
}

// WithNodes attaches the hierarchy used for right-button selection.
//
// Parameters:
//   - nodes: the node set
//
// Returns:
//   - ContextBuilderOption: a function that attaches the nodes
func WithNodes(nodes NodeSet) ContextBuilderOption {
	return func(c *contextImpl) {
		c.nodes = nodes
	}
}

// WithLogger sets the context logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ContextBuilderOption: a function that sets the logger
func WithLogger(logger zerolog.Logger) ContextBuilderOption {
	return func(c *contextImpl) {
		c.logger = logger.With().Str("component", "interaction").Logger()
	}
}

package render

import (
	"context"
	"time"
)

// Step describes one unit of render work. Index is 1-based; Total never
// changes within a job.
type Step struct {
	Index  int
	Total  int
	Label  string
	Config Config
}

// Renderer executes one render step. Implementations report success by
// returning nil; any error terminates the enclosing job.
type Renderer interface {
	RunStep(ctx context.Context, step Step) error
}

// Simulated is a renderer that performs no real work, pausing briefly per
// step so progress is observable. A zero Delay makes it instantaneous.
type Simulated struct {
	Delay time.Duration
}

func (s *Simulated) RunStep(ctx context.Context, _ Step) error {
	if s.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

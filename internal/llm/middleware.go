package llm

import (
	"context"
	"log"
)

// Middleware wraps a Client with additional behavior.
type Middleware func(Client) Client

// Chain applies middlewares in order; the first listed is outermost.
func Chain(c Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// WithLogging logs request size and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Complete(ctx context.Context, req ChatRequest) (string, error) {
	size := 0
	for _, m := range req.Messages {
		size += len(m.Content)
	}
	l.log.Printf("LLM request (%s): %d bytes, temp=%.2f", l.next.Name(), size, req.Temperature)
	out, err := l.next.Complete(ctx, req)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", l.next.Name(), err)
	}
	return out, err
}

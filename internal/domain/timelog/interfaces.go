package timelog

import "context"

// Persister stores and loads the whole collection. Save always receives the
// complete collection in store order.
type Persister interface {
	Load(ctx context.Context) ([]TimeLog, error)
	Save(ctx context.Context, logs []TimeLog) error
}

// Observer is notified after each committed mutation.
type Observer interface {
	Observe(ctx context.Context, m Mutation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, m Mutation)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, m Mutation) {
	f(ctx, m)
}

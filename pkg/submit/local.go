package submit

import (
	"context"
	"errors"
	"fmt"
)

type localEndpoint struct {
	store Store
}

// NewLocal stores submissions through store.
func NewLocal(store Store) (Endpoint, error) {
	if store == nil {
		return nil, errors.New("submit: local endpoint requires a store")
	}
	return &localEndpoint{store: store}, nil
}

func (l *localEndpoint) Kind() Kind { return KindLocal }

func (l *localEndpoint) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	if err := l.store.SaveSubmission(ctx, sub); err != nil {
		return Receipt{}, fmt.Errorf("submit: store submission: %w", err)
	}
	return Receipt{ID: sub.ID, Message: MessageSent}, nil
}

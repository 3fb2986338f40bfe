package task

import "context"

// Store is the persistence boundary for tasks. Update runs the mutation
// under the store's lock so concurrent transitions on one task serialize;
// the callback sees the live record and may reject the transition by
// returning an error, which leaves the record untouched.
type Store interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, taskID string) (*Task, error)
	Update(ctx context.Context, taskID string, mutate func(*Task) error) (*Task, error)
	Delete(ctx context.Context, taskID string) error
	ListByUser(ctx context.Context, userID string) ([]*Task, error)
}

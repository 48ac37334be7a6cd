package category

import "context"

// Repository provides read access to the seeded categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (*Category, error)
}

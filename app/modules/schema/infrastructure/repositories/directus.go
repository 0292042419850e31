package schemadb

import (
	"context"

	"github.com/raynzz/eventdesk/pkg/directus"
)

// Repository applies schema changes to Directus. Every call needs the admin
// token.
type Repository interface {
	CreateCollection(ctx context.Context, col directus.Collection) error
	CreateField(ctx context.Context, collection string, f directus.Field) error
	CreateRelation(ctx context.Context, r directus.Relation) error
}

// Impl implements Repository over the Directus schema endpoints.
type Impl struct {
	client *directus.Client
}

// NewRepository creates a schema repository.
func NewRepository(client *directus.Client) Repository {
	return &Impl{client: client}
}

func (r *Impl) CreateCollection(ctx context.Context, col directus.Collection) error {
	return r.client.CreateCollection(ctx, col)
}

func (r *Impl) CreateField(ctx context.Context, collection string, f directus.Field) error {
	// The collection is part of the path.
	f.Collection = ""
	return r.client.CreateField(ctx, collection, f)
}

func (r *Impl) CreateRelation(ctx context.Context, rel directus.Relation) error {
	return r.client.CreateRelation(ctx, rel)
}

package migrationdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/raynzz/eventdesk/pkg/directus"
)

// DirectusCollections implements Collections over the items API.
type DirectusCollections struct {
	client *directus.Client
}

// NewCollections creates a Collections backed by client.
func NewCollections(client *directus.Client) Collections {
	return &DirectusCollections{client: client}
}

func (c *DirectusCollections) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	return directus.List[json.RawMessage](ctx, c.client, collection, directus.Query{Limit: directus.LimitAll})
}

func (c *DirectusCollections) Create(ctx context.Context, collection string, record any) (directus.ID, error) {
	created, err := directus.Create[struct {
		ID directus.ID `json:"id"`
	}](ctx, c.client, collection, record)
	if err != nil {
		return "", err
	}
	if created.ID.IsZero() {
		return "", fmt.Errorf("%s: created record has no id", collection)
	}
	return created.ID, nil
}

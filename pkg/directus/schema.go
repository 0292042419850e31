package directus

import (
	"context"
	"net/http"
	"net/url"
)

// Collection is the payload of POST /collections.
type Collection struct {
	Collection string         `json:"collection"`
	Meta       map[string]any `json:"meta,omitempty"`
	Schema     map[string]any `json:"schema"`
	Fields     []Field        `json:"fields,omitempty"`
}

// Field is the payload of POST /fields/{collection} and an entry of GET /fields/{collection}.
type Field struct {
	Collection string         `json:"collection,omitempty"`
	Field      string         `json:"field"`
	Type       string         `json:"type"`
	Meta       map[string]any `json:"meta,omitempty"`
	Schema     map[string]any `json:"schema,omitempty"`
}

// Relation is the payload of POST /relations.
type Relation struct {
	Collection        string         `json:"collection"`
	Field             string         `json:"field"`
	RelatedCollection string         `json:"related_collection"`
	Meta              map[string]any `json:"meta,omitempty"`
	Schema            map[string]any `json:"schema,omitempty"`
}

// CreateCollection creates a collection, optionally with its initial fields.
func (c *Client) CreateCollection(ctx context.Context, col Collection) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/collections", body: col}, nil)
}

// CreateField adds a field to an existing collection.
func (c *Client) CreateField(ctx context.Context, collection string, f Field) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/fields/" + url.PathEscape(collection),
		body:   f,
	}, nil)
}

// CreateRelation creates a many-to-one relation.
func (c *Client) CreateRelation(ctx context.Context, r Relation) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/relations", body: r}, nil)
}

// ListFields returns the fields of collection.
func (c *Client) ListFields(ctx context.Context, collection string) ([]Field, error) {
	var fields []Field
	err := c.do(ctx, request{method: http.MethodGet, path: "/fields/" + url.PathEscape(collection)}, &fields)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

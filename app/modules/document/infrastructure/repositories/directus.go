package documentdb

import (
	"context"
	"errors"
	"fmt"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ErrNotFound is returned when a requirement or document does not exist.
var ErrNotFound = errors.New("not found")

// Impl stores requirements and provider documents in Directus collections.
type Impl struct {
	client *directus.Client
}

// NewRepository creates a Directus-backed document repository.
func NewRepository(client *directus.Client) Repository {
	return &Impl{client: client}
}

func (r *Impl) ListRequirements(ctx context.Context, q directus.Query) ([]documentdomain.Requirement, error) {
	return directus.List[documentdomain.Requirement](ctx, r.client, documentdomain.RequirementsCollection, q)
}

func (r *Impl) GetRequirement(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error) {
	req, err := directus.FindByID[documentdomain.Requirement](ctx, r.client, documentdomain.RequirementsCollection, id)
	return req, notFound("requirement", id, err)
}

func (r *Impl) CreateRequirement(ctx context.Context, in any) (*documentdomain.Requirement, error) {
	return directus.Create[documentdomain.Requirement](ctx, r.client, documentdomain.RequirementsCollection, in)
}

func (r *Impl) UpdateRequirement(ctx context.Context, id directus.ID, patch any) (*documentdomain.Requirement, error) {
	req, err := directus.Update[documentdomain.Requirement](ctx, r.client, documentdomain.RequirementsCollection, id, patch)
	return req, notFound("requirement", id, err)
}

func (r *Impl) DeleteRequirement(ctx context.Context, id directus.ID) error {
	if _, err := r.GetRequirement(ctx, id); err != nil {
		return err
	}
	return notFound("requirement", id, r.client.DeleteItem(ctx, documentdomain.RequirementsCollection, id))
}

func (r *Impl) ListDocuments(ctx context.Context, q directus.Query) ([]documentdomain.ProviderDocument, error) {
	return directus.List[documentdomain.ProviderDocument](ctx, r.client, documentdomain.ProviderDocumentsCollection, q)
}

func (r *Impl) GetDocument(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error) {
	d, err := directus.FindByID[documentdomain.ProviderDocument](ctx, r.client, documentdomain.ProviderDocumentsCollection, id)
	return d, notFound("document", id, err)
}

func (r *Impl) CreateDocument(ctx context.Context, in any) (*documentdomain.ProviderDocument, error) {
	return directus.Create[documentdomain.ProviderDocument](ctx, r.client, documentdomain.ProviderDocumentsCollection, in)
}

func (r *Impl) UpdateDocument(ctx context.Context, id directus.ID, patch any) (*documentdomain.ProviderDocument, error) {
	d, err := directus.Update[documentdomain.ProviderDocument](ctx, r.client, documentdomain.ProviderDocumentsCollection, id, patch)
	return d, notFound("document", id, err)
}

func notFound(kind string, id directus.ID, err error) error {
	if err != nil && directus.IsNotFound(err) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return err
}

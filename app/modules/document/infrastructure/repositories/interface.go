package documentdb

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Repository defines the contract for requirement and provider document persistence.
type Repository interface {
	ListRequirements(ctx context.Context, q directus.Query) ([]documentdomain.Requirement, error)
	GetRequirement(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error)
	CreateRequirement(ctx context.Context, in any) (*documentdomain.Requirement, error)
	UpdateRequirement(ctx context.Context, id directus.ID, patch any) (*documentdomain.Requirement, error)
	DeleteRequirement(ctx context.Context, id directus.ID) error

	ListDocuments(ctx context.Context, q directus.Query) ([]documentdomain.ProviderDocument, error)
	GetDocument(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error)
	CreateDocument(ctx context.Context, in any) (*documentdomain.ProviderDocument, error)
	UpdateDocument(ctx context.Context, id directus.ID, patch any) (*documentdomain.ProviderDocument, error)
}

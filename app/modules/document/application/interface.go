package documentservice

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Service defines the document service interface.
type Service interface {
	ListRequirements(ctx context.Context, filter documentdomain.RequirementFilter) ([]documentdomain.Requirement, error)
	GetRequirement(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error)
	CreateRequirement(ctx context.Context, in documentdomain.RequirementInput) (*documentdomain.Requirement, error)
	UpdateRequirement(ctx context.Context, id directus.ID, patch documentdomain.RequirementPatch) (*documentdomain.Requirement, error)
	DeleteRequirement(ctx context.Context, id directus.ID) error
	// ApplicableRequirements returns the global requirements plus those of eventID.
	ApplicableRequirements(ctx context.Context, eventID directus.ID) ([]documentdomain.Requirement, error)

	SubmitProviderDocument(ctx context.Context, in documentdomain.SubmitInput) (*documentdomain.ProviderDocument, error)
	ListProviderDocuments(ctx context.Context, providerID directus.ID) ([]documentdomain.ProviderDocument, error)
	GetProviderDocument(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error)
	ReviewProviderDocument(ctx context.Context, id directus.ID, status documentdomain.Status, notes string) (*documentdomain.ProviderDocument, error)

	// Compliance evaluates the provider-level requirements of eventID against
	// the documents providerID has handed in.
	Compliance(ctx context.Context, eventID, providerID directus.ID) (*documentdomain.Compliance, error)
}

// ProviderLookup is the part of the provider service documents depend on.
type ProviderLookup interface {
	GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error)
	GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error)
}

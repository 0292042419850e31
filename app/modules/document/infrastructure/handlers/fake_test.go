package documenthandlers

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// FakeService is a programmable documentservice.Service.
type FakeService struct {
	trace []string

	ListRequirementsFunc       func(ctx context.Context, filter documentdomain.RequirementFilter) ([]documentdomain.Requirement, error)
	GetRequirementFunc         func(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error)
	CreateRequirementFunc      func(ctx context.Context, in documentdomain.RequirementInput) (*documentdomain.Requirement, error)
	UpdateRequirementFunc      func(ctx context.Context, id directus.ID, patch documentdomain.RequirementPatch) (*documentdomain.Requirement, error)
	DeleteRequirementFunc      func(ctx context.Context, id directus.ID) error
	ApplicableRequirementsFunc func(ctx context.Context, eventID directus.ID) ([]documentdomain.Requirement, error)
	SubmitProviderDocumentFunc func(ctx context.Context, in documentdomain.SubmitInput) (*documentdomain.ProviderDocument, error)
	ListProviderDocumentsFunc  func(ctx context.Context, providerID directus.ID) ([]documentdomain.ProviderDocument, error)
	GetProviderDocumentFunc    func(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error)
	ReviewProviderDocumentFunc func(ctx context.Context, id directus.ID, status documentdomain.Status, notes string) (*documentdomain.ProviderDocument, error)
	ComplianceFunc             func(ctx context.Context, eventID, providerID directus.ID) (*documentdomain.Compliance, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) ListRequirements(ctx context.Context, filter documentdomain.RequirementFilter) ([]documentdomain.Requirement, error) {
	f.record("ListRequirements")
	if f.ListRequirementsFunc != nil {
		return f.ListRequirementsFunc(ctx, filter)
	}
	return []documentdomain.Requirement{}, nil
}

func (f *FakeService) GetRequirement(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error) {
	f.record("GetRequirement")
	if f.GetRequirementFunc != nil {
		return f.GetRequirementFunc(ctx, id)
	}
	return &documentdomain.Requirement{ID: id}, nil
}

func (f *FakeService) CreateRequirement(ctx context.Context, in documentdomain.RequirementInput) (*documentdomain.Requirement, error) {
	f.record("CreateRequirement")
	if f.CreateRequirementFunc != nil {
		return f.CreateRequirementFunc(ctx, in)
	}
	return &documentdomain.Requirement{ID: "1", Name: in.Name}, nil
}

func (f *FakeService) UpdateRequirement(ctx context.Context, id directus.ID, patch documentdomain.RequirementPatch) (*documentdomain.Requirement, error) {
	f.record("UpdateRequirement")
	if f.UpdateRequirementFunc != nil {
		return f.UpdateRequirementFunc(ctx, id, patch)
	}
	return &documentdomain.Requirement{ID: id}, nil
}

func (f *FakeService) DeleteRequirement(ctx context.Context, id directus.ID) error {
	f.record("DeleteRequirement")
	if f.DeleteRequirementFunc != nil {
		return f.DeleteRequirementFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ApplicableRequirements(ctx context.Context, eventID directus.ID) ([]documentdomain.Requirement, error) {
	f.record("ApplicableRequirements")
	if f.ApplicableRequirementsFunc != nil {
		return f.ApplicableRequirementsFunc(ctx, eventID)
	}
	return []documentdomain.Requirement{}, nil
}

func (f *FakeService) SubmitProviderDocument(ctx context.Context, in documentdomain.SubmitInput) (*documentdomain.ProviderDocument, error) {
	f.record("SubmitProviderDocument")
	if f.SubmitProviderDocumentFunc != nil {
		return f.SubmitProviderDocumentFunc(ctx, in)
	}
	return &documentdomain.ProviderDocument{ID: "1", ProviderID: in.ProviderID}, nil
}

func (f *FakeService) ListProviderDocuments(ctx context.Context, providerID directus.ID) ([]documentdomain.ProviderDocument, error) {
	f.record("ListProviderDocuments")
	if f.ListProviderDocumentsFunc != nil {
		return f.ListProviderDocumentsFunc(ctx, providerID)
	}
	return []documentdomain.ProviderDocument{}, nil
}

func (f *FakeService) GetProviderDocument(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error) {
	f.record("GetProviderDocument")
	if f.GetProviderDocumentFunc != nil {
		return f.GetProviderDocumentFunc(ctx, id)
	}
	return &documentdomain.ProviderDocument{ID: id}, nil
}

func (f *FakeService) ReviewProviderDocument(ctx context.Context, id directus.ID, status documentdomain.Status, notes string) (*documentdomain.ProviderDocument, error) {
	f.record("ReviewProviderDocument")
	if f.ReviewProviderDocumentFunc != nil {
		return f.ReviewProviderDocumentFunc(ctx, id, status, notes)
	}
	return &documentdomain.ProviderDocument{ID: id, Status: status, Notes: notes}, nil
}

func (f *FakeService) Compliance(ctx context.Context, eventID, providerID directus.ID) (*documentdomain.Compliance, error) {
	f.record("Compliance")
	if f.ComplianceFunc != nil {
		return f.ComplianceFunc(ctx, eventID, providerID)
	}
	return &documentdomain.Compliance{EventID: eventID, ProviderID: providerID, Compliant: true}, nil
}

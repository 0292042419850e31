package schemaservice

import (
	"context"

	"github.com/raynzz/eventdesk/pkg/directus"
)

// FakeSchemaRepo is a programmable schemadb.Repository.
type FakeSchemaRepo struct {
	trace []string

	CreateCollectionFunc func(ctx context.Context, col directus.Collection) error
	CreateFieldFunc      func(ctx context.Context, collection string, f directus.Field) error
	CreateRelationFunc   func(ctx context.Context, r directus.Relation) error
}

func (f *FakeSchemaRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSchemaRepo) Trace() []string {
	return f.trace
}

func (f *FakeSchemaRepo) CreateCollection(ctx context.Context, col directus.Collection) error {
	f.record("CreateCollection:" + col.Collection)
	if f.CreateCollectionFunc != nil {
		return f.CreateCollectionFunc(ctx, col)
	}
	return nil
}

func (f *FakeSchemaRepo) CreateField(ctx context.Context, collection string, fd directus.Field) error {
	f.record("CreateField:" + collection + "." + fd.Field)
	if f.CreateFieldFunc != nil {
		return f.CreateFieldFunc(ctx, collection, fd)
	}
	return nil
}

func (f *FakeSchemaRepo) CreateRelation(ctx context.Context, r directus.Relation) error {
	f.record("CreateRelation:" + r.Collection + "." + r.Field)
	if f.CreateRelationFunc != nil {
		return f.CreateRelationFunc(ctx, r)
	}
	return nil
}

package migrationservice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/raynzz/eventdesk/pkg/directus"
)

// FakeCollections is a programmable migrationdb.Collections. Without
// overrides it serves Sources and hands out sequential ids starting at 100.
type FakeCollections struct {
	trace []string

	Sources map[string][]map[string]any
	Created map[string][]any

	ReadAllFunc func(ctx context.Context, collection string) ([]json.RawMessage, error)
	CreateFunc  func(ctx context.Context, collection string, record any) (directus.ID, error)

	nextID int
}

func (f *FakeCollections) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCollections) Trace() []string {
	return f.trace
}

func (f *FakeCollections) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	f.record("ReadAll:" + collection)
	if f.ReadAllFunc != nil {
		return f.ReadAllFunc(ctx, collection)
	}
	out := make([]json.RawMessage, 0, len(f.Sources[collection]))
	for _, rec := range f.Sources[collection] {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (f *FakeCollections) Create(ctx context.Context, collection string, record any) (directus.ID, error) {
	f.record("Create:" + collection)
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, collection, record)
	}
	if f.Created == nil {
		f.Created = map[string][]any{}
	}
	f.Created[collection] = append(f.Created[collection], record)
	f.nextID++
	return directus.ID(fmt.Sprint(99 + f.nextID)), nil
}

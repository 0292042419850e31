package activityhandlers

import (
	"context"

	activitydomain "github.com/raynzz/eventdesk/app/modules/activity/domain"
)

// FakeService is a programmable activityservice.Service.
type FakeService struct {
	Recorded []activitydomain.Entry
	Limits   []int

	RecordFunc func(ctx context.Context, e activitydomain.Entry) error
}

func (f *FakeService) Record(ctx context.Context, e activitydomain.Entry) error {
	f.Recorded = append(f.Recorded, e)
	if f.RecordFunc != nil {
		return f.RecordFunc(ctx, e)
	}
	return nil
}

func (f *FakeService) Recent(ctx context.Context, limit int) ([]activitydomain.Entry, error) {
	f.Limits = append(f.Limits, limit)
	return []activitydomain.Entry{{ID: "m1", Topic: "t.v1"}}, nil
}

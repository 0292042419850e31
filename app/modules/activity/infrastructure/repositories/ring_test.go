package activitydb

import (
	"strconv"
	"sync"
	"testing"

	activitydomain "github.com/raynzz/eventdesk/app/modules/activity/domain"
	"github.com/stretchr/testify/assert"
)

func ids(es []activitydomain.Entry) []string {
	out := []string{}
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestRing(t *testing.T) {
	r := NewRing(3)
	assert.Empty(t, r.Recent(10))

	r.Add(activitydomain.Entry{ID: "1"})
	r.Add(activitydomain.Entry{ID: "2"})
	assert.Equal(t, []string{"2", "1"}, ids(r.Recent(0)))

	r.Add(activitydomain.Entry{ID: "3"})
	r.Add(activitydomain.Entry{ID: "4"})
	r.Add(activitydomain.Entry{ID: "5"})

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"5", "4", "3"}, ids(r.Recent(10)))
	assert.Equal(t, []string{"5", "4"}, ids(r.Recent(2)))
}

func TestRing_DefaultCapacity(t *testing.T) {
	r := NewRing(0)
	for i := range DefaultCapacity + 10 {
		r.Add(activitydomain.Entry{ID: strconv.Itoa(i)})
	}
	assert.Equal(t, DefaultCapacity, r.Len())
	assert.Equal(t, strconv.Itoa(DefaultCapacity+9), r.Recent(1)[0].ID)
}

func TestRing_ConcurrentAdd(t *testing.T) {
	r := NewRing(50)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				r.Add(activitydomain.Entry{ID: strconv.Itoa(i*100 + j)})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, r.Len())
	assert.Len(t, r.Recent(0), 50)
}

package directus

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Values(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  map[string]string
	}{
		{
			name:  "empty",
			query: Query{},
			want:  map[string]string{},
		},
		{
			name: "all parameters",
			query: Query{
				Fields: []string{"id", "name"},
				Filter: Eq("status", "draft"),
				Search: "fair",
				Sort:   []string{"-start_date", "name"},
				Limit:  LimitAll,
				Offset: 20,
			},
			want: map[string]string{
				"fields": "id,name",
				"filter": `{"status":{"_eq":"draft"}}`,
				"search": "fair",
				"sort":   "-start_date,name",
				"limit":  "-1",
				"offset": "20",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.query.Values()
			require.NoError(t, err)
			got := map[string]string{}
			for k := range v {
				got[k] = v.Get(k)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterCombinators(t *testing.T) {
	f := And(Eq("event_id", ID("3")), nil, In("status", []string{"pending", "approved"}), IsNull("deleted_at"))
	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_and":[
		{"event_id":{"_eq":3}},
		{"status":{"_in":["pending","approved"]}},
		{"deleted_at":{"_null":true}}
	]}`, string(raw))

	single := And(Gte("start_date", "2026-01-01"))
	assert.Equal(t, Gte("start_date", "2026-01-01"), single)
	assert.Nil(t, And())

	raw, err = json.Marshal(Or(Lte("capacity", 10), Neq("status", "cancelled")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"_or":[{"capacity":{"_lte":10}},{"status":{"_neq":"cancelled"}}]}`, string(raw))
}

func TestID_JSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{in: `12`, want: "12"},
		{in: `"12"`, want: "12"},
		{in: `"9b2f1c1e-2a0b-4d8e-8c52-0f0e3a1d2b44"`, want: "9b2f1c1e-2a0b-4d8e-8c52-0f0e3a1d2b44"},
		{in: `null`, want: ""},
		{in: `{"id": 4, "name": "x"}`, want: "4"},
	}
	for _, tt := range tests {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(tt.in), &id), tt.in)
		assert.Equal(t, tt.want, id, tt.in)
	}

	out, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
		D ID `json:"d,omitempty"`
	}{A: "5", B: "abc", C: ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":5,"b":"abc","c":null}`, string(out))

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

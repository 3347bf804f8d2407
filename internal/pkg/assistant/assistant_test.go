package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan_Valid(t *testing.T) {
	raw := `[{"userId":"u1","date":"2025-01-03","start":"10:00","end":"14:00"},
	         {"userId":"u2","date":"2025-01-04","start":"14:00","end":"18:00"}]`

	slots, err := ParsePlan(raw)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "u1", slots[0].UserID)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), slots[0].Date)
	assert.Equal(t, 10, slots[0].Start.Hour())
	assert.Equal(t, 14, slots[0].End.Hour())
	assert.Equal(t, "u2", slots[1].UserID)
}

func TestParsePlan_WrappedInProse(t *testing.T) {
	raw := "Here is the schedule:\n```json\n[{\"userId\":\"u1\",\"date\":\"2025-01-03\",\"start\":\"10:00\",\"end\":\"14:00\"}]\n```"

	slots, err := ParsePlan(raw)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "u1", slots[0].UserID)
}

func TestParsePlan_Empty(t *testing.T) {
	slots, err := ParsePlan("")
	assert.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = ParsePlan("   \n  ")
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestParsePlan_MalformedDiscardsBatch(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "sure, here is a schedule for you"},
		{"not an array", `{"userId":"u1"}`},
		{"missing field", `[{"userId":"u1","date":"2025-01-03","start":"10:00","end":"14:00"},{"userId":"u2","date":"2025-01-03","start":"10:00"}]`},
		{"bad date", `[{"userId":"u1","date":"Jan 3rd","start":"10:00","end":"14:00"}]`},
		{"bad time", `[{"userId":"u1","date":"2025-01-03","start":"10am","end":"14:00"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := ParsePlan(tc.raw)
			assert.Error(t, err)
			assert.Nil(t, slots)
		})
	}
}

func TestNoopPlanner(t *testing.T) {
	slots, err := NoopPlanner{}.Plan(context.Background(), PlanRequest{})
	assert.NoError(t, err)
	assert.Nil(t, slots)
}

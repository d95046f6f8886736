package model

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodID(t *testing.T) {
	persisted := PersistedID(42)
	n, ok := persisted.Persisted()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	assert.False(t, persisted.IsSynthetic())
	assert.Equal(t, "42", persisted.String())

	synthetic := SyntheticID("uncategorized")
	_, ok = synthetic.Persisted()
	assert.False(t, ok)
	assert.True(t, synthetic.IsSynthetic())
	assert.Equal(t, "uncategorized", synthetic.String())

	assert.NotEqual(t, persisted, synthetic)
	assert.Equal(t, PersistedID(42), persisted)
}

func TestPeriodIDMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		id   PeriodID
		want string
	}{
		{name: "persisted is a number", id: PersistedID(7), want: "7"},
		{name: "synthetic is a string", id: SyntheticID("branch-3-entries"), want: `"branch-3-entries"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := sonic.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestAnchorConstructors(t *testing.T) {
	assert.Equal(t, Anchor{Kind: AnchorEntry, ID: 5}, EntryAnchor(5))
	assert.Equal(t, Anchor{Kind: AnchorPeriod, ID: 9}, PeriodAnchor(9))
	assert.Equal(t, AnchorNone, Anchor{}.Kind)
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreApplyReplacesPresentDatasets(t *testing.T) {
	s := NewStore()

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Apply(&Snapshot{
		Data: map[string][]Row{
			"processlist": {{"app", "10.0.0.5"}},
			"conn_pool":   {{"10.0.0.9", "3306"}},
		},
		FetchedAt: t0,
	})

	assert.Len(t, s.Rows("processlist"), 1)
	assert.Len(t, s.Rows("conn_pool"), 1)
	assert.Equal(t, t0, s.FetchedAt())

	// Next cycle only reaches processlist; conn_pool keeps last good rows.
	t1 := t0.Add(3 * time.Second)
	s.Apply(&Snapshot{
		Data: map[string][]Row{
			"processlist": {{"app", "10.0.0.5"}, {"batch", "10.0.0.6"}},
		},
		FetchedAt: t1,
	})

	assert.Len(t, s.Rows("processlist"), 2)
	assert.Len(t, s.Rows("conn_pool"), 1, "unattempted dataset retains previous rows")
	assert.Equal(t, t1, s.FetchedAt())
}

func TestStoreApplyFailedDatasetGoesEmpty(t *testing.T) {
	s := NewStore()
	s.Apply(&Snapshot{
		Data:      map[string][]Row{"rules": {{"1", "100"}}},
		FetchedAt: time.Now(),
	})

	// Attempted and failed: present with nil rows.
	s.Apply(&Snapshot{
		Data:      map[string][]Row{"rules": nil},
		Failed:    map[string]bool{"rules": true},
		FetchedAt: time.Now(),
	})

	assert.Empty(t, s.Rows("rules"), "failed dataset is replaced, not retained")
}

func TestStoreApplyNil(t *testing.T) {
	s := NewStore()
	s.Apply(nil)
	assert.Empty(t, s.Rows("anything"))
	assert.True(t, s.FetchedAt().IsZero())
}

func TestStoreUnknownDataset(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Rows("never_polled"))
}

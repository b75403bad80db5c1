package netutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeResolver(answers map[string][]string) (*CachingResolver, *int) {
	calls := 0
	r := &CachingResolver{
		cache: make(map[string]string),
		lookupAddr: func(_ context.Context, addr string) ([]string, error) {
			calls++
			if names, ok := answers[addr]; ok {
				return names, nil
			}
			return nil, errors.New("NXDOMAIN")
		},
	}
	return r, &calls
}

func TestShortHostname(t *testing.T) {
	r, _ := fakeResolver(map[string][]string{
		"10.0.0.5": {"db-primary.internal.example.com."},
	})

	assert.Equal(t, "db-primary", r.ShortHostname("10.0.0.5"))
}

func TestShortHostnameStripsPort(t *testing.T) {
	r, _ := fakeResolver(map[string][]string{
		"10.0.0.5": {"db-primary.internal.example.com."},
	})

	assert.Equal(t, "db-primary", r.ShortHostname("10.0.0.5:3306"))
}

func TestShortHostnameCachesHitsAndMisses(t *testing.T) {
	r, calls := fakeResolver(map[string][]string{
		"10.0.0.5": {"db-primary.internal.example.com."},
	})

	r.ShortHostname("10.0.0.5")
	r.ShortHostname("10.0.0.5")
	assert.Equal(t, 1, *calls)

	assert.Equal(t, "", r.ShortHostname("10.0.0.99"))
	assert.Equal(t, "", r.ShortHostname("10.0.0.99"))
	assert.Equal(t, 2, *calls, "negative result cached too")
}

func TestShortHostnameSkipsNonIPAndLoopback(t *testing.T) {
	r, calls := fakeResolver(nil)

	assert.Equal(t, "", r.ShortHostname("already-a-hostname"))
	assert.Equal(t, "", r.ShortHostname("127.0.0.1"))
	assert.Equal(t, "", r.ShortHostname("::1"))
	assert.Equal(t, "", r.ShortHostname(""))
	assert.Equal(t, 0, *calls, "no lookups for non-candidates")
}

func TestShortLabel(t *testing.T) {
	assert.Equal(t, "web1", shortLabel("web1.example.com."))
	assert.Equal(t, "single", shortLabel("single"))
	assert.Equal(t, "single", shortLabel("single."))
}

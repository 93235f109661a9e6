package webutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Best Budget GPU 2026", "best-budget-gpu-2026"},
		{"  RTX 5080: First Look!  ", "rtx-5080-first-look"},
		{"Already-slugged-text", "already-slugged-text"},
		{"çok güzel ürün", "ok-gzel-rn"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestUniqueSlugNoCollision(t *testing.T) {
	slug, err := UniqueSlug("Fresh Title", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh-title", slug)
}

func TestUniqueSlugSuffixes(t *testing.T) {
	taken := map[string]bool{
		"popular-title":   true,
		"popular-title-1": true,
	}
	slug, err := UniqueSlug("Popular Title", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "popular-title-2", slug)
}

func TestUniqueSlugEmptyBase(t *testing.T) {
	slug, err := UniqueSlug("!!!", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "item", slug)
}

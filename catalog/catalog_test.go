package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/iconforge/errors"
)

func TestNew(t *testing.T) {
	c, err := New("",
		IconRecord{Name: "zebra", SourceRef: "svg/zebra.svg", Categories: []string{"general"}},
		IconRecord{Name: "arrow-left", SourceRef: "svg/arrow-left.svg", Tags: []string{"left", "arrow", "left", ""}},
	)
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, c.Version())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"arrow-left", "zebra"}, c.Names())

	r, ok := c.Get("arrow-left")
	require.True(t, ok)
	assert.Equal(t, []string{"arrow", "left"}, r.Tags, "tags are a sorted set")
	assert.Equal(t, []string{}, r.Categories)
	assert.Equal(t, []string{}, r.Contributors, "contributors default to an empty list")

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.True(t, c.Has("zebra"))
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New("1.0.0",
		IconRecord{Name: "star", SourceRef: "a/star.svg"},
		IconRecord{Name: "star", SourceRef: "b/star.svg"},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateName))
	assert.Contains(t, err.Error(), "a/star.svg")
	assert.Contains(t, err.Error(), "b/star.svg")
}

func TestCatalogIsImmutable(t *testing.T) {
	c := MustNew("1.0.0", IconRecord{Name: "heart", Tags: []string{"heart"}, Contributors: []string{"ann"}})

	r, _ := c.Get("heart")
	r.Tags[0] = "changed"
	r.Contributors = append(r.Contributors, "bob")

	names := c.Names()
	names[0] = "changed"

	again, _ := c.Get("heart")
	assert.Equal(t, []string{"heart"}, again.Tags)
	assert.Equal(t, []string{"ann"}, again.Contributors)
	assert.Equal(t, []string{"heart"}, c.Names())
}

func TestContributorsKeepOrder(t *testing.T) {
	c := MustNew("1.0.0", IconRecord{Name: "pen", Contributors: []string{"zoe", "ann", "zoe"}})
	r, _ := c.Get("pen")
	assert.Equal(t, []string{"zoe", "ann", "zoe"}, r.Contributors)
}

func TestIndices(t *testing.T) {
	c := MustNew("1.0.0",
		IconRecord{Name: "zebra", Tags: []string{"zebra"}, Categories: []string{"general"}},
		IconRecord{Name: "arrow-right", Tags: []string{"arrow", "right", "navigation"}, Categories: []string{"navigation"}},
		IconRecord{Name: "arrow-left", Tags: []string{"arrow", "left", "navigation"}, Categories: []string{"navigation"}},
	)

	byCategory := c.ByCategory()
	assert.Equal(t, Index{
		"navigation": {"arrow-left", "arrow-right"},
		"general":    {"zebra"},
	}, byCategory)
	assert.Equal(t, []string{"general", "navigation"}, byCategory.Labels())

	byTag := c.ByTag()
	assert.Equal(t, []string{"arrow-left", "arrow-right"}, byTag["arrow"])
	assert.Equal(t, []string{"arrow-left"}, byTag["left"])
	assert.Equal(t, []string{"zebra"}, byTag["zebra"])
}

func TestEmptyCatalog(t *testing.T) {
	c := MustNew("1.0.0")
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
	assert.Empty(t, c.Records())
	assert.Empty(t, c.ByCategory())
}

func TestSortedSet(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SortedSet([]string{"b", "a", "b", ""}))
	assert.Equal(t, []string{}, SortedSet(nil))
}

package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/errors"
)

var cppLike = Options{
	DigitPrefix:   "Icon_",
	KeywordPrefix: "icon_",
	Reserved:      map[string]bool{"delete": true, "new": true, "int": true},
}

func TestSymbolFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"arrow-left", "arrow_left"},
		{"a_b", "a_b"},
		{"a!b", "a_b"},
		{"zebra", "zebra"},
		{"1st-place", "Icon_1st_place"},
		{"3d", "Icon_3d"},
		{"delete", "icon_delete"},
		{"new", "icon_new"},
		{"int", "icon_int"},
		{"delete-2", "delete_2"},
		{"café", "caf_"},      // one multi-byte rune, one underscore
		{"a.b c", "a_b_c"},
		{"MixedCase", "MixedCase"},
		{"_private", "_private"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolFor(tt.name, cppLike))
		})
	}
}

func TestSymbolForExport(t *testing.T) {
	opts := Options{DigitPrefix: "Icon_", KeywordPrefix: "Icon_", Export: true, Reserved: map[string]bool{"Icon": true}}

	tests := []struct {
		name string
		want string
	}{
		{"arrow-left", "Arrow_left"},
		{"type", "Type"},
		{"1st", "Icon_1st"},
		{"_x", "Icon__x"},
		{"icon", "Icon_Icon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolFor(tt.name, opts))
		})
	}
}

func TestAssignSortsByName(t *testing.T) {
	ids, err := Assign([]string{"zebra", "arrow-right", "arrow-left"}, cppLike)
	require.NoError(t, err)

	assert.Equal(t, []Identifier{
		{Name: "arrow-left", Symbol: "arrow_left", Ordinal: 0},
		{Name: "arrow-right", Symbol: "arrow_right", Ordinal: 1},
		{Name: "zebra", Symbol: "zebra", Ordinal: 2},
	}, ids)
}

func TestAssignRejectsNormalizedCollision(t *testing.T) {
	// both names normalize to a_b
	_, err := Assign([]string{"a_b", "a!b"}, cppLike)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIdentifierCollision))
	assert.Contains(t, err.Error(), `"a!b" and "a_b" both map to symbol "a_b"`)
	assert.NotEmpty(t, errors.GetAllHints(err))

	// Escaping can collide with a literal name too
	_, err = Assign([]string{"delete", "icon_delete"}, cppLike)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIdentifierCollision))
	assert.Contains(t, err.Error(), `"delete" and "icon_delete"`)
}

func TestAssignRejectsDuplicates(t *testing.T) {
	_, err := Assign([]string{"pen", "pen"}, cppLike)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateName))
}

func TestAssignOrdinalStability(t *testing.T) {
	before, err := Assign([]string{"heart", "arrow-up", "mail"}, cppLike)
	require.NoError(t, err)
	after, err := Assign([]string{"heart", "arrow-up", "mail", "zzz-last"}, cppLike)
	require.NoError(t, err)

	require.Len(t, after, len(before)+1)
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, Identifier{Name: "zzz-last", Symbol: "zzz_last", Ordinal: 3}, after[3])
}

func TestAssignDoesNotReorderInput(t *testing.T) {
	names := []string{"b", "a"}
	_, err := Assign(names, cppLike)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestAssignByteOrder(t *testing.T) {
	ids, err := Assign([]string{"a-b", "a_b0", "B", "a"}, cppLike)
	require.NoError(t, err)

	var names []string
	for _, id := range ids {
		names = append(names, id.Name)
	}
	assert.Equal(t, []string{"B", "a", "a-b", "a_b0"}, names)
}

func TestNewSet(t *testing.T) {
	c := catalog.MustNew("4.2.0",
		catalog.IconRecord{Name: "zebra"},
		catalog.IconRecord{Name: "arrow-left"},
	)

	set, err := NewSet(c, cppLike)
	require.NoError(t, err)
	assert.Equal(t, "4.2.0", set.Version)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "arrow_left", set.Identifiers[0].Symbol)

	empty, err := NewSet(catalog.MustNew(""), cppLike)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

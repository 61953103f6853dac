package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/iconforge/am"
	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/errors"
	forgetest "github.com/teranos/iconforge/internal/testing"
)

func newPipeline(t *testing.T, cfg *am.Config) *Pipeline {
	t.Helper()
	return New(cfg, zaptest.NewLogger(t).Sugar())
}

func TestBuildArrowsAndZebra(t *testing.T) {
	cfg := forgetest.NewProject(t, "zebra", "arrow-right", "arrow-left")

	result, err := newPipeline(t, cfg).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Icons)
	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)

	assert.Equal(t, []string{
		".iconforge.stamp",
		"include/Iconforge/IconforgeEnums.h",
		"include/Iconforge/IconforgeStrings.h",
		"resources/icons/icons.qrc",
		"resources/icons/metadata/categories.json",
		"resources/icons/metadata/icons.json",
		"resources/icons/metadata/tags.json",
		"resources/icons/svg/arrow-left.svg",
		"resources/icons/svg/arrow-right.svg",
		"resources/icons/svg/zebra.svg",
	}, forgetest.ListFiles(t, cfg.Root))

	enums, err := os.ReadFile(filepath.Join(cfg.IncludeDir(), "IconforgeEnums.h"))
	require.NoError(t, err)
	assert.Contains(t, string(enums), "    arrow_left = 0,\n    arrow_right = 1,\n    zebra = 2\n")
	assert.NotContains(t, string(enums), result.RunID, "run IDs stay out of artifacts")

	stamp, err := os.ReadFile(cfg.StampPath())
	require.NoError(t, err)
	assert.Empty(t, stamp)
}

func TestBuildIsDeterministic(t *testing.T) {
	first := forgetest.NewProject(t, "b", "a", "c-d")
	second := forgetest.NewProject(t, "c-d", "a", "b")
	for _, cfg := range []*am.Config{first, second} {
		cfg.Generate.Languages = []string{"cpp", "go"}
		_, err := newPipeline(t, cfg).Build(context.Background())
		require.NoError(t, err)
	}

	files := forgetest.ListFiles(t, first.Root)
	require.Equal(t, files, forgetest.ListFiles(t, second.Root))
	for _, rel := range files {
		a, err := os.ReadFile(filepath.Join(first.Root, rel))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second.Root, rel))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), rel)
	}
}

func TestBuildGoTarget(t *testing.T) {
	cfg := forgetest.NewProject(t, "star")
	cfg.Generate.Languages = []string{"go"}

	result, err := newPipeline(t, cfg).Build(context.Background())
	require.NoError(t, err)

	goFile := filepath.Join(cfg.GoDir(), "icons.go")
	assert.Contains(t, result.Written, goFile)
	assert.FileExists(t, goFile)
	assert.NoDirExists(t, cfg.IncludeDir())
}

func TestBuildMissingSourceDir(t *testing.T) {
	cfg := am.Defaults(t.TempDir())

	result, err := newPipeline(t, cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Icons)
	assert.FileExists(t, cfg.StampPath())
}

func TestBuildCollisionWritesNothing(t *testing.T) {
	cfg := forgetest.NewProject(t, "a-b", "a_b")

	_, err := newPipeline(t, cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIdentifierCollision))
	assert.Contains(t, err.Error(), `"a-b" and "a_b" both map to symbol "a_b"`)

	assert.NoDirExists(t, cfg.IncludeDir())
	assert.NoDirExists(t, cfg.MetadataDir())
	assert.NoFileExists(t, cfg.ManifestPath())
	assert.NoFileExists(t, cfg.StampPath())
}

func TestBuildCollisionKeepsPreviousManifest(t *testing.T) {
	cfg := forgetest.NewProject(t, "a-b")
	_, err := newPipeline(t, cfg).Build(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(cfg.ManifestPath())
	require.NoError(t, err)

	forgetest.WriteIcons(t, cfg.SourceDir(), "a_b")
	_, err = newPipeline(t, cfg).Build(context.Background())
	require.Error(t, err)

	after, err := os.ReadFile(cfg.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	names, err := catalog.NewStore(cfg.MetadataDir()).LoadNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"a-b"}, names)
}

func TestBuildHooks(t *testing.T) {
	cfg := forgetest.NewProject(t, "star")
	cfg.Build.Hooks = []string{"touch 'hooked file'", "sh -c 'test -f \"hooked file\"'"}

	_, err := newPipeline(t, cfg).Build(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.Root, "hooked file"))
	assert.FileExists(t, cfg.StampPath())
}

func TestBuildFailingHookKeepsStamp(t *testing.T) {
	cfg := forgetest.NewProject(t, "star")
	forgetest.WriteFile(t, cfg.StampPath(), "")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(cfg.StampPath(), old, old))

	cfg.Build.Hooks = []string{"sh -c 'echo compiler exploded; exit 3'"}

	_, err := newPipeline(t, cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDownstreamTool))
	assert.Contains(t, err.Error(), "build.hooks[0]")
	assert.Contains(t, strings.Join(errors.GetAllDetails(err), "\n"), "compiler exploded")

	info, err := os.Stat(cfg.StampPath())
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "stamp untouched after a failed run")
}

func TestRunHookErrors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		kind    error
	}{
		{"unbalanced quotes", `echo "oops`, errors.ErrInvalidConfig},
		{"blank", "   ", errors.ErrInvalidConfig},
		{"missing binary", "iconforge-no-such-tool --flag", errors.ErrDownstreamTool},
		{"non-zero exit", "false", errors.ErrDownstreamTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runHook(context.Background(), t.TempDir(), tt.command)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

// Generate and manifest on their own need a metadata store.
func TestStagesWithoutStore(t *testing.T) {
	cfg := forgetest.NewProject(t, "star")
	before := forgetest.ListFiles(t, cfg.Root)

	_, err := newPipeline(t, cfg).LoadCatalog()
	require.Error(t, err)
	assert.True(t, errors.IsMissingInput(err))
	assert.Contains(t, err.Error(), filepath.Join(cfg.MetadataDir(), catalog.IconsFile))

	assert.Equal(t, before, forgetest.ListFiles(t, cfg.Root), "nothing written")
}

func TestStagesFromStore(t *testing.T) {
	cfg := forgetest.NewProject(t, "star", "moon")
	p := newPipeline(t, cfg)

	_, err := p.Synth(context.Background())
	require.NoError(t, err)

	c, err := p.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"moon", "star"}, c.Names())

	path, err := p.Manifest(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, cfg.ManifestPath(), path)

	written, err := p.Generate(context.Background(), c, []string{LanguageAll})
	require.NoError(t, err)
	assert.Len(t, written, 3)
	assert.NoFileExists(t, cfg.StampPath())
}

func TestGenerators(t *testing.T) {
	p := newPipeline(t, am.Defaults(t.TempDir()))

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"configured", nil, []string{"cpp"}},
		{"all", []string{LanguageAll}, []string{"cpp", "go"}},
		{"explicit", []string{"go"}, []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gens, err := p.Generators(tt.in)
			require.NoError(t, err)
			var got []string
			for _, g := range gens {
				got = append(got, g.Language())
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := p.Generators([]string{"rust"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestCheck(t *testing.T) {
	cfg := forgetest.NewProject(t, "star", "moon")
	p := newPipeline(t, cfg)

	result, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Len(t, result.Missing, 6)

	_, err = p.Build(context.Background())
	require.NoError(t, err)

	result, err = p.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.UpToDate, "stale=%v missing=%v", result.Stale, result.Missing)

	forgetest.WriteIcons(t, cfg.SourceDir(), "sun")

	result, err = p.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Contains(t, result.Stale, cfg.ManifestPath())
	assert.Contains(t, result.Stale, filepath.Join(cfg.IncludeDir(), "IconforgeEnums.h"))
	assert.Empty(t, result.Missing)
}

func TestBuildWritesOptimizedSVGs(t *testing.T) {
	cfg := forgetest.NewProject(t, "moon")
	forgetest.WriteFile(t, filepath.Join(cfg.SourceDir(), "star.svg"), "<?xml version=\"1.0\"?>\n<svg>\n  <path/>\n</svg>\n")
	cfg.Paths.Optimized = "resources/icons/optimized"
	p := newPipeline(t, cfg)

	result, err := p.Build(context.Background())
	require.NoError(t, err)

	star := filepath.Join(cfg.OptimizedDir(), "star.svg")
	assert.Contains(t, result.Written, star)
	data, err := os.ReadFile(star)
	require.NoError(t, err)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg"> <path/> </svg>`, string(data))
	assert.FileExists(t, filepath.Join(cfg.OptimizedDir(), "moon.svg"))

	check, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, check.UpToDate, "stale=%v missing=%v", check.Stale, check.Missing)

	forgetest.WriteFile(t, filepath.Join(cfg.SourceDir(), "star.svg"), "<svg><circle/></svg>")
	check, err = p.Check(context.Background())
	require.NoError(t, err)
	assert.Contains(t, check.Stale, star)
}

func TestTouch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "done.stamp")
	require.NoError(t, Touch(path))
	assert.FileExists(t, path)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))
	require.NoError(t, Touch(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(old))
	assert.Zero(t, info.Size())
}

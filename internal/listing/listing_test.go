package listing

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/kantord/enwiro/internal/cookbook"
	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/plugin"
	"github.com/stretchr/testify/require"
)

type fakeCookbook struct {
	priority int
	recipes  []cookbook.Recipe
	err      error
}

func (f *fakeCookbook) Metadata() int { return f.priority }

func (f *fakeCookbook) ListRecipes() ([]cookbook.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes, nil
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Notice(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func newTestPipeline(t *testing.T, cookbooks map[string]*fakeCookbook, logger Logger) *Pipeline {
	store := envstore.New(filepath.Join(t.TempDir(), "workspaces"))
	if logger == nil {
		logger = &recordingLogger{}
	}
	p := New(store, logger)

	descs := make([]plugin.Descriptor, 0, len(cookbooks))
	for name := range cookbooks {
		descs = append(descs, plugin.Descriptor{Role: plugin.RoleCookbook, ShortName: name, Path: "/fake/" + name})
	}
	p.discover = func() ([]plugin.Descriptor, error) { return descs, nil }
	p.newCookbook = func(shortName, path string) recipeLister { return cookbooks[shortName] }
	p.now = time.Now
	return p
}

func TwoCookbooksDistinctPriorities(t *testing.T) *Pipeline {
	return newTestPipeline(t, map[string]*fakeCookbook{
		"git": {priority: 10, recipes: []cookbook.Recipe{
			{Name: "alpha"}, {Name: "beta"},
		}},
		"github": {priority: 30, recipes: []cookbook.Recipe{
			{Name: "gamma"},
		}},
	}, nil)
}

func TestListAll_OrdersByPriorityThenPreservesRecipeOrder(t *testing.T) {
	p := TwoCookbooksDistinctPriorities(t)

	items, err := p.ListAll()
	require.NoError(t, err)

	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	require.Equal(t, []string{"alpha", "beta", "gamma"}, names)
}

func TestListAll_ExistingEnvironmentHidesRecipeButIsEmittedFirst(t *testing.T) {
	p := TwoCookbooksDistinctPriorities(t)
	require.NoError(t, p.Store.Create("alpha", "/tmp/alpha", nil))

	items, err := p.ListAll()
	require.NoError(t, err)

	require.Len(t, items, 3)
	require.Equal(t, "alpha", items[0].Name)
	require.True(t, items[0].IsEnvironment)
	require.Equal(t, "beta", items[1].Name)
	require.False(t, items[1].IsEnvironment)
	require.Equal(t, "gamma", items[2].Name)
}

func TestListAll_FailingCookbookIsSkippedNotFatal(t *testing.T) {
	logger := &recordingLogger{}
	p := newTestPipeline(t, map[string]*fakeCookbook{
		"git": {priority: 10, err: fmt.Errorf("boom")},
		"github": {priority: 30, recipes: []cookbook.Recipe{
			{Name: "gamma"},
		}},
	}, logger)

	items, err := p.ListAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "gamma", items[0].Name)

	require.Len(t, logger.warnings, 1)
	require.Contains(t, logger.warnings[0], "git")
	require.Contains(t, logger.warnings[0], "boom")
}

func TestListAll_CookbooksWithSamePriorityOrderByShortName(t *testing.T) {
	p := newTestPipeline(t, map[string]*fakeCookbook{
		"zeta": {priority: 10, recipes: []cookbook.Recipe{{Name: "z1"}}},
		"alfa": {priority: 10, recipes: []cookbook.Recipe{{Name: "a1"}}},
	}, nil)

	items, err := p.ListAll()
	require.NoError(t, err)
	require.Equal(t, "a1", items[0].Name)
	require.Equal(t, "z1", items[1].Name)
}

func TestListEnvironments_FrecencySortsDescendingThenNameAscending(t *testing.T) {
	store := envstore.New(filepath.Join(t.TempDir(), "workspaces"))
	p := New(store, nil)

	require.NoError(t, store.Create("alpha", "/tmp/alpha", nil))
	require.NoError(t, store.Create("beta", "/tmp/beta", nil))
	require.NoError(t, store.Create("zeta", "/tmp/zeta", nil)) // never activated

	// alpha: count=10, activated just now.
	for i := 0; i < 10; i++ {
		require.NoError(t, store.RecordActivation("alpha"))
	}
	// beta: count=1, activated just now — recent but much lower count.
	require.NoError(t, store.RecordActivation("beta"))

	summaries, err := p.ListEnvironments()
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	require.Equal(t, "alpha", summaries[0].Name)
	require.Equal(t, "beta", summaries[1].Name)

	// zeta has no last_activated_at, so it scores 0 and sorts last.
	require.Equal(t, "zeta", summaries[2].Name)
	require.Equal(t, 0.0, summaries[2].Score)
}

func TestKnownNames_IncludesEnvironmentsAndRecipes(t *testing.T) {
	p := TwoCookbooksDistinctPriorities(t)
	require.NoError(t, p.Store.Create("delta", "/tmp/delta", nil))

	names, err := p.KnownNames()
	require.NoError(t, err)
	require.Contains(t, names, "delta")
	require.Contains(t, names, "alpha")
	require.Contains(t, names, "gamma")
}

// Package listing composes the aggregated recipe/environment listing: it
// fans out to every discovered cookbook, merges results under a
// deterministic priority+name ordering, filters recipes already cooked
// into environments, and orders environments by frecency.
package listing

import (
	"sort"
	"sync"
	"time"

	"github.com/kantord/enwiro/internal/cookbook"
	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/plugin"
)

// Logger receives non-fatal diagnostics, such as a cookbook being
// skipped after a failed invocation. internal/output.Writer satisfies
// this via its Notice method.
type Logger interface {
	Notice(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Notice(string, ...interface{}) {}

// EnvSummary is one environment as it appears in a frecency-ordered
// listing.
type EnvSummary struct {
	Name   string
	Target string
	Stats  envstore.Stats
	Score  float64
}

// Item is one entry in the aggregated list_all output: either an
// existing environment, or a recipe offered by a cookbook.
type Item struct {
	SourceCookbook string // empty for environments
	Name           string
	Description    *string
	IsEnvironment  bool
}

// recipeLister is the subset of cookbook.Client's behavior the pipeline
// depends on, so tests can supply fakes without spawning processes.
type recipeLister interface {
	Metadata() int
	ListRecipes() ([]cookbook.Recipe, error)
}

type rankedCookbook struct {
	shortName string
	path      string
	priority  int
	client    recipeLister
}

// Pipeline composes listings from a Store and whatever cookbooks are
// discovered at call time.
type Pipeline struct {
	Store  *envstore.Store
	Logger Logger

	discover    func() ([]plugin.Descriptor, error)
	newCookbook func(shortName, path string) recipeLister
	now         func() time.Time
}

// New creates a Pipeline backed by real plugin discovery and cookbook
// invocation.
func New(store *envstore.Store, logger Logger) *Pipeline {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Pipeline{
		Store:  store,
		Logger: logger,
		discover: func() ([]plugin.Descriptor, error) {
			return plugin.Discover()
		},
		newCookbook: func(shortName, path string) recipeLister {
			return cookbook.New(shortName, path)
		},
		now: time.Now,
	}
}

// ListEnvironments returns every known environment, joined with its
// metadata, sorted by frecency score descending and then name ascending.
func (p *Pipeline) ListEnvironments() ([]EnvSummary, error) {
	entries, err := p.Store.List()
	if err != nil {
		return nil, err
	}

	now := p.now()
	summaries := make([]EnvSummary, 0, len(entries))
	for _, e := range entries {
		stats := p.Store.Load(e.Name)
		summaries = append(summaries, EnvSummary{
			Name:   e.Name,
			Target: e.Target,
			Stats:  stats,
			Score:  envstore.FrecencyScore(stats, now),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Score != summaries[j].Score {
			return summaries[i].Score > summaries[j].Score
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// rankedCookbooks discovers every cookbook plugin, fetches its priority
// via metadata(), and orders the result by (priority asc, short_name
// asc).
func (p *Pipeline) rankedCookbooks() ([]rankedCookbook, error) {
	descs, err := p.discover()
	if err != nil {
		return nil, err
	}

	var out []rankedCookbook
	for _, d := range descs {
		if d.Role != plugin.RoleCookbook {
			continue
		}
		client := p.newCookbook(d.ShortName, d.Path)
		out = append(out, rankedCookbook{
			shortName: d.ShortName,
			path:      d.Path,
			priority:  client.Metadata(),
			client:    client,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].shortName < out[j].shortName
	})
	return out, nil
}

// CookbookRecipes is one cookbook's contribution to a listing: its
// effective priority and the recipes it returned, in return order. This
// is the unit the cache daemon persists to recipes.cache. Path is the
// absolute executable path used to invoke the cookbook at collection
// time; the CLI's cook-on-resolve path invokes cook through it.
type CookbookRecipes struct {
	ShortName string
	Path      string
	Priority  int
	Recipes   []cookbook.Recipe
}

// CollectCookbookRecipes discovers every cookbook, fetches its priority,
// orders cookbooks by (priority asc, short_name asc), and invokes
// list-recipes on each — fanned out concurrently, joined by slot index
// so the result order never depends on completion order. A cookbook
// whose list-recipes invocation fails is logged and contributes no
// recipes; it is not fatal to the overall collection.
//
// This is the expensive half of list_all (it shells out to every
// cookbook) and is what the cache daemon refreshes on a timer.
func (p *Pipeline) CollectCookbookRecipes() ([]CookbookRecipes, error) {
	cookbooks, err := p.rankedCookbooks()
	if err != nil {
		return nil, err
	}

	recipesBySlot := make([][]cookbook.Recipe, len(cookbooks))
	var wg sync.WaitGroup
	for i, cb := range cookbooks {
		wg.Add(1)
		go func(i int, cb rankedCookbook) {
			defer wg.Done()
			recipes, err := cb.client.ListRecipes()
			if err != nil {
				p.Logger.Notice("skipping cookbook %s: %v\n", cb.shortName, err)
				return
			}
			recipesBySlot[i] = recipes
		}(i, cb)
	}
	wg.Wait()

	out := make([]CookbookRecipes, len(cookbooks))
	for i, cb := range cookbooks {
		out[i] = CookbookRecipes{ShortName: cb.shortName, Path: cb.path, Priority: cb.priority, Recipes: recipesBySlot[i]}
	}
	return out, nil
}

// BuildItems performs steps 5-6 of list_all given an already-collected
// environment set and cookbook recipe groups: it filters out recipes
// whose name already names an environment, then emits environments
// first (in the order given, expected to already be frecency-sorted)
// followed by the filtered recipes in cookbook order. It is the shared
// tail between the live pipeline and the cache client's fast path.
func BuildItems(envSummaries []EnvSummary, groups []CookbookRecipes) []Item {
	existing := make(map[string]bool, len(envSummaries))
	for _, e := range envSummaries {
		existing[e.Name] = true
	}

	items := make([]Item, 0, len(envSummaries))
	for _, e := range envSummaries {
		items = append(items, Item{Name: e.Name, IsEnvironment: true})
	}

	for _, g := range groups {
		for _, r := range g.Recipes {
			if existing[r.Name] {
				continue
			}
			items = append(items, Item{
				SourceCookbook: g.ShortName,
				Name:           r.Name,
				Description:    r.Description,
				IsEnvironment:  false,
			})
		}
	}

	return items
}

// ListAll performs the full, synchronous aggregation: environments
// first (in frecency order), then recipes in cookbook order with each
// cookbook's own return order preserved, excluding any recipe whose
// name already names an environment.
func (p *Pipeline) ListAll() ([]Item, error) {
	envSummaries, err := p.ListEnvironments()
	if err != nil {
		return nil, err
	}

	groups, err := p.CollectCookbookRecipes()
	if err != nil {
		return nil, err
	}

	return BuildItems(envSummaries, groups), nil
}

// KnownNames returns every name list_all would emit — environments and
// offered recipes alike — for "did you mean" suggestion lookups when a
// user-supplied name resolves to neither.
func (p *Pipeline) KnownNames() ([]string, error) {
	items, err := p.ListAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names, nil
}

package cli

import (
	"github.com/kantord/enwiro/internal/cookbook"
	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
)

// findRecipe returns the short name and executable path of the first
// cookbook (in the groups' existing priority order) offering a recipe
// named name.
func findRecipe(groups []listing.CookbookRecipes, name string) (shortName, path string, ok bool) {
	for _, g := range groups {
		for _, r := range g.Recipes {
			if r.Name == name {
				return g.ShortName, g.Path, true
			}
		}
	}
	return "", "", false
}

// resolveOrCook resolves name to a working directory: an existing
// environment's target directory, or — failing that — the directory a
// matching recipe cooks into, which is recorded as a new environment
// with its origin cookbook. ok is false when name is empty or matches
// neither an environment nor any offered recipe.
func resolveOrCook(name string, store *envstore.Store, pipeline *listing.Pipeline) (dir string, ok bool, err error) {
	if name == "" {
		return "", false, nil
	}

	if target, exists, err := store.Resolve(name); err != nil {
		return "", false, err
	} else if exists {
		return target, true, nil
	}

	groups, err := pipeline.CollectCookbookRecipes()
	if err != nil {
		return "", false, err
	}
	shortName, path, found := findRecipe(groups, name)
	if !found {
		return "", false, nil
	}

	target, err := cookbook.New(shortName, path).Cook(name)
	if err != nil {
		return "", false, err
	}
	if err := store.Create(name, target, &shortName); err != nil {
		return "", false, err
	}
	return target, true, nil
}

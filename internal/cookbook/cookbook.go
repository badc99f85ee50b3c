// Package cookbook implements the cookbook plugin protocol: metadata,
// list-recipes, and cook, layered on top of internal/plugin's subprocess
// client.
package cookbook

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kantord/enwiro/internal/enwiroerr"
	"github.com/kantord/enwiro/internal/plugin"
)

// DefaultPriority is the priority assigned when a cookbook's metadata is
// absent, unreachable, or unparseable.
const DefaultPriority = 50

// Recipe is a blueprint for an environment, produced on demand by a
// cookbook's list-recipes output. Recipes are never persisted.
type Recipe struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Origin      string  `json:"origin,omitempty"` // short name of the cookbook that produced this recipe
}

// Client wraps a single discovered cookbook plugin.
type Client struct {
	ShortName string
	Path      string
}

// New creates a Client for the cookbook at path.
func New(shortName, path string) *Client {
	return &Client{ShortName: shortName, Path: path}
}

// recipeLine is the JSON shape of one list-recipes output line.
type recipeLine struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// metadataDoc is the JSON shape of the metadata subcommand's output.
type metadataDoc struct {
	DefaultPriority *int `json:"defaultPriority"`
}

// Metadata invokes "metadata" and returns the cookbook's default
// priority. Any failure — invocation error, empty stdout, malformed
// JSON, missing or non-integer defaultPriority — yields DefaultPriority
// without propagating an error, per the cookbook protocol's tolerant
// metadata contract.
func (c *Client) Metadata() int {
	res, err := plugin.Run(plugin.RoleCookbook, c.ShortName, c.Path, "metadata")
	if err != nil || strings.TrimSpace(res.Stdout) == "" {
		return DefaultPriority
	}

	var doc metadataDoc
	if err := json.Unmarshal([]byte(res.Stdout), &doc); err != nil {
		return DefaultPriority
	}
	if doc.DefaultPriority == nil {
		return DefaultPriority
	}
	return *doc.DefaultPriority
}

// ListRecipes invokes "list-recipes" and parses the newline-delimited
// JSON objects it returns. Order is preserved exactly as produced.
//
// Parsing uses a manual byte scan (not bufio.Scanner) to avoid the
// scanner's default per-line size ceiling — a cookbook is free to return
// arbitrarily long descriptions.
//
// If invocation fails, the error is returned as-is so the caller (the
// listing pipeline) can log and skip this cookbook while continuing with
// others. If invocation succeeds but any non-empty line is malformed, the
// whole response is rejected with a PluginProtocolError.
func (c *Client) ListRecipes() ([]Recipe, error) {
	res, err := plugin.Run(plugin.RoleCookbook, c.ShortName, c.Path, "list-recipes")
	if err != nil {
		return nil, err
	}

	var recipes []Recipe
	for _, line := range splitLines(res.Stdout) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var rl recipeLine
		if err := json.Unmarshal([]byte(line), &rl); err != nil {
			return nil, enwiroerr.NewPluginProtocolError(string(plugin.RoleCookbook), c.ShortName,
				fmt.Sprintf("malformed list-recipes line: %v", err))
		}
		if rl.Name == "" || strings.ContainsAny(rl.Name, "\n\x00") {
			return nil, enwiroerr.NewPluginProtocolError(string(plugin.RoleCookbook), c.ShortName,
				fmt.Sprintf("invalid recipe name %q", rl.Name))
		}

		recipes = append(recipes, Recipe{
			Name:        rl.Name,
			Description: rl.Description,
			Origin:      c.ShortName,
		})
	}

	return recipes, nil
}

// Cook invokes "cook <name>" and returns the absolute path the cookbook
// reports it materialized the recipe into. Leading/trailing whitespace is
// trimmed. The result must be an absolute path (it need not exist — the
// cookbook decides that); a relative path is rejected.
func (c *Client) Cook(name string) (string, error) {
	res, err := plugin.Run(plugin.RoleCookbook, c.ShortName, c.Path, "cook", name)
	if err != nil {
		return "", err
	}

	path := strings.TrimSpace(res.Stdout)
	if path == "" {
		return "", enwiroerr.NewPluginProtocolError(string(plugin.RoleCookbook), c.ShortName,
			"cook returned an empty path")
	}
	if !filepath.IsAbs(path) {
		return "", enwiroerr.NewPluginProtocolError(string(plugin.RoleCookbook), c.ShortName,
			fmt.Sprintf("cook returned a relative path %q", path))
	}

	return path, nil
}

// splitLines splits s on '\n' without the per-token size limit that
// bufio.Scanner imposes by default. Blank lines (including the one a
// trailing newline produces) are left in; callers skip them.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Package adapter implements the adapter plugin protocol: get-active and
// activate, layered on top of internal/plugin's subprocess client.
package adapter

import (
	"strings"

	"github.com/kantord/enwiro/internal/plugin"
)

// Client wraps a single discovered adapter plugin.
type Client struct {
	ShortName string
	Path      string
}

// New creates a Client for the adapter at path.
func New(shortName, path string) *Client {
	return &Client{ShortName: shortName, Path: path}
}

// ActiveEnvironmentName invokes "get-active" and returns the trimmed
// environment name, or "" if the adapter reports no active environment.
func (c *Client) ActiveEnvironmentName() (string, error) {
	res, err := plugin.Run(plugin.RoleAdapter, c.ShortName, c.Path, "get-active")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Activate invokes "activate <name>" to switch the window manager's
// workspace to the given environment.
func (c *Client) Activate(name string) error {
	_, err := plugin.Run(plugin.RoleAdapter, c.ShortName, c.Path, "activate", name)
	return err
}

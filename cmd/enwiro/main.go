// Command enwiro binds window-manager workspaces to project
// environments through pluggable cookbook, adapter, and bridge plugins.
package main

import "github.com/kantord/enwiro/internal/cli"

func main() {
	cli.Execute()
}

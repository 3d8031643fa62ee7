package main

import (
	"fmt"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Run executes the github command.
func (c *GitHubCmd) Run(deps *Dependencies) error {
	docs, err := deps.Query.GitHubResources(deps.Ctx, crossmcp.GitHubResourcesOptions{
		Type:        crossmcp.GitHubResourceType(c.Type),
		IncludeCode: !c.NoCode,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No repository resources found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, crossmcp.FormatDocuments(docs))
	return nil
}

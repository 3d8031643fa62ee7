package main

import (
	"fmt"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Query.SearchDocuments(deps.Ctx, c.Query, c.Category, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, crossmcp.FormatResults(results))
	return nil
}

// Run executes the doc command.
func (c *DocCmd) Run(deps *Dependencies) error {
	doc, err := deps.Query.DocumentByID(deps.Ctx, c.ID)
	if crossmcp.ErrorCode(err) == crossmcp.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'crossmcp search' to find document IDs.\n", crossmcp.ErrorMessage(err))
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, crossmcp.FormatDocuments([]*crossmcp.Document{doc}))
	return nil
}

// Package crossmcp serves the CROSS developer documentation and related
// GitHub repository snapshots to AI tooling. It fetches a configured list
// of sources, normalizes them into documents held in a time-expiring
// in-memory store, and answers fuzzy ranked searches over them through a
// small set of MCP tools.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, github/, smetrics/).
package crossmcp

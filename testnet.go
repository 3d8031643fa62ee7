package crossmcp

import (
	"maps"
	"slices"
	"strings"
)

// TestnetKind selects a testnet instruction record.
type TestnetKind string

// Testnet record kinds. TestnetAll selects every record.
const (
	TestnetFaucet  TestnetKind = "faucet"
	TestnetSetup   TestnetKind = "setup"
	TestnetDevMode TestnetKind = "dev-mode"
	TestnetAll     TestnetKind = "all"
)

// TestnetLink is a titled reference URL.
type TestnetLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TestnetInfo is a static instructional record about the CROSS testnet.
type TestnetInfo struct {
	Kind        TestnetKind       `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Network     map[string]string `json:"network,omitempty"`
	Steps       []string          `json:"steps"`
	Links       []TestnetLink     `json:"links,omitempty"`
	Notes       []string          `json:"notes,omitempty"`
}

// Clone returns a deep copy of info.
func (info *TestnetInfo) Clone() *TestnetInfo {
	c := *info
	c.Network = maps.Clone(info.Network)
	c.Steps = slices.Clone(info.Steps)
	c.Links = slices.Clone(info.Links)
	c.Notes = slices.Clone(info.Notes)
	return &c
}

var testnetNetwork = map[string]string{
	"name":     "CROSS Testnet",
	"chainId":  "612044",
	"rpcUrl":   "https://testnet.crosstoken.io:22001",
	"explorer": "https://testnet.crossscan.io",
	"currency": "tCROSS",
}

// testnetTable is ordered; LookupTestnetInfo(TestnetAll) returns it as is.
var testnetTable = []*TestnetInfo{
	{
		Kind:        TestnetFaucet,
		Title:       "Getting testnet tokens",
		Description: "The testnet faucet dispenses tCROSS for paying gas while developing. Tokens have no value and the faucet is rate limited per address.",
		Network:     testnetNetwork,
		Steps: []string{
			"Add the CROSS Testnet network to your wallet using the network parameters.",
			"Open the faucet page and connect the wallet or paste the receiving address.",
			"Request tokens; the transfer is confirmed within a few blocks.",
			"Check the balance on the testnet explorer if the wallet does not refresh.",
		},
		Links: []TestnetLink{
			{Title: "Faucet", URL: "https://faucet.crosstoken.io"},
			{Title: "Explorer", URL: "https://testnet.crossscan.io"},
		},
		Notes: []string{
			"Requests are limited to one per address every 24 hours.",
		},
	},
	{
		Kind:        TestnetSetup,
		Title:       "Connecting to the testnet",
		Description: "CROSS is EVM compatible, so standard Ethereum tooling works once it points at the testnet RPC endpoint.",
		Network:     testnetNetwork,
		Steps: []string{
			"Configure the RPC URL and chain ID in your wallet or framework (Hardhat, Foundry).",
			"Fund the deployer account from the faucet.",
			"Deploy contracts with your usual tooling and verify them on the explorer.",
			"Point the CROSS SDK at the testnet environment when initializing it.",
		},
		Links: []TestnetLink{
			{Title: "Developer docs", URL: "https://docs.crosstoken.io"},
		},
	},
	{
		Kind:        TestnetDevMode,
		Title:       "Developer mode",
		Description: "Developer mode in the CROSSx app exposes testnet networks and debugging options for integrating dApps.",
		Steps: []string{
			"Open CROSSx settings and enable developer mode.",
			"Switch the active network to CROSS Testnet.",
			"Connect your dApp through the SDK; requests are signed against the testnet.",
			"Disable developer mode before using mainnet assets.",
		},
		Notes: []string{
			"Testnet and mainnet accounts share keys; keep test and production funds separate.",
		},
	},
}

// LookupTestnetInfo returns copies of the static instruction records for
// kind. An empty kind or TestnetAll returns every record.
// Returns EINVALID for unknown kinds.
func LookupTestnetInfo(kind string) ([]*TestnetInfo, error) {
	k := TestnetKind(strings.ToLower(strings.TrimSpace(kind)))
	var out []*TestnetInfo
	for _, info := range testnetTable {
		if k == "" || k == TestnetAll || info.Kind == k {
			out = append(out, info.Clone())
		}
	}
	if len(out) == 0 {
		return nil, Errorf(EINVALID, "unknown testnet info type %q", kind)
	}
	return out, nil
}

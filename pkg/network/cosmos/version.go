// pkg/network/cosmos/version.go
package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// NodeInfo describes the node behind the REST endpoint.
type NodeInfo struct {
	ChainID    string `json:"chain_id" yaml:"chain_id"`
	Moniker    string `json:"moniker" yaml:"moniker"`
	AppName    string `json:"app_name" yaml:"app_name"`
	AppVersion string `json:"app_version" yaml:"app_version"`
	SDKVersion string `json:"cosmos_sdk_version" yaml:"cosmos_sdk_version"`
}

// SupportsUnordered reports whether the node's SDK understands the
// unordered body field. Unknown versions are assumed to support it.
func (n *NodeInfo) SupportsUnordered() bool {
	if n.SDKVersion == "" {
		return true
	}
	return versionAtLeast(n.SDKVersion, 0, 53, 0)
}

// nodeInfoResponse represents the tendermint node_info response.
type nodeInfoResponse struct {
	DefaultNodeInfo struct {
		Network string `json:"network"`
		Moniker string `json:"moniker"`
	} `json:"default_node_info"`
	ApplicationVersion struct {
		AppName          string `json:"app_name"`
		Version          string `json:"version"`
		CosmosSDKVersion string `json:"cosmos_sdk_version"`
	} `json:"application_version"`
}

// NodeInfo queries the node_info endpoint. The chain id is the node's network.
func (c *Client) NodeInfo(ctx context.Context) (*NodeInfo, error) {
	reply := c.get(ctx, "/cosmos/base/tendermint/v1beta1/node_info")
	if reply.err != nil {
		return nil, &network.NetworkError{Op: "query node info", URL: reply.url, Err: reply.err}
	}
	if !reply.ok() {
		return nil, &network.NetworkError{
			Op:     "query node info",
			URL:    reply.url,
			Status: reply.status,
			Body:   string(reply.body),
		}
	}

	var resp nodeInfoResponse
	if err := json.Unmarshal(reply.body, &resp); err != nil {
		return nil, &network.NetworkError{
			Op:     "query node info",
			URL:    reply.url,
			Status: reply.status,
			Body:   string(reply.body),
			Err:    fmt.Errorf("failed to parse node info response: %w", err),
		}
	}

	if resp.DefaultNodeInfo.Network == "" {
		return nil, &network.NetworkError{
			Op:     "query node info",
			URL:    reply.url,
			Status: reply.status,
			Body:   string(reply.body),
			Err:    fmt.Errorf("empty network in node info response"),
		}
	}

	return &NodeInfo{
		ChainID:    resp.DefaultNodeInfo.Network,
		Moniker:    resp.DefaultNodeInfo.Moniker,
		AppName:    resp.ApplicationVersion.AppName,
		AppVersion: resp.ApplicationVersion.Version,
		SDKVersion: resp.ApplicationVersion.CosmosSDKVersion,
	}, nil
}

var patchPattern = regexp.MustCompile(`^(\d+)`)

// parseSDKVersion parses a semantic version string into major, minor, patch components.
// Supports versions with or without 'v' prefix and pre-release suffixes.
func parseSDKVersion(version string) (major, minor, patch int, err error) {
	if version == "" {
		return 0, 0, 0, fmt.Errorf("empty version string")
	}

	version = strings.TrimPrefix(version, "v")

	if idx := strings.Index(version, "-"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return 0, 0, 0, fmt.Errorf("invalid version format: %s", version)
	}

	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid major version: %w", err)
	}

	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid minor version: %w", err)
	}

	if len(parts) >= 3 {
		if matches := patchPattern.FindStringSubmatch(parts[2]); len(matches) > 1 {
			patch, _ = strconv.Atoi(matches[1])
		}
	}

	return major, minor, patch, nil
}

// versionAtLeast returns true if the given version is at least the specified minimum.
func versionAtLeast(version string, minMajor, minMinor, minPatch int) bool {
	major, minor, patch, err := parseSDKVersion(version)
	if err != nil {
		return false
	}

	if major != minMajor {
		return major > minMajor
	}
	if minor != minMinor {
		return minor > minMinor
	}
	return patch >= minPatch
}

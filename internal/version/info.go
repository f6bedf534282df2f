// Package version provides build information and the version command for dwapp.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build-time variables injected via ldflags
// These are set by the Makefile during the build process:
//
//	-X github.com/altuslabsxyz/dwapp/internal/version.Version=$(VERSION)
//	-X github.com/altuslabsxyz/dwapp/internal/version.GitCommit=$(COMMIT)
//	-X github.com/altuslabsxyz/dwapp/internal/version.BuildDate=$(DATE)
var (
	// Version is the semantic version of the application.
	// Set at build time via ldflags, defaults to "0.1.0-dev" for local builds.
	Version = "0.1.0-dev"

	// GitCommit is the git commit hash of the build.
	// Set at build time via ldflags.
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built.
	// Set at build time via ldflags.
	BuildDate = "unknown"
)

// Info contains all version and build information.
type Info struct {
	Name       string   `json:"name" yaml:"name"`
	Version    string   `json:"version" yaml:"version"`
	GitCommit  string   `json:"commit" yaml:"commit"`
	BuildDate  string   `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion  string   `json:"go" yaml:"go"`
	CosmosSDK  string   `json:"cosmos_sdk_version,omitempty" yaml:"cosmos_sdk_version,omitempty"`
	BuildTags  string   `json:"build_tags,omitempty" yaml:"build_tags,omitempty"`
	BuildDeps  []string `json:"build_deps,omitempty" yaml:"build_deps,omitempty"`
}

// cosmosSDKModule is reported separately since it fixes the tx wire format.
const cosmosSDKModule = "github.com/cosmos/cosmos-sdk"

// NewInfo creates a new Info struct for the given binary name.
func NewInfo(name string) Info {
	info := Info{
		Name:      name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: fmt.Sprintf("go version %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range buildInfo.Deps {
			if dep.Path == cosmosSDKModule {
				info.CosmosSDK = dep.Version
			}
		}
	}
	return info
}

// WithBuildDeps populates the build dependencies from runtime/debug.
func (i Info) WithBuildDeps() Info {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}

	// Collect build settings for tags
	var buildTags []string
	for _, setting := range buildInfo.Settings {
		if setting.Key == "-tags" && setting.Value != "" {
			buildTags = append(buildTags, setting.Value)
		}
	}
	if len(buildTags) > 0 {
		i.BuildTags = strings.Join(buildTags, ",")
	}

	// Collect dependencies
	deps := make([]string, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		depStr := fmt.Sprintf("%s@%s", dep.Path, dep.Version)
		if dep.Replace != nil {
			depStr = fmt.Sprintf("%s@%s => %s@%s", dep.Path, dep.Version, dep.Replace.Path, dep.Replace.Version)
		}
		deps = append(deps, depStr)
	}

	// Sort dependencies alphabetically
	sort.Strings(deps)
	i.BuildDeps = deps

	return i
}

// String returns a formatted string representation of the version info.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s version %s\n", i.Name, i.Version))
	sb.WriteString(fmt.Sprintf("  commit:     %s\n", i.GitCommit))
	sb.WriteString(fmt.Sprintf("  build date: %s\n", i.BuildDate))
	sb.WriteString(fmt.Sprintf("  go:         %s\n", i.GoVersion))
	if i.CosmosSDK != "" {
		sb.WriteString(fmt.Sprintf("  cosmos-sdk: %s\n", i.CosmosSDK))
	}
	return sb.String()
}

// LongString returns a detailed YAML-formatted string including build dependencies.
func (i Info) LongString() string {
	// Use YAML format like Cosmos SDK apps
	data, err := yaml.Marshal(i)
	if err != nil {
		return i.String()
	}
	return string(data)
}

// JSON returns the version info as a JSON string.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewCmd creates the version command for the given binary name.
// The command supports:
//   - --long: Show detailed version info including build dependencies
//   - --json: Output in JSON format
func NewCmd(name string) *cobra.Command {
	var (
		long       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information including build details. Use --long for detailed dependency info.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := NewInfo(name)
			out := cmd.OutOrStdout()

			if long {
				info = info.WithBuildDeps()
			}

			if jsonOutput {
				output, err := info.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, output)
				return nil
			}

			if long {
				fmt.Fprint(out, info.LongString())
			} else {
				fmt.Fprint(out, info.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Show detailed version info including build dependencies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info in JSON format")

	return cmd
}

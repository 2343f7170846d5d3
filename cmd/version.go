package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time. When empty, the module
// version recorded by `go install` is used.
var version string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build details",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ver, rev := buildVersion()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), ver)
			return
		}
		if rev != "" {
			ver += " (" + rev + ")"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "qbank %s %s %s/%s\n", ver, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
}

// buildVersion returns the release version and the short VCS revision the
// binary was built from, when known.
func buildVersion() (ver, revision string) {
	ver = version
	if info, ok := debug.ReadBuildInfo(); ok {
		if ver == "" {
			ver = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				revision = s.Value[:7]
			}
		}
	}
	if ver == "" {
		ver = "(devel)"
	}
	return ver, revision
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show stubgen version information",
	Long:  `Display version, build time, commit hash, and platform information for the stubgen binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		w := cmd.OutOrStdout()

		info := version.Get()

		if jsonOutput {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to format version info")
			}
			_, _ = fmt.Fprintln(w, string(output))
			return nil
		}

		_, _ = fmt.Fprintln(w, info.String())
		_, _ = fmt.Fprintf(w, "Platform: %s\n", info.Platform)
		_, _ = fmt.Fprintf(w, "Go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}

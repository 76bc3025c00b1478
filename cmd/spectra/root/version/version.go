package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	ver "github.com/wandb/spectra/internal/version"
)

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version and git commit of spectra.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			info := map[string]string{
				"version":     ver.Version,
				"gitCommit":   ver.Commit,
				"environment": ver.Environment,
			}

			var out []byte
			var err error
			switch format {
			case "json":
				out, err = json.MarshalIndent(info, "", "  ")
			case "yaml":
				out, err = yaml.Marshal(info)
			default:
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().String("format", "json", "Output format. Accepts 'json' or 'yaml'")

	return cmd
}

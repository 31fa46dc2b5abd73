package cli

import (
	"crypto/sha256"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sufield/trustset/pkg/trustset"
)

func newEnumerateCmd() *cobra.Command {
	enumerateCmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Enumerate certificates matching a trust disposition",
		Long: `Enumerate certificates matching a trust disposition.

Scopes:
  user      the per-user settings domain
  machine   the machine admin domain, then the machine system domain

Dispositions:
  root      certificates explicitly trusted as roots
  deny      certificates explicitly denied

Examples:
  trustset enumerate --store settings.yaml --scope user --disposition root
  trustset enumerate --store settings.yaml --scope machine --disposition deny`,
		RunE: runEnumerate,
	}

	enumerateCmd.Flags().String("scope", "user", "Query scope: user or machine")
	enumerateCmd.Flags().String("disposition", "root", "Disposition to match: root or deny")

	enumerateCmd.RegisterFlagCompletionFunc("scope", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"user", "machine"}, cobra.ShellCompDirectiveNoFileComp
	})
	enumerateCmd.RegisterFlagCompletionFunc("disposition", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"root", "deny"}, cobra.ShellCompDirectiveNoFileComp
	})

	return enumerateCmd
}

func runEnumerate(cmd *cobra.Command, _ []string) error {
	scope, _ := cmd.Flags().GetString("scope")
	disposition, _ := cmd.Flags().GetString("disposition")

	client, err := trustset.NewClientFromFile(cfg.StorePath)
	if err != nil {
		return err
	}

	result, err := query(cmd, client, scope, disposition)
	if err != nil {
		return err
	}
	defer result.Close()

	if !result.Found() {
		fmt.Fprintln(cmd.OutOrStdout(), "no matching certificates")
		return nil
	}

	for _, ref := range resultRows(result) {
		fmt.Fprintln(cmd.OutOrStdout(), ref)
	}
	return nil
}

func query(cmd *cobra.Command, client *trustset.Client, scope, disposition string) (*trustset.Result, error) {
	ctx := cmd.Context()

	switch scope + "/" + disposition {
	case "user/root":
		return client.UserRoots(ctx)
	case "user/deny":
		return client.UserDisallowed(ctx)
	case "machine/root":
		return client.MachineRoots(ctx)
	case "machine/deny":
		return client.MachineDisallowed(ctx)
	default:
		return nil, fmt.Errorf("unknown scope/disposition %q/%q (want user|machine and root|deny)", scope, disposition)
	}
}

func resultRows(result *trustset.Result) []string {
	rows := make([]string, 0, result.Len())
	for _, id := range result.IDs() {
		rows = append(rows, id)
	}

	// Add subject and fingerprint columns when every match carries a parsed
	// certificate; identity-only stores print the id alone.
	certs := result.Certificates()
	if len(certs) == len(rows) {
		for i, cert := range certs {
			fp := sha256.Sum256(cert.Raw)
			rows[i] = fmt.Sprintf("%s\t%s\t%x", rows[i], cert.Subject.String(), fp[:8])
		}
	}
	return rows
}

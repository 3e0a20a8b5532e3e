package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skssmd/golden-ci/internal/dns"
	"github.com/skssmd/golden-ci/internal/infra"
	"github.com/skssmd/golden-ci/internal/sshutil"
)

func newInfraCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "infra",
		Short: "Provision a host to run the registry and durability substrate",
	}
	root.AddCommand(newInfraBootstrapCmd())
	return root
}

func newInfraBootstrapCmd() *cobra.Command {
	var host, user, keyPath string
	var port int
	var dnsDomain, dnsAPIToken, dnsZoneID string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Install Docker and start a registry and Temporal dev server on a host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sshutil.Dial(host, port, user, keyPath)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := infra.Bootstrap(client, os.Stdout, os.Stderr); err != nil {
				return err
			}

			if dnsDomain == "" {
				return nil
			}

			ip, err := dns.PublicIP()
			if err != nil {
				return fmt.Errorf("detect public ip: %w", err)
			}
			if err := dns.EnsureIngressRecord(dnsDomain, ip, dnsAPIToken, dnsZoneID); err != nil {
				return fmt.Errorf("point %s at %s: %w", dnsDomain, ip, err)
			}
			fmt.Fprintf(os.Stdout, "%s now resolves to %s\n", dnsDomain, ip)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "target host")
	cmd.Flags().IntVar(&port, "port", 22, "SSH port")
	cmd.Flags().StringVar(&user, "user", "root", "SSH user")
	cmd.Flags().StringVar(&keyPath, "key", "~/.ssh/id_rsa", "SSH private key path")
	cmd.Flags().StringVar(&dnsDomain, "dns-domain", "", "domain to point at this host's public IP (skipped if empty)")
	cmd.Flags().StringVar(&dnsAPIToken, "dns-api-token", "", "Cloudflare API token, required with --dns-domain")
	cmd.Flags().StringVar(&dnsZoneID, "dns-zone-id", "", "Cloudflare zone ID, required with --dns-domain")
	cmd.MarkFlagRequired("host")

	return cmd
}

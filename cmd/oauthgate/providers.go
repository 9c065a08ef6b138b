package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

func newProvidersCmd(environ func() []string) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and whether their credentials are set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, settings, err := loadConfig(environ())
			if err != nil {
				return err
			}
			resolver := oauth.NewResolver(settings)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tVARIANT\tTOKEN URL\tSTATUS")
			for _, p := range oauth.Providers() {
				endpoints, _ := oauth.EndpointsFor(p)
				tokenURL, err := endpoints.TokenURL()
				if err != nil {
					tokenURL = "invalid: " + err.Error()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p, endpoints.Variant, tokenURL, providerStatus(resolver, p))
			}
			fmt.Fprintf(tw, "\nredirect uri: %s\n", settings.RedirectURI())
			return tw.Flush()
		},
	}
}

func providerStatus(resolver *oauth.Resolver, p oauth.ProviderID) string {
	_, err := resolver.Resolve(p.String())
	if err == nil {
		return "configured"
	}
	var cerr *oauth.ConfigError
	if errors.As(err, &cerr) && len(cerr.Missing) > 0 {
		return "missing " + strings.Join(cerr.Missing, ", ")
	}
	return err.Error()
}

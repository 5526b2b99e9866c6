package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/pinpoint/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// unresolvedMessage is printed when no coordinates could be obtained.
const unresolvedMessage = "could not resolve address"

var (
	errMissingAddress = errors.New("an address is required: pass it as an argument or set PINPOINT_ADDRESS")
	errUnresolved     = errors.New(unresolvedMessage)
)

const flagExitCode = "exit-code"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pinpoint [address]",
		Short: "Resolve a street address into latitude and longitude",
		Long: `
pinpoint sends one lookup to a geocoding service and prints the coordinates
of the first candidate:

$ PINPOINT_PROVIDER_KEY=... pinpoint "1600 Amphitheatre Parkway, Mountain View, CA"
latitude: 37.4224, longitude: -122.0841
`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runResolve,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.String(config.KeyEnv, "production", "logging environment: local, development, production")
	flags.String(config.KeyProviderType, "google", "geocoding provider: google, googlemaps, nominatim, visicom")
	flags.String(config.KeyProviderKey, "", "access credential for the provider")
	flags.String(config.KeyProviderURL, "", "override the provider endpoint")
	flags.String(config.KeyAddress, "", "address to resolve when none is given as argument")
	flags.String(config.KeyAddressPrefix, "", "prefix prepended to every address, e.g. country and city")
	flags.String(config.KeyTimeout, "10s", "upper bound for one lookup")
	flags.String(config.KeyRateLimit, "0", "requests per second enforced locally (googlemaps, visicom)")
	flags.Bool(flagExitCode, false, "exit with status 2 when the address cannot be resolved")

	root.AddCommand(&cobra.Command{
		Use:   "resolve [address]",
		Short: "Resolve one address and print its coordinates",
		Args:  cobra.ArbitraryArgs,
		RunE:  runResolve,
	})
	root.AddCommand(newServeCmd())

	return root
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if len(args) > 0 {
		cfg.Address = strings.Join(args, " ")
	}
	if strings.TrimSpace(cfg.Address) == "" {
		return errMissingAddress
	}

	logger := setupLogger(cfg.Env, cmd.ErrOrStderr())

	resolver, err := newResolver(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	coords, err := resolver.Resolve(cmd.Context(), cfg.Address)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), unresolvedMessage)

		if exitCode, _ := cmd.Flags().GetBool(flagExitCode); exitCode {
			return errUnresolved
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), coords.String())

	return nil
}

// Command qrgen formats QR payloads and renders QR images from the command line.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/config"
	"github.com/cristianadrielbraun/qrcard/internal/logger"
	"github.com/cristianadrielbraun/qrcard/internal/payload"
)

type rootFlags struct {
	configPath  string
	countryCode string
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "qrgen",
		Short:         "Format QR payloads and render QR codes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ./configs/config.yaml if present)")
	cmd.PersistentFlags().StringVar(&flags.countryCode, "country-code", "", "phone country prefix (overrides payload.country_code)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newPayloadCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newTypesCmd())
	return cmd
}

type app struct {
	cfg       *config.Config
	formatter *payload.Formatter
	log       *zap.Logger
}

func newApp(flags *rootFlags) (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFromFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	cc := cfg.Payload.CountryCode
	if flags.countryCode != "" {
		cc = flags.countryCode
	}
	level := "warn"
	if flags.verbose {
		level = "debug"
	}
	return &app{
		cfg:       cfg,
		formatter: payload.NewFormatter(cc),
		log:       logger.New(level, "console"),
	}, nil
}

// parseFields turns repeated k=v flags into payload fields.
func parseFields(kvs []string) (payload.Fields, error) {
	fields := payload.Fields{}
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --field %q, want key=value", kv)
		}
		fields[strings.TrimSpace(k)] = v
	}
	return fields, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrcard/internal/payload"
)

type payloadFlags struct {
	typ    string
	fields []string
}

func (f *payloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", string(payload.TypeText), "payload type, one of the names listed by qrgen types")
	cmd.Flags().StringArrayVarP(&f.fields, "field", "f", nil, "payload field as key=value (repeatable)")
}

func (f *payloadFlags) format(a *app) (payload.Type, string, error) {
	t, err := payload.ParseType(f.typ)
	if err != nil {
		return "", "", err
	}
	fields, err := parseFields(f.fields)
	if err != nil {
		return "", "", err
	}
	return t, a.formatter.Format(t, fields), nil
}

func newPayloadCmd(flags *rootFlags) *cobra.Command {
	pf := &payloadFlags{}
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the encodable string for a payload",
		Example: `  qrgen payload --type wifi -f wifi_ssid=Home -f wifi_password=secret
  qrgen payload --type whatsapp -f whatsapp="98765 43210" -f message="hi"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			_, s, err := pf.format(a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	pf.register(cmd)
	return cmd
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cristianadrielbraun/qrcard/internal/render"
)

type renderFlags struct {
	output      string
	format      string
	size        string
	previewSize int
	ec          string
	fg          string
	bg          string
	shape       string
	frame       string
	corner      string
	logo        string
}

// params exposes the flags under the parameter names the web API uses.
func (f *renderFlags) params() render.Getter {
	corner := f.corner
	if corner == "" && f.frame != "" {
		corner = "square"
	}
	m := map[string]string{
		"format":        f.format,
		"size":          f.size,
		"ec":            f.ec,
		"fg":            f.fg,
		"bg":            f.bg,
		"qrShape":       f.shape,
		"borderPattern": f.frame,
		"cornerStyle":   corner,
	}
	if f.previewSize > 0 {
		m["previewSize"] = strconv.Itoa(f.previewSize)
	}
	return func(k string) string { return m[k] }
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	pf := &payloadFlags{}
	rf := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a payload as a QR image",
		Long: `Render a payload as a QR image.

Without --output the code is drawn in the terminal when stdout is a TTY,
otherwise the encoded image is written to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			t, content, err := pf.format(a)
			if err != nil {
				return err
			}
			if content == "" {
				return fmt.Errorf("nothing to encode for type %s", t)
			}

			out := cmd.OutOrStdout()
			if rf.output == "" && isTerminal(out) {
				qrterminal.GenerateHalfBlock(content, qrterminal.M, out)
				return nil
			}

			if rf.format == "" && rf.output != "" {
				rf.format = strings.TrimPrefix(filepath.Ext(rf.output), ".")
			}
			opts := render.FromParams(rf.params())
			if rf.ec == "" {
				opts.ErrorCorrection = a.cfg.Render.ErrorCorrection
			}
			if rf.logo != "" {
				f, err := os.Open(rf.logo)
				if err != nil {
					return fmt.Errorf("open logo: %w", err)
				}
				opts.Logo, err = render.DecodeLogo(f)
				f.Close()
				if err != nil {
					return err
				}
			}

			res, err := render.Render(content, opts)
			if err != nil {
				return fmt.Errorf("render %s payload: %w", t, err)
			}
			a.log.Debug("rendered", zap.String("type", string(t)), zap.String("format", string(res.Format)), zap.Int("width", res.Width))

			if rf.output == "" {
				_, err = out.Write(res.Data)
				return err
			}
			if err := os.WriteFile(rf.output, res.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", rf.output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d %s)\n", rf.output, res.Width, res.Height, res.Format)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&rf.format, "format", "", "png, jpg or svg (default from --output extension, else png)")
	cmd.Flags().StringVar(&rf.size, "size", "preview", "preview or download")
	cmd.Flags().IntVar(&rf.previewSize, "preview-size", 0, "exact edge in pixels for preview size")
	cmd.Flags().StringVar(&rf.ec, "ec", "", "error correction level L, M, Q or H")
	cmd.Flags().StringVar(&rf.fg, "fg", "", "foreground color (#rrggbb)")
	cmd.Flags().StringVar(&rf.bg, "bg", "", "background color (#rrggbb or transparent)")
	cmd.Flags().StringVar(&rf.shape, "shape", "", "rectangle, circle, liquid, chain, hstripe or vstripe")
	cmd.Flags().StringVar(&rf.frame, "frame", "", "frame pattern: simple, dashed, dotted, double, grid or diagonal")
	cmd.Flags().StringVar(&rf.corner, "corner", "", "frame corners: square or rounded (empty for no frame)")
	cmd.Flags().StringVar(&rf.logo, "logo", "", "center logo image (png, jpg or svg)")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guttosm/fixdict/internal/dict"
	"github.com/guttosm/fixdict/internal/quickfix"
	"github.com/guttosm/fixdict/internal/service"
)

// specFlags are shared by the offline commands that read one spec file.
type specFlags struct {
	path   string
	strict bool
}

func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "spec", "", "QuickFIX XML file to load")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject required markers other than Y or N")
	_ = cmd.MarkFlagRequired("spec")
}

func (f *specFlags) load() (*dict.Dictionary, error) {
	var opts []quickfix.Option
	if f.strict {
		opts = append(opts, quickfix.WithStrictRequired())
	}
	return quickfix.LoadFile(f.path, opts...)
}

func newInspectCmd() *cobra.Command {
	var (
		spec      specFlags
		field     string
		msg       string
		component string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print fields, messages or components of a spec file",
		Long: `Inspect loads a single spec file and prints what it defines. Without
a lookup flag it prints a summary and the message list.

Examples:
  fixdict inspect --spec specs/FIX44.xml
  fixdict inspect --spec specs/FIX44.xml --field 54
  fixdict inspect --spec specs/FIX44.xml --msg NewOrderSingle
  fixdict inspect --spec specs/FIX44.xml --component Instrument
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := spec.load()
			if err != nil {
				return err
			}
			registry := service.NewRegistry()
			registry.Register(d)
			svc := service.NewDictionaryService(registry)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()
			switch {
			case field != "":
				f, err := svc.Field(ctx, d.Version(), field)
				if err != nil {
					return err
				}
				printField(out, d, f)
			case msg != "":
				m, err := svc.Message(ctx, d.Version(), msg)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\n", m.Name(), m.MsgType())
				fmt.Fprint(out, dict.Describe(m.Layout()))
			case component != "":
				c, err := svc.Component(ctx, d.Version(), component)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, c.Name())
				fmt.Fprint(out, dict.Describe(c.Items()))
			default:
				fmt.Fprintln(out, d.String())
				for _, m := range d.Messages() {
					fmt.Fprintf(out, "  %-4s %s\n", m.MsgType(), m.Name())
				}
			}
			return nil
		},
	}
	spec.register(cmd)
	cmd.Flags().StringVar(&field, "field", "", "Field tag or name")
	cmd.Flags().StringVar(&msg, "msg", "", "Message type or name")
	cmd.Flags().StringVar(&component, "component", "", "Component name")
	cmd.MarkFlagsMutuallyExclusive("field", "msg", "component")
	return cmd
}

func printField(w io.Writer, d *dict.Dictionary, f *dict.Field) {
	fmt.Fprintf(w, "%d %s %s (%s)\n", f.Tag(), f.Name(), f.Datatype().Name(), d.FieldLocation(f.Tag()))
	var notes []string
	if f.IsGroupCounter() {
		notes = append(notes, "group counter")
	}
	if tag, ok := f.AssociatedLengthTag(); ok {
		notes = append(notes, fmt.Sprintf("length in %d", tag))
	}
	if len(notes) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(notes, ", "))
	}
	if values, ok := f.Enums(); ok {
		for _, e := range values {
			fmt.Fprintf(w, "  %s = %s\n", e.Value, e.Description)
		}
	}
}

func newExportCmd() *cobra.Command {
	var (
		spec specFlags
		out  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-emit a spec file as normalized QuickFIX XML",
		Long: `Export loads a spec file and writes the resulting dictionary back out
in QuickFIX XML form, to stdout or to --out.

Examples:
  fixdict export --spec specs/FIX44.xml --out FIX44.normalized.xml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := spec.load()
			if err != nil {
				return err
			}
			if out == "" {
				return quickfix.Export(cmd.OutOrStdout(), d)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := quickfix.Export(f, d); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	spec.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

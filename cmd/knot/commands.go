package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	"github.com/fine-structures/knots/libknot/catalog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// readDiagrams parses each arg as a notation, or each non-empty stdin line when there are no args.
func (st *cliState) readDiagrams(args []string) ([]knot.Diagram, error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				args = append(args, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
	}

	Xs := make([]knot.Diagram, 0, len(args))
	for _, notation := range args {
		enc, err := libknot.ParseEncoding(notation)
		if err != nil {
			return nil, err
		}
		L, err := libknot.NewLinkWithOpts(enc, st.cfg.CanonizeOpts())
		if err != nil {
			return nil, err
		}
		Xs = append(Xs, L)
	}
	return Xs, nil
}

func (st *cliState) canonizeCommand() *cobra.Command {
	var dedupe bool
	cmd := &cobra.Command{
		Use:   "canonize [notation...]",
		Short: "Apply Vogel moves until no bad region remains and print the canonical diagram",
		Example: `  knot canonize "braid: 1 2 1 2"
  knot canonize "ogc: -1 2 -3 4 5 1 -2 6 7 3 -4 -7 -6 -5 / - - - - + - +"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Xs, err := st.readDiagrams(args)
			if err != nil {
				return err
			}
			stream := knot.StreamDiagrams(Xs...).Canonize(st.cfg.Workers)
			if dedupe {
				set := libknot.NewDropDupes()
				defer set.Close()
				stream = stream.AddTo(set)
			}
			opts := knot.PrintOpts{
				Label:   "canon",
				Source:  true,
				PD:      true,
				Braid:   true,
				Circles: true,
			}
			stream.Print(nopCloser{cmd.OutOrStdout()}, opts).PullAll()
			return nil
		},
	}
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "drop diagrams whose canonical PD code was already printed")
	return cmd
}

func (st *cliState) invariantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invariants [notation...]",
		Short: "Print the invariants of each diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			Xs, err := st.readDiagrams(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, X := range Xs {
				writeInvariants(out, X.(*libknot.Link))
			}
			return nil
		},
	}
}

func writeInvariants(out io.Writer, L *libknot.Link) {
	fmt.Fprintf(out, "%s\n", libknot.FormatEncoding(L.Encoding()))

	row := func(name string, val interface{}, err error) {
		if err != nil {
			val = "n/a (" + err.Error() + ")"
		}
		fmt.Fprintf(out, "  %-14s %v\n", name, val)
	}

	w, err := L.BraidWord()
	row("braid", w, err)
	isKnot, err := L.IsKnot()
	row("knot", isKnot, err)
	writhe, err := L.Writhe()
	row("writhe", writhe, err)
	alt, err := L.IsAlternating()
	row("alternating", alt, err)
	genus, err := L.Genus()
	row("genus", genus, err)
	sig, err := L.Signature()
	row("signature", sig, err)
	alex, err := L.AlexanderPolynomial()
	row("alexander", alex, err)
	det, err := L.KnotDeterminant()
	row("determinant", det, err)
	arf, err := L.ArfInvariant()
	row("arf", arf, err)
	jones, err := L.JonesPolynomial()
	row("jones", jones, err)
}

func (st *cliState) renderCommand() *cobra.Command {
	var (
		output  string
		dotOnly bool
	)
	cmd := &cobra.Command{
		Use:   "render <notation>",
		Short: "Render a diagram's PD code as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			L, err := libknot.NewLinkFromString(args[0])
			if err != nil {
				return err
			}
			pd, err := L.PD()
			if err != nil {
				return err
			}
			dot, err := libknot.ToDOT(pd)
			if err != nil {
				return err
			}

			data := []byte(dot)
			if !dotOnly {
				data, err = libknot.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "emit DOT instead of SVG")
	return cmd
}

func (st *cliState) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Add to and query a catalog of canonical diagrams",
	}
	cmd.AddCommand(st.catalogAddCommand())
	cmd.AddCommand(st.catalogListCommand())
	return cmd
}

func (st *cliState) openCatalog(ctx knot.CatalogContext, readOnly bool) (knot.Catalog, error) {
	if st.cfg.CatalogPath == "" {
		return nil, errors.Wrap(knot.ErrBadCatalogParam, "catalog_path must be set (config file or KNOT_CATALOG_PATH)")
	}
	return catalog.OpenCatalog(ctx, knot.CatalogOpts{
		DbPathName: st.cfg.CatalogPath,
		ReadOnly:   readOnly || st.cfg.ReadOnly,
	})
}

func (st *cliState) catalogAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [notation...]",
		Short: "Canonize each diagram and add it unless an identical canonical diagram is cataloged",
		RunE: func(cmd *cobra.Command, args []string) error {
			Xs, err := st.readDiagrams(args)
			if err != nil {
				return err
			}

			ctx := knot.NewCatalogContext()
			defer func() {
				ctx.Close()
				<-ctx.Done()
			}()
			cat, err := st.openCatalog(ctx, false)
			if err != nil {
				return err
			}
			if cat.IsReadOnly() {
				return knot.ErrReadOnly
			}

			added := knot.StreamDiagrams(Xs...).
				Canonize(st.cfg.Workers).
				AddTo(cat).
				PullAll()
			fmt.Fprintf(cmd.OutOrStdout(), "added %d of %d diagrams\n", added, len(Xs))
			return nil
		},
	}
}

func (st *cliState) catalogListCommand() *cobra.Command {
	var sel knot.DiagramSelector
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print cataloged diagrams in order of crossing count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := knot.NewCatalogContext()
			defer func() {
				ctx.Close()
				<-ctx.Done()
			}()
			cat, err := st.openCatalog(ctx, true)
			if err != nil {
				return err
			}

			opts := knot.DefaultPrintOpts
			opts.Label = "catalog"
			knot.SelectFromCatalog(cat, sel).
				Print(nopCloser{cmd.OutOrStdout()}, opts).
				PullAll()
			return nil
		},
	}
	cmd.Flags().IntVar(&sel.MinCrossings, "min", 0, "minimum canonical crossing count")
	cmd.Flags().IntVar(&sel.MaxCrossings, "max", 0, "maximum canonical crossing count (0 for no bound)")
	cmd.Flags().IntVar(&sel.MaxMoves, "moves", 0, "maximum Vogel moves needed to canonize (0 for no bound)")
	return cmd
}

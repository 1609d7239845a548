package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/shapefile/internal/prj"
)

var prjCmd = &cobra.Command{
	Use:   "prj FILE.prj",
	Short: "Print the node tree and summary of a projection file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrj,
}

func init() {
	prjCmd.Flags().Bool("paths", false, "prefix nodes with their index path")
}

func runPrj(cmd *cobra.Command, args []string) error {
	showPaths, _ := cmd.Flags().GetBool("paths")

	tree, err := prj.ParseFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	tree.Walk(func(n *prj.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		if showPaths {
			fmt.Fprintf(out, "%-10s ", n.Path)
		}
		fmt.Fprintf(out, "%s%s", indent, n.Name)
		if len(n.Attributes) > 0 {
			fmt.Fprintf(out, " %s", strings.Join(n.Attributes, ", "))
		}
		fmt.Fprintln(out)
		return true
	})
	fmt.Fprintln(out)
	printProjection(out, prj.Describe(tree))
	return nil
}

func printProjection(w io.Writer, p prj.Projection) {
	if p.Projected() {
		fmt.Fprintf(w, "Projected:   %s\n", p.Name)
		fmt.Fprintf(w, "Method:      %s\n", p.Method)
	}
	fmt.Fprintf(w, "Geographic:  %s\n", p.GeographicName)
	fmt.Fprintf(w, "Datum:       %s\n", p.Datum)
	fmt.Fprintf(w, "Spheroid:    %s (a=%g, 1/f=%g)\n", p.Spheroid.Name, p.Spheroid.SemiMajorAxis, p.Spheroid.InverseFlattening)
	fmt.Fprintf(w, "Prime:       %s (%g)\n", p.PrimeMeridian, p.PrimeLongitude)
	fmt.Fprintf(w, "Angular:     %s (%g)\n", p.AngularUnit.Name, p.AngularUnit.Factor)
	if p.Projected() {
		fmt.Fprintf(w, "Linear:      %s (%g)\n", p.LinearUnit.Name, p.LinearUnit.Factor)
		names := make([]string, 0, len(p.Parameters))
		for name := range p.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-20s %g\n", name, p.Parameters[name])
		}
	}
	if p.AuthorityName != "" {
		fmt.Fprintf(w, "Authority:   %s:%s\n", p.AuthorityName, p.AuthorityCode)
	}
}

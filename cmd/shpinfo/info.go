package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE.shp",
	Short: "Summarize a shapefile: header, projection and record statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().Bool("records", false, "list every record")
}

func openFile(path string) (*shapefile.File, error) {
	return shapefile.Open(path, shapefile.Options{CacheBytes: viper.GetInt64(flagCacheBytes)})
}

func runInfo(cmd *cobra.Command, args []string) error {
	listRecords, _ := cmd.Flags().GetBool("records")

	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := os.Stat(f.Path())
	if err != nil {
		return errors.Wrap(err, "stat")
	}

	out := cmd.OutOrStdout()
	h := f.Header()
	fmt.Fprintf(out, "File:       %s (%s)\n", f.Path(), humanize.Bytes(uint64(st.Size())))
	fmt.Fprintf(out, "Kind:       %v\n", f.Kind())
	fmt.Fprintf(out, "Records:    %s\n", humanize.Comma(int64(f.NumRecords())))
	fmt.Fprintf(out, "Bounds:     %s\n", formatBounds(f.Bounds()))
	if h.ZRange.Valid {
		fmt.Fprintf(out, "Z range:    %g .. %g\n", h.ZRange.Min, h.ZRange.Max)
	}
	if h.MRange.Valid {
		fmt.Fprintf(out, "M range:    %g .. %g\n", h.MRange.Min, h.MRange.Max)
	}
	printProjectionSummary(out, f.Projection())

	records, errs := f.DecodeAll(shapefile.LoadOptions{
		Parallel:   true,
		Workers:    viper.GetInt(flagWorkers),
		SkipErrors: true,
	})
	var vertices, parts, nulls int64
	for _, rec := range records {
		switch {
		case rec == nil:
		case rec.Kind() == shapefile.KindNull:
			nulls++
		default:
			vertices += int64(rec.VertexCount())
			parts += int64(rec.PartCount())
		}
	}
	fmt.Fprintf(out, "Vertices:   %s in %s parts\n", humanize.Comma(vertices), humanize.Comma(parts))
	if nulls > 0 {
		fmt.Fprintf(out, "Null:       %s records\n", humanize.Comma(nulls))
	}
	if len(errs) > 0 {
		fmt.Fprintf(out, "Corrupt:    %s records\n", humanize.Comma(int64(len(errs))))
		for _, err := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	if listRecords {
		for i, rec := range records {
			if rec == nil {
				continue
			}
			printRecord(out, i+1, rec)
		}
	}
	return nil
}

func printRecord(w io.Writer, n int, rec *shapefile.Record) {
	fmt.Fprintf(w, "%6d  %-12v parts=%d points=%d", n, rec.Kind(), rec.PartCount(), rec.VertexCount())
	if rec.VertexCount() > 0 {
		fmt.Fprintf(w, " bounds=%s", formatBounds(rec.Bounds()))
	}
	if rec.Kind().IsPolygonal() {
		holes := 0
		for _, hole := range rec.ClassifyHoles() {
			if hole {
				holes++
			}
		}
		fmt.Fprintf(w, " area=%g holes=%d", rec.Area(), holes)
	}
	fmt.Fprintln(w)
}

func formatBounds(b shapefile.Bounds) string {
	return fmt.Sprintf("[%g, %g] - [%g, %g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

func printProjectionSummary(w io.Writer, p shapefile.Projection) {
	switch {
	case p.Projected():
		fmt.Fprintf(w, "Projection: %s (%s on %s)\n", p.Name, p.Method, p.GeographicName)
	case p.GeographicName != "":
		fmt.Fprintf(w, "Projection: %s (geographic)\n", p.GeographicName)
	default:
		fmt.Fprintln(w, "Projection: none")
	}
}

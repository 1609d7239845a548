package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

var wktCmd = &cobra.Command{
	Use:   "wkt FILE.shp",
	Short: "Print records as Well-Known Text, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runWKT,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse WKT or hex-encoded WKB and describe the resulting record",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

var queryCmd = &cobra.Command{
	Use:   "query FILE.shp MINX MINY MAXX MAXY",
	Short: "List records whose bounding rectangle intersects a box",
	Args:  cobra.ExactArgs(5),
	RunE:  runQuery,
}

func init() {
	wktCmd.Flags().Int("record", 0, "print only this record (1-based)")

	importCmd.Flags().String("wkt", "", "Well-Known Text")
	importCmd.Flags().String("wkb", "", "Well-Known Binary as hex")
	importCmd.MarkFlagsMutuallyExclusive("wkt", "wkb")
	importCmd.MarkFlagsOneRequired("wkt", "wkb")
}

func runWKT(cmd *cobra.Command, args []string) error {
	only, _ := cmd.Flags().GetInt("record")

	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	first, last := 1, f.NumRecords()
	if only != 0 {
		first, last = only, only
	}
	out := cmd.OutOrStdout()
	for n := first; n <= last; n++ {
		rec, err := f.Record(n)
		if err != nil {
			if only != 0 {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		if rec.Kind() == shapefile.KindNull {
			fmt.Fprintf(out, "%d\tNULL\n", n)
			continue
		}
		text, err := shapefile.FormatWKT(rec)
		if err != nil {
			return errors.Wrapf(err, "record %d", n)
		}
		fmt.Fprintf(out, "%d\t%s\n", n, text)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("wkt")
	hexText, _ := cmd.Flags().GetString("wkb")

	var (
		rec *shapefile.Record
		err error
	)
	if hexText != "" {
		data, derr := hex.DecodeString(hexText)
		if derr != nil {
			return errors.Wrap(derr, "wkb hex")
		}
		rec, err = shapefile.ParseWKB(data)
	} else {
		rec, err = shapefile.ParseWKT(text)
	}
	if err != nil {
		return err
	}
	describeRecord(cmd.OutOrStdout(), rec)
	return nil
}

func describeRecord(w io.Writer, rec *shapefile.Record) {
	printRecord(w, 1, rec)
	for i := 0; i < rec.PartCount(); i++ {
		ring, err := rec.Ring(i)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  part %d: %d points, %v", i, ring.Part().Len(), ring.Direction())
		if rec.Kind().IsPolygonal() {
			fmt.Fprintf(w, ", hole=%t", ring.IsHole())
		}
		fmt.Fprintln(w)
	}
	if text, err := shapefile.FormatWKT(rec); err == nil {
		fmt.Fprintln(w, text)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	var box [4]float64
	for i, s := range args[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Wrapf(err, "coordinate %q", s)
		}
		box[i] = v
	}

	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	idx, errs := shapefile.BuildIndex(f)
	for _, err := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	out := cmd.OutOrStdout()
	for _, n := range idx.Query(shapefile.Bounds{MinX: box[0], MinY: box[1], MaxX: box[2], MaxY: box[3]}) {
		fmt.Fprintln(out, n)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/tsrr/whisperdb/internal/digest"
	"github.com/tsrr/whisperdb/whisper"
)

func cmdInfo(args []string, out, errOut io.Writer, _ []string) int {
	flagSet := flag.NewFlagSet("info", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.Usage = func() {
		fmt.Fprintln(errOut, "Usage: wsp info [flags] <path>")
		flagSet.PrintDefaults()
	}
	short := flagSet.Bool("short", false, "print a single storage-schema-style spec string")
	showDigest := flagSet.Bool("digest", false, "include a non-normative xxHash64 content digest")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return 2
	}
	path := flagSet.Arg(0)

	w, err := whisper.Open(path)
	if err != nil {
		return fatalf(errOut, "wsp info: %v", err)
	}
	defer func() { _ = w.Close() }()

	retentions := w.Retentions()

	if *short {
		fmt.Fprintln(out, formatSchemaString(retentions))
		return 0
	}

	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "Aggregation: %s\n", w.AggregationMethod())
	fmt.Fprintf(out, "xFilesFactor: %d\n", w.XFilesFactor())
	fmt.Fprintf(out, "MaxRetention: %d\n", w.MaxRetention())
	fmt.Fprintln(out)

	tw := tabwriterFor(out)
	fmt.Fprintln(tw, "archive\tseconds/point\t#points\tretention (s)")
	for i, r := range retentions {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", i, r.SecondsPerPoint, r.Points, r.Retention())
	}
	if err := tw.Flush(); err != nil {
		return fatalf(errOut, "wsp info: %v", err)
	}

	if *showDigest {
		per, combined, err := digest.Archives(w)
		if err != nil {
			return fatalf(errOut, "wsp info: %v", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Digest: %016x\n", combined)
		for i, d := range per {
			fmt.Fprintf(out, "  archive %d: %016x\n", i, d)
		}
	}

	return 0
}

func formatSchemaString(retentions []whisper.Archive) string {
	s := ""
	for i, r := range retentions {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%ds:%d", r.SecondsPerPoint, r.Points)
	}
	return s
}

// tabwriterFor renders space-padded columns for an interactive
// terminal, or tight tab-separated columns when stdout is piped to a
// file or another process.
func tabwriterFor(out io.Writer) *tabwriter.Writer {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return tabwriter.NewWriter(out, 4, 4, 2, ' ', 0)
	}
	return tabwriter.NewWriter(out, 0, 1, 1, '\t', 0)
}

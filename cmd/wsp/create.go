package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/tsrr/whisperdb/internal/config"
	"github.com/tsrr/whisperdb/whisper"
)

func cmdCreate(args []string, out, errOut io.Writer, env []string) int {
	flagSet := flag.NewFlagSet("create", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.Usage = func() {
		fmt.Fprintln(errOut, "Usage: wsp create [flags] <path> [archives]")
		fmt.Fprintln(errOut, "  archives is a storage-schema-style string, e.g. 10s:6h,1m:7d")
		fmt.Fprintln(errOut, "  if omitted, falls back to the archives set in the config file")
		fmt.Fprintln(errOut, "Flags:")
		flagSet.PrintDefaults()
	}

	aggregation := flagSet.String("aggregation", "", "aggregation method: average|sum|last|max|min")
	xff := flagSet.Uint8("xff", 0, "x-files-factor, 0-100")
	force := flagSet.Bool("force", false, "overwrite an existing file")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fatalf(errOut, "wsp create: %v", err)
	}
	cfg, err := config.Load(workDir, env)
	if err != nil {
		return fatalf(errOut, "wsp create: %v", err)
	}

	var path, archiveString string
	switch flagSet.NArg() {
	case 2:
		path = flagSet.Arg(0)
		archiveString = flagSet.Arg(1)
	case 1:
		if cfg.Archives == "" {
			flagSet.Usage()
			return 2
		}
		path = flagSet.Arg(0)
		archiveString = cfg.Archives
	default:
		flagSet.Usage()
		return 2
	}

	if !flagSet.Changed("aggregation") && cfg.Aggregation != "" {
		*aggregation = cfg.Aggregation
	}
	if !flagSet.Changed("xff") && cfg.XFilesFactor != nil {
		*xff = *cfg.XFilesFactor
	}

	if _, err := os.Stat(path); err == nil && !*force {
		return fatalf(errOut, "wsp create: %s already exists (use --force to overwrite)", path)
	}

	tokens, err := splitSchemaString(archiveString)
	if err != nil {
		return fatalf(errOut, "wsp create: %v", err)
	}
	specs, err := whisper.ParseArchiveSpecs(tokens)
	if err != nil {
		return fatalf(errOut, "wsp create: %v", err)
	}

	opts := whisper.CreateOptions{
		Aggregation:  aggregationFromName(*aggregation),
		XFilesFactor: *xff,
	}

	lock, err := acquireLock(path)
	if err != nil {
		return fatalf(errOut, "wsp create: %v", err)
	}
	defer lock.release()

	scratch := path + ".wsp.tmp"
	if err := whisper.Create(scratch, specs, opts); err != nil {
		_ = os.Remove(scratch)
		return fatalf(errOut, "wsp create: %v", err)
	}

	absScratch, err := filepath.Abs(scratch)
	if err != nil {
		_ = os.Remove(scratch)
		return fatalf(errOut, "wsp create: %v", err)
	}
	if err := atomic.ReplaceFile(absScratch, path); err != nil {
		_ = os.Remove(scratch)
		return fatalf(errOut, "wsp create: moving into place: %v", err)
	}

	fmt.Fprintln(out, path)
	return 0
}

func aggregationFromName(name string) whisper.AggregationMethod {
	switch name {
	case "sum":
		return whisper.AggregationSum
	case "last":
		return whisper.AggregationLast
	case "max":
		return whisper.AggregationMax
	case "min":
		return whisper.AggregationMin
	case "average", "":
		return whisper.AggregationAverage
	default:
		return whisper.AggregationAverage
	}
}

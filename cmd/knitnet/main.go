// Command knitnet derives the knitting topology of sampled rows, prints a
// summary of the Knit Graph, its segments, chains and diagnostics, and can
// write the graph to a snapshot file.
//
//	knitnet -rows rows.yaml [-config knitnet.yaml] [-out graph.snap] [-final-weft]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/config"
	"github.com/katalvlaran/knitnet/pipeline"
	"github.com/katalvlaran/knitnet/snapshot"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fset := flag.NewFlagSet("knitnet", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	defer klog.Flush()

	var (
		cfgPath   = fset.String("config", "", "YAML configuration file")
		rowsPath  = fset.String("rows", "", "YAML file with sampled rows (required)")
		outPath   = fset.String("out", "", "write the Knit Graph snapshot to this file")
		finalWeft = fset.Bool("final-weft", false, "chain segment members with final weft edges")
	)
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if *rowsPath == "" {
		fmt.Fprintln(fset.Output(), "knitnet: -rows is required")
		fset.Usage()
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	if !isSet(fset, "v") {
		fset.Set("v", strconv.Itoa(cfg.Log.Verbosity))
	}
	if *outPath == "" {
		*outPath = cfg.Output.Snapshot
	}

	courses, err := config.LoadCourses(*rowsPath)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	var opts []pipeline.Option
	if *finalWeft {
		opts = append(opts, pipeline.WithFinalWeft())
	}
	res, err := pipeline.Run(context.Background(), courses, cfg, opts...)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	report(out, res)

	if *outPath != "" {
		if err = snapshot.WriteFile(*outPath, res.Graph); err != nil {
			klog.Errorf("%v", err)
			return 1
		}
		klog.Infof("snapshot written to %s", *outPath)
	}

	return 0
}

func isSet(fset *flag.FlagSet, name string) bool {
	set := false
	fset.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func report(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "run      %s\n", res.RunID)
	fmt.Fprintf(w, "graph    %s\n", res.Graph)
	fmt.Fprintf(w, "mapping  %s\n", res.Mapping)
	fmt.Fprintf(w, "segments %d\n", len(res.Segments.Segments))
	fmt.Fprintf(w, "chains   %d source, %d target\n", len(res.Chains.Source), len(res.Chains.Target))

	d := res.Diagnostics
	if d.Empty() {
		fmt.Fprintln(w, "diagnostics: none")
		return
	}
	fmt.Fprintln(w, "diagnostics:")
	if len(d.Unassigned) > 0 {
		fmt.Fprintf(w, "  unassigned weft edges: %v\n", d.Unassigned)
	}
	for _, ch := range d.Dangling {
		fmt.Fprintf(w, "  dangling chain %s: %v\n", ch.Key, ch.Segments)
	}
	if len(d.Isolated) > 0 {
		fmt.Fprintf(w, "  nodes without weft edges: %v\n", d.Isolated)
	}
	for _, loop := range d.WeftLoops {
		fmt.Fprintf(w, "  weft loop without end node: %v\n", loop)
	}
	if len(d.Saturated) > 0 {
		fmt.Fprintf(w, "  nodes left unlinked by saturated candidates: %v\n", d.Saturated)
	}
}

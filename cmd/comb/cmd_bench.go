package main

import (
	stdjson "encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/grammar/json"
	"github.com/dhamidi/comb/parse"
	"github.com/dhamidi/comb/static"
)

func newBenchCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench <file.json>",
		Short: "Compare the comb JSON grammars with other JSON decoders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			if iterations < 1 {
				return fmt.Errorf("--iterations must be positive")
			}
			var results []benchResult
			for _, d := range jsonDecoders() {
				results = append(results, measure(d, data, iterations))
			}
			return printBench(os.Stdout, len(data), iterations, results)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "decodes per decoder")

	return cmd
}

type decoder struct {
	name   string
	decode func([]byte) error
}

func jsonDecoders() []decoder {
	dynamic := json.Parser()
	cached := json.Parser(json.WithCache())
	st := json.StaticParser()
	return []decoder{
		{"encoding/json", func(b []byte) error {
			var v any
			return stdjson.Unmarshal(b, &v)
		}},
		{"json-iterator", func(b []byte) error {
			var v any
			return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &v)
		}},
		{"goccy/go-json", func(b []byte) error {
			var v any
			return gojson.Unmarshal(b, &v)
		}},
		{"comb dynamic", func(b []byte) error {
			_, err := parse.Run(dynamic, b)
			return err
		}},
		{"comb dynamic cached", func(b []byte) error {
			_, err := parse.Run(cached, b)
			return err
		}},
		{"comb static", func(b []byte) error {
			_, err := static.Run(st, b)
			return err
		}},
	}
}

type benchResult struct {
	name    string
	perOp   time.Duration
	bytesPS float64
	err     error
}

func measure(d decoder, data []byte, iterations int) benchResult {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := d.decode(data); err != nil {
			return benchResult{name: d.name, err: err}
		}
	}
	elapsed := time.Since(start)
	r := benchResult{name: d.name, perOp: elapsed / time.Duration(iterations)}
	if elapsed > 0 {
		r.bytesPS = float64(len(data)) * float64(iterations) / elapsed.Seconds()
	}
	return r
}

func printBench(w io.Writer, size, iterations int, results []benchResult) error {
	fmt.Fprintf(w, "input %s, %s iterations\n\n", humanize.Bytes(uint64(size)), humanize.Comma(int64(iterations)))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "decoder\tns/op\tthroughput")
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(tw, "%s\tfailed\t%v\n", r.name, r.err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s/s\n", r.name, humanize.Comma(r.perOp.Nanoseconds()), humanize.Bytes(uint64(r.bytesPS)))
	}
	return tw.Flush()
}

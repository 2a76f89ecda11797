// Package compiler ties loading, graph construction and rendering together.
//
//	g, err := compiler.ConvertFile("graph.json", gen.WithOmitPrefixes())
//	if err != nil {
//		return err
//	}
//	return gen.Generate(os.Stdout, g)
package compiler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/modeldraw/compiler/gen"
	"github.com/syssam/modeldraw/compiler/gen/drawio"
	"github.com/syssam/modeldraw/compiler/load"
)

// Convert builds the graph of doc. The draw.io generator is used unless
// opts set another one.
func Convert(doc *load.Document, opts ...gen.Option) (*gen.Graph, error) {
	c, err := gen.NewConfig(append([]gen.Option{gen.WithGenerator(drawio.New())}, opts...)...)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(c, doc)
}

// ConvertFile loads the graph_models document at path and builds its graph.
func ConvertFile(path string, opts ...gen.Option) (*gen.Graph, error) {
	doc, err := load.LoadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Convert(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("compiler: %s: %w", path, err)
	}
	return g, nil
}

// MappingsFile loads the name mapping table at path into the config.
// An empty path is a no-op.
func MappingsFile(path string) gen.Option {
	return func(c *gen.Config) error {
		ms, err := load.LoadMappings(path)
		if err != nil {
			return err
		}
		if len(ms) == 0 {
			return nil
		}
		return gen.WithMappings(ms...)(c)
	}
}

// Job is one conversion of a batch.
type Job struct {
	// Input is the graph_models JSON file.
	Input string
	// Output is the document path.
	Output string
	// Options are applied after the batch options. Stateful values such as
	// an IDGenerator belong here so that jobs do not share them.
	Options []gen.Option
}

// Result describes a finished job.
type Result struct {
	Job     Job
	Graph   *gen.Graph
	Metrics gen.WriterMetrics
}

// ConvertAll runs jobs in parallel, at most workers at a time, or
// GOMAXPROCS when workers is not positive. Each job gets its own graph, so
// options shared through opts must be safe for concurrent use. The first
// failure cancels the jobs not yet started. Results are in job order.
func ConvertAll(ctx context.Context, jobs []Job, workers int, opts ...gen.Option) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(jobs))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(workers)
	for i, job := range jobs {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := convertJob(job, opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func convertJob(job Job, opts []gen.Option) (*Result, error) {
	if job.Output == "" {
		return nil, gen.NewConfigError("Output", job.Input, "batch jobs need an output path")
	}
	all := make([]gen.Option, 0, len(opts)+len(job.Options))
	all = append(append(all, opts...), job.Options...)
	g, err := ConvertFile(job.Input, all...)
	if err != nil {
		return nil, err
	}
	w := gen.NewFileWriter(g)
	if err := w.WriteFile(job.Output); err != nil {
		return nil, fmt.Errorf("compiler: %s: %w", job.Input, err)
	}
	return &Result{Job: job, Graph: g, Metrics: w.Metrics()}, nil
}

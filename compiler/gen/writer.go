package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileWriter renders a graph and writes it to disk. The document is
// written to a temporary file in the target directory and renamed into
// place, so a failed run never leaves a truncated document behind.
type FileWriter struct {
	graph   *Graph
	metrics WriterMetrics
}

// WriterMetrics describes the last write.
type WriterMetrics struct {
	Bytes      int64
	Containers int
	Rows       int
	Edges      int
	RenderTime time.Duration
	WriteTime  time.Duration
}

// NewFileWriter creates a writer for g.
func NewFileWriter(g *Graph) *FileWriter {
	return &FileWriter{graph: g}
}

// Metrics returns the metrics of the last successful write.
func (w *FileWriter) Metrics() WriterMetrics {
	return w.metrics
}

// WriteFile renders the graph into path, creating parent directories.
func (w *FileWriter) WriteFile(path string) error {
	name := ""
	if w.graph != nil && w.graph.Config != nil && w.graph.Generator != nil {
		name = w.graph.Generator.Name()
	}

	start := time.Now()
	buf, err := Render(w.graph)
	if err != nil {
		return err
	}
	rendered := time.Now()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError(name, path, "create output directory", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return NewGenerationError(name, path, "create temporary file", err)
	}
	defer func() {
		// Already renamed on success; errors intentionally ignored.
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return NewGenerationError(name, path, "write document", err)
	}
	if err := tmp.Close(); err != nil {
		return NewGenerationError(name, path, "close document", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return NewGenerationError(name, path, "set permissions", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return NewGenerationError(name, path, fmt.Sprintf("rename %s", tmp.Name()), err)
	}

	w.metrics = WriterMetrics{
		Bytes:      int64(len(buf)),
		Edges:      len(w.graph.Edges),
		RenderTime: rendered.Sub(start),
		WriteTime:  time.Since(rendered),
	}
	for _, e := range w.graph.Entities() {
		w.metrics.Containers++
		w.metrics.Rows += len(e.Fields)
	}
	return nil
}

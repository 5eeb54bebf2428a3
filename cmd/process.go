package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rm-hull/conv-pool/internal/imageio"
	"github.com/rm-hull/conv-pool/internal/pixbuf"
	"github.com/rm-hull/conv-pool/internal/pixbuf/stage"
)

type Options struct {
	OutputDir string
	Kernel    stage.Kernel
	Boundary  stage.Boundary
	Format    imageio.Format
}

// Output names one written result.
type Output struct {
	Stage  string
	Path   string
	Width  int
	Height int
}

// Process loads imagePath, runs the convolution, max pooling and average
// pooling stages over it and writes one file per stage into opts.OutputDir.
// A load failure is returned as *imageio.LoadError before any stage runs; the
// first write failure stops the run.
func Process(imagePath string, opts Options) ([]Output, error) {
	img, err := imageio.Load(imagePath)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %s (%dx%d, %d channels)", imagePath, img.Width, img.Height, img.Channels)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	format := opts.Format
	if format == "" {
		format = imageio.PNG
	}

	stages := []pixbuf.Stage{
		&stage.ConvolutionStage{Kernel: opts.Kernel, Boundary: opts.Boundary},
		&stage.MaxPoolStage{},
		&stage.AvgPoolStage{},
	}
	basenames := []string{"conv_output", "max_pool_output", "avg_pool_output"}

	results := pixbuf.Fanout(img, stages...)
	outputs := make([]Output, 0, len(results))
	for i, result := range results {
		path := filepath.Join(opts.OutputDir, basenames[i]+format.Ext())
		if err := imageio.Write(path, result); err != nil {
			return outputs, err
		}
		log.Printf("Finished %s -> %s", stages[i].Name(), path)
		outputs = append(outputs, Output{
			Stage:  stages[i].Name(),
			Path:   path,
			Width:  result.Width,
			Height: result.Height,
		})
	}

	return outputs, nil
}

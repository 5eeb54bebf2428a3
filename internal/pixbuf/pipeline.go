package pixbuf

// Stage is a pure transform: it reads in and returns a freshly allocated
// buffer, never mutating its input.
type Stage interface {
	Name() string
	Process(in *PixelBuffer) *PixelBuffer
}

// Fanout applies every stage to the same input. No stage observes another's
// output, so the order of stages does not affect the results.
func Fanout(in *PixelBuffer, stages ...Stage) []*PixelBuffer {
	results := make([]*PixelBuffer, len(stages))
	for i, stage := range stages {
		results[i] = stage.Process(in)
	}
	return results
}

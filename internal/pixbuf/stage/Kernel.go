package stage

import (
	"fmt"
	"sort"
	"strings"
)

// Kernel holds 3x3 weights indexed [row][column]; the centre is Kernel[1][1].
type Kernel [3][3]float32

var (
	Identity       = Kernel{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}
	VerticalEdge   = Kernel{{1, 0, -1}, {1, 0, -1}, {1, 0, -1}}
	HorizontalEdge = Kernel{{1, 1, 1}, {0, 0, 0}, {-1, -1, -1}}
	Sharpen        = Kernel{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}}
	BoxBlur        = Kernel{{1.0 / 9, 1.0 / 9, 1.0 / 9}, {1.0 / 9, 1.0 / 9, 1.0 / 9}, {1.0 / 9, 1.0 / 9, 1.0 / 9}}
	Laplacian      = Kernel{{0, 1, 0}, {1, -4, 1}, {0, 1, 0}}
)

const DefaultKernelName = "vertical-edge"

var presets = map[string]Kernel{
	"identity":        Identity,
	"vertical-edge":   VerticalEdge,
	"horizontal-edge": HorizontalEdge,
	"sharpen":         Sharpen,
	"box-blur":        BoxBlur,
	"laplacian":       Laplacian,
}

// KernelByName looks up a preset kernel, case-insensitively.
func KernelByName(name string) (Kernel, error) {
	k, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Kernel{}, fmt.Errorf("unknown kernel %q (available: %s)", name, strings.Join(KernelNames(), ", "))
	}
	return k, nil
}

// KernelNames returns the preset names in sorted order.
func KernelNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Boundary decides what a neighbour outside the image contributes.
type Boundary int

const (
	// BoundaryOmit skips out-of-range neighbours, which is the same as
	// treating them as zero. The weights are not renormalised, so edges
	// darken or brighten depending on the kernel.
	BoundaryOmit Boundary = iota
	// BoundaryClamp replicates the nearest edge pixel.
	BoundaryClamp
	// BoundaryWrap samples from the opposite edge.
	BoundaryWrap
)

func (b Boundary) String() string {
	switch b {
	case BoundaryOmit:
		return "omit"
	case BoundaryClamp:
		return "clamp"
	case BoundaryWrap:
		return "wrap"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

func ParseBoundary(name string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "omit", "zero":
		return BoundaryOmit, nil
	case "clamp", "edge":
		return BoundaryClamp, nil
	case "wrap":
		return BoundaryWrap, nil
	}
	return BoundaryOmit, fmt.Errorf("unknown boundary policy %q (available: omit, clamp, wrap)", name)
}

// resolve maps coordinate i into [0, n) according to the policy. The second
// result is false when the sample should be skipped.
func (b Boundary) resolve(i, n int) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch b {
	case BoundaryClamp:
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	case BoundaryWrap:
		return ((i % n) + n) % n, true
	default:
		return 0, false
	}
}

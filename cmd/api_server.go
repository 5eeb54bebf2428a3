package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/conv-pool/internal/imageio"
	"github.com/rm-hull/conv-pool/internal/pixbuf"
	"github.com/rm-hull/conv-pool/internal/pixbuf/stage"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

const maxUploadBytes = 32 << 20

func ApiServer(port int, debug bool) {
	r, err := NewRouter(debug)
	if err != nil {
		log.Fatal(err)
	}

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

func NewRouter(debug bool) (*gin.Engine, error) {
	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		return nil, fmt.Errorf("failed to initialize healthcheck: %w", err)
	}

	v1 := r.Group("/v1")
	v1.GET("/kernels", listKernels)
	v1.POST("/transform/:op", transform)

	return r, nil
}

func listKernels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"kernels":    stage.KernelNames(),
		"default":    stage.DefaultKernelName,
		"boundaries": []string{"omit", "clamp", "wrap"},
	})
}

// transform decodes the request body, applies the stage named by :op and
// responds with the encoded result.
func transform(c *gin.Context) {
	s, err := stageFor(c.Param("op"), c.DefaultQuery("kernel", stage.DefaultKernelName), c.DefaultQuery("boundary", "omit"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUnknownOp) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	format, err := imageio.ParseFormat(c.DefaultQuery("format", "png"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	img, err := imageio.Decode(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.Process(img)
	if !result.Valid() || result.Width == 0 || result.Height == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("%dx%d image is too small for %s", img.Width, img.Height, s.Name())})
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("X-Image-Channels", fmt.Sprint(result.Channels))
	c.Status(http.StatusOK)
	if err := imageio.Encode(c.Writer, result, format); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

var errUnknownOp = errors.New("unknown operation")

func stageFor(op, kernelName, boundaryName string) (pixbuf.Stage, error) {
	switch op {
	case "convolve":
		kernel, err := stage.KernelByName(kernelName)
		if err != nil {
			return nil, err
		}
		boundary, err := stage.ParseBoundary(boundaryName)
		if err != nil {
			return nil, err
		}
		return &stage.ConvolutionStage{Kernel: kernel, Boundary: boundary}, nil
	case "max-pool":
		return &stage.MaxPoolStage{}, nil
	case "avg-pool":
		return &stage.AvgPoolStage{}, nil
	}
	return nil, fmt.Errorf("%w %q (available: convolve, max-pool, avg-pool)", errUnknownOp, op)
}

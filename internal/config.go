package internal

import (
	"os"
)

const (
	DefaultImage     = "Bird.jpeg"
	DefaultOutputDir = "."
)

// Config holds the defaults for a run. Each field can be set from the
// environment (or a .env file) and is overridden by command line flags.
type Config struct {
	DefaultImage string
	OutputDir    string
	Kernel       string
	Boundary     string
	Format       string
}

func LoadConfig() Config {
	return Config{
		DefaultImage: getenv("CONVPOOL_DEFAULT_IMAGE", DefaultImage),
		OutputDir:    getenv("CONVPOOL_OUTPUT_DIR", DefaultOutputDir),
		Kernel:       getenv("CONVPOOL_KERNEL", "vertical-edge"),
		Boundary:     getenv("CONVPOOL_BOUNDARY", "omit"),
		Format:       getenv("CONVPOOL_FORMAT", "png"),
	}
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

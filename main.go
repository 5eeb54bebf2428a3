package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/conv-pool/cmd"
	"github.com/rm-hull/conv-pool/internal"
	"github.com/rm-hull/conv-pool/internal/imageio"
	"github.com/rm-hull/conv-pool/internal/pixbuf/stage"
	"github.com/spf13/cobra"
)

func main() {
	var port int
	var debug bool
	var verbose bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := internal.LoadConfig()

	rootCmd := &cobra.Command{
		Use:           "conv-pool [image] [--out <dir>] [--kernel <name>] [--boundary <policy>] [--format <ext>]",
		Short:         "Convolve, max-pool and average-pool an image",
		Long:          `Writes a 3x3 convolution, a 2x2 max pooling and a 2x2 average pooling of the input image`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			imagePath := cfg.DefaultImage
			if len(args) == 0 {
				fmt.Printf("Usage: %s <image_path>\n", c.Root().Name())
			} else {
				imagePath = args[0]
			}

			if verbose {
				internal.ShowVersion()
				internal.EnvironmentVars()
			}

			opts, err := options(cfg)
			if err != nil {
				return err
			}

			_, err = cmd.Process(imagePath, opts)
			return err
		},
	}

	rootCmd.Flags().StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory to write the three output images to")
	rootCmd.Flags().StringVar(&cfg.Kernel, "kernel", cfg.Kernel, fmt.Sprintf("Convolution kernel, one of: %v", stage.KernelNames()))
	rootCmd.Flags().StringVar(&cfg.Boundary, "boundary", cfg.Boundary, "Convolution edge handling: omit, clamp or wrap")
	rootCmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "Output format: png, jpeg, bmp or tiff")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log version and CONVPOOL_* settings before running")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			internal.ShowVersion()
			cmd.ApiServer(port, debug)
		},
	}

	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARING: do not enable in production")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(internal.Version())
		},
	}

	rootCmd.AddCommand(apiServerCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		var loadErr *imageio.LoadError
		if errors.As(err, &loadErr) {
			fmt.Printf("Error in loading the image: %s\n", loadErr.Reason)
			os.Exit(-1)
		}
		log.Fatal(err)
	}
}

func options(cfg internal.Config) (cmd.Options, error) {
	kernel, err := stage.KernelByName(cfg.Kernel)
	if err != nil {
		return cmd.Options{}, err
	}
	boundary, err := stage.ParseBoundary(cfg.Boundary)
	if err != nil {
		return cmd.Options{}, err
	}
	format, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		return cmd.Options{}, err
	}
	return cmd.Options{
		OutputDir: cfg.OutputDir,
		Kernel:    kernel,
		Boundary:  boundary,
		Format:    format,
	}, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/posekit/gonio/internal/app"
	"github.com/posekit/gonio/internal/config"
	"github.com/posekit/gonio/pkg/log"
	"github.com/posekit/gonio/version"
)

var (
	cfg     = config.Default()
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "gonio <image>",
	Short: "Interactive angle annotation for pose reference images",
	Long: `gonio opens a photograph, lets you click three points per angle
(first arm, vertex, second arm) and collects the angles with a name,
tolerance and weight each. Saving writes a JSON record consumed by the
pose scorer plus an annotated copy of the image, and prints a
ready-to-paste pose definition snippet.`,
	Version: version.GetFullVersion(),
	Args:    cobra.ExactArgs(1),
	RunE:    runRoot,
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "", "path to a TOML config file (default: gonio/config.toml in the user config dir)")
	rootCmd.Flags().StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "directory for the output files (default: next to the image)")
	rootCmd.Flags().IntVar(&cfg.MaxDisplay, "max-display", cfg.MaxDisplay, "longest display edge in pixels, larger images are scaled down")
	rootCmd.Flags().Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "default tolerance for new measurements")
	rootCmd.Flags().Float64Var(&cfg.Weight, "weight", cfg.Weight, "default weight for new measurements")
	rootCmd.Flags().IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "quality for JPEG output, 1-100")
	rootCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the image when it changes on disk")
	rootCmd.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "quiet period before a changed image is reloaded")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
}

func runRoot(cmd *cobra.Command, args []string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}
	if cfgFile != "" && config.FileExists(cfgFile) {
		fc, err := config.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewZerologAdapter(cfg.Verbose)
	return app.Run(args[0], &cfg, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/project-classdoc/internal/config"
	"github.com/mvp-joe/project-classdoc/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classdoc",
	Short: "Classdoc - class specification documents from C# sources",
	Long: `Classdoc scans a folder of C# sources, extracts every class and interface
with its members, visibility and documentation comments, and writes a
numbered class specification document (docx or markdown).

Files can be left out with gitignore-style rules stored in generate.ignore
at the root of the scanned folder.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.classdoc/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// resolveRoot returns the absolute source root: the first argument, or the
// working directory when none is given.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	return abs, nil
}

// loadConfig reads --config when given, otherwise <root>/.classdoc/config.yml.
func loadConfig(root string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfigFromDir(root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger writes to stderr so stdout stays free for command output and the
// MCP transport.
func newLogger() *logrus.Logger {
	return logging.New(os.Stderr, verbose)
}

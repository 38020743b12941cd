package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/project-classdoc/internal/generator"
	"github.com/mvp-joe/project-classdoc/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [root]",
	Short: "Start the MCP server for class specification tools",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can list
documented types and generate class specification documents for the root
folder (default: current directory).

Tools:
  classdoc_list_types  numbered types of the current sources, no output written
  classdoc_generate    write the document, with optional output/format/start/title

The server communicates via stdio; logs go to stderr.

Example:
  classdoc mcp ./src`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a folder", root)
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	logger := newLogger()
	server := mcp.NewServer(generator.OptionsFromConfig(root, cfg), Version, logger)
	return server.Serve(cmd.Context())
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/reposnap-go/internal/app"
	"github.com/quantmind-br/reposnap-go/internal/config"
	"github.com/quantmind-br/reposnap-go/internal/utils"
	"github.com/quantmind-br/reposnap-go/pkg/version"
)

var (
	cfgFile string
	verbose bool

	// Dependency for testing the interactive prompt
	stdin io.Reader = os.Stdin
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reposnap [url]",
	Short: "Export a git repository's files to flat documents",
	Long: `Reposnap clones a git repository into a temporary directory, walks its
file tree skipping hidden entries, and serializes every readable file's
name, relative path and content into JSON, Markdown and plain-text
documents named after the repository.`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.reposnap/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", ".", "Output directory for the generated documents")
	rootCmd.PersistentFlags().StringSlice("formats", nil, "Output formats to generate (json,md,txt)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Fetch and scan without writing files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.formats", rootCmd.PersistentFlags().Lookup("formats"))

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := utils.NewLogger(utils.LoggerOptions{
		Level:   "info",
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	url, err := resolveURL(args)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:  cfg,
		Logger:  log,
		Verbose: verbose,
		DryRun:  dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	result, err := orchestrator.Run(ctx, url)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d files from %s (branch %s)\n", result.Files, result.RepoName, result.Branch)
	for _, artifact := range result.Artifacts {
		fmt.Printf("  %s\n", artifact)
	}
	if result.WriteFailures > 0 {
		fmt.Printf("  %d artifact(s) could not be written\n", result.WriteFailures)
	}
	return nil
}

// resolveURL takes the repository URL from the positional argument or, when
// absent, prompts for it interactively.
func resolveURL(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	fmt.Print("Enter repository URL: ")
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read repository URL: %w", err)
	}

	url := strings.TrimSpace(line)
	if url == "" {
		return "", errors.New("repository URL is required")
	}
	return url, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reposnap configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureConfigDir(); err != nil {
			return err
		}

		path := config.ConfigFilePath()
		if err := config.WriteDefault(path); err != nil {
			if errors.Is(err, os.ErrExist) {
				fmt.Printf("Config file already exists: %s\n", path)
				return nil
			}
			return err
		}

		fmt.Printf("Config file written: %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

package main

import (
	"fmt"
	"os"

	"github.com/spetersoncode/reviewchat/client"
	"github.com/spetersoncode/reviewchat/config"
	"github.com/spetersoncode/reviewchat/internal/conversation"
	"github.com/spetersoncode/reviewchat/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debug    bool
	model    string
	language string
	store    string

	transientOnly bool
)

var rootCmd = &cobra.Command{
	Use:          "reviewchat",
	Short:        "Chat with Mistral, Fireworks, or OpenAI using whichever key is set",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "response language ISO code (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&transientOnly, "transient-only", false, "retry only rate limits, server and network errors")
	rootCmd.PersistentFlags().StringVar(&store, "store", "", "JSON file keeping OpenAI conversation history between runs")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(mcpCmd)
}

// newClient loads configuration, applies flag overrides, and builds the
// client. Logs go to stderr so stdout stays machine-readable.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("debug") {
		cfg.Options.Debug = debug
	}
	if model != "" {
		cfg.Model.Model = model
	}
	if language != "" {
		cfg.Options.Language = language
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Setup(os.Stderr, cfg.Options.Debug)

	opts := []client.ClientOption{client.WithLogger(logger)}
	if transientOnly {
		opts = append(opts, client.WithTransientRetriesOnly())
	}
	if store != "" {
		adapter, err := conversation.NewFileAdapter(store)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		opts = append(opts, client.WithConversationAdapter(adapter))
	}

	c, err := client.New(cfg.Options, cfg.Model, config.CredentialsFromEnv(), opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("client ready",
		"provider", c.Provider(),
		"model", c.Model(),
		"base_url", c.BaseURL())
	return c, nil
}

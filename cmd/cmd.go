package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/ollama/pretokenize/envconfig"
	"github.com/ollama/pretokenize/logutil"
	"github.com/ollama/pretokenize/server"
	"github.com/ollama/pretokenize/version"
)

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

func RunServer(_ *cobra.Command, _ []string) error {
	ln, err := net.Listen("tcp", envconfig.Host().Host)
	if err != nil {
		return err
	}

	return server.Serve(ln)
}

func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "pretokenize",
		Short:         "Split text into pre-tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [TEXT...]",
		Short: "Pre-tokenize text from the arguments or stdin",
		Long: `Pre-tokenize text from the arguments or, when none are given, every
line read from stdin. The pre-tokenizer comes from --config, a tokenizer.json
or a bare pre-tokenizer object in JSON, YAML or TOML, or from --type.`,
		Example: `  pretokenize run --type ByteLevel "Hey friend!"
  pretokenize run --config tokenizer.json < corpus.txt
  pretokenize run --type Metaspace --set replacement=▁ --set prepend_scheme=first "Hello world"
  pretokenize run --type Split --set pattern.Regex='\s' --set behavior=Removed "a b c"`,
		RunE: RunHandler,
	}

	runCmd.Flags().StringP("config", "c", "", "Pre-tokenizer or tokenizer.json file")
	runCmd.Flags().StringP("type", "t", "", "Pre-tokenizer type, e.g. ByteLevel")
	runCmd.Flags().StringArray("set", nil, "Set a config key, e.g. --set add_prefix_space=true")
	runCmd.Flags().StringSlice("specials", nil, "Special tokens passed through untouched")
	runCmd.Flags().String("format", "", "Output format (json|cbor|table)")
	runCmd.Flags().Bool("not-first", false, "Treat the input as a continuation rather than the start of a text")
	runCmd.Flags().Bool("remote", false, "Pre-tokenize with the server at PRETOKENIZE_HOST")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pre-tokenizer types",
		RunE:    ListHandler,
	}

	listCmd.Flags().Bool("remote", false, "List the types of the server at PRETOKENIZE_HOST")

	serveCmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the pre-tokenizer HTTP server",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}

	envVars := envconfig.AsMap()
	envs := []envconfig.EnvVar{envVars["PRETOKENIZE_DEBUG"]}

	for _, cmd := range []*cobra.Command{runCmd, listCmd, serveCmd} {
		switch cmd {
		case runCmd:
			appendEnvDocs(cmd, append(envs, envVars["PRETOKENIZE_MAX_LINE"], envVars["PRETOKENIZE_NOCOLOR"], envVars["PRETOKENIZE_HOST"]))
		case listCmd:
			appendEnvDocs(cmd, append(envs, envVars["PRETOKENIZE_HOST"]))
		case serveCmd:
			appendEnvDocs(cmd, append(envs, envVars["PRETOKENIZE_HOST"], envVars["PRETOKENIZE_ORIGINS"]))
		}
	}

	rootCmd.AddCommand(
		runCmd,
		listCmd,
		serveCmd,
	)

	return rootCmd
}

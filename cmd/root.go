package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger
var cliConfig CLIConfig

var rootCmd = &cobra.Command{
	Use:   "dnstrust",
	Short: "Score how trustworthy a domain's DNS posture looks",
	Long: `dnstrust runs a fixed battery of DNS checks (SPF, DMARC, NS, CNAME,
A, MX) against a domain, interprets each result against a scoring policy and
reports a single trust score with a per-check finding list. Optional HTML and
WHOIS checks extend the picture.

All checks are safe, non-intrusive lookups only.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".dnstrust")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		cliConfig = loadConfig()

		// init logger
		var l *zap.Logger
		var err error
		if cliConfig.Verbose {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dnstrust.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

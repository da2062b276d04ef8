package cmd

import (
	"os"

	"github.com/perfgate/perfgate/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile      string
	refConfigSrc string
	logLevel     string
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "perfgate",
	Short: "Performance-test configuration generator",
	Long: `perfgate turns a performance-test selection (load profile, target
environment, scenario) into a configuration in one of several wire formats
(JSON, ENV, HOCON, properties) and dispatches it to a CI workflow.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.perfgate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&refConfigSrc, "ref-config", "", "reference config path or URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(dispatchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(formatsCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	logger.SetLevel(logger.ParseLevel(logLevel))
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.SetNoColor(true)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME/.perfgate")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PERFGATE")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

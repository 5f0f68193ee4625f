package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/vrushti/clinic_backend/cmd/http"
	systemcmd "github.com/vrushti/clinic_backend/cmd/system"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "clinic",
	Short: "Clinic management backend for Vrushti Homeopathic & Diet Clinic.",
	Long: `Backend for the clinic management application. It keeps patient records
with their treatment plans, investigation files, payments and follow-ups,
and handles staff accounts.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}

// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/compgen/transduce/envconfig"
	"github.com/compgen/transduce/logutil"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
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

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "transduce",
		Short:         "Compositional sequence transduction runner",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	composeCmd := newComposeCmd()
	evalCmd := newEvalCmd()

	var envVars []envconfig.EnvVar
	for _, v := range envconfig.AsMap() {
		envVars = append(envVars, v)
	}
	for _, cmd := range []*cobra.Command{composeCmd, evalCmd} {
		appendEnvDocs(cmd, envVars)
	}

	rootCmd.AddCommand(composeCmd, evalCmd)

	return rootCmd
}

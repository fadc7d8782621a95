package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "regform",
		Short: "Validate and submit the registration form",
		Long: `regform drives the registration form outside the browser.

Fields are checked with the same rules the page applies on blur, valid forms
are posted as JSON and the last successful response is kept in the configured
store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.endpoint, "endpoint", "", "Override the submission endpoint")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRunCmd(a),
		newSubmitCmd(a),
		newRenderCmd(a),
		newContractCmd(a),
		newLastCmd(a),
	)
	return root
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var storeType string

var rootCmd = &cobra.Command{
	Use:   "docstore",
	Short: "Document storage handler tools",
	Long: `Run the document storage handler outside Lambda.

serve starts a local HTTP server in front of the handler; invoke runs a
single API Gateway proxy event through it and prints the response.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeType, "store", "", "Object store override (s3, minio, local, memory)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(invokeCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

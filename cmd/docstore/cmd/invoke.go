package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spf13/cobra"
)

var eventPath string

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Run one API Gateway proxy event through the handler",
	Long:  "Reads an APIGatewayProxyRequest as JSON from --event (or stdin) and prints the response as JSON.",
	RunE:  runInvoke,
}

func init() {
	invokeCmd.Flags().StringVarP(&eventPath, "event", "e", "", "Path to the event JSON file (stdin when empty or -)")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	raw, err := readEvent(cmd.InOrStdin())
	if err != nil {
		return err
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	app, err := buildApp(cmd.Context())
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	resp, err := app.Handler.Handle(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func readEvent(stdin io.Reader) ([]byte, error) {
	if eventPath == "" || eventPath == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	return raw, nil
}

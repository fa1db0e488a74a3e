// Shared behaviour of every sample: one request, print the body or one
// failure line, never fail the process for a remote error.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Parameters the walkthrough samples hard-code, used as flag defaults
const (
	defaultDocument        = "images/kaleido-logo.png"
	defaultTransferDoc     = "/images/kaleido-logo.png"
	defaultUploadSource    = "resources/kaleido.png"
	defaultDownloadTarget  = "resources/kaleido_downloaded.png"
	defaultSearchQuery     = "kaleido"
	defaultPreferenceKey   = "receivedDocumentsPath"
	defaultPreferenceValue = "/transfers/to/${recipient_destination}/from/${sender_org}-${sender_destination}"
)

// Config keys needed by the HTTP samples
var (
	documentKeys = []string{"api.documents", "credentials.user", "credentials.password"}
	transferKeys = []string{"api.transfers", "credentials.user", "credentials.password"}
)

// runSample performs op and prints its outcome to the command's output.
// Errors are printed as "<failMsg>: <err>" and swallowed.
func runSample(cmd *cobra.Command, failMsg string, op func(ctx context.Context) ([]byte, error)) {
	out := cmd.OutOrStdout()
	body, err := op(cmd.Context())
	if err != nil {
		printFailure(out, failMsg, err)
		return
	}
	printBody(out, body)
}

// printFailure writes exactly one line, whatever the error text holds.
func printFailure(w io.Writer, failMsg string, err error) {
	fmt.Fprintf(w, "%s: %s\n", failMsg, strings.Join(strings.Fields(err.Error()), " "))
}

func printBody(w io.Writer, body []byte) {
	if len(body) == 0 {
		return
	}
	w.Write(body)
	if body[len(body)-1] != '\n' {
		fmt.Fprintln(w)
	}
}

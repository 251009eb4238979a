// Package display decides how CLI commands print results: a table for
// people, JSON for scripts and agents.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/errors"
)

// CallerEnv names the variable a machine caller sets to "llm" or "script"
// to get compact JSON by default
const CallerEnv = "QNTX_CALLER"

// IsMachineCaller reports whether output is consumed by a program
func IsMachineCaller() bool {
	switch os.Getenv(CallerEnv) {
	case "llm", "script":
		return true
	}
	return false
}

// ShouldOutputJSON determines if a command should output JSON. An explicit
// --json flag wins; otherwise machine callers get JSON.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return IsMachineCaller()
	}
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		on, _ := cmd.Flags().GetBool("json")
		return on
	}
	return IsMachineCaller()
}

// MarshalJSON is compact for machine callers and indented otherwise
func MarshalJSON(v interface{}) ([]byte, error) {
	if IsMachineCaller() {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// OutputJSON writes v as JSON followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

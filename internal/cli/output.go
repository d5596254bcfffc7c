package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object when JSON output is on and
// swallows it. Otherwise err is returned unchanged.
func (o *OutputOptions) HandleError(w io.Writer, err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}
	return err
}

func (o *OutputOptions) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	bold    = color.New(color.Bold).SprintFunc()
	faint   = color.New(color.Faint, color.Italic).SprintFunc()
	title   = color.New(color.Bold, color.Underline).SprintFunc()
	success = color.New(color.FgGreen).SprintFunc()
)

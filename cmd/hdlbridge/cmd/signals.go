/*
Copyright (c) the cosim-bridge authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/myhdl/cosim-bridge/bridge/descriptors"
)

// tableColWidth picks a column width from the terminal size when stdout is
// a terminal, falling back to a fixed width when piped (e.g. in CI).
func tableColWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w / 3
	}
	return 20
}

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "print the compiled-model signal table from a descriptor file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if descriptorFileFlag == "" {
			return fmt.Errorf("--descriptor-file is required")
		}
		outputs, inputs, err := descriptors.LoadINI(descriptorFileFlag)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetColWidth(tableColWidth())
		table.SetHeader([]string{"direction", "name", "width"})
		for _, o := range outputs {
			table.Append([]string{"output", o.Name, fmt.Sprintf("%d", o.Width)})
		}
		for _, i := range inputs {
			table.Append([]string{"input", i.Name, fmt.Sprintf("%d", i.Width)})
		}
		table.Render()
		return nil
	},
}

func init() {
	signalsCmd.Flags().StringVar(&descriptorFileFlag, "descriptor-file", "", "path to the INI descriptor file (SPEC_FULL A7)")
	RootCmd.AddCommand(signalsCmd)
}

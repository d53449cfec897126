package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(root *rootFlags) *cobra.Command {
	kvargs := &struct {
		json bool
	}{}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the registered tools",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			s, _, err := newToolServer(cfg)
			if err != nil {
				return err
			}

			if kvargs.json {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(s.Registry().List())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range s.Registry().Entries() {
				fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Usage)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&kvargs.json, "json", false, "print the names as a JSON array")

	return cmd
}

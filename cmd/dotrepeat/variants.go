package main

import (
	"fmt"
	"strings"

	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/spf13/cobra"
)

func newVariantsCmd(c *cli) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the insert variants a script can begin",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			catalog := insert.NewCatalog()
			for _, name := range catalog.Names() {
				if !long {
					fmt.Fprintln(c.out, name)
					continue
				}
				v, err := catalog.Lookup(name)
				if err != nil {
					return c.fail(err)
				}
				fmt.Fprintf(c.out, "%-42s %s\n", name, describe(v))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show targets and flags")
	return cmd
}

func describe(v *insert.Variant) string {
	var parts []string
	switch {
	case v.Target != "":
		parts = append(parts, "target="+v.Target)
	case v.RequireTarget:
		parts = append(parts, "target=required")
	}
	if v.Occurrence {
		parts = append(parts, "occurrence")
	}
	if v.SupportCount {
		parts = append(parts, "count")
	}
	if v.FinalSubmode != "" {
		parts = append(parts, "submode="+v.FinalSubmode)
	}
	return strings.Join(parts, " ")
}

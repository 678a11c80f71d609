package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the languages command.
func (c *LanguagesCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tLANGUAGE")
	for _, code := range deps.Languages.Codes() {
		lang, err := deps.Languages.Get(code)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", lang.Code, lang.Name)
	}
	return w.Flush()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amplet/amplet/backend/graph"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <model file>",
	Short: "Print the components of a serialized model graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	gm, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("model %s\n", gm.Name())
	for _, name := range gm.Components() {
		c, _ := gm.Find(name)
		switch c := c.(type) {
		case *graph.Param:
			fmt.Printf("  param      %s = %v\n", name, c.Value)
		case *graph.Var:
			fmt.Printf("  var        %s%s\n", name, varSuffix(c))
		case *graph.Constraint:
			fmt.Printf("  constraint %s\n", name)
		case *graph.Objective:
			fmt.Printf("  %s   %s\n", c.Sense, name)
		}
	}
	return nil
}

func varSuffix(v *graph.Var) string {
	var s string
	if v.Integer {
		s += " integer"
	}
	if v.Lower != nil {
		s += fmt.Sprintf(" >= %v", *v.Lower)
	}
	if v.Upper != nil {
		s += fmt.Sprintf(" <= %v", *v.Upper)
	}
	if val, ok := v.Value(); ok {
		s += fmt.Sprintf(" := %v", val)
	}
	return s
}

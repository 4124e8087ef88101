package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amplet/amplet/backend/graph"
	amplio "github.com/amplet/amplet/io"
)

var evalValuesPath string

var evalCmd = &cobra.Command{
	Use:   "eval <model file>",
	Short: "Evaluate a serialized model graph at a point",
	Long: `Evaluate a serialized model graph at the point given by a JSON value
file, reporting which constraints hold and the objective values.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalValuesPath, "values", "", "JSON file with one value per variable")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	gm, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	if evalValuesPath != "" {
		values := make(map[string]float64)
		if err := amplio.ReadValues(evalValuesPath, values); err != nil {
			return err
		}
		for name, value := range values {
			c, ok := gm.Find(name)
			if !ok {
				return fmt.Errorf("value for unknown component %q", name)
			}
			v, ok := c.(*graph.Var)
			if !ok {
				return fmt.Errorf("component %q is not a variable", name)
			}
			v.SetValue(value)
		}
	}

	violated := 0
	for _, c := range gm.Constraints() {
		v, err := graph.Eval(c.Expr)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		state := "ok"
		if v == 0 {
			state = "violated"
			violated++
		}
		fmt.Printf("%s %s\n", c.Name(), state)
	}
	for _, o := range gm.Objectives() {
		v, err := graph.Eval(o.Expr)
		if err != nil {
			return fmt.Errorf("%s: %w", o.Name(), err)
		}
		fmt.Printf("%s %s = %v\n", o.Sense, o.Name(), v)
	}

	if violated > 0 {
		return fmt.Errorf("%d constraint(s) violated", violated)
	}
	return nil
}

package ampl

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

// Program is an ordered AMPL statement sequence. It implements
// translate.Emitter and translate.SetEmitter.
type Program struct {
	statements []string
}

// NewProgram returns an empty statement sequence.
func NewProgram() *Program {
	return &Program{}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Parameter emits "param <name> [>= L] [<= U] [:= V];".
func (p *Program) Parameter(s *model.Symbol) error {
	var sb strings.Builder
	sb.WriteString("param ")
	sb.WriteString(s.Name)
	if s.Lower != nil {
		sb.WriteString(" >= ")
		sb.WriteString(num(*s.Lower))
	}
	if s.Upper != nil {
		sb.WriteString(" <= ")
		sb.WriteString(num(*s.Upper))
	}
	if s.Value != nil {
		sb.WriteString(" := ")
		sb.WriteString(num(*s.Value))
	}
	sb.WriteString(";")
	p.statements = append(p.statements, sb.String())
	return nil
}

// Variable emits "var <name> [integer] [>= L] [<= U] [:= V];".
func (p *Program) Variable(s *model.Symbol) error {
	var sb strings.Builder
	sb.WriteString("var ")
	sb.WriteString(s.Name)
	if s.IsInteger() {
		sb.WriteString(" integer")
	}
	if s.Lower != nil {
		sb.WriteString(" >= ")
		sb.WriteString(num(*s.Lower))
	}
	if s.Upper != nil {
		sb.WriteString(" <= ")
		sb.WriteString(num(*s.Upper))
	}
	if s.Value != nil {
		sb.WriteString(" := ")
		sb.WriteString(num(*s.Value))
	}
	sb.WriteString(";")
	p.statements = append(p.statements, sb.String())
	return nil
}

// Constraint emits "subject to <name>: <expr>;".
func (p *Program) Constraint(name string, e expr.Expr) error {
	p.statements = append(p.statements, "subject to "+name+": "+render(e)+";")
	return nil
}

// Objective emits "minimize|maximize <name>:<expr>;".
func (p *Program) Objective(sense model.Sense, name string, e expr.Expr) error {
	p.statements = append(p.statements, sense.String()+" "+name+":"+render(e)+";")
	return nil
}

// Set emits "set <name> [ordered] := { e1, e2, ... };".
func (p *Program) Set(name string, ordered bool, elements []string) error {
	var sb strings.Builder
	sb.WriteString("set ")
	sb.WriteString(name)
	if ordered {
		sb.WriteString(" ordered")
	}
	sb.WriteString(" := { ")
	sb.WriteString(strings.Join(elements, ", "))
	sb.WriteString(" };")
	p.statements = append(p.statements, sb.String())
	return nil
}

// Statements returns a copy of the statement lines in emission order.
func (p *Program) Statements() []string {
	out := make([]string, len(p.statements))
	copy(out, p.statements)
	return out
}

// WriteTo streams the program, one statement per line.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range p.statements {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Save writes the program to a model file readable by AMPL.
func (p *Program) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := p.WriteTo(f); err != nil {
		return err
	}
	return f.Sync()
}

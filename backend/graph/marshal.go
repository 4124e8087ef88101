package graph

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

// serialization is schema-less CBOR in three independently encoded sections
// (meta, components, statements) behind a fixed-size length header; sections
// are encoded and decoded in parallel.

var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

const (
	tagConst uint8 = iota
	tagParamRef
	tagVarRef
	tagNeg
	tagBinOp
	tagCallOp
	tagCondOp
)

// packedNode is one flattened graph node. Children are indices into the
// statement's node slice; the root is always the last entry.
type packedNode struct {
	Tag  uint8    `cbor:"1,keyasint"`
	Op   uint8    `cbor:"2,keyasint,omitempty"`
	Val  float64  `cbor:"3,keyasint,omitempty"`
	Ref  string   `cbor:"4,keyasint,omitempty"`
	Fn   string   `cbor:"5,keyasint,omitempty"`
	Args []uint32 `cbor:"6,keyasint,omitempty"`
}

type packedComponent struct {
	Name    string   `cbor:"1,keyasint"`
	IsParam bool     `cbor:"2,keyasint,omitempty"`
	Value   float64  `cbor:"3,keyasint,omitempty"`
	Integer bool     `cbor:"4,keyasint,omitempty"`
	Lower   *float64 `cbor:"5,keyasint,omitempty"`
	Upper   *float64 `cbor:"6,keyasint,omitempty"`
	Init    *float64 `cbor:"7,keyasint,omitempty"`
}

type packedStatement struct {
	Name      string       `cbor:"1,keyasint"`
	Objective bool         `cbor:"2,keyasint,omitempty"`
	Maximize  bool         `cbor:"3,keyasint,omitempty"`
	Nodes     []packedNode `cbor:"4,keyasint"`
}

type meta struct {
	Name string `cbor:"1,keyasint"`
}

type header struct {
	metaLen       uint64
	componentsLen uint64
	statementsLen uint64
}

func (h header) toBytes() []byte {
	buf := make([]byte, 24)
	binary.BigEndian.PutUint64(buf[0:8], h.metaLen)
	binary.BigEndian.PutUint64(buf[8:16], h.componentsLen)
	binary.BigEndian.PutUint64(buf[16:24], h.statementsLen)
	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.metaLen = binary.BigEndian.Uint64(buf[0:8])
	h.componentsLen = binary.BigEndian.Uint64(buf[8:16])
	h.statementsLen = binary.BigEndian.Uint64(buf[16:24])
}

// WriteTo serializes the graph.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	var metaB, components, statements []byte

	var g errgroup.Group
	g.Go(func() error {
		var err error
		components, err = m.componentsToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		statements, err = m.statementsToBytes()
		return err
	})
	metaB, err := encMode.Marshal(meta{Name: m.name})
	if err != nil {
		return 0, err
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	h := header{
		metaLen:       uint64(len(metaB)),
		componentsLen: uint64(len(components)),
		statementsLen: uint64(len(statements)),
	}

	var written int64
	for _, block := range [][]byte{h.toBytes(), metaB, components, statements} {
		n, err := w.Write(block)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (m *Model) componentsToBytes() ([]byte, error) {
	packed := make([]packedComponent, 0, len(m.order))
	for _, name := range m.order {
		switch c := m.components[name].(type) {
		case *Param:
			packed = append(packed, packedComponent{Name: c.name, IsParam: true, Value: c.Value})
		case *Var:
			packed = append(packed, packedComponent{
				Name:    c.name,
				Integer: c.Integer,
				Lower:   c.Lower,
				Upper:   c.Upper,
				Init:    c.value,
			})
		}
	}
	return encMode.Marshal(packed)
}

func (m *Model) statementsToBytes() ([]byte, error) {
	packed := make([]packedStatement, 0, len(m.constraints)+len(m.objectives))
	for _, c := range m.constraints {
		s := packedStatement{Name: c.name}
		s.Nodes = packNodes(c.Expr)
		packed = append(packed, s)
	}
	for _, o := range m.objectives {
		s := packedStatement{Name: o.name, Objective: true, Maximize: o.Sense == model.Maximize}
		s.Nodes = packNodes(o.Expr)
		packed = append(packed, s)
	}
	return encMode.Marshal(packed)
}

func packNodes(root Node) []packedNode {
	var nodes []packedNode
	packNode(root, &nodes)
	return nodes
}

// packNode appends n's subtree post-order and returns n's index.
func packNode(n Node, out *[]packedNode) uint32 {
	var p packedNode
	switch n := n.(type) {
	case Const:
		p = packedNode{Tag: tagConst, Val: float64(n)}
	case *ParamRef:
		p = packedNode{Tag: tagParamRef, Ref: n.P.name}
	case *VarRef:
		p = packedNode{Tag: tagVarRef, Ref: n.V.name}
	case *Neg:
		x := packNode(n.X, out)
		p = packedNode{Tag: tagNeg, Args: []uint32{x}}
	case *BinOp:
		l := packNode(n.L, out)
		r := packNode(n.R, out)
		p = packedNode{Tag: tagBinOp, Op: uint8(n.Op), Args: []uint32{l, r}}
	case *CallOp:
		args := make([]uint32, len(n.Args))
		for i, a := range n.Args {
			args[i] = packNode(a, out)
		}
		p = packedNode{Tag: tagCallOp, Fn: n.Fn, Args: args}
	case *CondOp:
		c := packNode(n.If, out)
		t := packNode(n.Then, out)
		e := packNode(n.Else, out)
		p = packedNode{Tag: tagCondOp, Args: []uint32{c, t, e}}
	}
	*out = append(*out, p)
	return uint32(len(*out) - 1)
}

// ReadFrom deserializes a graph previously written with WriteTo.
func (m *Model) ReadFrom(r io.Reader) (int64, error) {
	headerB := make([]byte, 24)
	read, err := io.ReadFull(r, headerB)
	if err != nil {
		return int64(read), err
	}
	var h header
	h.fromBytes(headerB)

	blocks := make([]byte, h.metaLen+h.componentsLen+h.statementsLen)
	n, err := io.ReadFull(r, blocks)
	total := int64(read) + int64(n)
	if err != nil {
		return total, err
	}

	metaB := blocks[:h.metaLen]
	componentsB := blocks[h.metaLen : h.metaLen+h.componentsLen]
	statementsB := blocks[h.metaLen+h.componentsLen:]

	var md meta
	if err := cbor.Unmarshal(metaB, &md); err != nil {
		return total, err
	}

	var components []packedComponent
	var statements []packedStatement
	var g errgroup.Group
	g.Go(func() error { return cbor.Unmarshal(componentsB, &components) })
	g.Go(func() error { return cbor.Unmarshal(statementsB, &statements) })
	if err := g.Wait(); err != nil {
		return total, err
	}

	m.name = md.Name
	m.components = make(map[string]Component, len(components))
	m.order = m.order[:0]
	m.vars = m.vars[:0]
	m.constraints = m.constraints[:0]
	m.objectives = m.objectives[:0]

	for _, c := range components {
		if c.IsParam {
			if err := m.attach(&Param{name: c.Name, Value: c.Value}); err != nil {
				return total, err
			}
			continue
		}
		v := &Var{name: c.Name, Integer: c.Integer, Lower: c.Lower, Upper: c.Upper, value: c.Init}
		if err := m.attach(v); err != nil {
			return total, err
		}
		m.vars = append(m.vars, v)
	}

	for _, s := range statements {
		root, err := m.unpackNodes(s.Nodes)
		if err != nil {
			return total, err
		}
		switch {
		case s.Objective:
			sense := model.Minimize
			if s.Maximize {
				sense = model.Maximize
			}
			o := &Objective{name: s.Name, Sense: sense, Expr: root}
			if err := m.attach(o); err != nil {
				return total, err
			}
			m.objectives = append(m.objectives, o)
		default:
			c := &Constraint{name: s.Name, Expr: root}
			if err := m.attach(c); err != nil {
				return total, err
			}
			m.constraints = append(m.constraints, c)
		}
	}

	return total, nil
}

func (m *Model) unpackNodes(packed []packedNode) (Node, error) {
	if len(packed) == 0 {
		return nil, fmt.Errorf("empty statement body")
	}
	nodes := make([]Node, len(packed))
	child := func(p packedNode, i, at int) (Node, error) {
		idx := int(p.Args[i])
		if idx >= at {
			return nil, fmt.Errorf("node %d references forward child %d", at, idx)
		}
		return nodes[idx], nil
	}

	for i, p := range packed {
		switch p.Tag {
		case tagConst:
			nodes[i] = Const(p.Val)

		case tagParamRef:
			c, ok := m.components[p.Ref]
			if !ok {
				return nil, fmt.Errorf("unknown component %q", p.Ref)
			}
			param, ok := c.(*Param)
			if !ok {
				return nil, fmt.Errorf("component %q is not a parameter", p.Ref)
			}
			nodes[i] = &ParamRef{P: param}

		case tagVarRef:
			c, ok := m.components[p.Ref]
			if !ok {
				return nil, fmt.Errorf("unknown component %q", p.Ref)
			}
			v, ok := c.(*Var)
			if !ok {
				return nil, fmt.Errorf("component %q is not a variable", p.Ref)
			}
			nodes[i] = &VarRef{V: v}

		case tagNeg:
			if len(p.Args) != 1 {
				return nil, fmt.Errorf("negation needs 1 child")
			}
			x, err := child(p, 0, i)
			if err != nil {
				return nil, err
			}
			nodes[i] = &Neg{X: x}

		case tagBinOp:
			if len(p.Args) != 2 {
				return nil, fmt.Errorf("binary node needs 2 children")
			}
			l, err := child(p, 0, i)
			if err != nil {
				return nil, err
			}
			r, err := child(p, 1, i)
			if err != nil {
				return nil, err
			}
			nodes[i] = &BinOp{Op: expr.Operator(p.Op), L: l, R: r}

		case tagCallOp:
			args := make([]Node, len(p.Args))
			for j := range p.Args {
				a, err := child(p, j, i)
				if err != nil {
					return nil, err
				}
				args[j] = a
			}
			nodes[i] = &CallOp{Fn: p.Fn, Args: args}

		case tagCondOp:
			if len(p.Args) != 3 {
				return nil, fmt.Errorf("conditional node needs 3 children")
			}
			cond, err := child(p, 0, i)
			if err != nil {
				return nil, err
			}
			then, err := child(p, 1, i)
			if err != nil {
				return nil, err
			}
			els, err := child(p, 2, i)
			if err != nil {
				return nil, err
			}
			nodes[i] = &CondOp{If: cond, Then: then, Else: els}

		default:
			return nil, fmt.Errorf("unknown node tag %d", p.Tag)
		}
	}
	return nodes[len(nodes)-1], nil
}

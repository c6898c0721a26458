package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vellum-eda/tpgcore/node"
)

// ParseISCAS89 reads the ISCAS-89 "bench" netlist form:
//
//	INPUT(G1)
//	OUTPUT(G17)
//	G10 = DFF(G6)
//	G11 = AND(G1, G2)
//
// A DFF(x) declaration makes the declared name a latch output (PPI) whose
// next-state driver is x; x may be declared later in the file (the usual
// bench-format convention of breaking feedback loops at the flop), since
// latch wiring is resolved only after every combinational net is known.
// '#' and '*' both start a line comment.
func ParseISCAS89(r io.Reader) (*Netlist, error) {
	scanner := bufio.NewScanner(r)
	nl := &Netlist{}
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexAny(line, "#*"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "INPUT("):
			nl.Inputs = append(nl.Inputs, parseParenArg(line, "INPUT"))
		case strings.HasPrefix(line, "OUTPUT("):
			nl.Outputs = append(nl.Outputs, parseParenArg(line, "OUTPUT"))
		default:
			decl, latch, err := parseGateLine(line)
			if err != nil {
				return nil, err
			}
			if latch != nil {
				nl.Latches = append(nl.Latches, *latch)
			} else {
				nl.Gates = append(nl.Gates, *decl)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parser: iscas89: %w", err)
	}
	return nl, nil
}

func parseParenArg(line, keyword string) string {
	inner := strings.TrimPrefix(line, keyword+"(")
	return strings.TrimSpace(strings.TrimSuffix(inner, ")"))
}

func parseGateLine(line string) (decl *GateDecl, latch *LatchDecl, err error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return nil, nil, fmt.Errorf("parser: iscas89: unrecognized line %q", line)
	}
	name := strings.TrimSpace(line[:eq])
	rhs := strings.TrimSpace(line[eq+1:])
	open := strings.IndexByte(rhs, '(')
	if open < 0 || !strings.HasSuffix(rhs, ")") {
		return nil, nil, fmt.Errorf("parser: iscas89: malformed gate declaration %q", line)
	}
	typ := strings.ToUpper(strings.TrimSpace(rhs[:open]))
	var args []string
	for _, a := range strings.Split(rhs[open+1:len(rhs)-1], ",") {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}

	if typ == "DFF" {
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("parser: iscas89: DFF declaring %q needs exactly one input net, got %d", name, len(args))
		}
		return nil, &LatchDecl{Input: args[0], Output: name}, nil
	}
	kind, ok := primKind(typ)
	if !ok {
		return nil, nil, fmt.Errorf("parser: iscas89: unknown gate type %q declaring net %q", typ, name)
	}
	if len(args) < kind.MinFanin() {
		return nil, nil, fmt.Errorf("parser: iscas89: %s declaring %q needs >= %d inputs, got %d", typ, name, kind.MinFanin(), len(args))
	}
	return &GateDecl{Output: name, Fanin: args, Prim: kind}, nil, nil
}

func primKind(typ string) (node.Kind, bool) {
	switch typ {
	case "AND":
		return node.And, true
	case "NAND":
		return node.Nand, true
	case "OR":
		return node.Or, true
	case "NOR":
		return node.Nor, true
	case "XOR":
		return node.Xor, true
	case "XNOR":
		return node.Xnor, true
	case "NOT", "INV":
		return node.Not, true
	case "BUFF", "BUF":
		return node.Buff, true
	default:
		return 0, false
	}
}

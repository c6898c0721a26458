package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
)

// ParseBLIF reads a (single-model, combinational-plus-latches) BLIF netlist.
// It understands .model, .inputs, .outputs, .names, .latch and .end; every
// other directive is skipped. Backslash-terminated lines are joined before
// tokenizing, matching BLIF's line-continuation convention.
//
// A .names cover is read as a sum of on-set products: every row whose
// output bit is '1' contributes one AND-of-literals term (don't-care '-'
// positions are dropped from that term), and the terms are OR'd together.
// Off-set covers (every row's output bit is '0') are not supported.
func ParseBLIF(r io.Reader) (*Netlist, error) {
	lines, err := joinContinuations(r)
	if err != nil {
		return nil, err
	}

	nl := &Netlist{}
	for i := 0; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case ".model", ".end", ".exdc", ".subckt":
			continue
		case ".inputs":
			nl.Inputs = append(nl.Inputs, fields[1:]...)
		case ".outputs":
			nl.Outputs = append(nl.Outputs, fields[1:]...)
		case ".latch":
			if len(fields) < 3 {
				return nil, fmt.Errorf("parser: blif: .latch needs at least input and output nets: %q", lines[i])
			}
			nl.Latches = append(nl.Latches, LatchDecl{Input: fields[1], Output: fields[2]})
		case ".names":
			if len(fields) < 2 {
				return nil, fmt.Errorf("parser: blif: .names needs at least an output net: %q", lines[i])
			}
			fanin := fields[1 : len(fields)-1]
			output := fields[len(fields)-1]
			rows := i + 1
			for rows < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[rows]), ".") {
				rows++
			}
			decl, err := buildNamesGate(output, fanin, lines[i+1:rows])
			if err != nil {
				return nil, err
			}
			nl.Gates = append(nl.Gates, *decl)
			i = rows - 1
		}
	}
	return nl, nil
}

// joinContinuations strips comments/blank lines and splices any line ending
// in '\' onto the next, per BLIF's continuation convention.
func joinContinuations(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var out []string
	var pending string
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = pending + line
		pending = ""
		if strings.HasSuffix(strings.TrimRight(line, " \t"), "\\") {
			pending = strings.TrimSuffix(strings.TrimRight(line, " \t"), "\\")
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parser: blif: %w", err)
	}
	return out, nil
}

func buildNamesGate(output string, fanin []string, rows []string) (*GateDecl, error) {
	if len(fanin) == 0 {
		if len(rows) != 1 {
			return nil, fmt.Errorf("parser: blif: constant net %q needs exactly one cover row", output)
		}
		bit := strings.TrimSpace(rows[0])
		switch bit {
		case "1":
			return &GateDecl{Output: output, Prim: node.Const1}, nil
		case "0":
			return &GateDecl{Output: output, Prim: node.Const0}, nil
		default:
			return nil, fmt.Errorf("parser: blif: constant net %q has unrecognized cover row %q", output, bit)
		}
	}

	var products []*gate.Expr
	for _, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != 2 {
			return nil, fmt.Errorf("parser: blif: malformed cover row %q for net %q", row, output)
		}
		plane, bit := fields[0], fields[1]
		if len(plane) != len(fanin) {
			return nil, fmt.Errorf("parser: blif: cover row %q for net %q has %d input positions, want %d", row, output, len(plane), len(fanin))
		}
		if bit != "1" {
			return nil, fmt.Errorf("parser: blif: off-set cover rows are not supported (net %q)", output)
		}
		var lits []*gate.Expr
		for i, c := range plane {
			switch c {
			case '1':
				lits = append(lits, gate.Lit(i, false))
			case '0':
				lits = append(lits, gate.Lit(i, true))
			case '-':
				continue
			default:
				return nil, fmt.Errorf("parser: blif: cover row %q for net %q has invalid plane character %q", row, output, c)
			}
		}
		if len(lits) == 0 {
			return nil, fmt.Errorf("parser: blif: cover row %q for net %q has no literals (all don't-care)", row, output)
		}
		products = append(products, gate.AndExpr(lits...))
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("parser: blif: net %q has no on-set cover rows", output)
	}
	return &GateDecl{Output: output, Fanin: append([]string(nil), fanin...), Expr: gate.OrExpr(products...)}, nil
}

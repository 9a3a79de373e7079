// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"fmt"
	"strings"

	"github.com/bufbuild/la/types"
)

// treePrinter accumulates an indented, line-oriented dump of an AST, in the
// same indent-stack style as the reference grammar printer this is modeled
// on: push/pop an indent level around each nested group instead of
// recomputing a depth on every write.
type treePrinter struct {
	indent []string
	out    strings.Builder
}

func (p *treePrinter) push(s string) { p.indent = append(p.indent, s) }
func (p *treePrinter) pop()          { p.indent = p.indent[:len(p.indent)-1] }

func (p *treePrinter) pad() {
	for _, s := range p.indent {
		p.out.WriteString(s)
	}
}

func (p *treePrinter) line(format string, args ...any) {
	p.pad()
	fmt.Fprintf(&p.out, format, args...)
	p.out.WriteByte('\n')
}

// Print renders f as an indented s-expression-like tree, for the `gen-ast`
// CLI command (spec.md §7).
func Print(f *File) string {
	p := &treePrinter{}
	p.line("(file %q", f.Path)
	p.push("  ")
	for _, d := range f.Decls {
		p.printDecl(d)
	}
	p.pop()
	p.line(")")
	return p.out.String()
}

func (p *treePrinter) printDecl(d Decl) {
	switch v := d.(type) {
	case *ImportDecl:
		p.line("(import %v)", v.Paths)
	case *LoadDecl:
		p.line("(load %v)", v.Paths)
	case *TypeAliasDecl:
		p.line("(type-alias %s %s)", v.Name, v.Type)
	case *FunctionDecl:
		p.printFunctionDecl(v)
	case *VarDecl:
		p.printVarDecl(v)
	case *ConstDecl:
		p.line("(const %s %s)", v.Name, exprString(v.Value))
	case *StructDecl:
		p.printStructDecl(v)
	case *EnumDecl:
		p.printEnumDecl(v)
	default:
		p.line("(unknown-decl %T)", d)
	}
}

func (p *treePrinter) printFunctionDecl(f *FunctionDecl) {
	kind := "fun"
	if f.OperatorKind != 0 {
		kind = "operator:" + f.OperatorKind.String()
	}
	p.line("(%s %s", kind, f.Name)
	p.push("  ")
	for _, param := range f.Params {
		p.line("(param %s %s)", param.Name, typeString(param.Type))
	}
	if f.HasVarargs {
		p.line("(varargs %s %s)", f.VarargsName, typeString(f.VarargsElem))
	}
	p.line("(return %s)", typeString(f.Return))
	if f.Body != nil {
		p.printBlock(f.Body)
	} else {
		p.line("(prototype)")
	}
	p.pop()
	p.line(")")
}

func (p *treePrinter) printVarDecl(v *VarDecl) {
	p.line("(var %v)", v.Names)
}

func (p *treePrinter) printStructDecl(s *StructDecl) {
	p.line("(struct %s", s.Name)
	p.push("  ")
	for _, f := range s.Fields {
		p.line("(field %s %s)", f.Name, typeString(f.Type))
	}
	p.pop()
	p.line(")")
}

func (p *treePrinter) printEnumDecl(e *EnumDecl) {
	p.line("(enum %s", e.Name)
	p.push("  ")
	for _, el := range e.Elements {
		if el.Value != nil {
			p.line("(element %s = %s)", el.Name, exprString(el.Value))
		} else {
			p.line("(element %s)", el.Name)
		}
	}
	p.pop()
	p.line(")")
}

func (p *treePrinter) printBlock(b *BlockStmt) {
	p.line("(block")
	p.push("  ")
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
	p.pop()
	p.line(")")
}

func (p *treePrinter) printStmt(s Stmt) {
	switch v := s.(type) {
	case *BlockStmt:
		p.printBlock(v)
	case *VarDecl:
		p.printVarDecl(v)
	case *ConstDecl:
		p.line("(const %s %s)", v.Name, exprString(v.Value))
	case *IfStmt:
		p.line("(if")
		p.push("  ")
		for i, c := range v.Conds {
			p.line("(cond %s)", exprString(c))
			p.printBlock(v.Blocks[i])
		}
		if v.Else != nil {
			p.line("(else)")
			p.printBlock(v.Else)
		}
		p.pop()
		p.line(")")
	case *ForStmt:
		p.line("(for")
		p.push("  ")
		p.printBlock(v.Body)
		p.pop()
		p.line(")")
	case *WhileStmt:
		p.line("(while %s", exprString(v.Cond))
		p.push("  ")
		p.printBlock(v.Body)
		p.pop()
		p.line(")")
	case *SwitchStmt:
		p.line("(switch %s", exprString(v.Scrutinee))
		p.push("  ")
		for _, c := range v.Cases {
			p.line("(case %s)", exprString(c.Value))
			p.printBlock(c.Body)
		}
		if v.Else != nil {
			p.line("(default)")
			p.printBlock(v.Else)
		}
		p.pop()
		p.line(")")
	case *ReturnStmt:
		if v.Value != nil {
			p.line("(return %s)", exprString(v.Value))
		} else {
			p.line("(return)")
		}
	case *DeferStmt:
		p.line("(defer %s)", exprString(v.Call))
	case *BreakStmt:
		p.line("(break %d)", v.Count)
	case *ContinueStmt:
		p.line("(continue %d)", v.Count)
	case *ExprStmt:
		p.line("(expr-stmt %s)", exprString(v.X))
	default:
		p.line("(unknown-stmt %T)", s)
	}
}

// exprString renders an expression inline, for use inside a parent node's
// line rather than as its own indented group: expressions rarely need deep
// trees in practice, and doing so keeps the output readable.
func exprString(e Expr) string {
	switch v := e.(type) {
	case nil:
		return "<nil>"
	case *Ident:
		return v.Name
	case *NumberLit:
		return v.Literal
	case *StringLit:
		return fmt.Sprintf("%q", v.Value)
	case *CharLit:
		return fmt.Sprintf("%q", v.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", v.Value)
	case *NullLit:
		return "null"
	case *UndefinedLit:
		return "undefined"
	case *UnaryExpr:
		if v.Postfix {
			return fmt.Sprintf("(%s %s)", exprString(v.Operand), v.Op)
		}
		return fmt.Sprintf("(%s %s)", v.Op, exprString(v.Operand))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", v.Op, exprString(v.Left), exprString(v.Right))
	case *ChainedCompareExpr:
		var b strings.Builder
		b.WriteString("(chain")
		for i, o := range v.Operands {
			b.WriteByte(' ')
			b.WriteString(exprString(o))
			if i < len(v.Ops) {
				b.WriteByte(' ')
				b.WriteString(v.Ops[i].String())
			}
		}
		b.WriteByte(')')
		return b.String()
	case *AssignExpr:
		return fmt.Sprintf("(= %s %s)", exprString(v.Target), exprString(v.Value))
	case *CallExpr:
		var b strings.Builder
		b.WriteString("(call ")
		b.WriteString(exprString(v.Callee))
		for _, a := range v.Args {
			b.WriteByte(' ')
			b.WriteString(exprString(a))
		}
		b.WriteByte(')')
		return b.String()
	case *IndexExpr:
		return fmt.Sprintf("(index %s %s)", exprString(v.Base), exprString(v.Index))
	case *MemberExpr:
		return fmt.Sprintf("(member %s %s)", exprString(v.Base), v.Field)
	case *EnumAccessExpr:
		return fmt.Sprintf("%s::%s", v.EnumName, v.Element)
	case *ConstructorExpr:
		return fmt.Sprintf("(new %s)", typeString(v.Type))
	case *LambdaExpr:
		return "(lambda)"
	case *CastExpr:
		return fmt.Sprintf("(cast %s %s)", typeString(v.Target), exprString(v.Value))
	case *TypeSizeExpr:
		return fmt.Sprintf("(sizeof-type %s)", typeString(v.Target))
	case *TypeAlignExpr:
		return fmt.Sprintf("(alignof %s)", typeString(v.Target))
	case *ValueSizeExpr:
		return fmt.Sprintf("(sizeof %s)", exprString(v.Value))
	case *DirectiveExpr:
		return fmt.Sprintf("(@%s)", v.Name)
	default:
		return fmt.Sprintf("<unknown-expr %T>", e)
	}
}

func typeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

package parser

import (
	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

func (p *Parser) parseConstDecl(access lexer.AccessModifier) (*ast.ConstDecl, error) {
	defer p.enter("const_decl")()
	start := p.current().Span.Start
	if err := p.expectKeyword("const"); err != nil {
		return nil, err
	}
	var items []ast.ConstListItem
	for {
		tok := p.current()
		if !tok.Kind.IsIdentifier() {
			return nil, p.wrapErr(newExpectedErr(p.pos(), "identifier", tok, p.source))
		}
		name := p.text(true)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		val, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.ConstListItem{Name: name, Expr: val})
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	n := &ast.ConstDecl{Access: access, Items: items}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

func (p *Parser) parseFieldDecl(access lexer.AccessModifier) (*ast.FieldDecl, error) {
	defer p.enter("field_decl")()
	start := p.current().Span.Start
	var names []ast.FieldName
	for {
		vn, err := p.parseVarName()
		if err != nil {
			return nil, err
		}
		names = append(names, ast.FieldName{Name: vn.Name, Dims: vn.Dims})
		if p.isSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	n := &ast.FieldDecl{Access: access, Names: names}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseArgList parses `([ByRef|ByVal] name [()] , ...)`, defaulting to
// ByVal per VBScript semantics when neither modifier is written. The
// parenthesized list may be omitted entirely, which yields no arguments.
func (p *Parser) parseArgList() ([]ast.Arg, error) {
	if !p.isSymbol("(") {
		return nil, nil
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []ast.Arg
	if !p.isSymbol(")") {
		for {
			byRef := false
			if ok, err := p.tryKeyword("byref"); err != nil {
				return nil, err
			} else if ok {
				byRef = true
			} else if ok, err := p.tryKeyword("byval"); err != nil {
				return nil, err
			} else if ok {
				byRef = false
			}
			tok := p.current()
			if !tok.Kind.IsIdentifier() {
				return nil, p.wrapErr(newExpectedErr(p.pos(), "parameter name", tok, p.source))
			}
			name := p.text(true)
			if err := p.advance(); err != nil {
				return nil, err
			}
			isArray := false
			if p.isSymbol("(") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				if err := p.expectSymbol(")"); err != nil {
					return nil, err
				}
				isArray = true
			}
			args = append(args, ast.Arg{Name: name, ByRef: byRef, IsArray: isArray})
			if p.isSymbol(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseMethodBody parses a MethodStmt list (Dim/Redim plus block
// statements) up to one of the given terminator keywords.
func (p *Parser) parseMethodBody(terminators ...string) ([]ast.MethodStmt, error) {
	var stmts []ast.MethodStmt
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	for {
		if p.atAnyKeyword(terminators...) || p.is(lexer.EOF) || p.is(lexer.DELIM_END) {
			return stmts, nil
		}
		s, err := p.parseMethodStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseSubDecl(access lexer.AccessModifier) (*ast.SubDecl, error) {
	defer p.enter("sub_decl")()
	start := p.current().Span.Start
	if err := p.expectKeyword("sub"); err != nil {
		return nil, err
	}
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "sub name", tok, p.source))
	}
	name := p.text(true)
	if err := p.advance(); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseMethodBody("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("sub"); err != nil {
		return nil, err
	}
	n := &ast.SubDecl{Access: access, Name: name, Args: args, Stmts: stmts}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

func (p *Parser) parseFunctionDecl(access lexer.AccessModifier) (*ast.FunctionDecl, error) {
	defer p.enter("function_decl")()
	start := p.current().Span.Start
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "function name", tok, p.source))
	}
	name := p.text(true)
	if err := p.advance(); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseMethodBody("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}
	n := &ast.FunctionDecl{Access: access, Name: name, Args: args, Stmts: stmts}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

var propertyKindKeywords = map[string]ast.PropertyKind{
	"get": ast.PropertyGet, "let": ast.PropertyLet, "set": ast.PropertySet,
}

func (p *Parser) parsePropertyDecl(access lexer.AccessModifier) (*ast.PropertyDecl, error) {
	defer p.enter("property_decl")()
	start := p.current().Span.Start
	if err := p.expectKeyword("property"); err != nil {
		return nil, err
	}
	word := p.text(true)
	kind, ok := propertyKindKeywords[word]
	if !ok {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "Get, Let, or Set", p.current(), p.source))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "property name", tok, p.source))
	}
	name := p.text(true)
	if err := p.advance(); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseMethodBody("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("property"); err != nil {
		return nil, err
	}
	n := &ast.PropertyDecl{Access: access, Kind: kind, Name: name, Args: args, Stmts: stmts}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

// parseClassDecl parses `Class name ... End Class`. Public Default is
// rejected on fields and consts (only Sub/Function/Property may carry it,
// to mark the class's default member).
func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	defer p.enter("class_decl")()
	start := p.current().Span.Start
	if err := p.expectKeyword("class"); err != nil {
		return nil, err
	}
	tok := p.current()
	if !tok.Kind.IsIdentifier() {
		return nil, p.wrapErr(newExpectedErr(p.pos(), "class name", tok, p.source))
	}
	name := p.text(true)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	var members []ast.MemberDecl
	for !p.isKeyword("end") && !p.is(lexer.EOF) {
		m, err := p.parseMemberDecl()
		if err != nil {
			return nil, err
		}
		if m != nil {
			members = append(members, m)
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("class"); err != nil {
		return nil, err
	}
	n := &ast.ClassDecl{Name: name, Members: members}
	n.SetSpan(lexer.Span{Start: start, Stop: p.lastConsumedEnd})
	return n, nil
}

func (p *Parser) parseMemberDecl() (ast.MemberDecl, error) {
	access, hasAccess, err := p.tryAccessModifier()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isKeyword("sub"):
		return p.parseSubDecl(access)
	case p.isKeyword("function"):
		return p.parseFunctionDecl(access)
	case p.isKeyword("property"):
		return p.parsePropertyDecl(access)
	case p.isKeyword("const"):
		if access == lexer.AccessPublicDefault {
			return nil, p.wrapErr(newParserError(ErrIllegalPublicDef, p.pos(), "Const cannot be Public Default"))
		}
		return p.parseConstDecl(access)
	case p.isKeyword("dim"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if access == lexer.AccessPublicDefault {
			return nil, p.wrapErr(newParserError(ErrIllegalPublicDef, p.pos(), "Dim cannot be Public Default"))
		}
		return p.parseFieldDecl(access)
	default:
		if hasAccess {
			if access == lexer.AccessPublicDefault {
				return nil, p.wrapErr(newParserError(ErrIllegalPublicDef, p.pos(), "field cannot be Public Default"))
			}
			return p.parseFieldDecl(access)
		}
	}
	return nil, p.wrapErr(newParserError(ErrIllFormedDecl, p.pos(), "expected a class member declaration"))
}

package parser

import (
	"testing"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/lexer"
)

func TestVarDeclScalarAndArrayDims(t *testing.T) {
	stmts := parseStmtsSrc(t, "Dim a, b(3, 4)\n")
	vd, ok := stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDecl", stmts[0])
	}
	if len(vd.Names) != 2 {
		t.Fatalf("len(Names) = %d, want 2", len(vd.Names))
	}
	if vd.Names[0].Name != "a" || len(vd.Names[0].Dims) != 0 {
		t.Errorf("Names[0] = %+v, want {a []}", vd.Names[0])
	}
	if vd.Names[1].Name != "b" {
		t.Errorf("Names[1].Name = %q, want %q", vd.Names[1].Name, "b")
	}
	if len(vd.Names[1].Dims) != 2 || vd.Names[1].Dims[0] != 3 || vd.Names[1].Dims[1] != 4 {
		t.Errorf("Names[1].Dims = %v, want [3 4]", vd.Names[1].Dims)
	}
}

func TestVarDeclDynamicArray(t *testing.T) {
	stmts := parseStmtsSrc(t, "Dim a()\n")
	vd := stmts[0].(*ast.VarDecl)
	if len(vd.Names[0].Dims) != 1 || vd.Names[0].Dims[0] != -1 {
		t.Errorf("Dims = %v, want [-1]", vd.Names[0].Dims)
	}
}

func TestRedimPreserve(t *testing.T) {
	stmts := parseStmtsSrc(t, "Redim Preserve a(n)\n")
	rs, ok := stmts[0].(*ast.RedimStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.RedimStmt", stmts[0])
	}
	if len(rs.Decls) != 1 {
		t.Fatalf("len(Decls) = %d, want 1", len(rs.Decls))
	}
	if !rs.Decls[0].Preserve {
		t.Error("Preserve = false, want true")
	}
	if rs.Decls[0].Target.SymName != "a" {
		t.Errorf("Target.SymName = %q, want %q", rs.Decls[0].Target.SymName, "a")
	}
	if len(rs.Decls[0].Dims) != 1 {
		t.Fatalf("len(Dims) = %d, want 1", len(rs.Decls[0].Dims))
	}
}

func TestConstDecl(t *testing.T) {
	stmts := parseStmtsSrc(t, "Const Greeting = \"hi\", Answer = 42\n")
	cd, ok := stmts[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ConstDecl", stmts[0])
	}
	if len(cd.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(cd.Items))
	}
	if cd.Items[0].Name != "greeting" {
		t.Errorf("Items[0].Name = %q, want %q", cd.Items[0].Name, "greeting")
	}
	wantEvalInt(t, cd.Items[1].Expr, 42)
}

func TestSubDeclWithByRefAndArrayArgs(t *testing.T) {
	stmts := parseStmtsSrc(t, "Sub DoThing(ByRef x, ByVal y, z())\nDim q\nEnd Sub\n")
	sd, ok := stmts[0].(*ast.SubDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.SubDecl", stmts[0])
	}
	if sd.Name != "dothing" {
		t.Errorf("Name = %q, want %q", sd.Name, "dothing")
	}
	if len(sd.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(sd.Args))
	}
	if !sd.Args[0].ByRef {
		t.Error("Args[0].ByRef = false, want true")
	}
	if sd.Args[1].ByRef {
		t.Error("Args[1].ByRef = true, want false (ByVal)")
	}
	if !sd.Args[2].IsArray {
		t.Error("Args[2].IsArray = false, want true")
	}
	if len(sd.Stmts) != 1 {
		t.Errorf("len(Stmts) = %d, want 1", len(sd.Stmts))
	}
}

func TestFunctionDeclDefaultByValArgs(t *testing.T) {
	stmts := parseStmtsSrc(t, "Function Add(a, b)\nEnd Function\n")
	fd, ok := stmts[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDecl", stmts[0])
	}
	if len(fd.Args) != 2 || fd.Args[0].ByRef || fd.Args[1].ByRef {
		t.Errorf("Args = %+v, want both ByVal", fd.Args)
	}
}

func TestPropertyDeclKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.PropertyKind
	}{
		{"Property Get Foo\nEnd Property\n", ast.PropertyGet},
		{"Property Let Foo(v)\nEnd Property\n", ast.PropertyLet},
		{"Property Set Foo(v)\nEnd Property\n", ast.PropertySet},
	}
	for _, tt := range tests {
		stmts := parseStmtsSrc(t, tt.input)
		pd, ok := stmts[0].(*ast.PropertyDecl)
		if !ok {
			t.Fatalf("got %T, want *ast.PropertyDecl", stmts[0])
		}
		if pd.Kind != tt.kind {
			t.Errorf("Kind = %v, want %v", pd.Kind, tt.kind)
		}
	}
}

func TestClassDeclWithMixedMembers(t *testing.T) {
	src := `Class Widget
Private m_name
Public Sub Init(name)
m_name = name
End Sub
Public Function Name()
Name = m_name
End Function
Public Default Property Get Value()
End Property
End Class
`
	stmts := parseStmtsSrc(t, src)
	cd, ok := stmts[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDecl", stmts[0])
	}
	if cd.Name != "widget" {
		t.Errorf("Name = %q, want %q", cd.Name, "widget")
	}
	if len(cd.Members) != 4 {
		t.Fatalf("len(Members) = %d, want 4", len(cd.Members))
	}
	if _, ok := cd.Members[0].(*ast.FieldDecl); !ok {
		t.Errorf("Members[0] = %T, want *ast.FieldDecl", cd.Members[0])
	}
	prop, ok := cd.Members[3].(*ast.PropertyDecl)
	if !ok {
		t.Fatalf("Members[3] = %T, want *ast.PropertyDecl", cd.Members[3])
	}
	if prop.Access != lexer.AccessPublicDefault {
		t.Errorf("Access = %v, want AccessPublicDefault", prop.Access)
	}
}

func TestClassConstCannotBePublicDefault(t *testing.T) {
	p := New("<%Class C\nPublic Default Const X = 1\nEnd Class\n%>")
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error for Public Default Const")
	}
}

func TestClassFieldCannotBePublicDefault(t *testing.T) {
	p := New("<%Class C\nPublic Default x\nEnd Class\n%>")
	defer p.Close(nil)
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error for Public Default field")
	}
}

package expr

// NodeKind is the closed set of expression AST shapes (spec.md §4.4
// grammar: "ternary | binary | unary | call | member | identifier |
// number | paren" — paren only affects precedence, it leaves no node
// of its own).
type NodeKind int

const (
	NodeNumber NodeKind = iota
	NodeIdent
	NodeBinary
	NodeUnary
	NodeTernary
	NodeCall
	NodeMember
)

// Node is one AST node. Only the fields relevant to Kind are
// populated — the same tagged-struct discipline used throughout this
// codebase for closed variant sets.
type Node struct {
	Kind NodeKind
	Pos  int

	Number float64 // NodeNumber

	Ident string // NodeIdent

	Op          string // NodeBinary, NodeUnary: "+","-","*","/","%","<","<=",">",">=","==","!=","&&","||","!"
	Left, Right *Node  // NodeBinary
	Operand     *Node  // NodeUnary

	Cond, Then, Else *Node // NodeTernary

	Callee string  // NodeCall
	Args   []*Node // NodeCall

	Object *Node  // NodeMember
	Member string // NodeMember
}

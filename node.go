package main

// Kind tags the role a Node plays: operator, literal, statement, or one of
// the handful of sentinels the parser and linker need.
type Kind int

const (
	KindZero Kind = iota

	// unary
	KindNegate
	KindNot

	// binary
	KindCat // string "+"
	KindPower
	KindMul
	KindDiv
	KindAdd
	KindSub
	KindIDiv // "\"
	KindMod
	KindGT
	KindGE
	KindLT
	KindLE
	KindEQ
	KindNE
	KindAnd
	KindOr
	KindXor
	KindEqv
	KindImp
	KindNand
	KindNor

	// built-in functions
	KindAbs
	KindAsc
	KindAtan
	KindChr
	KindCos
	KindExp
	KindFix
	KindInstr
	KindInt
	KindLeft
	KindLen
	KindLog
	KindMid
	KindRight
	KindRnd
	KindSgn
	KindSin
	KindSpace
	KindSqrt
	KindStr
	KindString
	KindTan
	KindVal

	// statements
	KindNew
	KindEnd
	KindStop
	KindCont
	KindReturn
	KindCls
	KindList
	KindDel
	KindGosub
	KindGoto
	KindRun
	KindRestore
	KindOnGoto
	KindOnGosub
	KindRem
	KindFor
	KindNext
	KindRead
	KindData
	KindPrint
	KindInput
	KindIf
	KindLet
	KindLineInput
	KindAlter
	KindOnAlter

	// sentinels / leaves
	KindKludge
	KindStrLit
	KindStrVar
	KindNumLit
	KindNumVar
	KindLineRef
	KindNumberedLine
	KindError
)

var kindNames = map[Kind]string{
	KindNegate: "-", KindNot: "NOT ",
	KindCat: "+", KindPower: "^", KindMul: "*", KindDiv: "/",
	KindAdd: "+", KindSub: "-", KindIDiv: "\\", KindMod: "MOD",
	KindGT: ">", KindGE: ">=", KindLT: "<", KindLE: "<=", KindEQ: "=", KindNE: "<>",
	KindAnd: "AND", KindOr: "OR", KindXor: "XOR", KindEqv: "EQV", KindImp: "IMP",
	KindNand: "NAND", KindNor: "NOR",
	KindAbs: "ABS", KindAsc: "ASC", KindAtan: "ATAN", KindChr: "CHR$", KindCos: "COS",
	KindExp: "EXP", KindFix: "FIX", KindInstr: "INSTR", KindInt: "INT",
	KindLeft: "LEFT$", KindLen: "LEN", KindLog: "LOG", KindMid: "MID$",
	KindRight: "RIGHT$", KindRnd: "RND", KindSgn: "SGN", KindSin: "SIN",
	KindSpace: "SPACE$", KindSqrt: "SQRT", KindStr: "STR$", KindString: "STRING$",
	KindTan: "TAN", KindVal: "VAL",
	KindNew: "NEW", KindEnd: "END", KindStop: "STOP", KindCont: "CONT",
	KindReturn: "RETURN", KindCls: "CLS", KindList: "LIST", KindDel: "DEL",
	KindGosub: "GOSUB", KindGoto: "GOTO", KindRun: "RUN", KindRestore: "RESTORE",
	KindOnGoto: "ON...GOTO", KindOnGosub: "ON...GOSUB", KindRem: "REM",
	KindFor: "FOR", KindNext: "NEXT", KindRead: "READ", KindData: "DATA",
	KindPrint: "PRINT", KindInput: "INPUT", KindIf: "IF", KindLet: "LET",
	KindLineInput: "LINE INPUT", KindAlter: "ALTER", KindOnAlter: "ON...ALTER",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

// Node is the single uniform tree type used for every expression, statement,
// literal, and line reference produced by the parser. Most fields are unused
// on most nodes, same as the building blocks it's modeled on: most of these
// fields sit empty for any given node.
type Node struct {
	Kind Kind

	Num float64
	Str string

	// Link is the resolved target of a LineRef node once the linker has
	// run: the NumberedLine it points at, or nil if Num < 0 ("unspecified").
	Link *Node

	ForceParens bool
	LitDelim    rune // 0 if default [...] brackets were used
	ListDelim   int  // 0 = comma, 1 = semicolon (PRINT item separator)
	Abbrev      bool // surface syntax used ? / ' / omitted LET or PROCEED

	Args [4]*Node
	Next *Node
}

func newNode(kind Kind) *Node { return &Node{Kind: kind} }

// isUnspecifiedRef reports whether n is a LineRef carrying the "-1 means
// unspecified" sentinel from spec section 4.6.
func (n *Node) isUnspecifiedRef() bool { return n.Kind == KindLineRef && n.Num < 0 }

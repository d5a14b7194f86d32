package main

import "strings"

// PrettyPrint renders a stored NumberedLine the way LIST shows it, grounded
// on original_source/print.c's printLego(). parens, when true, forces every
// binary expression to show its parentheses (the debug -parens flag);
// otherwise only nodes whose ForceParens bit is set (an explicit "(...)" in
// the original source) get them.
func PrettyPrint(line *Node, parens bool) string {
	var sb strings.Builder
	sb.WriteString(formatNumber(line.Num))
	if line.Args[0] != nil {
		sb.WriteByte(' ')
		printChain(&sb, line.Args[0], parens)
	}
	return sb.String()
}

func isBinaryKind(k Kind) bool { return k >= KindCat && k <= KindNor }
func isFuncKind(k Kind) bool   { return k >= KindAbs && k <= KindVal }

func printExpr(sb *strings.Builder, n *Node, parens bool) {
	if n == nil {
		return
	}
	wrap := n.ForceParens || (parens && (isBinaryKind(n.Kind) || n.Kind == KindNegate || n.Kind == KindNot))
	if wrap {
		sb.WriteByte('(')
	}
	switch {
	case n.Kind == KindNegate || n.Kind == KindNot:
		sb.WriteString(n.Kind.String())
		printExpr(sb, n.Args[0], parens)
	case isBinaryKind(n.Kind):
		printExpr(sb, n.Args[0], parens)
		sb.WriteByte(' ')
		sb.WriteString(n.Kind.String())
		sb.WriteByte(' ')
		printExpr(sb, n.Args[1], parens)
	case isFuncKind(n.Kind):
		sb.WriteString(n.Kind.String())
		sb.WriteByte('(')
		for i, a := range n.Args {
			if a == nil {
				break
			}
			if i > 0 {
				sb.WriteString(", ")
			}
			printExpr(sb, a, parens)
		}
		sb.WriteByte(')')
	case n.Kind == KindNumLit:
		sb.WriteString(formatNumber(n.Num))
	case n.Kind == KindStrLit:
		if n.LitDelim != 0 {
			sb.WriteByte(']')
			sb.WriteRune(n.LitDelim)
			sb.WriteString(n.Str)
			sb.WriteRune(n.LitDelim)
		} else {
			sb.WriteByte('[')
			sb.WriteString(n.Str)
			sb.WriteByte(']')
		}
	case n.Kind == KindNumVar:
		sb.WriteString(n.Str)
	case n.Kind == KindStrVar:
		sb.WriteString(n.Str)
		sb.WriteByte('$')
	case n.Kind == KindLineRef:
		sb.WriteString(formatNumber(n.Num))
	}
	if wrap {
		sb.WriteByte(')')
	}
}

func printChain(sb *strings.Builder, n *Node, parens bool) {
	for s := n; s != nil; s = s.Next {
		if s != n {
			sb.WriteString(" : ")
		}
		printStmt(sb, s, parens)
	}
}

func printVarList(sb *strings.Builder, n *Node, parens bool) {
	for v := n; v != nil; v = v.Next {
		if v != n {
			sb.WriteString(", ")
		}
		printExpr(sb, v, parens)
	}
}

func printLineList(sb *strings.Builder, n *Node) {
	for v := n; v != nil; v = v.Next {
		if v != n {
			sb.WriteString(", ")
		}
		sb.WriteString(formatNumber(v.Num))
	}
}

func printRange(sb *strings.Builder, rng *Node) {
	lo, hi := rng.Num, rng.Next.Num
	switch {
	case lo < 0 && hi < 0:
		// no range at all
	case lo == hi:
		sb.WriteByte(' ')
		sb.WriteString(formatNumber(lo))
	case lo < 0:
		sb.WriteString(" -")
		sb.WriteString(formatNumber(hi))
	case hi < 0:
		sb.WriteByte(' ')
		sb.WriteString(formatNumber(lo))
		sb.WriteByte('-')
	default:
		sb.WriteByte(' ')
		sb.WriteString(formatNumber(lo))
		sb.WriteByte('-')
		sb.WriteString(formatNumber(hi))
	}
}

func printPrintList(sb *strings.Builder, n *Node, parens bool) {
	if n == nil {
		return
	}
	sb.WriteByte(' ')
	for it := n; it != nil; it = it.Next {
		printExpr(sb, it, parens)
		if it.Next != nil {
			if it.ListDelim == 1 {
				sb.WriteString("; ")
			} else {
				sb.WriteString(", ")
			}
			continue
		}
		if it.ListDelim == 1 {
			sb.WriteString(";")
		}
	}
}

func printStmt(sb *strings.Builder, n *Node, parens bool) {
	switch n.Kind {
	case KindNew, KindEnd, KindStop, KindCont, KindReturn, KindCls:
		sb.WriteString(n.Kind.String())

	case KindList, KindDel:
		sb.WriteString(n.Kind.String())
		printRange(sb, n.Args[0])

	case KindGoto, KindGosub, KindRun, KindRestore:
		sb.WriteString(n.Kind.String())
		if n.Args[0] != nil {
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(n.Args[0].Num))
		}

	case KindOnGoto, KindOnGosub:
		sb.WriteString("ON ")
		printExpr(sb, n.Args[0], parens)
		if n.Kind == KindOnGoto {
			sb.WriteString(" GOTO ")
		} else {
			sb.WriteString(" GOSUB ")
		}
		printLineList(sb, n.Args[1])

	case KindRem:
		if n.Abbrev {
			sb.WriteString("'")
		} else {
			sb.WriteString("REM")
		}
		sb.WriteString(n.Str)

	case KindFor:
		sb.WriteString("FOR ")
		printExpr(sb, n.Args[0], parens)
		sb.WriteString(" = ")
		printExpr(sb, n.Args[1], parens)
		sb.WriteString(" TO ")
		printExpr(sb, n.Args[2], parens)
		if n.Args[3] != nil {
			sb.WriteString(" STEP ")
			printExpr(sb, n.Args[3], parens)
		}

	case KindNext:
		sb.WriteString("NEXT")
		if n.Args[0] != nil {
			sb.WriteByte(' ')
			printExpr(sb, n.Args[0], parens)
		}

	case KindIf:
		sb.WriteString("IF ")
		printExpr(sb, n.Args[0], parens)
		sb.WriteString(" THEN ")
		printChain(sb, n.Args[1], parens)
		if n.Args[2] != nil {
			sb.WriteString(" ELSE ")
			printChain(sb, n.Args[2], parens)
		}

	case KindRead:
		sb.WriteString("READ ")
		printVarList(sb, n.Args[0], parens)

	case KindData:
		sb.WriteString("DATA ")
		printVarList(sb, n.Args[0], parens)

	case KindPrint:
		if n.Abbrev {
			sb.WriteString("?")
		} else {
			sb.WriteString("PRINT")
		}
		printPrintList(sb, n.Args[0], parens)

	case KindInput:
		sb.WriteString("INPUT ")
		if n.Args[0] != nil {
			sb.WriteByte('[')
			sb.WriteString(n.Args[0].Str)
			sb.WriteString("];")
		}
		printVarList(sb, n.Args[1], parens)

	case KindLineInput:
		sb.WriteString("LINE INPUT ")
		printExpr(sb, n.Args[0], parens)

	case KindLet:
		if !n.Abbrev {
			sb.WriteString("LET ")
		}
		printExpr(sb, n.Args[0], parens)
		sb.WriteString(" = ")
		printExpr(sb, n.Args[1], parens)

	case KindAlter:
		sb.WriteString("ALTER ")
		sb.WriteString(formatNumber(n.Args[0].Num))
		sb.WriteString(" TO ")
		if !n.Abbrev {
			sb.WriteString("PROCEED TO ")
		}
		sb.WriteString(formatNumber(n.Args[1].Num))

	case KindOnAlter:
		sb.WriteString("ON ")
		printExpr(sb, n.Args[0], parens)
		sb.WriteString(" ALTER ")
		sb.WriteString(formatNumber(n.Args[1].Num))
		sb.WriteString(" TO ")
		if !n.Abbrev {
			sb.WriteString("PROCEED TO ")
		}
		printLineList(sb, n.Args[2])
	}
}

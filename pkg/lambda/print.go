package lambda

import "strings"

// Grouped renders t like String, but parenthesizes applications nested
// inside other applications, so that "a b c d" shows as "((a b) c) d".
func Grouped(t Term) string {
	var sb strings.Builder
	writeGrouped(&sb, t)
	return sb.String()
}

func writeGrouped(sb *strings.Builder, t Term) {
	switch t := t.(type) {
	case *Var:
		sb.WriteRune(t.Name)
	case *Abs:
		sb.WriteString("(λ")
		sb.WriteRune(t.Param)
		sb.WriteByte('.')
		writeGrouped(sb, t.Body)
		sb.WriteByte(')')
	case *App:
		writeOperand(sb, t.Fun)
		sb.WriteByte(' ')
		writeOperand(sb, t.Arg)
	}
}

func writeOperand(sb *strings.Builder, t Term) {
	if _, ok := t.(*App); ok {
		sb.WriteByte('(')
		writeGrouped(sb, t)
		sb.WriteByte(')')
		return
	}
	writeGrouped(sb, t)
}

// Source renders t in the input syntax, fully parenthesized, so that
// Parse(Source(t)) yields a term of the same shape.
func Source(t Term) string {
	switch t := t.(type) {
	case *Var:
		return string(t.Name)
	case *Abs:
		return "(fn " + string(t.Param) + " => " + Source(t.Body) + ")"
	case *App:
		return "(" + Source(t.Fun) + " " + Source(t.Arg) + ")"
	}
	return ""
}

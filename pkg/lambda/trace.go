package lambda

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleBeta
	RuleAlpha
	RuleStuck
)

func (k RuleKind) String() string {
	switch k {
	case RuleBeta:
		return "beta"
	case RuleAlpha:
		return "alpha"
	case RuleStuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// TraceEvent records one rule application. For RuleBeta Binder is the
// parameter that was substituted; for RuleAlpha Binder is the old name and
// Renamed the new one. RuleStuck leaves both zero.
type TraceEvent struct {
	Step    uint64
	Rule    RuleKind
	Binder  rune
	Renamed rune
}

// EnableTrace starts recording up to capacity events per evaluation.
func (ev *Evaluator) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	ev.traceBuf = make([]TraceEvent, capacity)
	ev.traceIdx = 0
	ev.traceOn = true
}

func (ev *Evaluator) DisableTrace() {
	ev.traceOn = false
}

// TraceSnapshot returns the events recorded during the last evaluation,
// truncated to the trace capacity.
func (ev *Evaluator) TraceSnapshot() []TraceEvent {
	if !ev.traceOn {
		return nil
	}
	count := ev.traceIdx
	if count > uint64(len(ev.traceBuf)) {
		count = uint64(len(ev.traceBuf))
	}
	res := make([]TraceEvent, count)
	copy(res, ev.traceBuf[:count])
	return res
}

func (ev *Evaluator) recordTrace(rule RuleKind, binder, renamed rune) {
	if !ev.traceOn {
		return
	}
	idx := ev.traceIdx
	ev.traceIdx++
	if idx >= uint64(len(ev.traceBuf)) {
		return
	}
	ev.traceBuf[idx] = TraceEvent{
		Step:    idx,
		Rule:    rule,
		Binder:  binder,
		Renamed: renamed,
	}
}

package term

// Walk visits every node reachable from roots exactly once, operands
// before the nodes that use them.
func (b *Builder) Walk(fn func(t Term, n Node), roots ...Term) {
	marks := make([]bool, len(b.nodes))
	var vis func(t Term)
	vis = func(t Term) {
		if !b.Valid(t) || marks[t] {
			return
		}
		marks[t] = true
		n := b.nodes[t]
		for _, a := range n.Operands() {
			vis(a)
		}
		fn(t, n)
	}
	for _, r := range roots {
		vis(r)
	}
}

// Vars returns the variables reachable from roots in ascending order.
func (b *Builder) Vars(roots ...Term) []Term {
	seen := make(map[Term]struct{})
	b.Walk(func(t Term, n Node) {
		if n.Op == OpVar {
			seen[t] = struct{}{}
		}
	}, roots...)
	var vs []Term
	for t := Term(1); int(t) < len(b.nodes); t++ {
		if _, ok := seen[t]; ok {
			vs = append(vs, t)
		}
	}
	return vs
}

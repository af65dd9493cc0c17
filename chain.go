package menu

// nodeRef addresses a button inside a Chain. The zero value means "none";
// any other value is the arena index plus one.
type nodeRef int

const noNode nodeRef = 0

// Chain owns a primary button and every else branch resolved beneath it.
// Branch and parent links are stored as arena references so no button owns
// another through a pointer cycle.
type Chain struct {
	nodes []*Button
}

// Root returns the primary button.
func (c *Chain) Root() *Button {
	if c == nil || len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0]
}

// Len returns the number of buttons in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

// Buttons returns the chain in resolution order, primary button first.
func (c *Chain) Buttons() []*Button {
	if c == nil {
		return nil
	}
	out := make([]*Button, len(c.nodes))
	copy(out, c.nodes)
	return out
}

func (c *Chain) add(button *Button) nodeRef {
	button.chain = c
	c.nodes = append(c.nodes, button)
	return nodeRef(len(c.nodes))
}

func (c *Chain) link(parent, branch nodeRef) {
	p := c.at(parent)
	b := c.at(branch)
	if p == nil || b == nil {
		return
	}
	p.branch = branch
	b.parent = parent
}

func (c *Chain) at(ref nodeRef) *Button {
	if c == nil || ref == noNode || int(ref) > len(c.nodes) {
		return nil
	}
	return c.nodes[ref-1]
}

package topology

// Callbacks are notifications delivered synchronously to the hosting UI at
// the point a change happens. Nil fields are skipped.
//
// Node arguments are copies of the arena record.
type Callbacks struct {
	OnNodeClick        func(n Node)
	OnNodeDoubleClick  func(n Node)
	OnNodeContextMenu  func(n Node)
	OnLinkCreated      func(l StoredLink)
	OnNodeDeleted      func(id string)
	OnLinkDeleted      func(l StoredLink)
	OnSelectionChanged func(selectedID string) // empty when the selection was cleared

	// OnChanged asks the host to re-render. It never implies a re-layout.
	OnChanged func()
}

func (c *Callbacks) nodeClick(n Node) {
	if c.OnNodeClick != nil {
		c.OnNodeClick(n)
	}
}

func (c *Callbacks) nodeDoubleClick(n Node) {
	if c.OnNodeDoubleClick != nil {
		c.OnNodeDoubleClick(n)
	}
}

func (c *Callbacks) nodeContextMenu(n Node) {
	if c.OnNodeContextMenu != nil {
		c.OnNodeContextMenu(n)
	}
}

func (c *Callbacks) linkCreated(l StoredLink) {
	if c.OnLinkCreated != nil {
		c.OnLinkCreated(l)
	}
}

func (c *Callbacks) nodeDeleted(id string) {
	if c.OnNodeDeleted != nil {
		c.OnNodeDeleted(id)
	}
}

func (c *Callbacks) linkDeleted(l StoredLink) {
	if c.OnLinkDeleted != nil {
		c.OnLinkDeleted(l)
	}
}

func (c *Callbacks) selectionChanged(id string) {
	if c.OnSelectionChanged != nil {
		c.OnSelectionChanged(id)
	}
}

func (c *Callbacks) changed() {
	if c.OnChanged != nil {
		c.OnChanged()
	}
}

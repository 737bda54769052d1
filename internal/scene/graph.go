package scene

import (
	"github.com/Faultbox/flora/pkg/math"
)

// DrawItem is a visible primitive with its resolved world matrix.
type DrawItem struct {
	Node      NodeID
	Kind      Kind
	Name      string
	HitID     string
	Primitive *Primitive
	Material  *Material
	World     math.Mat4
}

// Graph is an arena of nodes. Node 0 is the root.
type Graph struct {
	nodes   []Node
	world   []math.Mat4
	visible []bool
}

// NewGraph creates a graph holding only the root group.
func NewGraph() *Graph {
	g := &Graph{}
	g.Reset()
	return g
}

// Reset drops every node except a fresh root.
func (g *Graph) Reset() {
	g.nodes = g.nodes[:0]
	g.nodes = append(g.nodes, Node{
		ID:      0,
		Parent:  None,
		Kind:    KindGroup,
		Organ:   -1,
		Name:    "root",
		Local:   NewTransform(),
		Visible: true,
	})
}

// Root returns the root node ID.
func (g *Graph) Root() NodeID { return 0 }

// Len returns the number of nodes, root included.
func (g *Graph) Len() int { return len(g.nodes) }

// Add appends n under parent and returns its ID. The node starts visible.
func (g *Graph) Add(parent NodeID, n Node) NodeID {
	if parent < 0 || int(parent) >= len(g.nodes) {
		panic("scene: add under unknown parent")
	}
	id := NodeID(len(g.nodes))
	n.ID = id
	n.Parent = parent
	n.Children = nil
	n.Visible = true
	if n.Local.Scale == (math.Vec3{}) {
		n.Local.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	g.nodes = append(g.nodes, n)
	g.nodes[parent].Children = append(g.nodes[parent].Children, id)
	return id
}

// Node returns a pointer to the node for in-place mutation. The pointer is
// invalidated by the next Add or Reset.
func (g *Graph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// Each calls fn for every node in parent-before-child order.
func (g *Graph) Each(fn func(n *Node)) {
	for i := range g.nodes {
		fn(&g.nodes[i])
	}
}

// resolve computes world matrices and effective visibility in one forward
// pass. Parent IDs are always lower, so a parent is resolved before its
// children.
func (g *Graph) resolve() {
	n := len(g.nodes)
	if cap(g.world) < n {
		g.world = make([]math.Mat4, n)
		g.visible = make([]bool, n)
	}
	g.world = g.world[:n]
	g.visible = g.visible[:n]

	for i := range g.nodes {
		node := &g.nodes[i]
		local := node.Local.Matrix()
		if node.Parent == None {
			g.world[i] = local
			g.visible[i] = node.Visible
			continue
		}
		g.world[i] = g.world[node.Parent].Mul(local)
		g.visible[i] = node.Visible && g.visible[node.Parent]
	}
}

// World returns the world matrix of id, resolving the whole graph.
func (g *Graph) World(id NodeID) math.Mat4 {
	g.resolve()
	return g.world[id]
}

// Visible reports whether id and all its ancestors are visible.
func (g *Graph) Visible(id NodeID) bool {
	g.resolve()
	return g.visible[id]
}

// DrawList returns every visible node that carries a primitive.
func (g *Graph) DrawList() []DrawItem {
	g.resolve()
	items := make([]DrawItem, 0, len(g.nodes))
	for i := range g.nodes {
		node := &g.nodes[i]
		if !g.visible[i] || node.Primitive.Kind == PrimNone {
			continue
		}
		items = append(items, g.item(i))
	}
	return items
}

// Pickables returns the visible hit targets.
func (g *Graph) Pickables() []DrawItem {
	g.resolve()
	var items []DrawItem
	for i := range g.nodes {
		node := &g.nodes[i]
		if !g.visible[i] || node.HitID == "" || node.Primitive.Kind == PrimNone {
			continue
		}
		items = append(items, g.item(i))
	}
	return items
}

// CountVisible returns how many visible nodes have the given kind.
func (g *Graph) CountVisible(kind Kind) int {
	g.resolve()
	count := 0
	for i := range g.nodes {
		if g.visible[i] && g.nodes[i].Kind == kind {
			count++
		}
	}
	return count
}

func (g *Graph) item(i int) DrawItem {
	node := &g.nodes[i]
	return DrawItem{
		Node:      node.ID,
		Kind:      node.Kind,
		Name:      node.Name,
		HitID:     node.HitID,
		Primitive: &node.Primitive,
		Material:  &node.Material,
		World:     g.world[i],
	}
}

package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Controller is per-frame behaviour attached to a node. The update
// traversal calls Update once per frame while the controller is attached;
// returning true detaches it.
type Controller interface {
	Update(n *Node, dt float64) (done bool)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(n *Node, dt float64) bool

// Update calls f.
func (f ControllerFunc) Update(n *Node, dt float64) bool { return f(n, dt) }

type controllerEntry struct {
	id uint32
	c  Controller
}

// ControllerHandle removes a controller attached with AddController.
type ControllerHandle struct {
	node *Node
	id   uint32
}

// Remove detaches the controller. No-op if it already finished.
func (h ControllerHandle) Remove() {
	if h.node == nil {
		return
	}
	h.node.removeController(h.id)
}

// AddController attaches c to the node and schedules an update.
func (n *Node) AddController(c Controller) ControllerHandle {
	n.mustBeLive("AddController")
	n.nextCtrlID++
	id := n.nextCtrlID
	n.controllers = append(n.controllers, controllerEntry{id: id, c: c})
	n.invalidateNode()
	return ControllerHandle{node: n, id: id}
}

// RemoveController detaches the controller behind h if it belongs to this
// node.
func (n *Node) RemoveController(h ControllerHandle) {
	if h.node == n {
		n.removeController(h.id)
	}
}

// NumControllers returns the number of attached controllers.
func (n *Node) NumControllers() int { return len(n.controllers) }

func (n *Node) removeController(id uint32) {
	for i := range n.controllers {
		if n.controllers[i].id == id {
			copy(n.controllers[i:], n.controllers[i+1:])
			n.controllers[len(n.controllers)-1] = controllerEntry{}
			n.controllers = n.controllers[:len(n.controllers)-1]
			return
		}
	}
}

// runControllers advances every controller once. A controller may add or
// remove controllers, or dispose the node, from inside Update.
func (n *Node) runControllers(dt float64) {
	for i := 0; i < len(n.controllers); {
		e := n.controllers[i]
		if e.c.Update(n, dt) {
			n.removeController(e.id)
			continue
		}
		if i < len(n.controllers) && n.controllers[i].id == e.id {
			i++
		}
	}
}

// --- Tweens ---

// TweenGroup animates up to 2 node properties simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenScale, TweenRotation)
// and attach it with AddController. If the node is disposed, the group
// stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	apply  func(n *Node, v [2]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values through the
// node's setters.
func (g *TweenGroup) Update(n *Node, dt float64) bool {
	if g.Done || n.IsDisposed() {
		g.Done = true
		return true
	}
	var v [2]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(n, v)
	g.Done = allDone
	return allDone
}

// TweenPosition creates a TweenGroup that moves the node to (toX, toY) over
// duration seconds.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(node.x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.y), float32(toY), duration, fn)
	g.apply = func(n *Node, v [2]float64) { n.SetPosition(v[0], v[1]) }
	return g
}

// TweenScale creates a TweenGroup that scales the node to the given factor.
func TweenScale(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.scale), float32(to), duration, fn)
	g.apply = func(n *Node, v [2]float64) { n.SetScale(v[0]) }
	return g
}

// TweenRotation creates a TweenGroup that rotates the node to the given
// angle in radians.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.rotation), float32(to), duration, fn)
	g.apply = func(n *Node, v [2]float64) { n.SetRotation(v[0]) }
	return g
}

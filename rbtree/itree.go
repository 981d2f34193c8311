package rbtree

import (
	"fmt"
	"iter"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
)

// INode is the size-augmented counterpart of Node: every structural change
// maintains size = 1 + size(left) + size(right), size(nil) = 0, enabling
// O(log N) rank/select (ITree.Advance, ITree.IndexOf) in exchange for one
// extra int per node.
type INode[K comparable, V any] struct {
	Key    K
	Value  V
	color  color
	size   int
	Left   *INode[K, V]
	Right  *INode[K, V]
	Parent *INode[K, V]
}

// Size returns the number of nodes in the subtree rooted at n (0 for nil).
func (n *INode[K, V]) Size() int {
	if n == nil {
		return 0
	}

	return n.size
}

// ITree is Tree's order-statistics counterpart: the same red-black engine
// with every node additionally tracking its subtree size, so indexing a
// key, jumping by n, and computing the distance between two positions are
// all O(log N) instead of O(N).
type ITree[K comparable, V any] struct {
	root       *INode[K, V]
	len        int
	multi      bool
	comparator cmp.Comparator[K]
	state      *treeState
}

// NewIndexed creates a new unique-key indexed tree with the built-in
// comparator for ordered types.
func NewIndexed[K cmp.Ordered, V any]() *ITree[K, V] {
	return NewIndexedWith[K, V](cmp.GenericComparator[K])
}

// NewIndexedWith creates a new unique-key indexed tree with a custom
// comparator.
func NewIndexedWith[K comparable, V any](comparator cmp.Comparator[K]) *ITree[K, V] {
	return &ITree[K, V]{comparator: comparator, state: &treeState{}}
}

// NewMultiIndexed creates a new indexed tree allowing duplicate keys, using
// the built-in comparator for ordered types.
func NewMultiIndexed[K cmp.Ordered, V any]() *ITree[K, V] {
	return NewMultiIndexedWith[K, V](cmp.GenericComparator[K])
}

// NewMultiIndexedWith creates a new indexed tree allowing duplicate keys,
// using a custom comparator.
func NewMultiIndexedWith[K comparable, V any](comparator cmp.Comparator[K]) *ITree[K, V] {
	return &ITree[K, V]{comparator: comparator, multi: true, state: &treeState{}}
}

// --------------------------------------------------------------------------------
// Accessors

func (t *ITree[K, V]) Comparator() cmp.Comparator[K] { return t.comparator }
func (t *ITree[K, V]) Multi() bool                   { return t.multi }
func (t *ITree[K, V]) Empty() bool                   { return t.len == 0 }
func (t *ITree[K, V]) Len() int                      { return t.len }
func (t *ITree[K, V]) Version() uint64               { return t.state.version }

// --------------------------------------------------------------------------------
// Lookup

func (t *ITree[K, V]) Get(key K) (val V, found bool) {
	if node := t.lookup(key); node != nil {
		return node.Value, true
	}

	return val, false
}

func (t *ITree[K, V]) GetNode(key K) *INode[K, V] {
	return t.lookup(key)
}

func (t *ITree[K, V]) Contains(key K) bool {
	return t.lookup(key) != nil
}

// LowerBound returns the first node whose key is not less than key.
func (t *ITree[K, V]) LowerBound(key K) *INode[K, V] {
	var result *INode[K, V]

	node := t.root
	for node != nil {
		if t.comparator(key, node.Key) <= 0 {
			result = node
			node = node.Left
		} else {
			node = node.Right
		}
	}

	return result
}

// UpperBound returns the first node whose key is strictly greater than key.
func (t *ITree[K, V]) UpperBound(key K) *INode[K, V] {
	var result *INode[K, V]

	node := t.root
	for node != nil {
		if t.comparator(key, node.Key) < 0 {
			result = node
			node = node.Left
		} else {
			node = node.Right
		}
	}

	return result
}

// Count returns the number of nodes with the given key, derived from rank
// so the indexed variant stays O(log n) rather than walking matches.
func (t *ITree[K, V]) Count(key K) int {
	lo, hi := t.LowerBound(key), t.UpperBound(key)

	return t.IndexOf(hi) - t.IndexOf(lo)
}

// EqualRange returns the [LowerBound(key), UpperBound(key)) pair of nodes.
func (t *ITree[K, V]) EqualRange(key K) (lower, upper *INode[K, V]) {
	return t.LowerBound(key), t.UpperBound(key)
}

func (t *ITree[K, V]) Left() *INode[K, V]  { return iminNode(t.root) }
func (t *ITree[K, V]) Right() *INode[K, V] { return imaxNode(t.root) }

// At returns the node at in-order rank i (0-based), or nil if i is out of
// [0, Len()). Time complexity: O(log n).
func (t *ITree[K, V]) At(i int) *INode[K, V] {
	if i < 0 || i >= t.len {
		return nil
	}

	node := t.root
	for node != nil {
		left := node.Left.Size()
		switch {
		case i < left:
			node = node.Left
		case i == left:
			return node
		default:
			i -= left + 1
			node = node.Right
		}
	}

	return nil
}

// IndexOf returns the in-order rank of node, accumulating the left subtree
// size at the node itself, then ascending: each time the walk crosses from
// a right child to its parent, it adds the parent's left-subtree size plus
// one. nil means "past end" and ranks as Len(). Time complexity: O(log n).
func (t *ITree[K, V]) IndexOf(node *INode[K, V]) int {
	if node == nil {
		return t.len
	}

	idx := node.Left.Size()
	for cur := node; cur.Parent != nil; cur = cur.Parent {
		if cur == cur.Parent.Right {
			idx += cur.Parent.Left.Size() + 1
		}
	}

	return idx
}

// Advance performs random access from node by delta positions in O(log N).
//
// Rather than a node-local descend/ascend walk that subtracts fringe
// sizes while descending and climbs to parents otherwise, this composes
// the two primitives such a walk is built from: IndexOf to find node's
// current rank, arithmetic on the rank, then At to re-descend from the
// root to the target rank. Both legs are O(log N), so the composition is
// too.
func (t *ITree[K, V]) Advance(node *INode[K, V], delta int) *INode[K, V] {
	idx := t.IndexOf(node) + delta
	if idx < 0 || idx >= t.len {
		return nil
	}

	return t.At(idx)
}

// --------------------------------------------------------------------------------
// Mutation

func (t *ITree[K, V]) Put(key K, val V) (*INode[K, V], bool) {
	if t.root == nil {
		t.root = &INode[K, V]{Key: key, Value: val, color: black, size: 1}
		t.len++
		t.bump()

		return t.root, true
	}

	node, parent := t.root, (*INode[K, V])(nil)
	for node != nil {
		parent = node

		c := t.comparator(key, node.Key)
		switch {
		case c == 0 && !t.multi:
			node.Value = val
			return node, false
		case c < 0:
			node = node.Left
		default:
			node = node.Right
		}
	}

	newNode := &INode[K, V]{Key: key, Value: val, color: red, size: 1, Parent: parent}
	if t.comparator(key, parent.Key) < 0 {
		parent.Left = newNode
	} else {
		parent.Right = newNode
	}

	t.bumpSizes(parent, 1)
	t.insertFixup(newNode)
	t.len++
	t.bump()

	return newNode, true
}

// PutHint mirrors Tree.PutHint, validating the hint against its
// predecessor/successor bounds before attaching near it.
func (t *ITree[K, V]) PutHint(hint *INode[K, V], key K, val V) (*INode[K, V], bool) {
	if hint == nil || t.root == nil {
		return t.Put(key, val)
	}

	pred, succ := hint.predecessor(), hint.successor()
	predOK := pred == nil || t.comparator(pred.Key, key) < 0
	succOK := succ == nil || t.comparator(key, succ.Key) < 0

	if !predOK || !succOK {
		return t.Put(key, val)
	}

	c := t.comparator(key, hint.Key)
	if c == 0 && !t.multi {
		hint.Value = val
		return hint, false
	}

	newNode := &INode[K, V]{Key: key, Value: val, color: red, size: 1}

	var parent *INode[K, V]

	switch {
	case c < 0:
		if hint.Left == nil {
			hint.Left, newNode.Parent, parent = newNode, hint, hint
		} else {
			pred.Right, newNode.Parent, parent = newNode, pred, pred
		}
	default:
		if hint.Right == nil {
			hint.Right, newNode.Parent, parent = newNode, hint, hint
		} else {
			succ.Left, newNode.Parent, parent = newNode, succ, succ
		}
	}

	t.bumpSizes(parent, 1)
	t.insertFixup(newNode)
	t.len++
	t.bump()

	return newNode, true
}

func (t *ITree[K, V]) Delete(key K) bool {
	node := t.lookup(key)
	if node == nil {
		return false
	}

	t.DeleteNode(node)

	return true
}

// DeleteNode removes the given node from the tree and deallocates it,
// returning the node that now occupies the erased element's in-order rank
// (nil when the erased element was the maximum); see Tree.DeleteNode.
func (t *ITree[K, V]) DeleteNode(node *INode[K, V]) *INode[K, V] {
	next := node.successor()
	t.remove(node)
	t.len--
	t.bump()

	return next
}

// Extract detaches node from the tree, returning an INodeHandle.
func (t *ITree[K, V]) Extract(node *INode[K, V]) *INodeHandle[K, V] {
	key, val := node.Key, node.Value
	t.remove(node)
	t.len--
	t.bump()

	return &INodeHandle[K, V]{node: &INode[K, V]{Key: key, Value: val, color: red, size: 1}}
}

// InsertNode re-attaches a previously extracted node.
func (t *ITree[K, V]) InsertNode(h *INodeHandle[K, V]) (*INode[K, V], bool) {
	if h.Empty() {
		return nil, false
	}

	detached := h.node
	node, inserted := t.Put(detached.Key, detached.Value)

	if inserted {
		h.node = nil
	}

	return node, inserted
}

func (t *ITree[K, V]) Clear() {
	t.root = nil
	t.len = 0
	t.bump()
}

// Discard drops the tree's contents and invalidates every cursor created
// so far; see Tree.Discard.
func (t *ITree[K, V]) Discard() {
	t.state.dead = true
	t.state = &treeState{version: t.state.version + 1}
	t.root = nil
	t.len = 0
}

// Touch registers a mutation without structural change; see Tree.Touch.
func (t *ITree[K, V]) Touch() {
	t.bump()
}

// --------------------------------------------------------------------------------
// Traversal helpers

func (t *ITree[K, V]) Keys() []K {
	keys := make([]K, 0, t.len)
	for k := range t.Iter() {
		keys = append(keys, k)
	}

	return keys
}

func (t *ITree[K, V]) Values() []V {
	vals := make([]V, 0, t.len)
	for _, v := range t.Iter() {
		vals = append(vals, v)
	}

	return vals
}

func (t *ITree[K, V]) KeysAndValues() ([]K, []V) {
	keys := make([]K, 0, t.len)
	vals := make([]V, 0, t.len)

	for k, v := range t.Iter() {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	return keys, vals
}

func (t *ITree[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for node := iminNode(t.root); node != nil; node = node.successor() {
			if !yield(node.Key, node.Value) {
				return
			}
		}
	}
}

func (t *ITree[K, V]) Iterator() *ICursor[K, V] {
	return &ICursor[K, V]{tree: t, state: t.state, version: t.state.version, pos: posBegin}
}

func (t *ITree[K, V]) IteratorAt(node *INode[K, V]) *ICursor[K, V] {
	return &ICursor[K, V]{tree: t, state: t.state, version: t.state.version, node: node, pos: posBetween}
}

// Clone returns a structurally isomorphic deep copy of the tree.
func (t *ITree[K, V]) Clone() *ITree[K, V] {
	clone := &ITree[K, V]{comparator: t.comparator, multi: t.multi, len: t.len, state: &treeState{}}
	clone.root = icopyNode[K, V](t.root, nil)

	return clone
}

func (t *ITree[K, V]) String() string {
	if t.Empty() {
		return "IndexedRedBlackTree[]"
	}

	var sb strings.Builder

	sb.WriteString("IndexedRedBlackTree\n")
	ioutput(t.root, "", true, &sb)

	return sb.String()
}

func (n *INode[K, V]) String() string {
	return fmt.Sprintf("%v", n.Key)
}

// --------------------------------------------------------------------------------
// Private helpers

func (t *ITree[K, V]) bump() { t.state.version++ }

func (t *ITree[K, V]) lookup(key K) *INode[K, V] {
	node := t.root
	for node != nil {
		switch c := t.comparator(key, node.Key); {
		case c == 0:
			return node
		case c < 0:
			node = node.Left
		default:
			node = node.Right
		}
	}

	return nil
}

func iminNode[K comparable, V any](node *INode[K, V]) *INode[K, V] {
	for node != nil && node.Left != nil {
		node = node.Left
	}

	return node
}

func imaxNode[K comparable, V any](node *INode[K, V]) *INode[K, V] {
	for node != nil && node.Right != nil {
		node = node.Right
	}

	return node
}

func (n *INode[K, V]) successor() *INode[K, V] {
	if n.Right != nil {
		return iminNode(n.Right)
	}

	cur, parent := n, n.Parent
	for parent != nil && cur == parent.Right {
		cur, parent = parent, parent.Parent
	}

	return parent
}

func (n *INode[K, V]) predecessor() *INode[K, V] {
	if n.Left != nil {
		return imaxNode(n.Left)
	}

	cur, parent := n, n.Parent
	for parent != nil && cur == parent.Left {
		cur, parent = parent, parent.Parent
	}

	return parent
}

func icopyNode[K comparable, V any](src, parent *INode[K, V]) *INode[K, V] {
	if src == nil {
		return nil
	}

	dst := &INode[K, V]{Key: src.Key, Value: src.Value, color: src.color, size: src.size, Parent: parent}
	dst.Left = icopyNode(src.Left, dst)
	dst.Right = icopyNode(src.Right, dst)

	return dst
}

func ioutput[K comparable, V any](node *INode[K, V], prefix string, isTail bool, sb *strings.Builder) {
	if node.Right != nil {
		ioutput(node.Right, prefix+ternary(isTail, "│   ", "    "), false, sb)
	}

	sb.WriteString(prefix)
	sb.WriteString(ternary(isTail, "└── ", "┌── "))
	fmt.Fprintf(sb, "%v (%d)\n", node.Key, node.size)

	if node.Left != nil {
		ioutput(node.Left, prefix+ternary(isTail, "    ", "│   "), true, sb)
	}
}

// bumpSizes walks from n to the root incrementing each subtree size by
// delta. Rotations use a tighter update that stops as soon as a node's
// size is unchanged; this helper is only used on the simple insert path,
// where every ancestor of the new leaf gains exactly one element.
func (t *ITree[K, V]) bumpSizes(n *INode[K, V], delta int) {
	for ; n != nil; n = n.Parent {
		n.size += delta
	}
}

func (n *INode[K, V]) grandparent() *INode[K, V] {
	if n != nil && n.Parent != nil {
		return n.Parent.Parent
	}

	return nil
}

func (n *INode[K, V]) uncle() *INode[K, V] {
	if gp := n.grandparent(); gp != nil {
		if n.Parent == gp.Left {
			return gp.Right
		}

		return gp.Left
	}

	return nil
}

func (n *INode[K, V]) sibling() *INode[K, V] {
	if n != nil && n.Parent != nil {
		if n == n.Parent.Left {
			return n.Parent.Right
		}

		return n.Parent.Left
	}

	return nil
}

// recomputeSize sets n.size from its children's current sizes.
func (n *INode[K, V]) recomputeSize() {
	n.size = 1 + n.Left.Size() + n.Right.Size()
}

// rotateLeft performs a left rotation around n. The subtrees that change
// owners keep whatever sizes they already have; n (old subtree root) and
// r (new subtree root) are recomputed bottom up, and propagation upward
// stops here -- ancestors above r are unaffected because r replaces n in
// the same position with the same total size.
func (t *ITree[K, V]) rotateLeft(n *INode[K, V]) {
	r := n.Right
	t.replaceNode(n, r)

	n.Right = r.Left
	if r.Left != nil {
		r.Left.Parent = n
	}

	r.Left = n
	n.Parent = r

	n.recomputeSize()
	r.recomputeSize()
}

// rotateRight is the mirror image of rotateLeft.
func (t *ITree[K, V]) rotateRight(n *INode[K, V]) {
	l := n.Left
	t.replaceNode(n, l)

	n.Left = l.Right
	if l.Right != nil {
		l.Right.Parent = n
	}

	l.Right = n
	n.Parent = l

	n.recomputeSize()
	l.recomputeSize()
}

func (t *ITree[K, V]) replaceNode(oldNode, newNode *INode[K, V]) {
	if oldNode.Parent == nil {
		t.root = newNode
	} else if oldNode == oldNode.Parent.Left {
		oldNode.Parent.Left = newNode
	} else {
		oldNode.Parent.Right = newNode
	}

	if newNode != nil {
		newNode.Parent = oldNode.Parent
	}
}

func (t *ITree[K, V]) insertFixup(n *INode[K, V]) {
	if n.Parent == nil {
		n.color = black
		return
	}

	if inodeColor(n.Parent) == black {
		return
	}

	if uncle := n.uncle(); inodeColor(uncle) == red {
		n.Parent.color = black
		uncle.color = black

		gp := n.grandparent()
		gp.color = red
		t.insertFixup(gp)

		return
	}

	t.insertFixupStep(n)
}

func (t *ITree[K, V]) insertFixupStep(n *INode[K, V]) {
	gp := n.grandparent()
	if n == n.Parent.Right && n.Parent == gp.Left {
		t.rotateLeft(n.Parent)
		n = n.Left
	} else if n == n.Parent.Left && n.Parent == gp.Right {
		t.rotateRight(n.Parent)
		n = n.Right
	}

	n.Parent.color = black
	gp.color = red

	if n == n.Parent.Left {
		t.rotateRight(gp)
	} else {
		t.rotateLeft(gp)
	}
}

// remove splices n out, first trading structural positions with its
// in-order successor if n has two children (links and sizes move, element
// contents never do, so cursors addressing the successor survive). Every
// structural change here keeps sizes correct by decrementing ancestors
// then letting rotateLeft/rotateRight's recompute handle the rotated
// nodes.
func (t *ITree[K, V]) remove(n *INode[K, V]) {
	if n.Left != nil && n.Right != nil {
		t.swapWithSuccessor(n, iminNode(n.Right))
	}

	child := ternary(n.Left == nil, n.Right, n.Left)

	// n is about to be spliced out and replaced by child; until that
	// splice happens it is still physically linked into the tree, so any
	// rotation the fixup performs above n would recompute a wrong size
	// for n.Parent unless n's own size field already reflects its
	// post-splice reality.
	n.size = child.Size()
	for p := n.Parent; p != nil; p = p.Parent {
		p.size--
	}

	if n.color == black {
		n.color = inodeColor(child)
		t.deleteFixup(n)
	}

	t.replaceNode(n, child)

	if n.Parent == nil && child != nil {
		child.color = black
	}
}

// swapWithSuccessor mirrors Tree.swapWithSuccessor, additionally swapping
// the two nodes' subtree sizes: a pure position exchange means each node's
// new subtree holds exactly the element count the other's did, and no
// node in between changes its count.
func (t *ITree[K, V]) swapWithSuccessor(n, succ *INode[K, V]) {
	n.color, succ.color = succ.color, n.color
	n.size, succ.size = succ.size, n.size

	left := n.Left
	n.Left = nil
	succ.Left = left
	left.Parent = succ

	if succ == n.Right {
		t.replaceNode(n, succ)

		n.Right = succ.Right
		if n.Right != nil {
			n.Right.Parent = n
		}

		succ.Right = n
		n.Parent = succ

		return
	}

	// succ sits deeper in n's right subtree, necessarily as a left child.
	succParent, succRight := succ.Parent, succ.Right

	t.replaceNode(n, succ)
	succ.Right = n.Right
	succ.Right.Parent = succ

	succParent.Left = n
	n.Parent = succParent
	n.Right = succRight

	if succRight != nil {
		succRight.Parent = n
	}
}

func (t *ITree[K, V]) deleteFixup(n *INode[K, V]) {
	if n.Parent == nil {
		return
	}

	s := n.sibling()
	if inodeColor(s) == red {
		n.Parent.color = red
		s.color = black

		if n == n.Parent.Left {
			t.rotateLeft(n.Parent)
		} else {
			t.rotateRight(n.Parent)
		}

		s = n.sibling()
	}

	t.deleteFixupCases(n, s)
}

func (t *ITree[K, V]) deleteFixupCases(n, s *INode[K, V]) {
	if inodeColor(n.Parent) == black && inodeColor(s) == black &&
		inodeColor(s.Left) == black && inodeColor(s.Right) == black {
		s.color = red
		t.deleteFixup(n.Parent)

		return
	}

	if inodeColor(n.Parent) == red && inodeColor(s) == black &&
		inodeColor(s.Left) == black && inodeColor(s.Right) == black {
		s.color = red
		n.Parent.color = black

		return
	}

	t.deleteFixupRotations(n, s)
}

func (t *ITree[K, V]) deleteFixupRotations(n, s *INode[K, V]) {
	if n == n.Parent.Left && inodeColor(s) == black &&
		inodeColor(s.Left) == red && inodeColor(s.Right) == black {
		s.color = red
		s.Left.color = black
		t.rotateRight(s)
		s = n.sibling()
	} else if n == n.Parent.Right && inodeColor(s) == black &&
		inodeColor(s.Right) == red && inodeColor(s.Left) == black {
		s.color = red
		s.Right.color = black
		t.rotateLeft(s)
		s = n.sibling()
	}

	s.color = inodeColor(n.Parent)
	n.Parent.color = black

	if n == n.Parent.Left {
		s.Right.color = black
		t.rotateLeft(n.Parent)
	} else {
		s.Left.color = black
		t.rotateRight(n.Parent)
	}
}

func inodeColor[K comparable, V any](n *INode[K, V]) color {
	if n == nil {
		return black
	}

	return n.color
}

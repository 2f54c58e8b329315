package yamlctor

import "errors"

// NoEdge is the sentinel successor value meaning "no edge": the maximum
// value representable in the emitted 16-bit cell type.
const NoEdge uint16 = 0xFFFF

// MaxNodes is the hard ceiling on total nodes in a single DFA, matching
// the original generator's fixed-size node arena.
const MaxNodes = 2048

// ErrDuplicateKey is returned by Insert when the key was already present.
var ErrDuplicateKey = errors.New("dfa: key already present")

// ErrDFACapacity is returned by Insert when inserting would exceed
// MaxNodes.
var ErrDFACapacity = errors.New("dfa: node capacity exhausted")

type dfaNode struct {
	succ       [256]uint16
	hasPayload bool
	payload    any
}

func newDFANode() *dfaNode {
	n := &dfaNode{}
	for i := range n.succ {
		n.succ[i] = NoEdge
	}

	return n
}

// DFA is a trie over octet-string keys with a compressed-alphabet dense
// table emission, shared as the substrate for type-name lookup and
// field-name dispatch.
type DFA struct {
	nodes    []*dfaNode
	min, max int // -1 if no octet observed yet
}

// New creates a DFA with just the start node (id 0).
func New() *DFA {
	d := &DFA{min: -1, max: -1}
	d.nodes = append(d.nodes, newDFANode())

	return d
}

// Insert adds key with the given payload. It fails without mutating the
// trie if key was already inserted, or if inserting would exceed
// MaxNodes.
func (d *DFA) Insert(key string, payload any) error {
	cur := 0

	// Walk as far as existing edges allow, then figure out how many new
	// nodes the remaining suffix needs, and bail before mutating anything
	// if that would exceed MaxNodes.
	i := 0
	for ; i < len(key); i++ {
		b := key[i]

		next := d.nodes[cur].succ[b]
		if next == NoEdge {
			break
		}

		cur = int(next)
	}

	remaining := len(key) - i
	if len(d.nodes)+remaining > MaxNodes {
		return ErrDFACapacity
	}

	for ; i < len(key); i++ {
		b := key[i]

		n := newDFANode()
		id := len(d.nodes)
		d.nodes = append(d.nodes, n)
		d.nodes[cur].succ[b] = uint16(id)
		cur = id

		d.observe(b)
	}

	if d.nodes[cur].hasPayload {
		return ErrDuplicateKey
	}

	d.nodes[cur].hasPayload = true
	d.nodes[cur].payload = payload

	return nil
}

func (d *DFA) observe(b byte) {
	if d.min == -1 || int(b) < d.min {
		d.min = int(b)
	}

	if d.max == -1 || int(b) > d.max {
		d.max = int(b)
	}
}

// NodeID walks key from the start node and reports the node id reached,
// regardless of whether that node carries a payload. It is used to
// precompute the dispatch-switch case labels the record/enum emitters
// generate, which branch on node id rather than on the key itself.
func (d *DFA) NodeID(key string) (int, bool) {
	cur := 0

	for i := 0; i < len(key); i++ {
		next := d.nodes[cur].succ[key[i]]
		if next == NoEdge {
			return 0, false
		}

		cur = int(next)
	}

	return cur, true
}

// Find reports the payload stored for key, if any.
func (d *DFA) Find(key string) (any, bool) {
	cur := 0

	for i := 0; i < len(key); i++ {
		next := d.nodes[cur].succ[key[i]]
		if next == NoEdge {
			return nil, false
		}

		cur = int(next)
	}

	if !d.nodes[cur].hasPayload {
		return nil, false
	}

	return d.nodes[cur].payload, true
}

// NodeCount reports the number of nodes currently in the trie, including
// the start node.
func (d *DFA) NodeCount() int { return len(d.nodes) }

// Alphabet reports the smallest and largest octet value observed across
// every inserted key. ok is false when nothing has been inserted yet.
func (d *DFA) Alphabet() (min, max byte, ok bool) {
	if d.min == -1 {
		return 0, 0, false
	}

	return byte(d.min), byte(d.max), true
}

// Table is the dense, compressed-alphabet control table emitted for a
// built DFA: rows indexed by node id, columns indexed by
// octet-Min+1 across [Min-1, Max+1], cell value is a successor node id or
// NoEdge.
type Table struct {
	Min, Max byte
	Width    int
	Rows     [][]uint16
}

// EmitTable builds the dense control table for this DFA. The column range
// is [min-1, max+1] (padded by one octet on each side so a table-driven
// walker can detect "out of alphabet" without a bounds branch), giving
// width max-min+3.
func (d *DFA) EmitTable() Table {
	min, max, ok := d.Alphabet()
	if !ok {
		return Table{Width: 0}
	}

	lo := int(min) - 1
	hi := int(max) + 1
	width := hi - lo + 1

	rows := make([][]uint16, len(d.nodes))

	for id, n := range d.nodes {
		row := make([]uint16, width)
		for col := 0; col < width; col++ {
			octet := lo + col
			if octet < 0 || octet > 255 {
				row[col] = NoEdge
				continue
			}

			row[col] = n.succ[byte(octet)]
		}

		rows[id] = row
	}

	return Table{Min: min, Max: max, Width: width, Rows: rows}
}

// Payload returns the payload stored at node id, if any.
func (d *DFA) Payload(id int) (any, bool) {
	if id < 0 || id >= len(d.nodes) {
		return nil, false
	}

	n := d.nodes[id]

	return n.payload, n.hasPayload
}

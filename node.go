package jsonsax

import "encoding/binary"

// Each open object/array is represented by a 10-byte header laid out
// directly in the caller's buffer, followed immediately by its scratch
// bytes (the name or in-progress string/number being assembled). Nodes
// are addressed by the byte offset of their header within ctx.buffer, not
// by pointer, so Reallocate never needs to walk and rewrite a parent
// chain: offsets stay valid verbatim in any buffer at least as large as
// the old one.
const nodeHeaderSize = 10

const (
	flagIsArray uint16 = 1 << iota
	flagHasName
	flagCommaPending
	flagNumberHasDecimal
	flagNumberHasExponent
	flagNumberHasSign
	flagMustPopOnNextCall
	flagPostValueCleanup
	flagIncrementDepth
	flagDecrementDepth
)

func (c *Context) nodeParent(h int) int {
	return int(int32(binary.LittleEndian.Uint32(c.buffer[h:])))
}

func (c *Context) nodeSetParent(h, parent int) {
	binary.LittleEndian.PutUint32(c.buffer[h:], uint32(int32(parent)))
}

func (c *Context) nodeEnd(h int) int {
	return int(int32(binary.LittleEndian.Uint32(c.buffer[h+4:])))
}

func (c *Context) nodeSetEnd(h, end int) {
	binary.LittleEndian.PutUint32(c.buffer[h+4:], uint32(int32(end)))
}

func (c *Context) nodeFlags(h int) uint16 {
	return binary.LittleEndian.Uint16(c.buffer[h+8:])
}

func (c *Context) nodeSetFlags(h int, f uint16) {
	binary.LittleEndian.PutUint16(c.buffer[h+8:], f)
}

func (c *Context) nodeHasFlag(h int, bit uint16) bool {
	return c.nodeFlags(h)&bit != 0
}

func (c *Context) nodeAddFlag(h int, bit uint16) {
	c.nodeSetFlags(h, c.nodeFlags(h)|bit)
}

func (c *Context) nodeClearFlag(h int, bit uint16) {
	c.nodeSetFlags(h, c.nodeFlags(h)&^bit)
}

// nodeScratch returns the bytes appended to this node so far: a name, or
// an in-progress string/number value.
func (c *Context) nodeScratch(h int) []byte {
	start := h + nodeHeaderSize
	end := c.nodeEnd(h)
	if end < start {
		return nil
	}
	return c.buffer[start : end+1]
}

// pushNode allocates a new node as a child of the current top (or as the
// root, if the stack is empty) and makes it the new top. It reports false
// if the buffer doesn't have nodeHeaderSize free bytes after the current
// top.
func (c *Context) pushNode(isArray bool) bool {
	var h int
	if c.stackTop == -1 {
		h = 0
	} else {
		h = c.nodeEnd(c.stackTop) + 1
	}
	if h+nodeHeaderSize > len(c.buffer) {
		return false
	}

	parent := c.stackTop
	c.nodeSetParent(h, parent)
	c.nodeSetEnd(h, h+nodeHeaderSize-1)
	c.nodeSetFlags(h, 0)
	if isArray {
		c.nodeAddFlag(h, flagIsArray)
	}
	c.stackTop = h
	return true
}

// popNode removes the top node, zeroing its entire occupied range so a
// later push over the same bytes doesn't leak stale data to the caller,
// and makes its parent (if any) the new top.
func (c *Context) popNode() {
	if c.stackTop == -1 {
		return
	}
	h := c.stackTop
	parent := c.nodeParent(h)
	end := c.nodeEnd(h)
	for i := h; i <= end; i++ {
		c.buffer[i] = 0
	}
	c.stackTop = parent
}

// appendBytes appends raw[:n] to the top node's scratch region. It
// reports false if doing so would overflow the buffer, leaving the
// buffer untouched.
func (c *Context) appendBytes(raw []byte) bool {
	h := c.stackTop
	end := c.nodeEnd(h)
	if end+len(raw) >= len(c.buffer) {
		return false
	}
	copy(c.buffer[end+1:], raw)
	c.nodeSetEnd(h, end+len(raw))
	return true
}

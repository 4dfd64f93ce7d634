package jsonsax

import "strconv"

// tryPushNode pushes a new node, pinning ErrorInsufficientMemory and
// rewinding the just-decoded character on failure so the caller's next
// call with a bigger buffer re-observes the same byte.
func (c *Context) tryPushNode(isArray bool) bool {
	if c.pushNode(isArray) {
		return true
	}
	c.rewind()
	c.errorReturnState = c.state
	c.state = stateErrorInsufficientMemory
	return false
}

// tryAppendChar appends raw[:n] to the current top node's scratch,
// pinning ErrorInsufficientMemory and rewinding on failure.
func (c *Context) tryAppendChar(raw [4]byte, n int) bool {
	if c.appendBytes(raw[:n]) {
		return true
	}
	c.rewind()
	c.errorReturnState = c.state
	c.state = stateErrorInsufficientMemory
	return false
}

// beginToken opens a new object or array as a child of the current top (or
// as the document root).
func (c *Context) beginToken(token uint32) Code {
	if c.stackTop != -1 && c.nodeHasFlag(c.stackTop, flagHasName) {
		c.nameFromScratch(c.stackTop)
	} else {
		c.clearName()
	}
	c.ValueType = TypeNone
	c.clearStringValue()
	c.IntegerValue = 0
	c.FloatValue = 0
	c.BoolValue = false

	if !c.tryPushNode(token == '[') {
		return ErrorInsufficientMemory
	}
	c.nodeAddFlag(c.stackTop, flagPostValueCleanup)
	c.nodeAddFlag(c.stackTop, flagIncrementDepth)

	if token == '{' {
		c.state = stateNameExpected
		return ObjectBegin
	}
	c.state = stateValueExpected
	return ArrayBegin
}

// endToken closes the current top, checking that the closing bracket
// matches the one that opened it and that no trailing comma is pending.
func (c *Context) endToken(token uint32) Code {
	top := c.stackTop
	isArray := c.nodeHasFlag(top, flagIsArray)
	if isArray != (token == ']') {
		c.state = stateErrorTokenMismatch
		return ErrorTokenMismatch
	}
	if c.nodeHasFlag(top, flagCommaPending) {
		c.state = stateErrorSyntax
		return ErrorSyntax
	}

	c.state = statePostValue
	c.clearName()
	c.nodeAddFlag(top, flagMustPopOnNextCall)
	c.nodeAddFlag(top, flagDecrementDepth)

	if parent := c.nodeParent(top); parent != -1 {
		if c.nodeHasFlag(parent, flagHasName) {
			c.nameFromScratch(parent)
		}
		c.nodeAddFlag(parent, flagPostValueCleanup)
	}

	if isArray {
		return ArrayEnd
	}
	return ObjectEnd
}

// Parse advances the document by consuming as much of input as it needs to
// produce the next event, returning that event's Code. Context's exported
// fields describe the event; see the Code constants for which fields apply
// to which code.
//
// A recoverable code (ErrorUnexpectedEOF, ErrorInsufficientMemory) leaves
// the document position pinned: call Parse again with more input, or
// Reallocate with a bigger buffer, and the same character is retried.
// A fatal code leaves ctx unusable for anything but LastError.
func Parse(ctx *Context, input []byte) Code {
	if ctx == nil || !ctx.initialized || input == nil {
		return ErrorInvalidInput
	}

	if ctx.stackTop != -1 {
		top := ctx.stackTop
		if ctx.nodeHasFlag(top, flagIncrementDepth) {
			ctx.Depth++
			ctx.nodeClearFlag(top, flagIncrementDepth)
		}
		if ctx.nodeHasFlag(top, flagDecrementDepth) {
			ctx.Depth--
			ctx.nodeClearFlag(top, flagDecrementDepth)
		}
		if ctx.nodeHasFlag(top, flagMustPopOnNextCall) {
			parent := ctx.nodeParent(top)
			ctx.popNode()
			if parent == -1 {
				ctx.state = stateDone
				return EndOfDocument
			}
		}
		if ctx.stackTop != -1 && ctx.nodeHasFlag(ctx.stackTop, flagPostValueCleanup) {
			t := ctx.stackTop
			start := t + nodeHeaderSize
			if end := ctx.nodeEnd(t); end >= start {
				for i := start; i <= end; i++ {
					ctx.buffer[i] = 0
				}
				ctx.nodeSetEnd(t, start-1)
			}
			ctx.clearName()
			ctx.ValueType = TypeNone
			ctx.clearStringValue()
			ctx.IntegerValue = 0
			ctx.FloatValue = 0
			ctx.BoolValue = false
			ctx.nodeClearFlag(t, flagHasName|flagCommaPending|
				flagNumberHasDecimal|flagNumberHasExponent|flagNumberHasSign|
				flagPostValueCleanup)
		}
	}

	switch ctx.state {
	case stateDone:
		return EndOfDocument
	case stateErrorInternal:
		return ErrorInternal
	case stateErrorInsufficientMemory:
		return ErrorInsufficientMemory
	case stateErrorTokenMismatch:
		return ErrorTokenMismatch
	case stateErrorSyntax:
		return ErrorSyntax
	case stateErrorUnexpectedEOF:
		availableTotal := ctx.streamLen + len(input)
		if availableTotal > 4 {
			availableTotal = 4
		}
		bytesToCopy := availableTotal - ctx.streamLen
		var raw [4]byte
		copy(raw[:], ctx.stream[:ctx.streamLen])
		if bytesToCopy > 0 {
			copy(raw[ctx.streamLen:], input[:bytesToCopy])
		}
		if _, n := decodeCharacter(raw, availableTotal, ctx.enc); n <= 0 {
			ctx.streamLen = availableTotal
			copy(ctx.stream[:], raw[:availableTotal])
			return ErrorUnexpectedEOF
		}
		ctx.state = ctx.errorReturnState
		ctx.errorReturnState = stateNone
	}

	if !sameBacking(ctx.input, input) {
		ctx.input = input
		ctx.pos = 0
	}

	for ctx.state >= stateNone && ctx.state <= stateDone {
		if ctx.state >= stateNameExpected && ctx.stackTop == -1 {
			ctx.state = stateErrorInternal
			return ErrorInternal
		}

		bytesRemaining := len(ctx.input) - ctx.pos
		availableTotal := ctx.streamLen + bytesRemaining
		if availableTotal > 4 {
			availableTotal = 4
		}
		bytesToCopy := availableTotal - ctx.streamLen
		var raw [4]byte
		copy(raw[:], ctx.stream[:ctx.streamLen])
		if bytesToCopy > 0 {
			copy(raw[ctx.streamLen:], ctx.input[ctx.pos:ctx.pos+bytesToCopy])
		}

		value, n := decodeCharacter(raw, availableTotal, ctx.enc)
		if n <= 0 {
			if n < 0 {
				ctx.state = stateErrorSyntax
				return ErrorSyntax
			}
			ctx.streamLen = availableTotal
			copy(ctx.stream[:], raw[:availableTotal])
			ctx.errorReturnState = ctx.state
			ctx.state = stateErrorUnexpectedEOF
			return ErrorUnexpectedEOF
		}

		if isNewline(value) {
			if ctx.newlineChar == 0 {
				ctx.newlineChar = rune(value)
			}
			if rune(value) == ctx.newlineChar {
				ctx.Line++
			}
			ctx.Column = 0
		} else {
			ctx.Column++
		}

		start, stashed := ctx.pos, ctx.streamLen
		ctx.bytesIterated = n - ctx.streamLen
		ctx.pos += ctx.bytesIterated
		ctx.streamLen = 0

		code := ctx.step(value, raw, n)
		if ctx.pos == start {
			// step put the character back; its leading bytes, if they came
			// from the stream register, are still there to be read again.
			ctx.streamLen = stashed
		}
		if code != noOp {
			return code
		}
	}

	return ErrorSyntax
}

// step performs exactly one state transition given the character just
// decoded, returning noOp if parsing should continue.
func (c *Context) step(value uint32, raw [4]byte, n int) Code {
	top := c.stackTop

	switch c.state {
	case stateNone:
		switch {
		case value == '{' || value == '[':
			return c.beginToken(value)
		case value == 0xEF:
			c.state = stateUTF8Bom1
			c.Column--
		case value == 0xFE:
			c.state = stateUTF16BEBom
			c.Column--
		case value == 0xFF:
			c.state = stateUTF16LEBom
			c.Column--
		case !isWhitespace(value):
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateUTF8Bom1:
		c.Column--
		if value == 0xBB {
			c.state = stateUTF8Bom2
		} else {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateUTF8Bom2:
		c.Column--
		if value == 0xBF {
			c.enc = encodingUTF8
			c.state = stateNone
		} else {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateUTF16BEBom:
		c.Column--
		if value == 0xFF {
			c.enc = encodingUTF16BE
			c.state = stateNone
		} else {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateUTF16LEBom:
		c.Column--
		if value == 0xFE {
			c.enc = encodingUTF16LE
			c.state = stateNone
		} else {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateNameExpected:
		switch {
		case value == '"':
			c.nodeAddFlag(top, flagHasName)
			c.state = stateName
		case value == '}' || value == ']':
			return c.endToken(value)
		case !isWhitespace(value):
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateName:
		switch {
		case value == '"':
			c.nameFromScratch(top)
			c.state = statePostName
			return Name
		case value == '\\':
			c.escapeReturnState = c.state
			c.state = stateEscape
		default:
			if !c.tryAppendChar(raw, n) {
				return ErrorInsufficientMemory
			}
		}

	case statePostName:
		switch {
		case value == ':':
			c.state = stateValueExpected
		case !isWhitespace(value):
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateValueExpected:
		switch {
		case value == '"':
			c.valueStartOffset = c.nodeEnd(top) + 1
			c.hasHighSurrogate = false
			c.state = stateStringValue
		case isDigit(value) || value == '-':
			c.valueStartOffset = c.nodeEnd(top) + 1
			c.exponentDigits = 0
			if !c.tryAppendChar([4]byte{byte(value)}, 1) {
				return ErrorInsufficientMemory
			}
			c.state = stateNumberValue
		case value == 't':
			c.state = stateTrueT
		case value == 'f':
			c.state = stateFalseF
		case value == 'n':
			c.state = stateNullN
		case value == '{' || value == '[':
			return c.beginToken(value)
		case value == '}' || value == ']':
			if !c.nodeHasFlag(top, flagIsArray) {
				c.state = stateErrorSyntax
				return ErrorSyntax
			}
			return c.endToken(value)
		case !isWhitespace(value):
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateStringValue:
		switch {
		case value == '"':
			c.ValueType = TypeString
			c.setStringValue(c.valueStartOffset, c.nodeEnd(top)-c.valueStartOffset+1)
			c.nodeAddFlag(top, flagPostValueCleanup)
			c.state = statePostValue
			return Value
		case value == '\\':
			c.escapeReturnState = c.state
			c.state = stateEscape
		default:
			if !c.tryAppendChar(raw, n) {
				return ErrorInsufficientMemory
			}
		}

	case stateEscape:
		return c.stepEscape(value)

	case stateUnicode1:
		return c.stepUnicodeDigit(value, stateUnicode2)
	case stateUnicode2:
		return c.stepUnicodeDigit(value, stateUnicode3)
	case stateUnicode3:
		return c.stepUnicodeDigit(value, stateUnicode4)
	case stateUnicode4:
		return c.stepUnicodeFinalDigit(value)

	case stateAwaitSurrogateBackslash:
		if value == '\\' {
			c.state = stateAwaitSurrogateU
		} else {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateAwaitSurrogateU:
		if value == 'u' {
			c.unicodeAccum = 0
			c.state = stateUnicode1
		} else {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}

	case stateNumberValue:
		return c.stepNumber(value, raw, n)

	case stateTrueT:
		return c.stepKeyword(value, 'r', stateTrueR)
	case stateTrueR:
		return c.stepKeyword(value, 'u', stateTrueU)
	case stateTrueU:
		if value == 'e' {
			c.ValueType = TypeBoolean
			c.BoolValue = true
			c.nodeAddFlag(top, flagPostValueCleanup)
			c.state = statePostValue
			return Value
		}
		c.state = stateErrorSyntax
		return ErrorSyntax

	case stateFalseF:
		return c.stepKeyword(value, 'a', stateFalseA)
	case stateFalseA:
		return c.stepKeyword(value, 'l', stateFalseL)
	case stateFalseL:
		return c.stepKeyword(value, 's', stateFalseS)
	case stateFalseS:
		if value == 'e' {
			c.ValueType = TypeBoolean
			c.BoolValue = false
			c.nodeAddFlag(top, flagPostValueCleanup)
			c.state = statePostValue
			return Value
		}
		c.state = stateErrorSyntax
		return ErrorSyntax

	case stateNullN:
		return c.stepKeyword(value, 'u', stateNullU)
	case stateNullU:
		return c.stepKeyword(value, 'l', stateNullL)
	case stateNullL:
		if value == 'l' {
			c.ValueType = TypeNull
			c.nodeAddFlag(top, flagPostValueCleanup)
			c.state = statePostValue
			return Value
		}
		c.state = stateErrorSyntax
		return ErrorSyntax

	case statePostValue:
		switch {
		case value == '}' || value == ']':
			return c.endToken(value)
		case value == ',':
			if c.nodeHasFlag(top, flagCommaPending) {
				c.state = stateErrorSyntax
				return ErrorSyntax
			}
			c.nodeAddFlag(top, flagCommaPending)
			if c.nodeHasFlag(top, flagIsArray) {
				c.state = stateValueExpected
			} else {
				c.state = stateNameExpected
			}
		case !isWhitespace(value):
			c.state = stateErrorSyntax
			return ErrorSyntax
		}
	}

	return noOp
}

// stepKeyword matches the next character of a true/false/null literal
// against want, failing with ErrorSyntax on any mismatch.
func (c *Context) stepKeyword(value, want uint32, next state) Code {
	if value != want {
		c.state = stateErrorSyntax
		return ErrorSyntax
	}
	c.state = next
	return noOp
}

// stepEscape handles the character right after a backslash inside a
// string or name.
func (c *Context) stepEscape(value uint32) Code {
	var target uint32
	switch value {
	case '"':
		target = '"'
	case '\\':
		target = '\\'
	case '/':
		target = '/'
	case 'b':
		target = 0x08
	case 'f':
		target = 0x0C
	case 'n':
		target = '\n'
	case 'r':
		target = '\r'
	case 't':
		target = '\t'
	case 'u':
		c.unicodeAccum = 0
		c.state = stateUnicode1
		return noOp
	default:
		c.state = stateErrorSyntax
		return ErrorSyntax
	}

	raw, n := encodeCharacter(target, c.enc)
	if !c.tryAppendChar(raw, n) {
		return ErrorInsufficientMemory
	}
	c.state = c.escapeReturnState
	c.escapeReturnState = stateNone
	return noOp
}

// stepUnicodeDigit accumulates one hex digit of a \uXXXX escape that isn't
// the last.
func (c *Context) stepUnicodeDigit(value uint32, next state) Code {
	if !isHexDigit(value) {
		c.state = stateErrorSyntax
		return ErrorSyntax
	}
	c.unicodeAccum = c.unicodeAccum<<4 | hexValue(value)
	c.state = next
	return noOp
}

// stepUnicodeFinalDigit accumulates the fourth hex digit of a \uXXXX
// escape and, once the codepoint is complete, either stashes it as a
// pending high surrogate awaiting its partner, combines it with a pending
// high surrogate, or encodes it outright. A high surrogate not followed by
// a \uXXXX low surrogate is a syntax error, since it cannot be encoded on
// its own.
func (c *Context) stepUnicodeFinalDigit(value uint32) Code {
	if !isHexDigit(value) {
		c.state = stateErrorSyntax
		return ErrorSyntax
	}
	codepoint := c.unicodeAccum<<4 | hexValue(value)

	if !c.hasHighSurrogate && codepoint >= 0xD800 && codepoint <= 0xDBFF {
		c.highSurrogate = codepoint
		c.hasHighSurrogate = true
		c.state = stateAwaitSurrogateBackslash
		return noOp
	}

	if c.hasHighSurrogate {
		if codepoint < 0xDC00 || codepoint > 0xDFFF {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}
		codepoint = 0x10000 + (c.highSurrogate-0xD800)*0x400 + (codepoint - 0xDC00)
	}

	raw, n := encodeCharacter(codepoint, c.enc)
	if n == 0 {
		c.state = stateErrorSyntax
		return ErrorSyntax
	}
	if !c.tryAppendChar(raw, n) {
		return ErrorInsufficientMemory
	}
	c.hasHighSurrogate = false
	c.state = c.escapeReturnState
	c.escapeReturnState = stateNone
	return noOp
}

// stepNumber advances through a number literal. Termination is driven by
// lookahead: whitespace, a comma, or a closing bracket all end the number,
// and everything but the whitespace case is put back for the next state to
// see.
func (c *Context) stepNumber(value uint32, raw [4]byte, n int) Code {
	top := c.stackTop
	ascii := [4]byte{byte(value)}

	switch {
	case isDigit(value):
		if !c.tryAppendChar(ascii, 1) {
			return ErrorInsufficientMemory
		}
		if c.nodeHasFlag(top, flagNumberHasExponent) {
			c.exponentDigits++
		}
		return noOp

	case value == '.':
		if c.nodeHasFlag(top, flagNumberHasDecimal) || c.nodeHasFlag(top, flagNumberHasExponent) {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}
		if !c.tryAppendChar(ascii, 1) {
			return ErrorInsufficientMemory
		}
		c.nodeAddFlag(top, flagNumberHasDecimal)
		return noOp

	case value == 'e' || value == 'E':
		if c.nodeHasFlag(top, flagNumberHasExponent) {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}
		if !c.tryAppendChar(ascii, 1) {
			return ErrorInsufficientMemory
		}
		c.nodeAddFlag(top, flagNumberHasExponent)
		c.exponentDigits = 0
		return noOp

	case value == '-' || value == '+':
		if !c.nodeHasFlag(top, flagNumberHasExponent) || c.nodeHasFlag(top, flagNumberHasSign) {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}
		if !c.tryAppendChar(ascii, 1) {
			return ErrorInsufficientMemory
		}
		c.nodeAddFlag(top, flagNumberHasSign)
		return noOp

	case isWhitespace(value) || value == ',' || value == '}' || value == ']':
		if c.nodeHasFlag(top, flagNumberHasExponent) && c.exponentDigits == 0 {
			c.state = stateErrorSyntax
			return ErrorSyntax
		}
		digits := string(c.buffer[c.valueStartOffset : c.nodeEnd(top)+1])
		if c.nodeHasFlag(top, flagNumberHasDecimal) || c.nodeHasFlag(top, flagNumberHasExponent) {
			f, err := strconv.ParseFloat(digits, 64)
			if err != nil {
				c.state = stateErrorSyntax
				return ErrorSyntax
			}
			c.ValueType = TypeFloat
			c.FloatValue = f
		} else {
			iv, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				c.state = stateErrorSyntax
				return ErrorSyntax
			}
			c.ValueType = TypeInteger
			c.IntegerValue = iv
		}
		c.clearStringValue()
		c.nodeAddFlag(top, flagPostValueCleanup)
		c.state = statePostValue
		if !isWhitespace(value) {
			c.rewind()
		}
		return Value

	default:
		c.state = stateErrorSyntax
		return ErrorSyntax
	}
}

// sameBacking reports whether a and b are views over the same underlying
// array, so Parse knows whether to reset its position for genuinely new
// input versus a repeat call over the same slice.
func sameBacking(a, b []byte) bool {
	if cap(a) == 0 && cap(b) == 0 {
		return true
	}
	if cap(a) == 0 || cap(b) == 0 {
		return false
	}
	return &a[:1][0] == &b[:1][0]
}

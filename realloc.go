package jsonsax

import "fmt"

// Reallocate moves ctx onto a larger buffer after Parse has returned
// ErrorInsufficientMemory. buffer must be strictly larger than the buffer
// ctx currently uses; its leading bytes are overwritten with ctx's live
// state and everything after that is free scratch space.
//
// Node offsets never change across a move: nodes are addressed by their
// byte offset into the buffer rather than by pointer, so restoring state
// on the new buffer is a single copy with no parent-chain rewrite. Name
// and StringValue are re-sliced onto the new backing array at their same
// offsets.
func Reallocate(ctx *Context, buffer []byte) error {
	if ctx == nil || !ctx.initialized {
		return fmt.Errorf("%w: context not initialized", ErrInvalidInput)
	}
	if len(buffer) <= len(ctx.buffer) {
		return fmt.Errorf("%w: new buffer must be larger than the current one", ErrInvalidInput)
	}

	copy(buffer, ctx.buffer)
	ctx.buffer = buffer

	if ctx.nameOff >= 0 {
		ctx.Name = ctx.buffer[ctx.nameOff : ctx.nameOff+ctx.nameLen]
	}
	if ctx.valueOff >= 0 {
		ctx.StringValue = ctx.buffer[ctx.valueOff : ctx.valueOff+ctx.valueLen]
	}

	if ctx.state == stateErrorInsufficientMemory {
		ctx.state = ctx.errorReturnState
		ctx.errorReturnState = stateNone
	}

	return nil
}

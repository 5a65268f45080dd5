package tiny

// step is called once per statement and expression. It enforces the optional
// step quota and notices context cancellation between steps.
func (exec *Execution) step(pos Position) error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.failAt(pos, QuotaExceeded, "step quota exceeded (limit %d)", exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.failAt(pos, Canceled, "execution canceled: %v", exec.ctx.Err())
		default:
		}
	}
	return nil
}

// pushFrame enforces the recursion cap: exceeding it is a StackOverflow
// failure, not a host crash.
func (exec *Execution) pushFrame(fn *Function, callee string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.failAt(pos, StackOverflow, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{fn: fn, callee: callee, pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// currentFunction is the innermost running function, nil before the entry
// call begins. Bare-name dispatch resolves against its declaring class.
func (exec *Execution) currentFunction() *Function {
	if len(exec.callStack) == 0 {
		return nil
	}
	return exec.callStack[len(exec.callStack)-1].fn
}

func (exec *Execution) debug(msg string, keyvals ...any) {
	if exec.logger == nil {
		return
	}
	exec.logger.Debug(msg, keyvals...)
}

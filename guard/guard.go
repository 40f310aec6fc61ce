// Package guard is the instrumentation boundary: it turns a contract
// into a wrapper that validates arguments before, and the return value
// after, invoking the guarded callable. Decoration is explicit at
// declaration time; nothing is intercepted implicitly.
package guard

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync/atomic"

	covenant "github.com/covenant/covenant-go"
	"github.com/covenant/covenant-go/contract"
)

var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// SetEnabled toggles contract enforcement process-wide. Disabled guards
// invoke their callables directly without consulting the engine.
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether contract enforcement is active.
func Enabled() bool { return enabled.Load() }

// Wrap returns a callable enforcing c around fn. When c declares a block
// constraint, the final argument of each call is treated as the block.
// A failing default policy surfaces a *covenant.Violation as the error;
// a policy that aborts silently skips the body and yields a nil result.
func Wrap(c *contract.Contract, fn interface{}) covenant.Callable {
	return func(args ...interface{}) (interface{}, error) {
		if !Enabled() {
			return covenant.Invoke(fn, args...)
		}

		loc := callSite()
		policy := c.Policy()

		positional := args
		var block interface{}
		if c.HasBlock() && len(args) > 0 {
			block = args[len(args)-1]
			positional = args[:len(args)-1]
		}

		rewritten, ok, err := c.ValidateArgumentsUnder(policy, loc, positional)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		if c.HasBlock() {
			wrapped, ok, err := c.ValidateBlockUnder(policy, loc, block)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			rewritten = append(rewritten, wrapped)
		}

		out, err := covenant.Invoke(fn, rewritten...)
		if err != nil {
			return nil, err
		}

		checked, ok, err := c.ValidateReturnUnder(policy, loc, out)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return checked, nil
	}
}

// callSite names the caller of the wrapped callable for violation
// messages. Threaded through validation explicitly; never stored on the
// contract.
func callSite() string {
	if _, file, line, ok := runtime.Caller(2); ok {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return ""
}

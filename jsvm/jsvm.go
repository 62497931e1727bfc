// Package jsvm hosts a pure-Go JavaScript runtime (goja) as the embedded
// application's execution environment, wiring just enough of the console
// surface to observe the effects of module resolution and file loading
// performed through package hostruntime.
package jsvm

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/snapfs/snapfs/hostruntime"
)

// VM wraps a goja runtime with a console.log implementation writing to
// standard output.
type VM struct {
	rt *goja.Runtime
}

// New returns a VM ready to execute scripts.
func New() *VM {
	rt := goja.New()

	console := rt.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		args := make([]interface{}, len(call.Arguments))
		for i, a := range call.Arguments {
			args[i] = a.Export()
		}
		fmt.Println(args...)
		return goja.Undefined()
	})
	rt.Set("console", console)

	return &VM{rt: rt}
}

// Run executes src as a top-level script.
func (vm *VM) Run(src string) error {
	_, err := vm.rt.RunString(src)
	return err
}

// RunModule loads the text at hostPath through modules.ReadFile — exercising
// whatever translation and archive lookup the installed hook performs — and
// executes it as a top-level script.
func (vm *VM) RunModule(modules *hostruntime.ModuleSystem, hostPath string) error {
	text, ok := modules.ReadFile(hostPath)
	if !ok {
		return fmt.Errorf("jsvm: module not found: %s", hostPath)
	}
	return vm.Run(text)
}

package dashboard

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// ContractError reports input the engine is not supposed to receive.
func ContractError(reason string) error {
	msg := "Dashboard cannot be computed: <em>%s</em>"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EngineContractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: contract violation: %s", fn.Name(), reason),
	}
}

package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
	}{
		{"create dir", CreateDirError("/test/dir", cause), errcode.CreateDirError, "/test/dir"},
		{"write config", WriteConfigError("/test/config.yaml", cause), errcode.WriteFileError, "/test/config.yaml"},
		{"read config", ReadConfigError("/test/config.yaml", cause), errcode.ReadFileError, "/test/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.True(t, errors.Is(gnErr.Err, cause), "cause is wrapped")
			assert.Contains(t, gnErr.Err.Error(), "from ")
			assert.Contains(t, gnErr.Err.Error(), "TestErrors")
		})
	}
}

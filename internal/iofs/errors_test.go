package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theskyentist/gelato/pkg/errcode"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		path string
	}{
		{"create dir", CreateDirError("/test/dir", orig), errcode.CreateDirError, "/test/dir"},
		{"copy file", CopyFileError("/test/config.yaml", orig), errcode.CopyFileError, "/test/config.yaml"},
		{"read file", ReadFileError("/test/params.hcl", orig), errcode.ReadFileError, "/test/params.hcl"},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Contains(t, gnErr.Msg, "%s", v.msg)
		require.Len(t, gnErr.Vars, 1, v.msg)
		assert.Equal(t, v.path, gnErr.Vars[0], v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "TestErrors", v.msg)
	}
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]uint32{
		"debug":   logx.DebugLevel,
		" INFO ":  logx.InfoLevel,
		"":        logx.InfoLevel,
		"warn":    logx.ErrorLevel,
		"error":   logx.ErrorLevel,
		"fatal":   logx.SevereLevel,
		"verbose": logx.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

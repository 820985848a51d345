package build_info

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDevBuild(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	tests := []struct {
		version string
		want    bool
	}{
		{DefaultDevVersion, true},
		{"", true},
		{"1.4.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			Version = tt.version
			assert.Equal(t, tt.want, IsDevBuild())
		})
	}
}

package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-s", "main", "-x", "noise"},
			allowed: []string{"-s"},
			want:    []string{"-s", "main"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--site=main", "--other=1"},
			allowed: []string{"--site"},
			want:    []string{"--site=main"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-s", "-p", "5"},
			allowed: []string{"-s", "-p"},
			want:    []string{"-s", "-p", "5"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-s"},
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })

	os.Args = []string{"client", "-c", "conf.json", "-s", "main"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"client", "-config=other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"client", "-s", "main"}
	assert.Equal(t, "", JsonConfigFlags())
}

package component_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestStartup(t *testing.T) {
	s, err := component.DecodeStartup(testutil.HCLBlock(t, `
		startup {
		  project {
		    name   = "bay"
		    nr     = "001"
		    title1 = "Bay run"
		  }
		  set {
		    level                = 0.5
		    nor                  = 90
		    direction_convention = "nautical"
		  }
		  mode {
		    kind = "nonstationary"
		  }
		  coordinates {
		    kind = "spherical"
		  }
		}
	`, "startup"))
	require.NoError(t, err)

	want := testutil.Unindent(`
		PROJECT name='bay' nr='001' title1='Bay run'
		SET level=0.5 nor=90.0 NAUTICAL
		MODE NONSTATIONARY TWODIMENSIONAL
		COORDINATES SPHERICAL CCM
	`)
	if diff := cmp.Diff(want, s.Render()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
	require.True(t, s.Mode.Nonstationary())
}

func TestStartupSkipsAbsentMembers(t *testing.T) {
	s, err := component.DecodeStartup(testutil.HCLBlock(t, `
		startup {
		  coordinates {
		    repeating = true
		  }
		}
	`, "startup"))
	require.NoError(t, err)
	require.Equal(t, "COORDINATES CARTESIAN REPEATING", s.Render())
	require.Nil(t, s.Project)
	require.Nil(t, s.Mode)
}

func TestStartupErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown member",
			src: `
				startup {
				  output {
				  }
				}
			`,
			want: "startup: output: unknown field",
		},
		{
			name: "project without name",
			src: `
				startup {
				  project {
				    nr = "1"
				  }
				}
			`,
			want: "startup: project.name: missing required field",
		},
		{
			name: "project name too long",
			src: `
				startup {
				  project {
				    name = "a-very-long-project"
				  }
				}
			`,
			want: "startup: project.name: must have at most 16 character(s)",
		},
		{
			name: "projection on cartesian coordinates",
			src: `
				startup {
				  coordinates {
				    projection = "qc"
				  }
				}
			`,
			want: "startup: coordinates.projection: not allowed for cartesian coordinates",
		},
		{
			name: "unknown mode",
			src: `
				startup {
				  mode {
				    kind = "transient"
				  }
				}
			`,
			want: `startup: mode.kind: must be one of [stationary nonstationary], got "transient"`,
		},
		{
			name: "unknown set field",
			src: `
				startup {
				  set {
				    gravity = 9.81
				  }
				}
			`,
			want: "startup: set.gravity: unknown field",
		},
		{
			name: "maxerr out of range",
			src: `
				startup {
				  set {
				    maxerr = 4
				  }
				}
			`,
			want: "startup: set.maxerr: must be less than or equal to 3, got 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeStartup(testutil.HCLBlock(t, tt.src, "startup"))
			require.EqualError(t, err, tt.want)
		})
	}
}

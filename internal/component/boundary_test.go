package component_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestBoundarySide(t *testing.T) {
	b, err := component.DecodeBoundary(testutil.HCLBlock(t, `
		boundary "side" {
		  location {
		    side = "west"
		  }
		  data "constantpar" {
		    hs  = 1.0
		    per = 10.0
		    dir = 0.0
		    dd  = 10.0
		  }
		}
	`, "boundary"))
	require.NoError(t, err)
	require.Len(t, b.Bounds, 1)

	cmds := b.Bounds[0].Cmd()
	require.Equal(t, []string{
		"BOUND SHAPESPEC JONSWAP gamma=3.3 PEAK DSPR POWER",
		"BOUNDSPEC SIDE WEST CCW CONSTANT PAR hs=1.0 per=10.0 dir=0.0 dd=10.0",
	}, cmds)
}

func TestBoundaryBuiltDirectly(t *testing.T) {
	dd := 10.0
	side, err := component.New(component.BoundSide{
		Shapespec: subcomponent.NewShapespec(subcomponent.Jonswap{Gamma: subcomponent.DefaultGamma}),
		Location:  subcomponent.Side{Side: "west", Direction: "ccw"},
		Data:      subcomponent.ConstantPar{Hs: 1, Per: 10, Dir: 0, Dd: &dd},
	})
	require.NoError(t, err)
	require.Equal(t, "SIDE WEST CCW", side.Location.Render())
	require.Equal(t, "CONSTANT PAR hs=1.0 per=10.0 dir=0.0 dd=10.0", side.Data.Render())
	require.Equal(t, "BOUND SHAPESPEC JONSWAP gamma=3.3 PEAK DSPR POWER\nBOUNDSPEC SIDE WEST CCW CONSTANT PAR hs=1.0 per=10.0 dir=0.0 dd=10.0", side.Render())
}

func TestBoundaryList(t *testing.T) {
	b, err := component.DecodeBoundary(testutil.HCLBlock(t, `
		boundary "segment" {
		  shapespec {
		    per_type = "mean"
		  }
		  location {
		    x = [0, 100]
		    y = [0, 0]
		  }
		  data "constantfile" {
		    fname = "bc.sp2"
		  }
		}
		boundary "segment" {
		  location {
		    i = [0, 0]
		    j = [0, 20]
		  }
		  data "variablepar" {
		    dist = [0, 50]
		    hs   = [1, 1.5]
		    per  = [8, 9]
		    dir  = [270, 280]
		    dd   = [20, 20]
		  }
		}
		boundary "nest" {
		  fname = "nest.sp2"
		}
	`, "boundary"))
	require.NoError(t, err)

	want := testutil.Unindent(`
		BOUND SHAPESPEC JONSWAP gamma=3.3 MEAN DSPR POWER
		BOUNDSPEC SEGMENT XY &
		    0.0 0.0 &
		    100.0 0.0 CONSTANT FILE fname='bc.sp2'
		BOUND SHAPESPEC JONSWAP gamma=3.3 PEAK DSPR POWER
		BOUNDSPEC SEGMENT IJ &
		    0 0 &
		    0 20 VARIABLE PAR &
		    len=0.0 hs=1.0 per=8.0 dir=270.0 dd=20.0 &
		    len=50.0 hs=1.5 per=9.0 dir=280.0 dd=20.0
		BOUNDNEST1 NEST fname='nest.sp2' CLOSED
	`)
	if diff := cmp.Diff(want, b.Render()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundaryErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "side without data",
			src: `
				boundary "side" {
				  location {
				    side = "north"
				  }
				}
			`,
			want: "boundary: [0].data: missing required field",
		},
		{
			name: "side given as segment",
			src: `
				boundary "side" {
				  location {
				    x = [0, 1]
				    y = [0, 1]
				  }
				  data "constantfile" {
				    fname = "bc.sp2"
				  }
				}
			`,
			want: "validation failed:\n- boundary: [0].location.x: unknown field\n- boundary: [0].location.y: unknown field\n- boundary: [0].location.side: missing required field",
		},
		{
			name: "unknown side",
			src: `
				boundary "side" {
				  location {
				    side = "up"
				  }
				  data "constantfile" {
				    fname = "bc.sp2"
				  }
				}
			`,
			want: `boundary: [0].location.side: must be one of [north nw west sw south se east ne], got "up"`,
		},
		{
			name: "unknown boundary field",
			src: `
				boundary "nest" {
				  fname = "nest.sp2"
				  side  = "west"
				}
			`,
			want: "boundary: [0].side: unknown field",
		},
		{
			name: "unknown kind",
			src: `
				boundary "wave" {
				}
			`,
			want: `boundary: [0].model_type: unknown model_type "wave", expected one of [nest segment side]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeBoundary(testutil.HCLBlock(t, tt.src, "boundary"))
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "default",
			src: `
				initial "default" {
				}
			`,
			want: "INITIAL DEFAULT",
		},
		{
			name: "zero",
			src: `
				initial "zero" {
				}
			`,
			want: "INITIAL ZERO",
		},
		{
			name: "par",
			src: `
				initial "par" {
				  hs  = 1
				  per = 8
				  dir = 270
				  dd  = 20
				}
			`,
			want: "INITIAL PAR hs=1.0 per=8.0 dir=270.0 dd=20.0",
		},
		{
			name: "hotstart",
			src: `
				initial "hotstart" {
				  fname = "hot.dat"
				}
			`,
			want: "INITIAL HOTSTART SINGLE fname='hot.dat' FREE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := component.Initials.Decode(testutil.HCLBlock(t, tt.src, "initial"))
			require.NoError(t, err)
			require.Equal(t, tt.want, i.Render())
		})
	}

	_, err := component.Initials.Decode(testutil.HCLBlock(t, `
		initial "zero" {
		  hs = 1
		}
	`, "initial"))
	require.EqualError(t, err, "initial: hs: unknown field")
}

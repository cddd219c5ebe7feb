package component_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestOutput(t *testing.T) {
	o, err := component.DecodeOutput(testutil.HCLBlock(t, `
		output {
		  frame {
		    sname  = "outer"
		    xlenfr = 1000
		    ylenfr = 500
		    mxfr   = 10
		    myfr   = 5
		  }
		  points {
		    sname = "buoys"
		    xp    = [10, 20]
		    yp    = [30, 40]
		  }
		  group {
		    sname = "corner"
		    ix1   = 0
		    ix2   = 4
		    iy1   = 0
		    iy2   = 4
		  }
		  quantity {
		    output = ["hsign"]
		    short  = "Hs"
		  }
		  output_options {
		  }
		  block {
		    sname  = "outer"
		    fname  = "outer.mat"
		    output = ["hsign", "tps"]
		    times {
		      tbeg = "2020-01-01T00:00:00Z"
		      delt = "3h"
		    }
		  }
		  block {
		    sname  = "COMPGRID"
		    header = false
		    fname  = "grid.mat"
		    idla   = 4
		    output = ["depth"]
		  }
		  table {
		    sname  = "buoys"
		    fname  = "buoys.tbl"
		    output = ["hsign"]
		  }
		  specout {
		    sname = "buoys"
		    fname = "buoys.spc"
		  }
		  nestout {
		    sname = "corner"
		    fname = "corner.nst"
		  }
		}
	`, "output"))
	require.NoError(t, err)

	want := testutil.Unindent(`
		FRAME 'outer' xpfr=0.0 ypfr=0.0 alpfr=0.0 xlenfr=1000.0 ylenfr=500.0 mxfr=10 myfr=5
		GROUP 'corner' SUBGRID ix1=0 ix2=4 iy1=0 iy2=4
		POINTS 'buoys' &
		    10.0 30.0 &
		    20.0 40.0
		QUANTITY HSIGN short='Hs'
		OUTPUT OPTIONS comment='$' TABLE field=12 BLOCK ndec=5 len=6 SPEC ndec=8
		BLOCK 'outer' HEADER fname='outer.mat' HSIGN TPS OUTPUT tbegblk=20200101.000000 deltblk=3.0 HR
		BLOCK 'COMPGRID' NOHEADER fname='grid.mat' LAYOUT idla=4 DEPTH
		TABLE 'buoys' HEADER fname='buoys.tbl' HSIGN
		SPECOUT 'buoys' SPEC2D ABS fname='buoys.spc'
		NESTOUT 'corner' fname='corner.nst'
	`)
	if diff := cmp.Diff(want, o.Render()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, component.BlockSuffix, o.Blocks[0].Times.Suffix)
}

func TestOutputCurve(t *testing.T) {
	c, err := component.New(component.Curve{
		Sname: "transect",
		Xp1:   0,
		Yp1:   0,
		Nint:  []int{10, 5},
		Xp:    []float64{100, 150},
		Yp:    []float64{0, 50},
	})
	require.NoError(t, err)
	require.Equal(t, "CURVE 'transect' xp1=0.0 yp1=0.0 &\n    int=10 xp=100.0 yp=0.0 &\n    int=5 xp=150.0 yp=50.0", c.Render())

	_, err = component.New(component.Curve{Sname: "transect", Nint: []int{10}, Xp: []float64{1, 2}, Yp: []float64{1}})
	require.EqualError(t, err, "curve: xp: has 2 element(s), expected 1 to match nint")
}

func TestOutputErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "undeclared location",
			src: `
				output {
				  table {
				    sname  = "nowhere"
				    fname  = "t.tbl"
				    output = ["hsign"]
				  }
				}
			`,
			want: `output: table[0].sname: references undeclared location "nowhere"`,
		},
		{
			name: "grid names only for blocks",
			src: `
				output {
				  specout {
				    sname = "BOTTGRID"
				    fname = "s.spc"
				  }
				}
			`,
			want: `output: specout[0].sname: references undeclared location "BOTTGRID"`,
		},
		{
			name: "reserved location name",
			src: `
				output {
				  pointsfile {
				    sname = "COMPGRID"
				    fname = "pts.txt"
				  }
				}
			`,
			want: `output: location[0].sname: "COMPGRID" is reserved`,
		},
		{
			name: "duplicate location",
			src: `
				output {
				  pointsfile {
				    sname = "buoys"
				    fname = "pts.txt"
				  }
				  points {
				    sname = "buoys"
				    xp    = [1]
				    yp    = [2]
				  }
				}
			`,
			want: `output: location[1].sname: duplicate location "buoys"`,
		},
		{
			name: "unknown quantity",
			src: `
				output {
				  block {
				    sname  = "COMPGRID"
				    fname  = "grid.mat"
				    output = ["hsign", "salinity"]
				  }
				}
			`,
			want: `output: block[0].output: unknown output quantity "salinity" at index 1`,
		},
		{
			name: "inverted group",
			src: `
				output {
				  group {
				    sname = "g"
				    ix1   = 5
				    ix2   = 1
				    iy1   = 0
				    iy2   = 1
				  }
				}
			`,
			want: "output: group[0].ix2: must be greater than or equal to ix1 (5), got 1",
		},
		{
			name: "closed output times",
			src: `
				output {
				  block {
				    sname  = "COMPGRID"
				    fname  = "grid.mat"
				    output = ["hsign"]
				    times {
				      tbeg = "2020-01-01T00:00:00Z"
				      delt = "1h"
				      tend = "2020-01-02T00:00:00Z"
				    }
				  }
				}
			`,
			want: "output: block[0].times.tend: unknown field",
		},
		{
			name: "unknown member",
			src: `
				output {
				  ray {
				  }
				}
			`,
			want: "output: ray: unknown field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeOutput(testutil.HCLBlock(t, tt.src, "output"))
			require.EqualError(t, err, tt.want)
		})
	}
}

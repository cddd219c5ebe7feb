package component_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestCgrid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "regular",
			src: `
				cgrid "regular" {
				  xlenc = 1000
				  ylenc = 500
				  mxc   = 10
				  myc   = 5
				  spectrum {
				    mdc   = 36
				    flow  = 0.04
				    fhigh = 1.0
				  }
				}
			`,
			want: `
				CGRID REGULAR xpc=0.0 ypc=0.0 alpc=0.0 xlenc=1000.0 ylenc=500.0 mxc=10 myc=5 &
				    CIRCLE mdc=36 flow=0.04 fhigh=1.0
			`,
		},
		{
			name: "unstructured reads its mesh",
			src: `
				cgrid "unstructured" {
				  spectrum {
				    mdc  = 36
				    dir1 = 0
				    dir2 = 90
				    flow = 0.04
				    msc  = 31
				  }
				}
			`,
			want: `
				CGRID UNSTRUCTURED &
				    SECTOR dir1=0.0 dir2=90.0 mdc=36 flow=0.04 msc=31
				READGRID UNSTRUCTURED ADCIRC
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := component.DecodeCgrid(testutil.HCLBlock(t, tt.src, "cgrid"))
			require.NoError(t, err)
			if diff := cmp.Diff(testutil.Unindent(tt.want), g.Render()); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCgridErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "no geometry",
			src: `
				cgrid {
				  spectrum {
				    mdc   = 36
				    flow  = 0.04
				    fhigh = 1.0
				  }
				}
			`,
			want: "cgrid: model_type: missing required field",
		},
		{
			name: "no spectrum",
			src: `
				cgrid "unstructured" {
				}
			`,
			want: "cgrid: spectrum: missing required field",
		},
		{
			name: "half a sector",
			src: `
				cgrid "unstructured" {
				  spectrum {
				    mdc   = 36
				    dir1  = 0
				    flow  = 0.04
				    fhigh = 1.0
				  }
				}
			`,
			want: "cgrid: spectrum.dir2: missing required field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeCgrid(testutil.HCLBlock(t, tt.src, "cgrid"))
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestInpgrids(t *testing.T) {
	gs, err := component.DecodeInpgrids(testutil.HCLBlock(t, `
		inpgrid {
		  grid_type = "bottom"
		  mxinp     = 10
		  myinp     = 10
		  dxinp     = 100
		  excval    = -99
		  readinp {
		    fname1 = "bottom.txt"
		  }
		}
		inpgrid {
		  grid_type = "wind"
		  mxinp     = 10
		  myinp     = 10
		  nonstationary {
		    tbeg = "2020-01-01T00:00:00Z"
		    delt = "1h"
		    tend = "2020-01-02T00:00:00Z"
		  }
		  readinp {
		    fname1 = "u.txt"
		    fname2 = "v.txt"
		  }
		}
		inpgrid {
		  grid_type = "wlevel"
		  readinp {
		    fname1 = "wlevel.txt"
		  }
		}
	`, "inpgrid"))
	require.NoError(t, err)
	require.Len(t, gs.Grids, 3)

	require.IsType(t, subcomponent.InpRegular{}, gs.Grids[0].Geometry)
	require.IsType(t, subcomponent.InpCurvilinear{}, gs.Grids[1].Geometry)
	require.IsType(t, subcomponent.InpUnstructured{}, gs.Grids[2].Geometry)

	want := testutil.Unindent(`
		INPGRID BOTTOM REGULAR xpinp=0.0 ypinp=0.0 alpinp=0.0 mxinp=10 myinp=10 dxinp=100.0 dyinp=100.0 EXCEPTION excval=-99.0
		READINP BOTTOM fac=1.0 fname1='bottom.txt' idla=1 nhedf=0 nhedt=0 nhedvec=0 FREE
		INPGRID WIND CURVILINEAR mxinp=10 myinp=10 &
		    NONSTATIONARY tbeginp=20200101.000000 deltinp=1.0 HR tendinp=20200102.000000
		READINP WIND fac=1.0 fname1='u.txt' fname2='v.txt' idla=1 nhedf=0 nhedt=0 nhedvec=0 FREE
		INPGRID WLEVEL UNSTRUCTURED
		READINP WLEVEL fac=1.0 fname1='wlevel.txt' idla=1 nhedf=0 nhedt=0 nhedvec=0 FREE
	`)
	if diff := cmp.Diff(want, gs.Render()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}

	wind, ok := gs.Grid(subcomponent.QuantityWind)
	require.True(t, ok)
	require.NotNil(t, wind.Nonstationary)
	_, ok = gs.Grid(subcomponent.QuantityCurrent)
	require.False(t, ok)
}

func TestInpgridsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "duplicate grid type",
			src: `
				inpgrid {
				  grid_type = "bottom"
				  readinp {
				    fname1 = "a.txt"
				  }
				}
				inpgrid {
				  grid_type = "bottom"
				  readinp {
				    fname1 = "b.txt"
				  }
				}
			`,
			want: `inpgrid: [1].grid_type: duplicate grid_type "bottom", already used by [0]`,
		},
		{
			name: "second file for a scalar",
			src: `
				inpgrid {
				  grid_type = "bottom"
				  readinp {
				    fname1 = "a.txt"
				    fname2 = "b.txt"
				  }
				}
			`,
			want: "inpgrid: [0].readinp.fname2: not allowed for scalar quantity bottom",
		},
		{
			name: "no reader",
			src: `
				inpgrid {
				  grid_type = "bottom"
				}
			`,
			want: "inpgrid: [0].readinp: missing required field",
		},
		{
			name: "unknown field",
			src: `
				inpgrid {
				  grid_type = "bottom"
				  scale     = 2
				  readinp {
				    fname1 = "a.txt"
				  }
				}
			`,
			want: "inpgrid: [0].scale: unknown field",
		},
		{
			name: "open nonstationary range",
			src: `
				inpgrid {
				  grid_type = "wlevel"
				  nonstationary {
				    tbeg = "2020-01-01T00:00:00Z"
				    delt = "1h"
				  }
				  readinp {
				    fname1 = "a.txt"
				  }
				}
			`,
			want: "inpgrid: [0].nonstationary.tend: missing required field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeInpgrids(testutil.HCLBlock(t, tt.src, "inpgrid"))
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestWind(t *testing.T) {
	w, err := component.DecodeWind(testutil.HCLBlock(t, `
		wind {
		  vel = 10
		  dir = 270
		}
	`, "wind"))
	require.NoError(t, err)
	require.Equal(t, "WIND vel=10.0 dir=270.0", w.Render())

	_, err = component.New(component.Wind{Vel: -1, Dir: 0})
	require.EqualError(t, err, "wind: vel: must be greater than or equal to 0, got -1")
}

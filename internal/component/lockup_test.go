package component_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var (
	jan1 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 = jan1.Add(24 * time.Hour)
)

func TestLockupStationary(t *testing.T) {
	l, err := component.DecodeLockup(testutil.HCLBlock(t, `
		lockup {
		  compute {
		  }
		  compute "stat" {
		    time = "2020-01-01T06:00:00Z"
		  }
		}
	`, "lockup"))
	require.NoError(t, err)
	require.Equal(t, "COMPUTE STATIONARY\nCOMPUTE STATIONARY time=20200101.060000\nSTOP", l.Render())
}

func TestLockupHottimes(t *testing.T) {
	l, err := component.DecodeLockup(testutil.HCLBlock(t, `
		lockup {
		  compute {
		    hottimes = ["2020-01-01T18:00:00Z", "2020-01-01T12:00:00Z", "2020-01-01T12:00:00Z"]
		    times {
		      tbeg = "2020-01-01T00:00:00Z"
		      delt = "1h"
		      tend = "2020-01-02T00:00:00Z"
		    }
		    hotfile {
		      fname = "hot.dat"
		    }
		  }
		}
	`, "lockup"))
	require.NoError(t, err)

	want := testutil.Unindent(`
		COMPUTE NONSTATIONARY tbegc=20200101.000000 deltc=1.0 HR tendc=20200101.120000
		HOTFILE fname='hot_20200101T120000.dat' FREE
		COMPUTE NONSTATIONARY tbegc=20200101.120000 deltc=1.0 HR tendc=20200101.180000
		HOTFILE fname='hot_20200101T180000.dat' FREE
		COMPUTE NONSTATIONARY tbegc=20200101.180000 deltc=1.0 HR tendc=20200102.000000
		STOP
	`)
	if diff := cmp.Diff(want, l.Render()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeNonstat(t *testing.T) {
	hot := component.NewHotfile("hot.dat")

	c, err := component.NewComputeNonstat(subcomponent.NewTimeRangeOpen(jan1, time.Hour, component.ComputeSuffix), &hot, nil)
	require.NoError(t, err)
	require.Equal(t, "COMPUTE NONSTATIONARY tbegc=20200101.000000 deltc=1.0 HR\nHOTFILE fname='hot.dat' FREE", c.Render())

	// A hottime at the end of the run leaves no trailing segment.
	closed := subcomponent.NewTimeRangeClosed(jan1, time.Hour, jan2, component.ComputeSuffix)
	c, err = component.NewComputeNonstat(closed, &hot, []time.Time{jan2})
	require.NoError(t, err)
	require.Equal(t, []string{
		"COMPUTE NONSTATIONARY tbegc=20200101.000000 deltc=1.0 HR tendc=20200102.000000",
		"HOTFILE fname='hot_20200102T000000.dat' FREE",
	}, c.Cmd())
}

func TestComputeNonstatErrors(t *testing.T) {
	hot := component.NewHotfile("hot.dat")
	closed := subcomponent.NewTimeRangeClosed(jan1, time.Hour, jan2, component.ComputeSuffix)

	tests := []struct {
		name     string
		times    subcomponent.TimeRange
		hotfile  *component.Hotfile
		hottimes []time.Time
		want     string
	}{
		{
			name: "no times",
			want: "compute: times: missing required field",
		},
		{
			name:     "hottimes need a closed range",
			times:    closed.Open(),
			hotfile:  &hot,
			hottimes: []time.Time{jan1.Add(time.Hour)},
			want:     "compute: hottimes: requires closed times with tend",
		},
		{
			name:     "hottimes need a hotfile",
			times:    closed,
			hottimes: []time.Time{jan1.Add(time.Hour)},
			want:     "compute: hotfile: missing required field",
		},
		{
			name:     "hottime at the start",
			times:    closed,
			hotfile:  &hot,
			hottimes: []time.Time{jan1},
			want:     "compute: hottimes[0]: must lie in (2020-01-01T00:00:00Z, 2020-01-02T00:00:00Z], got 2020-01-01T00:00:00Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.NewComputeNonstat(tt.times, tt.hotfile, tt.hottimes)
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestLockupErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "no compute",
			src: `
				lockup {
				  hotfile {
				    fname = "hot.dat"
				  }
				}
			`,
			want: "lockup: compute: must have at least 1 element(s)",
		},
		{
			name: "hottime outside the run",
			src: `
				lockup {
				  compute "nonstat" {
				    hottimes = ["2020-01-03T00:00:00Z"]
				    times {
				      tbeg = "2020-01-01T00:00:00Z"
				      delt = "1h"
				      tend = "2020-01-02T00:00:00Z"
				    }
				    hotfile {
				      fname = "hot.dat"
				    }
				  }
				}
			`,
			want: "lockup: compute[0].hottimes[0]: must lie in (2020-01-01T00:00:00Z, 2020-01-02T00:00:00Z], got 2020-01-03T00:00:00Z",
		},
		{
			name: "stationary compute with times",
			src: `
				lockup {
				  compute "stat" {
				    times {
				      tbeg = "2020-01-01T00:00:00Z"
				      delt = "1h"
				    }
				  }
				}
			`,
			want: "lockup: compute[0].times: unknown field",
		},
		{
			name: "hotfile name too long",
			src: `
				lockup {
				  compute {
				  }
				  hotfile {
				    fname = "a-hotfile-name-well-beyond-the-limit.dat"
				  }
				}
			`,
			want: "lockup: hotfile.fname: must have at most 36 character(s)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeLockup(testutil.HCLBlock(t, tt.src, "lockup"))
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestComputesInferSkipsNullTimes(t *testing.T) {
	null := map[string]cty.Value{"times": cty.NullVal(cty.DynamicPseudoType)}
	require.Empty(t, component.Computes.Infer(null))
	require.Equal(t, "nonstat", component.Computes.Infer(map[string]cty.Value{"times": cty.EmptyObjectVal}))
}

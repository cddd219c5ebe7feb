package component_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestPhysics(t *testing.T) {
	p, err := component.DecodePhysics(testutil.HCLBlock(t, `
		physics {
		  off = ["quadrupl", "refrac"]
		  gen "gen3" {
		    agrow = true
		    a     = 0.0015
		  }
		  sswell "rogers" {
		  }
		  breaking "constant" {
		  }
		  friction "jonswap" {
		  }
		  triad {
		    itriad = 1
		  }
		  diffraction {
		  }
		}
	`, "physics"))
	require.NoError(t, err)

	want := testutil.Unindent(`
		GEN3 WESTHUYSEN AGROW a=0.0015
		SSWELL ROGERS cdsv=1.2
		BREAKING CONSTANT alpha=1.0 gamma=0.73
		FRICTION JONSWAP CONSTANT cfjon=0.038
		TRIAD itriad=1
		DIFFRACTION idiffr=1
		OFF QUADRUPL
		OFF REFRAC
	`)
	if diff := cmp.Diff(want, p.Render()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestPhysicsVariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "gen1",
			src: `
				physics {
				  gen "gen1" {
				  }
				}
			`,
			want: "GEN1",
		},
		{
			name: "komen without agrow",
			src: `
				physics {
				  gen "gen3" {
				    source = "komen"
				  }
				}
			`,
			want: "GEN3 KOMEN",
		},
		{
			name: "zieger swell",
			src: `
				physics {
				  sswell "zieger" {
				  }
				}
			`,
			want: "SSWELL ZIEGER b1=0.0025",
		},
		{
			name: "bkd breaking",
			src: `
				physics {
				  breaking "bkd" {
				  }
				}
			`,
			want: "BREAKING BKD alpha=1.0 gamma0=0.54 a1=7.59 a2=-8.06 a3=8.09",
		},
		{
			name: "ripples friction",
			src: `
				physics {
				  friction "ripples" {
				  }
				}
			`,
			want: "FRICTION RIPPLES S=2.65 D=0.0001",
		},
		{
			name: "quadrupl and setup",
			src: `
				physics {
				  quadrupl {
				    iquad = 2
				    lambd = 0.25
				  }
				  setup {
				  }
				}
			`,
			want: "QUADRUPL iquad=2 lambd=0.25\nSETUP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := component.DecodePhysics(testutil.HCLBlock(t, tt.src, "physics"))
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Render())
		})
	}
}

func TestPhysicsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "growth rate without agrow",
			src: `
				physics {
				  gen "gen3" {
				    a = 0.0015
				  }
				}
			`,
			want: "physics: gen.a: not allowed without agrow",
		},
		{
			name: "unknown swell model",
			src: `
				physics {
				  sswell "komen" {
				  }
				}
			`,
			want: `physics: sswell.model_type: unknown model_type "komen", expected one of [ardhuin rogers zieger]`,
		},
		{
			name: "field of another variant",
			src: `
				physics {
				  breaking "constant" {
				    gamma0 = 0.5
				  }
				}
			`,
			want: "physics: breaking.gamma0: unknown field",
		},
		{
			name: "repeated process",
			src: `
				physics {
				  off = ["refrac", "refrac"]
				}
			`,
			want: `physics: off[1]: duplicate process "refrac"`,
		},
		{
			name: "lambda out of range",
			src: `
				physics {
				  quadrupl {
				    lambd = 2
				  }
				}
			`,
			want: "physics: quadrupl.lambd: must be less than or equal to 1, got 2",
		},
		{
			name: "abstract generation mode",
			src: `
				physics {
				  gen "base" {
				  }
				}
			`,
			want: `physics: gen.model_type: abstract component cannot be constructed: "base"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodePhysics(testutil.HCLBlock(t, tt.src, "physics"))
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestNumerics(t *testing.T) {
	n, err := component.DecodeNumerics(testutil.HCLBlock(t, `
		numerics {
		  prop "gse" {
		    waveage = "12h"
		  }
		  numeric {
		    stopc {
		      mode    = "nonstationary"
		      mxitns  = 3
		      limiter = 0.1
		    }
		  }
		}
	`, "numerics"))
	require.NoError(t, err)
	want := testutil.Unindent(`
		PROP GSE waveage=12.0 HR
		NUMERIC STOPC dabs=0.005 drel=0.01 curvat=0.005 npnts=99.5 NONSTATIONARY mxitns=3 limiter=0.1
	`)
	require.Equal(t, want, n.Render())

	n, err = component.DecodeNumerics(testutil.HCLBlock(t, `
		numerics {
		  prop "bsbt" {
		  }
		  numeric {
		  }
		}
	`, "numerics"))
	require.NoError(t, err)
	require.Equal(t, "PROP BSBT\nNUMERIC STOPC dabs=0.005 drel=0.01 curvat=0.005 npnts=99.5 STATIONARY mxitst=50", n.Render())
}

func TestNumericsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "nonstationary limit in stationary mode",
			src: `
				numerics {
				  numeric {
				    stopc {
				      mxitns = 2
				    }
				  }
				}
			`,
			want: "numerics: numeric.stopc.mxitns: not allowed in stationary mode",
		},
		{
			name: "gse without wave age",
			src: `
				numerics {
				  prop "gse" {
				  }
				}
			`,
			want: "numerics: prop.waveage: missing required field",
		},
		{
			name: "npnts above 100",
			src: `
				numerics {
				  numeric {
				    stopc {
				      npnts = 101
				    }
				  }
				}
			`,
			want: "numerics: numeric.stopc.npnts: must be less than or equal to 100, got 101",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := component.DecodeNumerics(testutil.HCLBlock(t, tt.src, "numerics"))
			require.EqualError(t, err, tt.want)
		})
	}
}

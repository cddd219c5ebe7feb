package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

const minimal = `
	startup {
	}
	cgrid "regular" {
	  xlenc = 100
	  ylenc = 100
	  mxc   = 4
	  myc   = 4
	  spectrum {
	    mdc   = 24
	    flow  = 0.05
	    fhigh = 0.5
	  }
	}
	lockup {
	  compute {
	  }
	}
`

func TestLoading_DuplicateTopLevelKeyAcrossFiles(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.hcl": minimal,
		"b.yaml": `
			lockup:
			  compute: {}
		`,
	}

	result := testutil.RunRender(t, files, nil)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `duplicate top-level key "lockup"`)
	require.Empty(t, result.Output)
}

func TestLoading_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.hcl": "startup {\n  mode {\n"}

	result := testutil.RunRender(t, files, nil)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed to parse HCL file")
	require.False(t, errors.Is(result.Err, schema.ErrSchema))
}

func TestLoading_VariableReferencesAreRejected(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.hcl": minimal + `
			wind {
			  vel = var.speed
			  dir = 0
			}
		`,
	}

	result := testutil.RunRender(t, files, nil)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed to decode HCL file")
}

func TestLoading_NestedDirectories(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"core/main.hcl": minimal,
		"forcing/wind.yml": `
			wind:
			  vel: 5
			  dir: 45
		`,
		"notes.txt": "ignored",
	}

	result := testutil.RunRender(t, files, nil)

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "\n\nWIND vel=5.0 dir=45.0\n\n")
	require.Contains(t, result.LogOutput, "Discovered configuration files.")
}

func TestLoading_EverySchemaViolationIsReported(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.hcl": minimal + `
			wind {
			  vel = -1
			  dir = 400
			}
		`,
	}

	result := testutil.RunRender(t, files, nil)

	require.Error(t, result.Err)
	require.True(t, errors.Is(result.Err, schema.ErrSchema))
	require.Contains(t, result.Err.Error(), "config: wind.vel:")
	require.Contains(t, result.Err.Error(), "config: wind.dir:")
}

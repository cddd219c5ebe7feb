package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/stretchr/testify/require"
)

func fieldReasons(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs schema.Errors
	if !errors.As(err, &errs) {
		var single *schema.Error
		require.True(t, errors.As(err, &single), "unexpected error %T: %v", err, err)
		errs = schema.Errors{single}
	}
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Reason
	}
	return out
}

func TestStruct(t *testing.T) {
	scale := -1.0
	v := sample{Count: 0, Scale: &scale, Tags: []string{"a", "a"}}

	got := fieldReasons(t, schema.Struct("sample", v))
	want := map[string]string{
		"name":  "missing required field",
		"count": "must be greater than or equal to 1, got 0",
		"scale": "must be greater than 0, got -1",
		"tags":  "must not contain duplicates",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestStructValid(t *testing.T) {
	require.NoError(t, schema.Struct("sample", sample{Name: "a", Count: 1}))
}

func TestCheck(t *testing.T) {
	err := schema.NewCheck("boundary").
		Require("sname", false).
		Forbid("fname", true, "for adcirc grids").
		Paired("dir1", true, "dir2", false).
		SameLen("len", 2, map[string]int{"hs": 2, "per": 3}).
		Child("shapespec", schema.Errorf("shapespec", "gamma", "must be greater than 0, got 0")).
		Err()

	require.ErrorIs(t, err, schema.ErrSchema)
	got := fieldReasons(t, err)
	want := map[string]string{
		"sname":           "missing required field",
		"fname":           "not allowed for adcirc grids",
		"dir1,dir2":       "must be provided together or not at all",
		"per":             "has 3 element(s), expected 2 to match len",
		"shapespec.gamma": "must be greater than 0, got 0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckEmpty(t *testing.T) {
	require.NoError(t, schema.NewCheck("x").Require("a", true).Err())
}

package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/params"
	"github.com/csgarlock/corvid/internal/search"
)

func TestLoadParamsWithNilSetReturnsDefault(t *testing.T) {
	require.Equal(t, search.Default(), search.LoadParams(nil))
}

func TestLoadParamsOverridesOnlyPresentKeys(t *testing.T) {
	set := params.Set{
		"AspBase":    "25",
		"LMRDivisor": "2.0",
	}
	p := search.LoadParams(set)
	def := search.Default()

	require.Equal(t, int32(25), p.AspBase)
	require.Equal(t, 2.0, p.LMRDivisor)
	require.Equal(t, def.AspPerDepth, p.AspPerDepth)
	require.Equal(t, def.HistPruneMinDepth, p.HistPruneMinDepth)
}

func TestLoadParamsIgnoresMalformedFloat(t *testing.T) {
	set := params.Set{"LMRDivisor": "not-a-float"}
	p := search.LoadParams(set)
	require.Equal(t, search.Default().LMRDivisor, p.LMRDivisor)
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
)

const testVoter = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"

func TestParseCallTypedArgs(t *testing.T) {
	call, err := parseCall([]string{"vote_project", "symbol:proj-1", "address:" + testVoter, "u32:1"})
	require.NoError(t, err)

	assert.Equal(t, "vote_project", call.Function)
	assert.Equal(t, []scval.Val{
		scval.Symbol("proj-1"),
		scval.Address(testVoter),
		scval.U32(1),
	}, call.Args)
}

func TestParseCallInfersBareArgs(t *testing.T) {
	call, err := parseCall([]string{"fund_project", "proj-1", "5000000", testVoter, "true"})
	require.NoError(t, err)

	assert.Equal(t, []scval.Val{
		scval.Symbol("proj-1"),
		scval.U64(5000000),
		scval.Address(testVoter),
		scval.Bool(true),
	}, call.Args)
}

func TestParseCallRejectsNegativeBareArg(t *testing.T) {
	_, err := parseCall([]string{"fund_project", "-5"})
	assert.ErrorIs(t, err, scval.ErrUnsupportedType)
}

func TestParseCallRejectsUnknownType(t *testing.T) {
	_, err := parseCall([]string{"vote_project", "i256:1"})
	assert.Error(t, err)
}

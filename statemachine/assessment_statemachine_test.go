package statemachine

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3montree-dev/cryptocert/dtos"
)

func TestStartAssessment(t *testing.T) {
	next, err := StartAssessment(dtos.AssessmentStateRequested)
	require.NoError(t, err)
	assert.Equal(t, dtos.AssessmentStateInAssessment, next)

	for _, state := range []dtos.AssessmentState{dtos.AssessmentStateInAssessment, dtos.AssessmentStateCompleted} {
		_, err := StartAssessment(state)
		require.Error(t, err)
		assert.True(t, errors.Is(err, dtos.ErrInvalidAssessmentState))
	}
}

func TestCompleteAssessment(t *testing.T) {
	next, err := CompleteAssessment(dtos.AssessmentStateInAssessment, dtos.AssessmentOutcomeAccepted)
	require.NoError(t, err)
	assert.Equal(t, dtos.AssessmentStateCompleted, next)

	_, err = CompleteAssessment(dtos.AssessmentStateRequested, dtos.AssessmentOutcomeAccepted)
	assert.True(t, errors.Is(err, dtos.ErrInvalidAssessmentState))

	_, err = CompleteAssessment(dtos.AssessmentStateCompleted, dtos.AssessmentOutcomeRejected)
	assert.True(t, errors.Is(err, dtos.ErrInvalidAssessmentState), "completed is terminal")

	_, err = CompleteAssessment(dtos.AssessmentStateInAssessment, dtos.AssessmentOutcome("unsure"))
	assert.True(t, errors.Is(err, dtos.ErrInvalidAssessmentState))
}

func TestEnsureMutable(t *testing.T) {
	assert.NoError(t, EnsureMutable(dtos.AssessmentStateRequested))
	assert.NoError(t, EnsureMutable(dtos.AssessmentStateInAssessment))
	assert.True(t, errors.Is(EnsureMutable(dtos.AssessmentStateCompleted), dtos.ErrInvalidAssessmentState))
}

// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package statemachine holds the pure transition rules of the
// assessment lifecycle: requested -> inAssessment -> completed.
// Completed is terminal.
package statemachine

import (
	"github.com/pkg/errors"

	"github.com/l3montree-dev/cryptocert/dtos"
)

// StartAssessment moves a requested assessment into analysis.
func StartAssessment(current dtos.AssessmentState) (dtos.AssessmentState, error) {
	if current != dtos.AssessmentStateRequested {
		return current, errors.Wrapf(dtos.ErrInvalidAssessmentState, "cannot start assessment in state %q", current)
	}
	return dtos.AssessmentStateInAssessment, nil
}

// CompleteAssessment finishes the analysis with an outcome. Only an
// assessment that is actually being assessed can complete.
func CompleteAssessment(current dtos.AssessmentState, outcome dtos.AssessmentOutcome) (dtos.AssessmentState, error) {
	if current != dtos.AssessmentStateInAssessment {
		return current, errors.Wrapf(dtos.ErrInvalidAssessmentState, "cannot complete assessment in state %q", current)
	}
	if outcome != dtos.AssessmentOutcomeAccepted && outcome != dtos.AssessmentOutcomeRejected {
		return current, errors.Wrapf(dtos.ErrInvalidAssessmentState, "invalid outcome %q", outcome)
	}
	return dtos.AssessmentStateCompleted, nil
}

// EnsureMutable guards every write against a terminal assessment.
func EnsureMutable(current dtos.AssessmentState) error {
	if current == dtos.AssessmentStateCompleted {
		return errors.Wrap(dtos.ErrInvalidAssessmentState, "assessment is completed and immutable")
	}
	return nil
}

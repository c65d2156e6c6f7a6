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

package services

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/l3montree-dev/cryptocert/audit"
	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/database/models"
	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/monitoring"
	"github.com/l3montree-dev/cryptocert/shared"
	"github.com/l3montree-dev/cryptocert/statemachine"
	"github.com/l3montree-dev/cryptocert/utils"
)

type AssessmentService struct {
	catalog              *catalog.Catalog
	assessmentRepository shared.AssessmentRepository
}

func NewAssessmentService(catalog *catalog.Catalog, assessmentRepository shared.AssessmentRepository) *AssessmentService {
	return &AssessmentService{
		catalog:              catalog,
		assessmentRepository: assessmentRepository,
	}
}

// RequestAssessment persists the submission, runs the full analysis
// pipeline and completes the assessment in a single call. The findings
// snapshot is frozen at request time; the analyzers only ever read it.
func (s *AssessmentService) RequestAssessment(request dtos.AssessmentRequest) (dtos.AssessmentDTO, error) {
	start := time.Now()

	assessment := models.CertificationAssessment{
		ProjectRef:  request.ProjectRef,
		State:       dtos.AssessmentStateRequested,
		Findings:    request.Findings,
		TestResults: request.TestResults,
	}
	if err := s.assessmentRepository.Create(nil, &assessment); err != nil {
		return dtos.AssessmentDTO{}, err
	}

	next, err := statemachine.StartAssessment(assessment.State)
	if err != nil {
		return dtos.AssessmentDTO{}, err
	}
	assessment.State = next
	if err := s.assessmentRepository.Save(nil, &assessment); err != nil {
		return dtos.AssessmentDTO{}, err
	}

	var vulnReport audit.VulnerabilityReport
	var quantumReport audit.QuantumReport
	var complianceResults []dtos.ComplianceResult

	// the three analyzers are independent of each other and only read
	// the snapshot, so they run concurrently and join here. The
	// compliance analyzer derives the vulnerability evidence it needs
	// itself instead of waiting for its sibling.
	var group errgroup.Group
	group.Go(func() error {
		vulnReport = audit.AnalyzeVulnerabilities(s.catalog, assessment.Findings)
		return nil
	})
	group.Go(func() error {
		quantumReport = audit.EvaluateQuantumResistance(s.catalog, assessment.Findings)
		return nil
	})
	group.Go(func() error {
		evidence := audit.Evidence{
			Findings:        assessment.Findings,
			Vulnerabilities: audit.AnalyzeVulnerabilities(s.catalog, assessment.Findings).Vulnerabilities,
			TestResults:     assessment.TestResults,
		}
		complianceResults = audit.ScoreCompliance(s.catalog, evidence)
		return nil
	})
	if err := group.Wait(); err != nil {
		return dtos.AssessmentDTO{}, err
	}

	performanceScore := audit.PerformanceScore(assessment.TestResults)
	overall := audit.AggregateScore(vulnReport.SecurityScore, quantumReport.Score, performanceScore, complianceResults)

	outcome := dtos.AssessmentOutcomeRejected
	if audit.RequirementsMet(overall, vulnReport.Vulnerabilities) {
		outcome = dtos.AssessmentOutcomeAccepted
	}
	next, err = statemachine.CompleteAssessment(assessment.State, outcome)
	if err != nil {
		return dtos.AssessmentDTO{}, err
	}

	assessment.State = next
	assessment.Outcome = outcome
	assessment.Vulnerabilities = vulnReport.Vulnerabilities
	assessment.UnknownAlgorithms = vulnReport.UnknownAlgorithms
	assessment.ComplianceResults = complianceResults
	assessment.SecurityScore = vulnReport.SecurityScore
	assessment.QuantumScore = quantumReport.Score
	assessment.QuantumResistant = quantumReport.Resistant
	assessment.PerformanceScore = performanceScore
	assessment.OverallScore = overall
	assessment.RequirementsMet = outcome == dtos.AssessmentOutcomeAccepted
	assessment.BadgeURL = audit.BadgeURL(overall)
	assessment.CompletedAt = utils.Ptr(time.Now())

	if err := s.assessmentRepository.Save(nil, &assessment); err != nil {
		return dtos.AssessmentDTO{}, err
	}

	monitoring.AssessmentsCompleted.WithLabelValues(string(outcome)).Inc()
	monitoring.AssessmentDuration.Observe(time.Since(start).Seconds())
	slog.Info("assessment completed",
		"assessmentId", assessment.ID,
		"projectRef", assessment.ProjectRef,
		"outcome", outcome,
		"overallScore", overall,
		"vulnerabilities", len(vulnReport.Vulnerabilities),
	)

	return assessment.DTO(), nil
}

func (s *AssessmentService) GetAssessment(id uuid.UUID) (dtos.AssessmentDTO, error) {
	assessment, err := s.assessmentRepository.Read(id)
	if err != nil {
		return dtos.AssessmentDTO{}, err
	}
	return assessment.DTO(), nil
}

// ListAssessments returns all assessments, optionally filtered by
// project ref.
func (s *AssessmentService) ListAssessments(projectRef string) ([]dtos.AssessmentDTO, error) {
	var assessments []models.CertificationAssessment
	var err error
	if projectRef == "" {
		assessments, err = s.assessmentRepository.All()
	} else {
		assessments, err = s.assessmentRepository.ListByProjectRef(projectRef)
	}
	if err != nil {
		return nil, err
	}
	return utils.Map(assessments, models.CertificationAssessment.DTO), nil
}

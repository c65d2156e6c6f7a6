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

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/l3montree-dev/cryptocert/dtos"
)

func NewSubmitCommand() *cobra.Command {
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit crypto findings for assessment",
		Long: `Reads a findings report produced by a crypto extractor and submits it
for assessment. The report file has to contain the findings array and,
optionally, external test results.`,
		Example: `cryptocert-cli submit --projectRef my-service --file findings.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRef, err := cmd.Flags().GetString("projectRef")
			if err != nil {
				return err
			}
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}

			request, err := readAssessmentRequest(projectRef, file)
			if err != nil {
				return err
			}

			assessment, err := postAssessment(request)
			if err != nil {
				return err
			}

			fmt.Printf("assessment:  %s\n", assessment.ID)
			fmt.Printf("outcome:     %s\n", assessment.Outcome)
			fmt.Printf("overall:     %.1f (security %.1f, quantum %.1f, performance %.1f)\n",
				assessment.OverallScore, assessment.SecurityScore, assessment.QuantumScore, assessment.PerformanceScore)
			for _, result := range assessment.ComplianceResults {
				fmt.Printf("compliance:  %s %d/%d (%.1f)\n", result.StandardID, result.PassedChecks, result.ApplicableChecks, result.Score)
			}
			for _, vuln := range assessment.Vulnerabilities {
				fmt.Printf("finding:     [%s] %s: %s\n", vuln.Severity, vuln.Category, vuln.Description)
			}
			if assessment.BadgeURL != "" {
				fmt.Printf("badge:       %s\n", assessment.BadgeURL)
			}

			if assessment.Outcome != dtos.AssessmentOutcomeAccepted {
				return errors.New("assessment was rejected")
			}
			return nil
		},
	}

	submitCmd.Flags().String("projectRef", "", "caller supplied project reference")
	submitCmd.Flags().String("file", "", "path to the findings report (json)")
	submitCmd.MarkFlagRequired("projectRef") // nolint:errcheck
	submitCmd.MarkFlagRequired("file")       // nolint:errcheck

	return submitCmd
}

// readAssessmentRequest accepts both a full assessment request and a
// bare findings array, since extractors commonly emit the latter.
func readAssessmentRequest(projectRef, file string) (dtos.AssessmentRequest, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return dtos.AssessmentRequest{}, errors.Wrap(err, "could not read findings report")
	}

	var request dtos.AssessmentRequest
	if err := json.Unmarshal(content, &request); err != nil {
		var findings []dtos.Finding
		if err := json.Unmarshal(content, &findings); err != nil {
			return dtos.AssessmentRequest{}, errors.Wrap(err, "could not parse findings report")
		}
		request.Findings = findings
	}

	request.ProjectRef = projectRef
	return request, nil
}

func postAssessment(request dtos.AssessmentRequest) (dtos.AssessmentDTO, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return dtos.AssessmentDTO{}, errors.Wrap(err, "could not encode assessment request")
	}

	client := http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(viper.GetString("apiUrl")+"/api/v1/assessments/", "application/json", bytes.NewReader(body))
	if err != nil {
		return dtos.AssessmentDTO{}, errors.Wrap(err, "could not reach the cryptocert api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return dtos.AssessmentDTO{}, fmt.Errorf("assessment request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var assessment dtos.AssessmentDTO
	if err := json.NewDecoder(resp.Body).Decode(&assessment); err != nil {
		return dtos.AssessmentDTO{}, errors.Wrap(err, "could not decode assessment response")
	}
	return assessment, nil
}

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

package audit

import (
	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/utils"
)

// Evidence bundles everything a compliance check may look at.
type Evidence struct {
	Findings        []dtos.Finding
	Vulnerabilities []dtos.Vulnerability
	TestResults     dtos.TestResults
}

// ScoreCompliance evaluates every registered standard against the
// evidence. A standard with zero applicable checks produces no result
// at all - silence instead of an unearned 100. Results come back in
// catalog order, which is sorted by standard id.
func ScoreCompliance(cat *catalog.Catalog, evidence Evidence) []dtos.ComplianceResult {
	results := make([]dtos.ComplianceResult, 0, len(cat.Standards()))
	for _, standard := range cat.Standards() {
		applicable, passed := 0, 0
		for _, check := range standard.Checks {
			if !checkApplies(check, evidence) {
				continue
			}
			applicable++
			if checkPasses(check, evidence) {
				passed++
			}
		}
		if applicable == 0 {
			continue
		}
		results = append(results, dtos.ComplianceResult{
			StandardID:       standard.ID,
			ApplicableChecks: applicable,
			PassedChecks:     passed,
			Score:            100 * float64(passed) / float64(applicable),
		})
	}
	return results
}

func checkApplies(check catalog.Check, evidence Evidence) bool {
	if check.EvidenceRole != "" && utils.Any(evidence.Findings, func(f dtos.Finding) bool {
		return f.Role == check.EvidenceRole
	}) {
		return true
	}
	if len(check.EvidenceCategories) > 0 && utils.Any(evidence.Vulnerabilities, func(v dtos.Vulnerability) bool {
		return utils.Contains(check.EvidenceCategories, v.Category)
	}) {
		return true
	}
	if check.RequiredTest != "" {
		_, present := evidence.TestResults[check.RequiredTest]
		return present
	}
	return false
}

func checkPasses(check catalog.Check, evidence Evidence) bool {
	for _, vuln := range evidence.Vulnerabilities {
		if !utils.Contains(check.FailOn, vuln.Category) {
			continue
		}
		// a role-scoped check only fails on vulnerabilities whose
		// underlying finding carries that role
		if check.EvidenceRole != "" {
			if vuln.FindingRef < 0 || vuln.FindingRef >= len(evidence.Findings) {
				continue
			}
			if evidence.Findings[vuln.FindingRef].Role != check.EvidenceRole {
				continue
			}
		}
		return false
	}
	if check.RequiredTest != "" {
		passed, ok := evidence.TestResults.Passed(check.RequiredTest)
		if !ok || !passed {
			return false
		}
	}
	return true
}

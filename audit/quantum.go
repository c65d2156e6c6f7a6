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
)

type QuantumReport struct {
	Score float64
	// Resistant is true iff no finding is classified as vulnerable.
	// Unclassified findings lower the score but do not revoke the flag.
	Resistant         bool
	ResistantCount    int
	VulnerableCount   int
	UnclassifiedCount int
}

// EvaluateQuantumResistance classifies every finding against the
// catalog. An empty finding set scores 100: nothing to break means
// nothing is quantum-vulnerable.
func EvaluateQuantumResistance(cat *catalog.Catalog, findings []dtos.Finding) QuantumReport {
	report := QuantumReport{}
	for _, finding := range findings {
		switch cat.ClassifyQuantum(finding) {
		case catalog.QuantumResistant:
			report.ResistantCount++
		case catalog.QuantumVulnerable:
			report.VulnerableCount++
		default:
			report.UnclassifiedCount++
		}
	}

	report.Resistant = report.VulnerableCount == 0

	total := len(findings)
	if total == 0 {
		report.Score = 100
		return report
	}
	report.Score = 100 * (float64(report.ResistantCount) + 0.5*float64(report.UnclassifiedCount)) / float64(total)
	return report
}

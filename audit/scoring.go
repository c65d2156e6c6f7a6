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
	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/utils"
)

// Aggregation weights. They must sum to 1.0 so that four perfect
// dimension scores yield exactly 100.
const (
	WeightSecurity    = 0.35
	WeightQuantum     = 0.20
	WeightCompliance  = 0.25
	WeightPerformance = 0.20
)

// MinPassingScore is the overall score below which no certificate is
// issued, regardless of dimension scores.
const MinPassingScore = 60.0

// Certificate level thresholds on the overall score.
const (
	ThresholdBronze   = 60.0
	ThresholdSilver   = 70.0
	ThresholdGold     = 80.0
	ThresholdPlatinum = 90.0
)

// AggregateScore folds the four dimension scores into the overall
// score. The compliance dimension is the mean over the produced
// standard results; without any applicable standard it contributes a
// neutral 100, mirroring the empty-input semantics of the other
// dimensions.
func AggregateScore(security, quantum, performance float64, compliance []dtos.ComplianceResult) float64 {
	complianceScore := 100.0
	if len(compliance) > 0 {
		sum := utils.Reduce(compliance, func(sum float64, result dtos.ComplianceResult) float64 {
			return sum + result.Score
		}, 0.0)
		complianceScore = sum / float64(len(compliance))
	}
	return utils.ClampScore(WeightSecurity*security +
		WeightQuantum*quantum +
		WeightCompliance*complianceScore +
		WeightPerformance*performance)
}

// RequirementsMet decides whether the assessment is accepted: the
// overall score must reach the passing bar and no critical
// vulnerability may remain. A critical is a hard gate - no score can
// buy it back.
func RequirementsMet(overall float64, vulnerabilities []dtos.Vulnerability) bool {
	if overall < MinPassingScore {
		return false
	}
	return !utils.Any(vulnerabilities, func(v dtos.Vulnerability) bool {
		return v.Severity == dtos.SeverityCritical
	})
}

// CertificateLevelForScore maps the overall score onto a certificate
// level. Platinum additionally requires the quantum-resistant flag; a
// score above the platinum bar without it caps out at gold. The second
// return value is false below the bronze bar.
func CertificateLevelForScore(overall float64, quantumResistant bool) (dtos.CertificateLevel, bool) {
	switch {
	case overall >= ThresholdPlatinum && quantumResistant:
		return dtos.CertificateLevelPlatinum, true
	case overall >= ThresholdGold:
		return dtos.CertificateLevelGold, true
	case overall >= ThresholdSilver:
		return dtos.CertificateLevelSilver, true
	case overall >= ThresholdBronze:
		return dtos.CertificateLevelBronze, true
	default:
		return "", false
	}
}

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

// Package audit implements the analyzers of the certification engine.
// All of them are pure functions over an immutable findings snapshot,
// so they may run concurrently and join deterministically.
package audit

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/utils"
)

type VulnerabilityReport struct {
	Vulnerabilities []dtos.Vulnerability
	// Algorithms the catalog does not know. Informational only - novel
	// or proprietary primitives under review must not be penalized.
	UnknownAlgorithms []string
	SecurityScore     float64
}

func newVulnerability(findingRef int, category dtos.VulnCategory, severity dtos.Severity, description, recommendation string) dtos.Vulnerability {
	return dtos.Vulnerability{
		ID:             utils.HashString(fmt.Sprintf("%s/%d/%s", category, findingRef, description)),
		FindingRef:     findingRef,
		Category:       category,
		Severity:       severity,
		Description:    description,
		Recommendation: recommendation,
	}
}

// AnalyzeVulnerabilities matches every finding against the catalog and
// runs the cross-finding heuristics. The security score starts at 100
// and is reduced by the catalog severity weights, floored at 0.
func AnalyzeVulnerabilities(cat *catalog.Catalog, findings []dtos.Finding) VulnerabilityReport {
	report := VulnerabilityReport{
		Vulnerabilities: make([]dtos.Vulnerability, 0),
	}

	for i, finding := range findings {
		algorithm, known := cat.Lookup(finding.AlgorithmID)
		if !known {
			slog.Debug("unknown algorithm in finding set", "algorithmId", finding.AlgorithmID, "file", finding.Location.File)
			if !utils.Contains(report.UnknownAlgorithms, finding.AlgorithmID) {
				report.UnknownAlgorithms = append(report.UnknownAlgorithms, finding.AlgorithmID)
			}
			continue
		}

		if algorithm.Status == catalog.StatusDeprecated {
			report.Vulnerabilities = append(report.Vulnerabilities, newVulnerability(
				i,
				dtos.VulnCategoryDeprecatedAlgorithm,
				algorithm.Severity,
				fmt.Sprintf("use of deprecated algorithm %s for %s", finding.AlgorithmID, finding.Role),
				algorithm.Recommendation,
			))
			continue
		}

		if algorithm.MinKeySize > 0 {
			if size, ok := catalog.KeySizeOf(finding); ok && size < algorithm.MinKeySize {
				report.Vulnerabilities = append(report.Vulnerabilities, newVulnerability(
					i,
					dtos.VulnCategoryWeakKeySize,
					dtos.SeverityHigh,
					fmt.Sprintf("%s key size %d is below the required minimum of %d bits", finding.AlgorithmID, size, algorithm.MinKeySize),
					fmt.Sprintf("Use at least %d bit keys for %s.", algorithm.MinKeySize, algorithm.ID),
				))
			}
		}

		if keyMaterial := finding.StringParam(dtos.ParamKeyMaterial); keyMaterial != "" {
			report.Vulnerabilities = append(report.Vulnerabilities, newVulnerability(
				i,
				dtos.VulnCategoryHardcodedKey,
				dtos.SeverityCritical,
				fmt.Sprintf("key material embedded in source at %s:%d", finding.Location.File, finding.Location.Line),
				"Never hardcode key material. Load keys from the environment or a key management system.",
			))
		}
	}

	report.Vulnerabilities = append(report.Vulnerabilities, detectNonceReuse(findings)...)

	deduction := utils.Reduce(report.Vulnerabilities, func(sum int, vuln dtos.Vulnerability) int {
		return sum + cat.SeverityWeight(vuln.Severity)
	}, 0)
	report.SecurityScore = utils.ClampScore(100 - float64(deduction))

	return report
}

// detectNonceReuse looks for the same IV or nonce literal appearing in
// more than one encryption finding. This has to run over the whole
// finding set - a single finding cannot reuse anything.
func detectNonceReuse(findings []dtos.Finding) []dtos.Vulnerability {
	literals := make(map[string][]int)
	for i, finding := range findings {
		if finding.Role != dtos.FindingRoleEncryption {
			continue
		}
		literal := finding.StringParam(dtos.ParamIV)
		if literal == "" {
			literal = finding.StringParam(dtos.ParamNonce)
		}
		if literal == "" {
			continue
		}
		literals[literal] = append(literals[literal], i)
	}

	// map iteration order is random; sort for a deterministic report
	reused := make([]string, 0, len(literals))
	for literal, refs := range literals {
		if len(refs) > 1 {
			reused = append(reused, literal)
		}
	}
	sort.Strings(reused)

	return utils.Map(reused, func(literal string) dtos.Vulnerability {
		refs := literals[literal]
		return newVulnerability(
			refs[0],
			dtos.VulnCategoryNonceReuse,
			dtos.SeverityHigh,
			fmt.Sprintf("the same IV/nonce literal is used at %d encryption call sites", len(refs)),
			"Generate a fresh random IV/nonce for every encryption operation.",
		)
	})
}

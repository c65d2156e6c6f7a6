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

// Package catalog holds the static reference data of the audit engine:
// the classification of cryptographic primitives and the registered
// compliance standards. The shipped catalog is embedded; a malformed
// catalog is a startup failure, never a runtime one.
package catalog

import (
	_ "embed"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/l3montree-dev/cryptocert/dtos"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrConfiguration marks a malformed catalog or standard definition.
// Callers fail fast on it before accepting any request.
var ErrConfiguration = errors.New("invalid catalog configuration")

type AlgorithmStatus string

const (
	StatusApproved   AlgorithmStatus = "approved"
	StatusDeprecated AlgorithmStatus = "deprecated"
)

type QuantumClass string

const (
	QuantumVulnerable   QuantumClass = "vulnerable"
	QuantumResistant    QuantumClass = "resistant"
	QuantumUnclassified QuantumClass = "unclassified"
)

type Algorithm struct {
	ID      string          `yaml:"id"`
	Aliases []string        `yaml:"aliases"`
	Status  AlgorithmStatus `yaml:"status"`
	// Severity of using this algorithm at all. Only set for deprecated entries.
	Severity   dtos.Severity `yaml:"severity"`
	MinKeySize int           `yaml:"minKeySize"`
	Quantum    QuantumClass  `yaml:"quantum"`
	// Below this key size a quantum-resistant symmetric primitive is
	// only counted as unclassified (Grover halves the effective strength).
	QuantumMinKeySize int    `yaml:"quantumMinKeySize"`
	Recommendation    string `yaml:"recommendation"`
}

type Check struct {
	ID                 string              `yaml:"id"`
	Description        string              `yaml:"description"`
	EvidenceRole       dtos.FindingRole    `yaml:"evidenceRole"`
	EvidenceCategories []dtos.VulnCategory `yaml:"evidenceCategories"`
	RequiredTest       string              `yaml:"requiredTest"`
	FailOn             []dtos.VulnCategory `yaml:"failOn"`
}

type Standard struct {
	ID     string  `yaml:"id"`
	Checks []Check `yaml:"checks"`
}

type catalogFile struct {
	SeverityWeights map[dtos.Severity]int `yaml:"severityWeights"`
	Algorithms      []Algorithm           `yaml:"algorithms"`
	Standards       []Standard            `yaml:"standards"`
}

type Catalog struct {
	severityWeights map[dtos.Severity]int
	algorithms      map[string]Algorithm
	standards       []Standard
}

// Load parses the embedded default catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(content []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrap(ErrConfiguration, err.Error())
	}

	c := &Catalog{
		severityWeights: file.SeverityWeights,
		algorithms:      make(map[string]Algorithm, len(file.Algorithms)),
		standards:       file.Standards,
	}

	for _, severity := range []dtos.Severity{dtos.SeverityInfo, dtos.SeverityLow, dtos.SeverityMedium, dtos.SeverityHigh, dtos.SeverityCritical} {
		if _, ok := file.SeverityWeights[severity]; !ok {
			return nil, errors.Wrapf(ErrConfiguration, "missing severity weight for %q", severity)
		}
	}

	for _, algorithm := range file.Algorithms {
		if algorithm.ID == "" {
			return nil, errors.Wrap(ErrConfiguration, "algorithm without id")
		}
		if algorithm.Status != StatusApproved && algorithm.Status != StatusDeprecated {
			return nil, errors.Wrapf(ErrConfiguration, "algorithm %q has invalid status %q", algorithm.ID, algorithm.Status)
		}
		if algorithm.Status == StatusDeprecated && algorithm.Severity == "" {
			return nil, errors.Wrapf(ErrConfiguration, "deprecated algorithm %q without severity", algorithm.ID)
		}
		if algorithm.Quantum == "" {
			algorithm.Quantum = QuantumUnclassified
		}
		for _, key := range append([]string{algorithm.ID}, algorithm.Aliases...) {
			normalized := normalizeAlgorithmID(key)
			if _, exists := c.algorithms[normalized]; exists {
				return nil, errors.Wrapf(ErrConfiguration, "duplicate algorithm id or alias %q", key)
			}
			c.algorithms[normalized] = algorithm
		}
	}

	seenStandards := make(map[string]struct{}, len(file.Standards))
	for _, standard := range file.Standards {
		if standard.ID == "" {
			return nil, errors.Wrap(ErrConfiguration, "standard without id")
		}
		if _, exists := seenStandards[standard.ID]; exists {
			return nil, errors.Wrapf(ErrConfiguration, "duplicate standard id %q", standard.ID)
		}
		seenStandards[standard.ID] = struct{}{}
		if len(standard.Checks) == 0 {
			return nil, errors.Wrapf(ErrConfiguration, "standard %q without checks", standard.ID)
		}
		for _, check := range standard.Checks {
			if check.ID == "" {
				return nil, errors.Wrapf(ErrConfiguration, "standard %q has a check without id", standard.ID)
			}
			if check.EvidenceRole == "" && len(check.EvidenceCategories) == 0 && check.RequiredTest == "" {
				return nil, errors.Wrapf(ErrConfiguration, "check %q of standard %q has no evidence selector", check.ID, standard.ID)
			}
		}
	}

	// deterministic processing order regardless of file order
	sort.Slice(c.standards, func(i, j int) bool {
		return c.standards[i].ID < c.standards[j].ID
	})

	return c, nil
}

func normalizeAlgorithmID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Lookup resolves an algorithm id or alias, case-insensitively.
func (c *Catalog) Lookup(algorithmID string) (Algorithm, bool) {
	algorithm, ok := c.algorithms[normalizeAlgorithmID(algorithmID)]
	return algorithm, ok
}

func (c *Catalog) SeverityWeight(severity dtos.Severity) int {
	return c.severityWeights[severity]
}

// Standards returns the registered standards sorted by id.
func (c *Catalog) Standards() []Standard {
	return c.standards
}

var keySizeInIDPattern = regexp.MustCompile(`\d{2,4}`)

// KeySizeOf determines the effective key size of a finding: the
// extractor-reported parameter wins, otherwise a size embedded in the
// algorithm id itself (e.g. "aes-128-gcm") is used.
func KeySizeOf(finding dtos.Finding) (int, bool) {
	if size, ok := finding.KeySize(); ok {
		return size, true
	}
	match := keySizeInIDPattern.FindString(finding.AlgorithmID)
	if match == "" {
		return 0, false
	}
	size, err := strconv.Atoi(match)
	if err != nil || size < 64 {
		return 0, false
	}
	return size, true
}

// ClassifyQuantum maps a finding onto its quantum posture. Unknown
// algorithms are unclassified - never an error.
func (c *Catalog) ClassifyQuantum(finding dtos.Finding) QuantumClass {
	algorithm, ok := c.Lookup(finding.AlgorithmID)
	if !ok {
		return QuantumUnclassified
	}
	if algorithm.Quantum == QuantumResistant && algorithm.QuantumMinKeySize > 0 {
		size, known := KeySizeOf(finding)
		if known && size < algorithm.QuantumMinKeySize {
			return QuantumUnclassified
		}
	}
	return algorithm.Quantum
}

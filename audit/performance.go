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

// PerformanceScoreKey is the key under which the test harness reports
// its benchmark result in the submitted test results.
const PerformanceScoreKey = "performanceScore"

// PerformanceScore reads the harness benchmark out of the test
// results. Absence is not a penalty: a submission without benchmark
// data scores 100.
func PerformanceScore(results dtos.TestResults) float64 {
	if score, ok := results.Float(PerformanceScoreKey); ok {
		return utils.ClampScore(score)
	}
	return 100
}

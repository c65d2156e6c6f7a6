package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3montree-dev/cryptocert/dtos"
)

func TestScoreCompliance(t *testing.T) {
	c := mustCatalog(t)

	t.Run("no evidence means no results at all", func(t *testing.T) {
		results := ScoreCompliance(c, Evidence{})
		assert.Empty(t, results)
	})

	t.Run("clean encryption evidence passes the applicable checks", func(t *testing.T) {
		findings := []dtos.Finding{encryptionFinding("aes-256-gcm", nil)}
		results := ScoreCompliance(c, Evidence{Findings: findings})

		require.Len(t, results, 3)
		assert.Equal(t, "ISO-27001", results[0].StandardID)
		assert.Equal(t, "NIST-SP800-57", results[1].StandardID)
		assert.Equal(t, "OWASP-Top10", results[2].StandardID)

		// key-lifecycle needs a harness result, so only two ISO checks apply
		assert.Equal(t, 2, results[0].ApplicableChecks)
		assert.Equal(t, 2, results[0].PassedChecks)
		assert.InDelta(t, 100.0, results[0].Score, 0.001)
	})

	t.Run("a deprecated cipher fails the cipher checks but not the rest", func(t *testing.T) {
		findings := []dtos.Finding{encryptionFinding("des", nil)}
		report := AnalyzeVulnerabilities(c, findings)
		results := ScoreCompliance(c, Evidence{Findings: findings, Vulnerabilities: report.Vulnerabilities})

		require.Len(t, results, 3)
		iso := results[0]
		assert.Equal(t, 2, iso.ApplicableChecks)
		assert.Equal(t, 1, iso.PassedChecks, "approved-encryption fails, key-protection passes")
		assert.InDelta(t, 50.0, iso.Score, 0.001)
	})

	t.Run("role scoping keeps a hash vulnerability away from encryption checks", func(t *testing.T) {
		findings := []dtos.Finding{
			encryptionFinding("aes-256-gcm", nil),
			{AlgorithmID: "md5", Role: dtos.FindingRoleHash},
		}
		report := AnalyzeVulnerabilities(c, findings)
		results := ScoreCompliance(c, Evidence{Findings: findings, Vulnerabilities: report.Vulnerabilities})

		require.Len(t, results, 3)
		iso := results[0]
		assert.Equal(t, iso.ApplicableChecks, iso.PassedChecks, "ISO-27001 has no hash check")

		nist := results[1]
		assert.Equal(t, 2, nist.ApplicableChecks, "key sizes and hashes apply")
		assert.Equal(t, 1, nist.PassedChecks, "approved-hashes fails on md5")
	})

	t.Run("required harness tests are applicable only when present", func(t *testing.T) {
		evidence := Evidence{
			TestResults: dtos.TestResults{"key_rotation": true, "input_validation": false},
		}
		results := ScoreCompliance(c, evidence)

		require.Len(t, results, 2)
		assert.Equal(t, "ISO-27001", results[0].StandardID)
		assert.Equal(t, 1, results[0].ApplicableChecks)
		assert.Equal(t, 1, results[0].PassedChecks)

		assert.Equal(t, "OWASP-Top10", results[1].StandardID)
		assert.Equal(t, 1, results[1].ApplicableChecks)
		assert.Equal(t, 0, results[1].PassedChecks, "a failed harness test fails the check")
	})

	t.Run("hardcoded key evidence activates secrets management", func(t *testing.T) {
		findings := []dtos.Finding{
			encryptionFinding("aes-256-gcm", map[string]any{dtos.ParamKeyMaterial: "deadbeef"}),
		}
		report := AnalyzeVulnerabilities(c, findings)
		results := ScoreCompliance(c, Evidence{Findings: findings, Vulnerabilities: report.Vulnerabilities})

		owasp, found := findStandard(results, "OWASP-Top10")
		require.True(t, found)
		assert.Equal(t, 2, owasp.ApplicableChecks, "cryptographic-failures and secrets-management")
		assert.Equal(t, 1, owasp.PassedChecks, "secrets-management fails")
	})
}

func findStandard(results []dtos.ComplianceResult, id string) (dtos.ComplianceResult, bool) {
	for _, r := range results {
		if r.StandardID == id {
			return r, true
		}
	}
	return dtos.ComplianceResult{}, false
}

package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/dtos"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return c
}

func encryptionFinding(algorithmID string, params map[string]any) dtos.Finding {
	return dtos.Finding{
		AlgorithmID: algorithmID,
		Role:        dtos.FindingRoleEncryption,
		Parameters:  params,
		Location:    dtos.CodeLocation{File: "crypto/cipher.go", Line: 42},
		Confidence:  0.95,
	}
}

func TestAnalyzeVulnerabilities(t *testing.T) {
	c := mustCatalog(t)

	t.Run("clean submission yields no vulnerabilities and a perfect score", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("aes-256-gcm", nil),
			{AlgorithmID: "sha-256", Role: dtos.FindingRoleHash},
			{AlgorithmID: "argon2id", Role: dtos.FindingRoleKDF},
		})
		assert.Empty(t, report.Vulnerabilities)
		assert.Empty(t, report.UnknownAlgorithms)
		assert.InDelta(t, 100.0, report.SecurityScore, 0.001)
	})

	t.Run("deprecated algorithms deduct their catalog weight", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("des", nil),                 // critical, 50
			{AlgorithmID: "sha1", Role: dtos.FindingRoleHash}, // high, 30
		})
		require.Len(t, report.Vulnerabilities, 2)
		assert.Equal(t, dtos.VulnCategoryDeprecatedAlgorithm, report.Vulnerabilities[0].Category)
		assert.Equal(t, dtos.SeverityCritical, report.Vulnerabilities[0].Severity)
		assert.Equal(t, 0, report.Vulnerabilities[0].FindingRef)
		assert.NotEmpty(t, report.Vulnerabilities[0].Recommendation)
		assert.Equal(t, dtos.SeverityHigh, report.Vulnerabilities[1].Severity)
		assert.InDelta(t, 20.0, report.SecurityScore, 0.001)
	})

	t.Run("score is floored at zero", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("des", nil),
			encryptionFinding("rc4", nil),
			{AlgorithmID: "md5", Role: dtos.FindingRoleHash},
		})
		assert.InDelta(t, 0.0, report.SecurityScore, 0.001)
	})

	t.Run("key size below the catalog minimum", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			{
				AlgorithmID: "rsa",
				Role:        dtos.FindingRoleSignature,
				Parameters:  map[string]any{dtos.ParamKeySize: 1024},
			},
		})
		require.Len(t, report.Vulnerabilities, 1)
		assert.Equal(t, dtos.VulnCategoryWeakKeySize, report.Vulnerabilities[0].Category)
		assert.Equal(t, dtos.SeverityHigh, report.Vulnerabilities[0].Severity)
		assert.InDelta(t, 70.0, report.SecurityScore, 0.001)
	})

	t.Run("key size embedded in the algorithm id", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("aes-128-gcm", nil),
		})
		assert.Empty(t, report.Vulnerabilities, "128 bit AES meets the classical minimum")
	})

	t.Run("hardcoded key material is critical", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("aes-256-gcm", map[string]any{dtos.ParamKeyMaterial: "deadbeef"}),
		})
		require.Len(t, report.Vulnerabilities, 1)
		assert.Equal(t, dtos.VulnCategoryHardcodedKey, report.Vulnerabilities[0].Category)
		assert.Equal(t, dtos.SeverityCritical, report.Vulnerabilities[0].Severity)
	})

	t.Run("unknown algorithms are reported but never penalized", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			{AlgorithmID: "proprietary-cipher-9000", Role: dtos.FindingRoleEncryption},
			{AlgorithmID: "proprietary-cipher-9000", Role: dtos.FindingRoleEncryption},
		})
		assert.Empty(t, report.Vulnerabilities)
		assert.Equal(t, []string{"proprietary-cipher-9000"}, report.UnknownAlgorithms)
		assert.InDelta(t, 100.0, report.SecurityScore, 0.001)
	})
}

func TestDetectNonceReuse(t *testing.T) {
	c := mustCatalog(t)

	t.Run("the same iv literal across two call sites", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("aes-256-gcm", map[string]any{dtos.ParamIV: "000102030405060708090a0b"}),
			encryptionFinding("aes-256-gcm", map[string]any{dtos.ParamIV: "000102030405060708090a0b"}),
		})
		require.Len(t, report.Vulnerabilities, 1)
		assert.Equal(t, dtos.VulnCategoryNonceReuse, report.Vulnerabilities[0].Category)
		assert.Equal(t, dtos.SeverityHigh, report.Vulnerabilities[0].Severity)
		assert.InDelta(t, 70.0, report.SecurityScore, 0.001)
	})

	t.Run("distinct literals are fine", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			encryptionFinding("aes-256-gcm", map[string]any{dtos.ParamNonce: "aaaa"}),
			encryptionFinding("aes-256-gcm", map[string]any{dtos.ParamNonce: "bbbb"}),
		})
		assert.Empty(t, report.Vulnerabilities)
	})

	t.Run("non-encryption findings never participate", func(t *testing.T) {
		report := AnalyzeVulnerabilities(c, []dtos.Finding{
			{AlgorithmID: "sha-256", Role: dtos.FindingRoleHash, Parameters: map[string]any{dtos.ParamIV: "aaaa"}},
			{AlgorithmID: "sha-256", Role: dtos.FindingRoleHash, Parameters: map[string]any{dtos.ParamIV: "aaaa"}},
		})
		assert.Empty(t, report.Vulnerabilities)
	})
}

// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AssessmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "cryptocert_assessment_duration_seconds",
	Help:    "Duration of a full assessment run including all analyzers",
	Buckets: prometheus.DefBuckets,
})

var AssessmentsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cryptocert_assessments_completed_total",
	Help: "Completed assessments by outcome",
}, []string{"outcome"})

var CertificatesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cryptocert_certificates_issued_total",
	Help: "Issued certificates by level",
}, []string{"level"})

var CertificateVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cryptocert_certificate_verifications_total",
	Help: "Certificate verifications by result reason",
}, []string{"reason"})

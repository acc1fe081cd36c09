package model

import (
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

// RiskFactor is one contributing factor behind an app's risk score.
// Clients submit factors either as bare strings or as structured records;
// the dto layer normalizes both shapes into this type before the domain
// sees them.
type RiskFactor struct {
	Description string
	FactorType  string
	Score       int
}

// RawAppFinding is one client-submitted per-app finding before normalization.
// Optional fields are pointers so that "absent" and "zero" stay distinct.
type RawAppFinding struct {
	PackageName string
	AppName     string
	VersionName string
	RiskLevel   string
	RiskFactors []RiskFactor
	RiskScore   *int
	IsSystemApp bool
}

// AppFinding is a normalized, accepted finding ready for persistence.
type AppFinding struct {
	PackageName string
	AppName     string
	VersionName string
	TopFactor   string
	RiskFactors []RiskFactor
	RiskLevel   valueobject.RiskLevel
	RiskScore   int
	IsSystemApp bool
}

// TierTally counts accepted findings per risk tier. High is score >= 70,
// medium is 40-69, safe is everything below.
type TierTally struct {
	High   int
	Medium int
	Safe   int
}

// Add counts one score into the tally.
func (t *TierTally) Add(score int) {
	switch {
	case score >= 70:
		t.High++
	case score >= 40:
		t.Medium++
	default:
		t.Safe++
	}
}

// NormalizeFindings filters and normalizes a raw batch. Entries missing a
// package name or app name are dropped silently; a malformed entry must not
// fail the scan. Missing scores default to 0, missing or unrecognized
// levels are derived from the score, and the first factor description
// becomes the top factor.
func NormalizeFindings(raw []RawAppFinding) ([]AppFinding, TierTally) {
	findings := make([]AppFinding, 0, len(raw))
	var tally TierTally

	for _, r := range raw {
		if r.PackageName == "" || r.AppName == "" {
			continue
		}

		score := 0
		if r.RiskScore != nil {
			score = *r.RiskScore
		}
		tally.Add(score)

		level, err := valueobject.RiskLevelFromString(r.RiskLevel)
		if err != nil {
			level = valueobject.RiskLevelFromScore(score)
		}

		version := r.VersionName
		if version == "" {
			version = "1.0"
		}

		topFactor := ""
		if len(r.RiskFactors) > 0 {
			topFactor = r.RiskFactors[0].Description
		}

		findings = append(findings, AppFinding{
			PackageName: r.PackageName,
			AppName:     r.AppName,
			VersionName: version,
			IsSystemApp: r.IsSystemApp,
			RiskScore:   score,
			RiskLevel:   level,
			TopFactor:   topFactor,
			RiskFactors: r.RiskFactors,
		})
	}

	return findings, tally
}

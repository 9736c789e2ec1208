// SPDX-License-Identifier: GPL-3.0-or-later
package domain

// LearnedPatterns is the persisted record of past duplicate and
// non-duplicate verdicts. Duplicates maps a key to the normalized body that
// was deleted for it, NonDuplicates records pairs that a human declined to
// merge so they are never re-compared.
type LearnedPatterns struct {
	Duplicates    map[MessageKey]string
	NonDuplicates map[KeyPair]bool
}

func NewLearnedPatterns() *LearnedPatterns {
	return &LearnedPatterns{
		Duplicates:    map[MessageKey]string{},
		NonDuplicates: map[KeyPair]bool{},
	}
}

func (p *LearnedPatterns) MarkDuplicate(key MessageKey, normalizedBody string) {
	p.Duplicates[key] = normalizedBody
}

func (p *LearnedPatterns) MarkNonDuplicate(a, b MessageKey) {
	p.NonDuplicates[NewKeyPair(a, b)] = true
}

func (p *LearnedPatterns) IsNonDuplicate(a, b MessageKey) bool {
	return p.NonDuplicates[NewKeyPair(a, b)]
}

//go:generate mockgen -destination=mocks/patterns.go -package=mocks . PatternStore

// PatternStore persists learned patterns across runs. Load never fails on a
// missing or corrupt backing file; it substitutes empty patterns instead.
type PatternStore interface {
	Load() (*LearnedPatterns, error)
	Save(patterns *LearnedPatterns) error
}

// SPDX-License-Identifier: GPL-3.0-or-later
package patterns

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/log"

	"github.com/sirupsen/logrus"
)

// FileStore persists learned patterns as a single JSON document with two
// top-level maps, "duplicates" and "non_duplicates". Map keys are the JSON
// encoding of the (subject, sender, date) triple resp. the pair of triples,
// so that a loaded store is exactly equal to the saved one.
type FileStore struct {
	filename string
	l        *logrus.Logger
}

func NewFileStore(filename string) *FileStore {
	return &FileStore{
		filename: filename,
		l:        log.Logger(log.LOG_PATTERNS),
	}
}

type patternsDocument struct {
	Duplicates    map[string]string `json:"duplicates"`
	NonDuplicates map[string]bool   `json:"non_duplicates"`
}

// Load reads the persisted patterns. A missing file and a malformed file
// both yield empty patterns; only the latter is logged as a warning.
func (s *FileStore) Load() (*domain.LearnedPatterns, error) {
	raw, err := os.ReadFile(s.filename)
	if os.IsNotExist(err) {
		s.l.WithField("file", s.filename).Info("No learned patterns file yet, starting empty")
		return domain.NewLearnedPatterns(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read patterns file: %w", err)
	}

	document := &patternsDocument{}
	err = json.Unmarshal(raw, document)
	if err != nil {
		s.l.WithFields(logrus.Fields{"file": s.filename, "error": err}).Warn("Learned patterns file is malformed, starting empty")
		return domain.NewLearnedPatterns(), nil
	}

	learned := domain.NewLearnedPatterns()
	for encoded, body := range document.Duplicates {
		key, err := decodeKey(encoded)
		if err != nil {
			s.l.WithFields(logrus.Fields{"file": s.filename, "key": encoded, "error": err}).Warn("Learned patterns file contains a malformed key, starting empty")
			return domain.NewLearnedPatterns(), nil
		}
		learned.Duplicates[key] = body
	}
	for encoded, value := range document.NonDuplicates {
		pair, err := decodePair(encoded)
		if err != nil {
			s.l.WithFields(logrus.Fields{"file": s.filename, "key": encoded, "error": err}).Warn("Learned patterns file contains a malformed pair key, starting empty")
			return domain.NewLearnedPatterns(), nil
		}
		learned.NonDuplicates[pair] = value
	}

	s.l.WithFields(logrus.Fields{"duplicates": len(learned.Duplicates), "nonduplicates": len(learned.NonDuplicates)}).Debug("Loaded learned patterns")
	return learned, nil
}

// Save serializes the patterns to a temporary file next to the target and
// renames it into place.
func (s *FileStore) Save(learned *domain.LearnedPatterns) error {
	document := &patternsDocument{
		Duplicates:    map[string]string{},
		NonDuplicates: map[string]bool{},
	}
	for key, body := range learned.Duplicates {
		document.Duplicates[encodeKey(key)] = body
	}
	for pair, value := range learned.NonDuplicates {
		document.NonDuplicates[encodePair(pair)] = value
	}

	raw, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize patterns: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filename), ".patterns-*.json")
	if err != nil {
		return fmt.Errorf("could not create temporary patterns file: %w", err)
	}

	_, err = tmp.Write(raw)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write patterns: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not close temporary patterns file: %w", err)
	}

	err = os.Rename(tmp.Name(), s.filename)
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace patterns file: %w", err)
	}

	s.l.WithFields(logrus.Fields{"file": s.filename, "duplicates": len(document.Duplicates), "nonduplicates": len(document.NonDuplicates)}).Info("Saved learned patterns")
	return nil
}

func encodeKey(key domain.MessageKey) string {
	raw, err := json.Marshal([3]string{key.Subject, key.Sender, key.Date})
	if err != nil {
		// Marshalling three strings cannot fail.
		panic(err)
	}
	return string(raw)
}

func decodeKey(encoded string) (domain.MessageKey, error) {
	triple := [3]string{}
	err := json.Unmarshal([]byte(encoded), &triple)
	if err != nil {
		return domain.MessageKey{}, fmt.Errorf("could not decode key triple: %w", err)
	}
	return domain.MessageKey{Subject: triple[0], Sender: triple[1], Date: triple[2]}, nil
}

func encodePair(pair domain.KeyPair) string {
	raw, err := json.Marshal([2][3]string{
		{pair.First.Subject, pair.First.Sender, pair.First.Date},
		{pair.Second.Subject, pair.Second.Sender, pair.Second.Date},
	})
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func decodePair(encoded string) (domain.KeyPair, error) {
	triples := [2][3]string{}
	err := json.Unmarshal([]byte(encoded), &triples)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("could not decode pair of key triples: %w", err)
	}

	first := domain.MessageKey{Subject: triples[0][0], Sender: triples[0][1], Date: triples[0][2]}
	second := domain.MessageKey{Subject: triples[1][0], Sender: triples[1][1], Date: triples[1][2]}
	// Re-canonicalize so hand-edited files still behave as unordered pairs.
	return domain.NewKeyPair(first, second), nil
}

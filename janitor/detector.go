// SPDX-License-Identifier: GPL-3.0-or-later
package janitor

import (
	"fmt"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/mail"
	"github.com/mboxtools/go-mail-janitor/similarity"

	"github.com/sirupsen/logrus"
)

// seenEntry is the representative message currently retained for a key
// while scanning one folder.
type seenEntry struct {
	folder         string
	message        *domain.MailMessage
	normalizedBody string
	key            domain.MessageKey
}

type folderScan struct {
	deletions []*domain.MailMessage
	decisions []domain.Decision
}

// findDuplicates classifies the messages of one folder without mutating the
// store. Messages sharing an identity key are compared pairwise against the
// current representative; exact matches are marked for deletion, borderline
// matches go through the head-of-body check and, if that passes, the
// resolver. Learned non-duplicate pairs and pairs already compared in this
// scan are skipped entirely.
func (j *Janitor) findDuplicates(folder *domain.MailFolder, messages []*domain.MailMessage, learned *domain.LearnedPatterns) (*folderScan, error) {
	seen := map[domain.MessageKey]*seenEntry{}
	compared := map[domain.KeyPair]bool{}
	scan := &folderScan{}

	for _, message := range messages {
		key := domain.KeyOf(message)
		normalizedBody := similarity.Normalize(message.Body)

		entry, ok := seen[key]
		if !ok {
			seen[key] = &seenEntry{
				folder:         folder.Path,
				message:        message,
				normalizedBody: normalizedBody,
				key:            key,
			}
			continue
		}

		pair := domain.NewKeyPair(key, entry.key)
		if compared[pair] {
			j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject)}).Debug("Pair already compared in this folder, skipping")
			continue
		}
		if learned.IsNonDuplicate(key, entry.key) {
			j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject)}).Debug("Pair is a learned non-duplicate, skipping")
			continue
		}

		ratio := similarity.Ratio(entry.normalizedBody, normalizedBody)
		compared[pair] = true

		switch {
		case ratio == 1.0:
			j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject), "sender": message.Sender, "received": message.Received}).Info("Found exact duplicate")
			scan.markDuplicate(folder, message, ratio)
			learned.MarkDuplicate(key, normalizedBody)
		case ratio >= j.configuration.BodySimilarity:
			isDuplicate, err := j.reviewAmbiguous(folder, entry, message, normalizedBody, ratio)
			if err != nil {
				return nil, fmt.Errorf("could not resolve ambiguous pair: %w", err)
			}

			if isDuplicate {
				j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject), "ratio": ratio}).Info("Near-duplicate confirmed")
				scan.markDuplicate(folder, message, ratio)
				learned.MarkDuplicate(key, normalizedBody)
			} else {
				j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject), "ratio": ratio}).Info("Near-duplicate kept as distinct")
				scan.markKeptDistinct(folder, message, ratio)
				learned.MarkNonDuplicate(key, entry.key)
				seen[key] = &seenEntry{
					folder:         folder.Path,
					message:        message,
					normalizedBody: normalizedBody,
					key:            key,
				}
			}
		default:
			j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject), "ratio": ratio}).Debug("Bodies differ, not a duplicate")
			learned.MarkNonDuplicate(key, entry.key)
			seen[key] = &seenEntry{
				folder:         folder.Path,
				message:        message,
				normalizedBody: normalizedBody,
				key:            key,
			}
		}
	}

	return scan, nil
}

// reviewAmbiguous applies the head-of-body cascade: only pairs whose first
// HeadLength normalized characters are close enough reach the resolver, the
// rest are treated as distinct without asking.
func (j *Janitor) reviewAmbiguous(folder *domain.MailFolder, entry *seenEntry, message *domain.MailMessage, normalizedBody string, ratio float64) (bool, error) {
	originalHead := similarity.Head(entry.normalizedBody, HeadLength)
	candidateHead := similarity.Head(normalizedBody, HeadLength)

	if similarity.Ratio(originalHead, candidateHead) < j.configuration.HeadSimilarity {
		return false, nil
	}

	return j.resolver.Resolve(&domain.ReviewRequest{
		Original: domain.ReviewMessage{
			Folder:   entry.folder,
			Subject:  entry.message.Subject,
			Sender:   entry.message.Sender,
			Received: entry.message.Received,
			Head:     originalHead,
		},
		Candidate: domain.ReviewMessage{
			Folder:   folder.Path,
			Subject:  message.Subject,
			Sender:   message.Sender,
			Received: message.Received,
			Head:     candidateHead,
		},
		Ratio: ratio,
	})
}

func (s *folderScan) markDuplicate(folder *domain.MailFolder, message *domain.MailMessage, ratio float64) {
	s.deletions = append(s.deletions, message)
	s.decisions = append(s.decisions, decision(folder, message, domain.DeletedDuplicate, fmt.Sprintf("similarity %.2f", ratio)))
}

func (s *folderScan) markKeptDistinct(folder *domain.MailFolder, message *domain.MailMessage, ratio float64) {
	s.decisions = append(s.decisions, decision(folder, message, domain.KeptDistinct, fmt.Sprintf("similarity %.2f", ratio)))
}

func decision(folder *domain.MailFolder, message *domain.MailMessage, action domain.DecisionAction, detail string) domain.Decision {
	return domain.Decision{
		FolderName: folder.Path,
		Subject:    message.Subject,
		Sender:     message.Sender,
		Received:   message.Received,
		Action:     action,
		Detail:     detail,
	}
}

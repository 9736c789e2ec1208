// SPDX-License-Identifier: GPL-3.0-or-later
package janitor

import (
	"strings"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/mail"

	"github.com/sirupsen/logrus"
)

// applyRetention keeps, per retention filter, only the newest matching
// message in the folder and marks every other match for deletion. A message
// belongs to the first filter (in configured order) whose substring occurs
// case-insensitively in its raw body; filters are meant to be disjoint, the
// first-match rule just pins the behavior when they are not.
func (j *Janitor) applyRetention(folder *domain.MailFolder, messages []*domain.MailMessage) *folderScan {
	scan := &folderScan{}
	if len(j.configuration.Filters) == 0 {
		return scan
	}

	newest := map[string]*domain.MailMessage{}
	marked := []*domain.MailMessage{}

	for _, message := range messages {
		filter := j.firstMatchingFilter(message.Body)
		if filter == "" {
			continue
		}

		current, ok := newest[filter]
		if !ok || message.Received.After(current.Received) {
			if ok {
				marked = append(marked, current)
			}
			newest[filter] = message
		} else {
			marked = append(marked, message)
		}
	}

	for _, message := range marked {
		// Matched again purely to name the filter in the audit trail.
		filter := j.firstMatchingFilter(message.Body)
		j.l.WithFields(logrus.Fields{"folder": folder.Path, "subject": mail.ShortSubject(message.Subject), "sender": message.Sender, "received": message.Received, "filter": filter}).Info("Superseded by a newer message, deleting")
		scan.deletions = append(scan.deletions, message)
		scan.decisions = append(scan.decisions, decision(folder, message, domain.DeletedRetention, filter))
	}

	return scan
}

func (j *Janitor) firstMatchingFilter(body string) string {
	loweredBody := strings.ToLower(body)
	for _, filter := range j.configuration.Filters {
		if strings.Contains(loweredBody, strings.ToLower(filter)) {
			return filter
		}
	}
	return ""
}

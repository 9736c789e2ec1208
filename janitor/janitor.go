// SPDX-License-Identifier: GPL-3.0-or-later
package janitor

import (
	"fmt"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/log"

	"github.com/sirupsen/logrus"
)

// Janitor walks a mailbox hierarchy and prunes it: duplicate detection
// first, then the latest-only retention policy, folder by folder. All store
// access is strictly sequential, the store is a single-client resource.
type Janitor struct {
	store        domain.MailStore
	patternStore domain.PatternStore
	journal      domain.Journal
	resolver     domain.Resolver

	configuration *configuration

	l *logrus.Logger
}

func NewJanitor(store domain.MailStore, patternStore domain.PatternStore, journal domain.Journal, resolver domain.Resolver, configFunc ...ConfigFunc) (*Janitor, error) {
	config := &configuration{
		BodySimilarity: DefaultBodySimilarityThreshold,
		HeadSimilarity: DefaultHeadSimilarityThreshold,
	}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Janitor{
		store:         store,
		patternStore:  patternStore,
		journal:       journal,
		resolver:      resolver,
		configuration: config,
		l:             log.Logger(log.LOG_JANITOR),
	}, nil
}

// Run cleans the given root folders and everything below them. An empty
// list means all root folders of the store. Learned patterns are loaded
// once up front and flushed once after the walk; a failure inside a single
// folder is logged and does not stop the traversal.
func (j *Janitor) Run(rootFolders []string) error {
	learned, err := j.patternStore.Load()
	if err != nil {
		return fmt.Errorf("could not load learned patterns: %w", err)
	}

	roots, err := j.store.RootFolders()
	if err != nil {
		return fmt.Errorf("could not enumerate root folders: %w", err)
	}

	selected := roots
	if len(rootFolders) > 0 {
		selected = []*domain.MailFolder{}
		for _, name := range rootFolders {
			folder := folderByName(roots, name)
			if folder == nil {
				return fmt.Errorf("folder %s not found in store", name)
			}
			selected = append(selected, folder)
		}
	}

	if j.configuration.DryRun {
		j.l.Warn("Dry-run, no messages will be deleted or moved")
	}

	for _, folder := range selected {
		j.processFolder(folder, learned)
	}

	err = j.patternStore.Save(learned)
	if err != nil {
		return fmt.Errorf("could not save learned patterns: %w", err)
	}

	return nil
}

// processFolder is the recursive walker. Failures are contained per folder
// so siblings and children still get cleaned.
func (j *Janitor) processFolder(folder *domain.MailFolder, learned *domain.LearnedPatterns) {
	err := j.cleanFolder(folder, learned)
	if err != nil {
		j.l.WithFields(logrus.Fields{"folder": folder.Path, "error": err}).Warn("Could not clean folder, continuing with remaining folders")
	}

	subfolders, err := j.store.Subfolders(folder)
	if err != nil {
		j.l.WithFields(logrus.Fields{"folder": folder.Path, "error": err}).Warn("Could not list subfolders, continuing with remaining folders")
		return
	}

	for _, subfolder := range subfolders {
		j.processFolder(subfolder, learned)
	}
}

func (j *Janitor) cleanFolder(folder *domain.MailFolder, learned *domain.LearnedPatterns) error {
	messages, err := j.store.Messages(folder)
	if err != nil {
		return fmt.Errorf("could not fetch messages: %w", err)
	}
	j.l.WithFields(logrus.Fields{"folder": folder.Path, "messages": len(messages)}).Info("Cleaning folder")

	duplicateScan, err := j.findDuplicates(folder, messages, learned)
	if err != nil {
		return fmt.Errorf("could not scan for duplicates: %w", err)
	}
	err = j.apply(folder, duplicateScan)
	if err != nil {
		return fmt.Errorf("could not remove duplicates: %w", err)
	}

	retentionScan := j.applyRetention(folder, withoutDeleted(messages, duplicateScan.deletions))
	err = j.apply(folder, retentionScan)
	if err != nil {
		return fmt.Errorf("could not apply retention policy: %w", err)
	}

	deleted := len(duplicateScan.deletions) + len(retentionScan.deletions)
	err = j.journal.SaveFolderSummary(folder.Path, len(messages), deleted)
	if err != nil {
		return fmt.Errorf("could not save folder summary: %w", err)
	}

	return nil
}

// apply is the mutation half of the two-phase split: the scan is complete
// before any message is touched, so deletions cannot influence the
// classification of later messages in the same pass.
func (j *Janitor) apply(folder *domain.MailFolder, scan *folderScan) error {
	if len(scan.decisions) > 0 {
		err := j.journal.SaveDecisions(scan.decisions)
		if err != nil {
			return fmt.Errorf("could not journal decisions: %w", err)
		}
	}

	if len(scan.deletions) == 0 {
		return nil
	}

	if j.configuration.DryRun {
		j.l.WithFields(logrus.Fields{"folder": folder.Path, "messages": len(scan.deletions)}).Info("Not deleting messages due to dry-run")
		return nil
	}

	uids := make([]uint32, len(scan.deletions))
	for i, message := range scan.deletions {
		uids[i] = message.Uid
	}

	if j.configuration.MoveToTrash {
		j.l.WithFields(logrus.Fields{"folder": folder.Path, "messages": len(uids), "destination": j.configuration.TrashFolder}).Info("Moving messages to trash")
		err := j.store.Move(folder, uids, j.configuration.TrashFolder)
		if err != nil {
			return fmt.Errorf("could not move messages to trash: %w", err)
		}
		return nil
	}

	j.l.WithFields(logrus.Fields{"folder": folder.Path, "messages": len(uids)}).Info("Deleting messages")
	err := j.store.Delete(folder, uids)
	if err != nil {
		return fmt.Errorf("could not delete messages: %w", err)
	}

	return nil
}

func withoutDeleted(messages, deletions []*domain.MailMessage) []*domain.MailMessage {
	if len(deletions) == 0 {
		return messages
	}

	deleted := map[uint32]bool{}
	for _, message := range deletions {
		deleted[message.Uid] = true
	}

	survivors := []*domain.MailMessage{}
	for _, message := range messages {
		if !deleted[message.Uid] {
			survivors = append(survivors, message)
		}
	}
	return survivors
}

func folderByName(folders []*domain.MailFolder, name string) *domain.MailFolder {
	for i := 0; i < len(folders); i++ {
		if folders[i].Path == name || folders[i].Name == name {
			return folders[i]
		}
	}
	return nil
}

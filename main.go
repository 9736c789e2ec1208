// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"os"

	"github.com/mboxtools/go-mail-janitor/config"
	"github.com/mboxtools/go-mail-janitor/imapstore"
	"github.com/mboxtools/go-mail-janitor/janitor"
	"github.com/mboxtools/go-mail-janitor/journal"
	"github.com/mboxtools/go-mail-janitor/log"
	"github.com/mboxtools/go-mail-janitor/patterns"
	"github.com/mboxtools/go-mail-janitor/review"

	"github.com/sirupsen/logrus"
)

func main() {
	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig("config.toml")
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	auditJournal, err := journal.NewJournal(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not open audit journal")
	}
	defer auditJournal.Close()

	patternStore := patterns.NewFileStore(conf.PatternsFile)

	store, err := imapstore.NewImapStore(conf.ImapHost, conf.User, conf.Password)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to mail store")
	}
	defer store.Close()

	resolver := review.NewTerminalResolver(os.Stdin, os.Stdout)

	configs := []janitor.ConfigFunc{
		janitor.Thresholds(conf.BodySimilarity, conf.HeadSimilarity),
		janitor.RetentionFilters(conf.BodyFilters),
	}
	if conf.DryRun {
		configs = append(configs, janitor.DryRun())
	}
	if conf.MoveToTrash {
		configs = append(configs, janitor.MoveToTrash(conf.TrashFolder))
	}

	j, err := janitor.NewJanitor(store, patternStore, auditJournal, resolver, configs...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start janitor")
	}

	logger.WithFields(logrus.Fields{"folders": conf.RootFolders, "filters": conf.BodyFilters, "dryrun": conf.DryRun}).Info("Cleaning mailbox")
	err = j.Run(conf.RootFolders)
	if err != nil {
		logger.WithField("error", err).Fatal("Cleaning mailbox failed")
	}

	summaries, err := auditJournal.AllFolderSummaries()
	if err != nil {
		logger.WithField("error", err).Fatal("Could not list folder summaries")
	}
	for _, summary := range summaries {
		logger.WithFields(logrus.Fields{"folder": summary.Name, "scanned": summary.Scanned, "deleted": summary.Deleted}).Info("Folder cleaned")
	}
}

// SPDX-License-Identifier: GPL-3.0-or-later
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

// Journal is the sqlite-backed audit trail: one row per deletion or
// kept-distinct decision plus a per-folder scan summary, so a run (or a
// dry run) can be reviewed after the fact.
type Journal struct {
	db *sqlx.DB
	l  *logrus.Logger
}

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_decisions",
			Up: []string{`CREATE TABLE decisions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				foldername TEXT NOT NULL,
				subject TEXT NOT NULL,
				sender TEXT NOT NULL,
				received TEXT NOT NULL,
				action INTEGER NOT NULL,
				detail TEXT NOT NULL,
				createdat TEXT NOT NULL
			)`},
			Down: []string{`DROP TABLE decisions`},
		},
		{
			Id: "2_foldersummaries",
			Up: []string{`CREATE TABLE foldersummaries (
				name TEXT PRIMARY KEY,
				scanned INTEGER NOT NULL,
				deleted INTEGER NOT NULL,
				updatedat TEXT NOT NULL
			)`},
			Down: []string{`DROP TABLE foldersummaries`},
		},
	},
}

func NewJournal(datasource string) (*Journal, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_JOURNAL)
	l.WithField("file", datasource).Info("Connected")

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Journal{
		db: db,
		l:  l,
	}, nil
}

func (j *Journal) Close() error {
	err := j.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	j.l.Info("Disconnected")
	return nil
}

func (j *Journal) SaveDecisions(decisions []domain.Decision) error {
	tx, err := j.db.BeginTxx(context.TODO(), nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO decisions(foldername, subject, sender, received, action, detail, createdat) VALUES(?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return txEnd(tx, fmt.Errorf("could not prepare statement: %w", err))
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, decision := range decisions {
		_, err := stmt.Exec(
			decision.FolderName,
			decision.Subject,
			decision.Sender,
			decision.Received.UTC().Format(time.RFC3339),
			int(decision.Action),
			decision.Detail,
			now,
		)

		if err != nil {
			return txEnd(tx, fmt.Errorf("could not save decision: %w", err))
		}
	}

	return txEnd(tx, nil)
}

func (j *Journal) DecisionsInFolder(folder string) ([]*domain.Decision, error) {
	dbDecisions := []struct {
		Id         int64
		FolderName string `db:"foldername"`
		Subject    string
		Sender     string
		Received   string
		Action     int
		Detail     string
	}{}

	err := j.db.Select(
		&dbDecisions,
		`SELECT id, foldername, subject, sender, received, action, detail from decisions WHERE foldername = ? ORDER BY id`,
		folder,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	decisions := []*domain.Decision{}
	for _, d := range dbDecisions {
		received, err := time.Parse(time.RFC3339, d.Received)
		if err != nil {
			return nil, fmt.Errorf("could not parse received time: %w", err)
		}

		decisions = append(
			decisions,
			&domain.Decision{
				Id:         d.Id,
				FolderName: d.FolderName,
				Subject:    d.Subject,
				Sender:     d.Sender,
				Received:   received,
				Action:     domain.DecisionAction(d.Action),
				Detail:     d.Detail,
			},
		)
	}

	return decisions, nil
}

func (j *Journal) SaveFolderSummary(name string, scanned, deleted int) error {
	_, err := j.db.Exec(
		"INSERT OR REPLACE INTO foldersummaries (name, scanned, deleted, updatedat) VALUES (?, ?, ?, ?)",
		name,
		scanned,
		deleted,
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		return fmt.Errorf("could not save folder summary: %w", err)
	}

	j.l.WithFields(logrus.Fields{"Name": name, "Scanned": scanned, "Deleted": deleted}).Debug("Persisted folder summary")
	return nil
}

func (j *Journal) AllFolderSummaries() ([]*domain.FolderSummary, error) {
	dbSummaries := []struct {
		Name    string
		Scanned int
		Deleted int
	}{}

	err := j.db.Select(
		&dbSummaries,
		`SELECT name, scanned, deleted from foldersummaries ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	summaries := []*domain.FolderSummary{}
	for _, s := range dbSummaries {
		summaries = append(
			summaries,
			&domain.FolderSummary{
				Name:    s.Name,
				Scanned: s.Scanned,
				Deleted: s.Deleted,
			},
		)
	}

	j.l.WithField("Count", len(summaries)).Debug("Found folder summaries")

	return summaries, nil
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("could not commit tx: %w", err)
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}

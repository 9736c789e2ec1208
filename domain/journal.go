// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

type DecisionAction int

const (
	DeletedDuplicate = DecisionAction(0)
	DeletedRetention = DecisionAction(1)
	KeptDistinct     = DecisionAction(2)
)

// Decision is one audit entry: what happened to a message and why.
// Detail carries the retention filter name or the similarity ratio.
type Decision struct {
	Id         int64
	FolderName string
	Subject    string
	Sender     string
	Received   time.Time
	Action     DecisionAction
	Detail     string
}

type FolderSummary struct {
	Name    string
	Scanned int
	Deleted int
}

//go:generate mockgen -destination=mocks/journal.go -package=mocks . Journal
type Journal interface {
	Close() error
	SaveDecisions(decisions []Decision) error
	SaveFolderSummary(name string, scanned, deleted int) error
	AllFolderSummaries() ([]*FolderSummary, error)
}

// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/store.go -package=mocks . MailStore

// MailStore is the external mail collaborator. It is a stateful,
// single-client resource; callers must not share it across goroutines.
// Messages returns the folder content in store order. Delete removes the
// given messages for good, Move relocates them to another folder; deleting
// an already-deleted uid is a store-defined no-op.
type MailStore interface {
	RootFolders() ([]*MailFolder, error)
	Subfolders(folder *MailFolder) ([]*MailFolder, error)
	Messages(folder *MailFolder) ([]*MailMessage, error)
	Delete(folder *MailFolder, uids []uint32) error
	Move(folder *MailFolder, uids []uint32, destination string) error

	Close() error
}

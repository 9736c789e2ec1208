// SPDX-License-Identifier: GPL-3.0-or-later
package imapstore

import (
	"fmt"

	"github.com/emersion/go-imap"
)

type deleter interface {
	delete(uids []uint32) error
}

type mover interface {
	move(uids []uint32, folder string) error
}

type flagClient interface {
	flagDeleted(uids []uint32) (*imap.SeqSet, error)
}

type uidExpunger interface {
	UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error
}

// uidplusDeleter expunges exactly the requested uids via UIDPLUS.
type uidplusDeleter struct {
	imapConn      flagClient
	uidplusClient uidExpunger
}

func (u *uidplusDeleter) delete(uids []uint32) error {
	seqset, err := u.imapConn.flagDeleted(uids)
	if err != nil {
		return fmt.Errorf("could not flag items as deleted: %w", err)
	}

	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- u.uidplusClient.UidExpunge(seqset, out)
	}()

	expunged := []uint32{}
	for uid := range out {
		expunged = append(expunged, uid)
	}

	err = <-done
	if err != nil {
		return fmt.Errorf("could not expunge mails: %w", err)
	}

	if len(expunged) != len(uids) {
		return fmt.Errorf("unexpected number of expunges, expected %d got %d", len(uids), len(expunged))
	}

	return nil
}

type searchExpungeClient interface {
	flagClient
	Expunge(ch chan uint32) error
	UidSearch(criteria *imap.SearchCriteria) (uids []uint32, err error)
}

var ErrItemsWithDeletedFlagPresent = fmt.Errorf("folder has previous items with delete flag set")

// fallbackDeleter works on servers without UIDPLUS. A plain EXPUNGE removes
// every flagged message in the folder, so it refuses to run while unrelated
// messages carry the deleted flag.
type fallbackDeleter struct {
	imapConn searchExpungeClient
}

func (f *fallbackDeleter) delete(uids []uint32) error {
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}
	flagged, err := f.imapConn.UidSearch(criteria)
	if err != nil {
		return fmt.Errorf("could not search for flagged items in folder: %w", err)
	}
	if len(flagged) > 0 {
		return fmt.Errorf("folder is not ready for delete: %w", ErrItemsWithDeletedFlagPresent)
	}

	_, err = f.imapConn.flagDeleted(uids)
	if err != nil {
		return fmt.Errorf("could not set deleted flag: %w", err)
	}

	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- f.imapConn.Expunge(out)
	}()

	expunged := []uint32{}
	for uid := range out {
		expunged = append(expunged, uid)
	}

	err = <-done
	if err != nil {
		return fmt.Errorf("could not expunge mails: %w", err)
	}

	if len(expunged) != len(uids) {
		return fmt.Errorf("unexpected number of expunges, expected %d got %d", len(uids), len(expunged))
	}

	return nil
}

type uidMoveClient interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

type moveMover struct {
	moveClient uidMoveClient
}

func (m *moveMover) move(uids []uint32, folder string) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	return m.moveClient.UidMove(seqset, folder)
}

type copyAndDeleteClient interface {
	UidCopy(seqset *imap.SeqSet, dest string) error
	deleteMessages(uids []uint32) error
}

// copyDeleteMover emulates MOVE through COPY plus delete for servers
// without the extension.
type copyDeleteMover struct {
	imapConn copyAndDeleteClient
}

func (c *copyDeleteMover) move(uids []uint32, folder string) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := c.imapConn.UidCopy(seqset, folder)
	if err != nil {
		return fmt.Errorf("could not copy mails: %w", err)
	}

	err = c.imapConn.deleteMessages(uids)
	if err != nil {
		return fmt.Errorf("could not delete copied mails: %w", err)
	}

	return nil
}

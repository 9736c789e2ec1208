// SPDX-License-Identifier: GPL-3.0-or-later
package imapstore

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/log"
	"github.com/mboxtools/go-mail-janitor/mail"

	"github.com/emersion/go-imap"
	move "github.com/emersion/go-imap-move"
	uidplus "github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

const FetchBatchSize = 50

// ImapStore implements domain.MailStore on top of an IMAP connection.
// Deletion uses UIDPLUS when the server supports it and falls back to
// flag&expunge otherwise; moving uses MOVE with a copy&delete fallback.
type ImapStore struct {
	connection     *client.Client
	messageDeleter deleter
	messageMover   mover

	server, user, password string

	selectedFolder string

	l *logrus.Logger
}

func NewImapStore(server string, user string, password string) (*ImapStore, error) {
	imapClient, err := client.DialTLS(server, nil)
	if err != nil {
		return nil, fmt.Errorf("could not dial to imap: %w", err)
	}

	err = imapClient.Login(user, password)
	if err != nil {
		return nil, fmt.Errorf("could not login to imap: %w", err)
	}

	uidPlusClient := uidplus.NewClient(imapClient)
	uidPlusSupported, err := uidPlusClient.SupportUidPlus()
	if err != nil {
		return nil, fmt.Errorf("could not check for UIDPLUS support: %w", err)
	}

	moveClient := move.NewClient(imapClient)
	moveSupported, err := moveClient.SupportMove()
	if err != nil {
		return nil, fmt.Errorf("could not check for MOVE support: %w", err)
	}

	store := &ImapStore{
		connection: imapClient,
		server:     server,
		user:       user,
		password:   password,
		l:          log.Logger(log.LOG_IMAP),
	}

	baseLogger := store.l.WithFields(logrus.Fields{"server": server})
	baseLogger.Debug("Logged in to server")

	if uidPlusSupported {
		baseLogger.Debug("UIDPLUS supported on server, using UID delete")
		store.messageDeleter = &uidplusDeleter{
			imapConn:      store,
			uidplusClient: uidPlusClient,
		}
	} else {
		baseLogger.Info("UIDPLUS not supported on server, falling back to flag&expunge")
		store.messageDeleter = &fallbackDeleter{
			imapConn: store,
		}
	}

	if moveSupported {
		baseLogger.Debug("MOVE supported on server")
		store.messageMover = &moveMover{
			moveClient: moveClient,
		}
	} else {
		baseLogger.Info("MOVE not supported on server, falling back to copy&delete")
		store.messageMover = &copyDeleteMover{
			imapConn: store,
		}
	}

	return store, nil
}

func (s *ImapStore) RootFolders() ([]*domain.MailFolder, error) {
	return s.list("%")
}

func (s *ImapStore) Subfolders(folder *domain.MailFolder) ([]*domain.MailFolder, error) {
	if folder.Delimiter == "" {
		// Flat namespace, nothing below this folder.
		return nil, nil
	}
	return s.list(folder.Path + folder.Delimiter + "%")
}

func (s *ImapStore) list(pattern string) ([]*domain.MailFolder, error) {
	out := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- s.connection.List("", pattern, out)
	}()

	folders := []*domain.MailFolder{}
	for info := range out {
		name := info.Name
		if info.Delimiter != "" {
			segments := strings.Split(info.Name, info.Delimiter)
			name = segments[len(segments)-1]
		}

		folders = append(
			folders,
			&domain.MailFolder{
				Name:      name,
				Path:      info.Name,
				Delimiter: info.Delimiter,
			},
		)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	return folders, nil
}

// Messages selects the folder and fetches all messages in uid order. The
// body is parsed into subject, sender and plain text; the receive time is
// the server INTERNALDATE, with the Date header as fallback.
func (s *ImapStore) Messages(folder *domain.MailFolder) ([]*domain.MailMessage, error) {
	err := s.selectFolder(folder)
	if err != nil {
		return nil, err
	}

	uids, err := s.listUids()
	if err != nil {
		return nil, err
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	messages := []*domain.MailMessage{}
	for _, batch := range partitionUids(uids, FetchBatchSize) {
		fetched, err := s.fetchBatch(batch)
		if err != nil {
			return nil, err
		}
		messages = append(messages, fetched...)
	}

	s.l.WithFields(logrus.Fields{"folder": folder.Path, "messages": len(messages)}).Debug("Fetched folder")
	return messages, nil
}

func (s *ImapStore) fetchBatch(uids []uint32) ([]*domain.MailMessage, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	fullBodySection := &imap.BodySectionName{
		Peek: true,
	}
	fetchItems := []imap.FetchItem{imap.FetchUid, imap.FetchInternalDate, fullBodySection.FetchItem()}

	out := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- s.connection.UidFetch(seqset, fetchItems, out)
	}()

	messages := []*domain.MailMessage{}
	for msg := range out {
		r := msg.GetBody(fullBodySection)
		if r == nil {
			return nil, fmt.Errorf("server returned no body for uid %d", msg.Uid)
		}

		rawMail, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("could not read mail body: %w", err)
		}

		parsed, err := mail.ParseMail(rawMail)
		if err != nil {
			return nil, fmt.Errorf("could not parse mail: %w", err)
		}

		received := msg.InternalDate
		if received.IsZero() {
			received = parsed.Received
		}

		messages = append(
			messages,
			&domain.MailMessage{
				Uid:      msg.Uid,
				Subject:  parsed.Subject,
				Sender:   parsed.Sender,
				Received: received,
				Body:     parsed.Body,
			},
		)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not fetch mails: %w", err)
	}

	return messages, nil
}

func (s *ImapStore) Delete(folder *domain.MailFolder, uids []uint32) error {
	err := s.selectFolder(folder)
	if err != nil {
		return err
	}
	return s.messageDeleter.delete(uids)
}

func (s *ImapStore) Move(folder *domain.MailFolder, uids []uint32, destination string) error {
	err := s.selectFolder(folder)
	if err != nil {
		return err
	}
	return s.messageMover.move(uids, destination)
}

func (s *ImapStore) Close() error {
	return s.connection.Logout()
}

func (s *ImapStore) selectFolder(folder *domain.MailFolder) error {
	if s.selectedFolder == folder.Path {
		return nil
	}

	_, err := s.connection.Select(folder.Path, false)
	if err != nil {
		return fmt.Errorf("could not select folder %s: %w", folder.Path, err)
	}

	s.selectedFolder = folder.Path
	return nil
}

func (s *ImapStore) listUids() ([]uint32, error) {
	// Empty search criteria matches every message in the folder.
	criteria := imap.NewSearchCriteria()
	ids, err := s.connection.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not list folder: %w", err)
	}

	return ids, nil
}

func (s *ImapStore) deleteMessages(uids []uint32) error {
	return s.messageDeleter.delete(uids)
}

func (s *ImapStore) UidCopy(seqset *imap.SeqSet, dest string) error {
	return s.connection.UidCopy(seqset, dest)
}

func (s *ImapStore) Expunge(ch chan uint32) error {
	return s.connection.Expunge(ch)
}

func (s *ImapStore) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	return s.connection.UidSearch(criteria)
}

func (s *ImapStore) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := s.connection.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.DeletedFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not set delete flag: %w", err)
	}

	return seqset, nil
}

// taken from https://github.com/golang/go/wiki/SliceTricks
func partitionUids(uids []uint32, partitionSize int) [][]uint32 {
	batches := make([][]uint32, 0, (len(uids)+partitionSize-1)/partitionSize)

	for partitionSize < len(uids) {
		uids, batches = uids[partitionSize:], append(batches, uids[0:partitionSize:partitionSize])
	}
	batches = append(batches, uids)

	return batches
}

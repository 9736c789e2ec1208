// SPDX-License-Identifier: GPL-3.0-or-later
package imapstore

import (
	"fmt"
	"testing"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
)

type fakeExpungeConn struct {
	flaggedUids []uint32
	flagErr     error

	expungeUids []uint32
	expungeErr  error

	searchResult []uint32
	searchErr    error

	copiedTo  string
	copyErr   error
	deleted   []uint32
	deleteErr error
	movedTo   string
}

func (f *fakeExpungeConn) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	if f.flagErr != nil {
		return nil, f.flagErr
	}
	f.flaggedUids = uids
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	return seqset, nil
}

func (f *fakeExpungeConn) UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error {
	for _, uid := range f.expungeUids {
		ch <- uid
	}
	close(ch)
	return f.expungeErr
}

func (f *fakeExpungeConn) Expunge(ch chan uint32) error {
	for _, uid := range f.expungeUids {
		ch <- uid
	}
	close(ch)
	return f.expungeErr
}

func (f *fakeExpungeConn) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	return f.searchResult, f.searchErr
}

func (f *fakeExpungeConn) UidCopy(seqset *imap.SeqSet, dest string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copiedTo = dest
	return nil
}

func (f *fakeExpungeConn) deleteMessages(uids []uint32) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = uids
	return nil
}

func (f *fakeExpungeConn) UidMove(seqset *imap.SeqSet, dest string) error {
	f.movedTo = dest
	return nil
}

func TestUidplusDeleter(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeExpungeConn
		err  string
	}{
		{"ok", &fakeExpungeConn{expungeUids: u32a(1, 2)}, ""},
		{"flagerror", &fakeExpungeConn{flagErr: fmt.Errorf("broken")}, "could not flag items as deleted: broken"},
		{"countmismatch", &fakeExpungeConn{expungeUids: u32a(1)}, "unexpected number of expunges, expected 2 got 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := &uidplusDeleter{imapConn: tc.conn, uidplusClient: tc.conn}
			err := d.delete(u32a(1, 2))
			if len(tc.err) == 0 {
				assert.NoError(t, err)
				assert.Equal(t, u32a(1, 2), tc.conn.flaggedUids)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestFallbackDeleter(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeExpungeConn
		err  string
	}{
		{"ok", &fakeExpungeConn{expungeUids: u32a(1, 2)}, ""},
		{"strayflags", &fakeExpungeConn{searchResult: u32a(9)}, "folder is not ready for delete: folder has previous items with delete flag set"},
		{"searcherror", &fakeExpungeConn{searchErr: fmt.Errorf("broken")}, "could not search for flagged items in folder: broken"},
		{"countmismatch", &fakeExpungeConn{expungeUids: u32a(1, 2, 3)}, "unexpected number of expunges, expected 2 got 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := &fallbackDeleter{imapConn: tc.conn}
			err := d.delete(u32a(1, 2))
			if len(tc.err) == 0 {
				assert.NoError(t, err)
				assert.Equal(t, u32a(1, 2), tc.conn.flaggedUids)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestMoveMover(t *testing.T) {
	conn := &fakeExpungeConn{}
	m := &moveMover{moveClient: conn}

	assert.NoError(t, m.move(u32a(1, 2), "trash"))
	assert.Equal(t, "trash", conn.movedTo)
}

func TestCopyDeleteMover(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeExpungeConn
		err  string
	}{
		{"ok", &fakeExpungeConn{}, ""},
		{"copyerror", &fakeExpungeConn{copyErr: fmt.Errorf("broken")}, "could not copy mails: broken"},
		{"deleteerror", &fakeExpungeConn{deleteErr: fmt.Errorf("broken")}, "could not delete copied mails: broken"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &copyDeleteMover{imapConn: tc.conn}
			err := m.move(u32a(1, 2), "trash")
			if len(tc.err) == 0 {
				assert.NoError(t, err)
				assert.Equal(t, "trash", tc.conn.copiedTo)
				assert.Equal(t, u32a(1, 2), tc.conn.deleted)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func Test_partitionUids(t *testing.T) {
	tests := []struct {
		name     string
		input    []uint32
		expected [][]uint32
	}{
		{"singlepartition", u32a(1), [][]uint32{u32a(1)}},
		{"multiple", u32a(1, 2, 3, 4, 5), [][]uint32{u32a(1, 2), u32a(3, 4), u32a(5)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uids := partitionUids(tc.input, 2)
			assert.Equal(t, tc.expected, uids)
		})
	}
}

func u32a(val ...int) []uint32 {
	a := []uint32{}
	for _, v := range val {
		a = append(a, uint32(v))
	}

	return a
}

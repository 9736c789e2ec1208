// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

// MailFolder identifies one folder in the store hierarchy. Path is the
// store-native full name, Name the last path segment for display.
type MailFolder struct {
	Name      string
	Path      string
	Delimiter string
}

type MailMessage struct {
	Uid      uint32
	Subject  string
	Sender   string
	Received time.Time
	Body     string
}

// MessageKey groups candidate duplicates: same subject, same sender,
// received on the same calendar day. Keys are not unique.
type MessageKey struct {
	Subject string
	Sender  string
	Date    string
}

const keyDateLayout = "2006-01-02"

func KeyOf(m *MailMessage) MessageKey {
	return MessageKey{
		Subject: m.Subject,
		Sender:  m.Sender,
		Date:    m.Received.Format(keyDateLayout),
	}
}

// KeyPair is an unordered pair of message keys. Use NewKeyPair so that
// (a,b) and (b,a) produce the same value.
type KeyPair struct {
	First  MessageKey
	Second MessageKey
}

func NewKeyPair(a, b MessageKey) KeyPair {
	if keyLess(b, a) {
		a, b = b, a
	}
	return KeyPair{First: a, Second: b}
}

func keyLess(a, b MessageKey) bool {
	if a.Subject != b.Subject {
		return a.Subject < b.Subject
	}
	if a.Sender != b.Sender {
		return a.Sender < b.Sender
	}
	return a.Date < b.Date
}

type Verdict int

const (
	NotDuplicate = Verdict(0)
	Duplicate    = Verdict(1)
	Ambiguous    = Verdict(2)
)

// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	// Register additional charsets for header and body decoding.
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// ParsedMail is the view of a raw message the cleanup pipeline works with:
// the identity-key fields plus the plain-text body.
type ParsedMail struct {
	Subject  string
	Sender   string
	Received time.Time
	Body     string
}

// ParseMail extracts subject, sender, date and the first text part from a
// raw RFC 5322 message. The sender is the display name of the first From
// address, falling back to the address itself. A message without a text
// part yields an empty body.
func ParseMail(rawMail []byte) (*ParsedMail, error) {
	reader, err := mail.CreateReader(bytes.NewReader(rawMail))
	if err != nil {
		return nil, fmt.Errorf("could not parse mail: %w", err)
	}

	subject, err := reader.Header.Subject()
	if err != nil {
		return nil, fmt.Errorf("could not decode subject header: %w", err)
	}

	sender := ""
	fromList, err := reader.Header.AddressList("From")
	if err == nil && len(fromList) > 0 {
		sender = fromList[0].Name
		if sender == "" {
			sender = fromList[0].Address
		}
	}

	// Date parse failures leave the zero time, callers fall back to the
	// store-provided receive time.
	received, _ := reader.Header.Date()

	body, err := textBody(reader)
	if err != nil {
		return nil, err
	}

	return &ParsedMail{
		Subject:  subject,
		Sender:   sender,
		Received: received,
		Body:     body,
	}, nil
}

func textBody(reader *mail.Reader) (string, error) {
	plain, fallback := "", ""
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("could not read mail part: %w", err)
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}
		if !strings.HasPrefix(contentType, "text/") {
			continue
		}

		raw, err := io.ReadAll(part.Body)
		if err != nil {
			return "", fmt.Errorf("could not read mail body: %w", err)
		}

		if contentType == "text/plain" {
			plain = string(raw)
			break
		}
		if fallback == "" {
			fallback = string(raw)
		}
	}

	if plain != "" {
		return plain, nil
	}
	return fallback, nil
}

func ShortSubject(subject string) string {
	if (len(subject)) > 30 {
		subject = subject[:30] + "..."
	}
	return subject
}

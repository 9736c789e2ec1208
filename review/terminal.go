// SPDX-License-Identifier: GPL-3.0-or-later
package review

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/log"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
)

const timeFormat = "2006-01-02 15:04:05"

// TerminalResolver asks the operator whether a borderline pair is a
// duplicate: it renders both messages side by side and reads a y/n answer.
// It blocks the whole pipeline until answered, which is acceptable because
// ambiguous pairs are rare.
type TerminalResolver struct {
	in  *bufio.Reader
	out io.Writer

	l *logrus.Logger
}

func NewTerminalResolver(in io.Reader, out io.Writer) *TerminalResolver {
	return &TerminalResolver{
		in:  bufio.NewReader(in),
		out: out,
		l:   log.Logger(log.LOG_REVIEW),
	}
}

func (r *TerminalResolver) Resolve(request *domain.ReviewRequest) (bool, error) {
	r.l.WithFields(logrus.Fields{"folder": request.Candidate.Folder, "subject": request.Candidate.Subject, "ratio": request.Ratio}).Info("Asking for review of ambiguous pair")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"", "Original", "Candidate"})
	table.SetColWidth(60)
	table.Append([]string{"Folder", request.Original.Folder, request.Candidate.Folder})
	table.Append([]string{"Subject", request.Original.Subject, request.Candidate.Subject})
	table.Append([]string{"Sender", request.Original.Sender, request.Candidate.Sender})
	table.Append([]string{"Received", request.Original.Received.Format(timeFormat), request.Candidate.Received.Format(timeFormat)})
	table.Append([]string{"Similarity", fmt.Sprintf("%.2f", request.Ratio), fmt.Sprintf("%.2f", request.Ratio)})
	table.Append([]string{"Body head", request.Original.Head, request.Candidate.Head})
	table.Render()

	for {
		_, err := fmt.Fprint(r.out, "Delete candidate message? (y/n): ")
		if err != nil {
			return false, fmt.Errorf("could not write prompt: %w", err)
		}

		line, err := r.in.ReadString('\n')
		if err != nil && len(strings.TrimSpace(line)) == 0 {
			return false, fmt.Errorf("could not read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

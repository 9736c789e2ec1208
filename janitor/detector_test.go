// SPDX-License-Identifier: GPL-3.0-or-later
package janitor

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mboxtools/go-mail-janitor/domain"
	"github.com/mboxtools/go-mail-janitor/similarity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inbox = &domain.MailFolder{Name: "INBOX", Path: "INBOX", Delimiter: "/"}

// reportBody normalizes to well over HeadLength characters so that the
// head-of-body check sees identical heads for bodies differing only in
// their tail.
var reportBody = strings.Repeat("the quarterly numbers look solid and the release train stays right ahead of schedule ", 5)

func nullLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testJanitor(resolver domain.Resolver, configFunc ...ConfigFunc) *Janitor {
	config := &configuration{
		BodySimilarity: DefaultBodySimilarityThreshold,
		HeadSimilarity: DefaultHeadSimilarityThreshold,
	}
	for _, f := range configFunc {
		if err := f(config); err != nil {
			panic(err)
		}
	}

	return &Janitor{
		resolver:      resolver,
		configuration: config,
		l:             nullLogger(),
	}
}

func forbiddenResolver(t *testing.T) domain.Resolver {
	return domain.ResolverFunc(func(request *domain.ReviewRequest) (bool, error) {
		t.Fatal("resolver must not be consulted")
		return false, nil
	})
}

func answeringResolver(verdict bool) domain.Resolver {
	return domain.ResolverFunc(func(request *domain.ReviewRequest) (bool, error) {
		return verdict, nil
	})
}

func reportMail(uid uint32, hour int, body string) *domain.MailMessage {
	return &domain.MailMessage{
		Uid:      uid,
		Subject:  "Quarterly Report",
		Sender:   "reports@example.com",
		Received: time.Date(2023, 11, 2, hour, 30, 0, 0, time.UTC),
		Body:     body,
	}
}

func Test_findDuplicates_exactDuplicate(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))
	learned := domain.NewLearnedPatterns()
	original := reportMail(1, 8, reportBody)
	duplicate := reportMail(2, 9, reportBody)

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, duplicate}, learned)

	require.Nil(t, err)
	assert.Equal(t, []*domain.MailMessage{duplicate}, scan.deletions)
	assert.Equal(t, []domain.Decision{{
		FolderName: "INBOX",
		Subject:    duplicate.Subject,
		Sender:     duplicate.Sender,
		Received:   duplicate.Received,
		Action:     domain.DeletedDuplicate,
		Detail:     "similarity 1.00",
	}}, scan.decisions)
	assert.Equal(t, similarity.Normalize(reportBody), learned.Duplicates[domain.KeyOf(duplicate)])
	assert.Empty(t, learned.NonDuplicates)
}

func Test_findDuplicates_differentKeysNeverCompared(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))
	learned := domain.NewLearnedPatterns()
	report := reportMail(1, 8, reportBody)
	differentSubject := reportMail(2, 9, reportBody)
	differentSubject.Subject = "Monthly Report"
	differentDay := reportMail(3, 9, reportBody)
	differentDay.Received = differentDay.Received.AddDate(0, 0, 1)

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{report, differentSubject, differentDay}, learned)

	require.Nil(t, err)
	assert.Empty(t, scan.deletions)
	assert.Empty(t, scan.decisions)
	assert.Empty(t, learned.Duplicates)
}

func Test_findDuplicates_nearDuplicateConfirmed(t *testing.T) {
	var request *domain.ReviewRequest
	resolver := domain.ResolverFunc(func(r *domain.ReviewRequest) (bool, error) {
		request = r
		return true, nil
	})
	j := testJanitor(resolver)
	learned := domain.NewLearnedPatterns()
	original := reportMail(1, 8, reportBody)
	candidate := reportMail(2, 9, reportBody+" unsubscribe from this newsletter")

	ratio := similarity.Ratio(similarity.Normalize(original.Body), similarity.Normalize(candidate.Body))
	require.True(t, ratio >= DefaultBodySimilarityThreshold && ratio < 1, "bodies must fall into the review band, got %v", ratio)

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, candidate}, learned)

	require.Nil(t, err)
	assert.Equal(t, []*domain.MailMessage{candidate}, scan.deletions)
	require.Len(t, scan.decisions, 1)
	assert.Equal(t, domain.DeletedDuplicate, scan.decisions[0].Action)
	assert.Equal(t, similarity.Normalize(candidate.Body), learned.Duplicates[domain.KeyOf(candidate)])

	require.NotNil(t, request)
	assert.Equal(t, "INBOX", request.Original.Folder)
	assert.Equal(t, "INBOX", request.Candidate.Folder)
	assert.Equal(t, similarity.Head(similarity.Normalize(original.Body), HeadLength), request.Original.Head)
	assert.Equal(t, ratio, request.Ratio)
}

func Test_findDuplicates_nearDuplicateDeclined(t *testing.T) {
	j := testJanitor(answeringResolver(false))
	learned := domain.NewLearnedPatterns()
	original := reportMail(1, 8, reportBody)
	candidate := reportMail(2, 9, reportBody+" unsubscribe from this newsletter")

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, candidate}, learned)

	require.Nil(t, err)
	assert.Empty(t, scan.deletions)
	require.Len(t, scan.decisions, 1)
	assert.Equal(t, domain.KeptDistinct, scan.decisions[0].Action)
	assert.Empty(t, learned.Duplicates)
	assert.True(t, learned.IsNonDuplicate(domain.KeyOf(original), domain.KeyOf(candidate)))
}

func Test_findDuplicates_learnedNonDuplicateSkips(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))
	learned := domain.NewLearnedPatterns()
	original := reportMail(1, 8, reportBody)
	duplicate := reportMail(2, 9, reportBody)
	learned.MarkNonDuplicate(domain.KeyOf(original), domain.KeyOf(duplicate))

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, duplicate}, learned)

	require.Nil(t, err)
	assert.Empty(t, scan.deletions)
	assert.Empty(t, scan.decisions)
	assert.Empty(t, learned.Duplicates)
}

func Test_findDuplicates_comparedPairSkippedWithinScan(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))
	learned := domain.NewLearnedPatterns()
	original := reportMail(1, 8, reportBody)
	firstCopy := reportMail(2, 9, reportBody)
	secondCopy := reportMail(3, 10, reportBody)

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, firstCopy, secondCopy}, learned)

	require.Nil(t, err)
	// The pair of keys was compared when the first copy was found, so the
	// second copy is left alone until the next scan.
	assert.Equal(t, []*domain.MailMessage{firstCopy}, scan.deletions)
}

func Test_findDuplicates_dissimilarBodiesKept(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))
	learned := domain.NewLearnedPatterns()
	original := reportMail(1, 8, reportBody)
	unrelated := reportMail(2, 9, "completely unrelated content about the office plants")

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, unrelated}, learned)

	require.Nil(t, err)
	assert.Empty(t, scan.deletions)
	assert.Empty(t, scan.decisions)
	assert.Empty(t, learned.Duplicates)
	assert.True(t, learned.IsNonDuplicate(domain.KeyOf(original), domain.KeyOf(unrelated)))
}

func Test_findDuplicates_headMismatchSkipsReview(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))
	learned := domain.NewLearnedPatterns()

	// Both bodies share a long identical tail but open with entirely
	// different text longer than HeadLength, so the overall ratio lands in
	// the review band while the heads clearly differ.
	tail := strings.Repeat(reportBody, 8)
	original := reportMail(1, 8, strings.Repeat("alpha bravo charlie delta ", 13)+tail)
	candidate := reportMail(2, 9, strings.Repeat("november oscar quebec romeo ", 12)+tail)

	normalizedOriginal := similarity.Normalize(original.Body)
	normalizedCandidate := similarity.Normalize(candidate.Body)
	ratio := similarity.Ratio(normalizedOriginal, normalizedCandidate)
	require.True(t, ratio >= DefaultBodySimilarityThreshold && ratio < 1, "bodies must fall into the review band, got %v", ratio)
	headRatio := similarity.Ratio(similarity.Head(normalizedOriginal, HeadLength), similarity.Head(normalizedCandidate, HeadLength))
	require.True(t, headRatio < DefaultHeadSimilarityThreshold, "heads must differ, got %v", headRatio)

	scan, err := j.findDuplicates(inbox, []*domain.MailMessage{original, candidate}, learned)

	require.Nil(t, err)
	assert.Empty(t, scan.deletions)
	require.Len(t, scan.decisions, 1)
	assert.Equal(t, domain.KeptDistinct, scan.decisions[0].Action)
	assert.True(t, learned.IsNonDuplicate(domain.KeyOf(original), domain.KeyOf(candidate)))
}

func Test_findDuplicates_repeatedScansReachStableState(t *testing.T) {
	j := testJanitor(answeringResolver(false))
	learned := domain.NewLearnedPatterns()
	messages := []*domain.MailMessage{
		reportMail(1, 8, reportBody),
		reportMail(2, 9, reportBody),
		reportMail(3, 10, reportBody+" unsubscribe from this newsletter"),
	}

	// First scan deletes the exact copy; the near-duplicate shares its key
	// pair and is left for the next scan.
	first, err := j.findDuplicates(inbox, messages, learned)
	require.Nil(t, err)
	assert.Equal(t, []*domain.MailMessage{messages[1]}, first.deletions)

	// Second scan reviews the near-duplicate, the operator declines.
	survivors := withoutDeleted(messages, first.deletions)
	second, err := j.findDuplicates(inbox, survivors, learned)
	require.Nil(t, err)
	assert.Empty(t, second.deletions)
	require.Len(t, second.decisions, 1)
	assert.Equal(t, domain.KeptDistinct, second.decisions[0].Action)

	// From here on the learned non-duplicate pair suppresses the review.
	third, err := j.findDuplicates(inbox, survivors, learned)
	require.Nil(t, err)
	assert.Empty(t, third.deletions)
	assert.Empty(t, third.decisions)
}

func Test_findDuplicates_resolverError(t *testing.T) {
	resolver := domain.ResolverFunc(func(request *domain.ReviewRequest) (bool, error) {
		return false, fmt.Errorf("stdin closed")
	})
	j := testJanitor(resolver)
	messages := []*domain.MailMessage{
		reportMail(1, 8, reportBody),
		reportMail(2, 9, reportBody+" unsubscribe from this newsletter"),
	}

	scan, err := j.findDuplicates(inbox, messages, domain.NewLearnedPatterns())

	assert.Nil(t, scan)
	assert.EqualError(t, err, "could not resolve ambiguous pair: stdin closed")
}

func Test_findDuplicates_emptyFolder(t *testing.T) {
	j := testJanitor(forbiddenResolver(t))

	scan, err := j.findDuplicates(inbox, nil, domain.NewLearnedPatterns())

	require.Nil(t, err)
	assert.Empty(t, scan.deletions)
	assert.Empty(t, scan.decisions)
}

// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

// ReviewMessage is one side of an ambiguous pair, trimmed down to what a
// human needs to decide.
type ReviewMessage struct {
	Folder   string
	Subject  string
	Sender   string
	Received time.Time
	Head     string
}

type ReviewRequest struct {
	Original  ReviewMessage
	Candidate ReviewMessage
	Ratio     float64
}

// Resolver decides whether an ambiguous pair is a duplicate. The terminal
// implementation blocks on operator input; tests inject a ResolverFunc.
type Resolver interface {
	Resolve(request *ReviewRequest) (bool, error)
}

type ResolverFunc func(request *ReviewRequest) (bool, error)

func (f ResolverFunc) Resolve(request *ReviewRequest) (bool, error) {
	return f(request)
}

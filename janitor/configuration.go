// SPDX-License-Identifier: GPL-3.0-or-later
package janitor

import "fmt"

const (
	DefaultBodySimilarityThreshold = 0.9
	DefaultHeadSimilarityThreshold = 0.95

	// HeadLength is the number of leading normalized-body characters used
	// by the second-stage similarity check.
	HeadLength = 300
)

type ConfigFunc func(c *configuration) error

func DryRun() ConfigFunc {
	return func(c *configuration) error {
		c.DryRun = true

		return nil
	}
}

func MoveToTrash(trashFolder string) ConfigFunc {
	return func(c *configuration) error {
		if len(trashFolder) == 0 {
			return fmt.Errorf("TrashFolder cannot be null")
		}

		c.MoveToTrash = true
		c.TrashFolder = trashFolder
		return nil
	}
}

func Thresholds(bodySimilarity, headSimilarity float64) ConfigFunc {
	return func(c *configuration) error {
		if bodySimilarity <= 0 || bodySimilarity > 1 {
			return fmt.Errorf("BodySimilarity must be in (0,1], got %v", bodySimilarity)
		}
		if headSimilarity <= 0 || headSimilarity > 1 {
			return fmt.Errorf("HeadSimilarity must be in (0,1], got %v", headSimilarity)
		}

		c.BodySimilarity = bodySimilarity
		c.HeadSimilarity = headSimilarity
		return nil
	}
}

func RetentionFilters(filters []string) ConfigFunc {
	return func(c *configuration) error {
		for _, filter := range filters {
			if len(filter) == 0 {
				return fmt.Errorf("retention filters cannot contain empty strings")
			}
		}

		c.Filters = filters
		return nil
	}
}

type configuration struct {
	DryRun bool

	MoveToTrash bool
	TrashFolder string

	BodySimilarity float64
	HeadSimilarity float64

	Filters []string
}

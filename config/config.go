// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database     string
	PatternsFile string

	ImapHost string
	User     string
	Password string

	RootFolders []string

	BodySimilarity float64
	HeadSimilarity float64

	BodyFilters []string

	DryRun bool

	MoveToTrash bool
	TrashFolder string

	Loglevel *string
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		Database:       "journal.db",
		PatternsFile:   "learned_patterns.json",
		BodySimilarity: 0.9,
		HeadSimilarity: 0.95,
		DryRun:         true,
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite journal"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.PatternsFile, "PatternsFile must not be empty, set to a filename for the learned patterns"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.ImapHost, "ImapHost must not be empty, set to host:port of the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.User, "User must not be empty, set to username on the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Password, "Password must not be empty, set to password of User on the imap server"); err != nil {
		return err
	}

	if c.BodySimilarity <= 0 || c.BodySimilarity > 1 {
		return fmt.Errorf("BodySimilarity must be in (0,1], got %v", c.BodySimilarity)
	}

	if c.HeadSimilarity <= 0 || c.HeadSimilarity > 1 {
		return fmt.Errorf("HeadSimilarity must be in (0,1], got %v", c.HeadSimilarity)
	}

	if c.MoveToTrash {
		if err := validateNonEmptyStringField(c.TrashFolder, "TrashFolder must be set if MoveToTrash is set"); err != nil {
			return err
		}
	}

	for _, filter := range c.BodyFilters {
		if len(strings.TrimSpace(filter)) == 0 {
			return fmt.Errorf("BodyFilters must not contain empty entries")
		}
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}

// Package repository defines the errors shared by every storage backend.
package repository

import "errors"

var (
	ErrVocabularyNotFound = errors.New("vocabulary not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrQuestNotFound      = errors.New("quest not found")
)

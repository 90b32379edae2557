package model

import "errors"

// Common errors used across the application
var (
	// Start validation errors
	ErrInvalidVariant    = errors.New("unknown game variant")
	ErrInvalidWord       = errors.New("suggestion must be a single word, only letters")
	ErrWordTooShort      = errors.New("suggestion is too short")
	ErrInvalidWordLength = errors.New("suggestion has the wrong length for this variant")
	ErrWordRecentlyUsed  = errors.New("word has been used recently")
	ErrNotInDictionary   = errors.New("word not found in dictionary")
	ErrGameInProgress    = errors.New("please finish the current game before suggesting a new word")
	ErrNoWordAvailable   = errors.New("no word available for this variant")

	// Guess errors
	ErrGameNotFound     = errors.New("no game found")
	ErrGameNotStarted   = errors.New("game has not started")
	ErrGameComplete     = errors.New("game is already complete")
	ErrAlreadyGuessed   = errors.New("already guessed")
	ErrInvalidLetter    = errors.New("invalid letter")
	ErrInvalidGuess     = errors.New("invalid guess")
	ErrAlreadyPublished = errors.New("session has already been published")

	// Delivery errors
	ErrAnnouncementFailed = errors.New("announcement could not be delivered")

	// Storage errors
	ErrRenderNotFound      = errors.New("render not cached")
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)

package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/mcoot/hangbot/internal/dependencies/clock"
	"github.com/mcoot/hangbot/internal/dependencies/random"
	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/announce"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/dictionary"
	"github.com/mcoot/hangbot/internal/storage"
)

var (
	wordPattern        = regexp.MustCompile(`^[a-zA-Z]+$`)
	letterGuessPattern = regexp.MustCompile(`^([a-zA-Z])[!?]*$`)
)

var (
	successReactions = []string{"tada", "parrot", "white_check_mark", "banana-dance", "gopher-dance"}
	failureReactions = []string{"skull_and_crossbones", "x", "man-gesturing-no", "blob_dead", "coffin"}
)

// maxPickAttempts bounds re-picking when a random word was used recently
const maxPickAttempts = 10

// Config holds start validation settings
type Config struct {
	MinWordLength    int
	RecentWordWindow int
}

// DefaultConfig returns the default start validation settings
func DefaultConfig() Config {
	return Config{
		MinWordLength:    3,
		RecentWordWindow: 20,
	}
}

// WordPicker chooses a solution when the originator doesn't supply one
type WordPicker interface {
	RandomWord(length int, rnd random.Random) (string, error)
}

// NotInDictionaryError rejects a word the word source doesn't know
type NotInDictionaryError struct {
	Word        string
	Suggestions []string
}

func (e *NotInDictionaryError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s was not found in the dictionary", e.Word)
	}
	return fmt.Sprintf("%s was not found in the dictionary, did you mean: %s",
		e.Word, strings.Join(e.Suggestions, ", "))
}

// SuggestedWords returns near matches offered by the word source
func (e *NotInDictionaryError) SuggestedWords() []string {
	return e.Suggestions
}

// Is matches model.ErrNotInDictionary
func (e *NotInDictionaryError) Is(target error) bool {
	return target == model.ErrNotInDictionary
}

// StartRequest asks for a new game in a conversation
type StartRequest struct {
	Key        model.ConversationKey
	Variant    model.Variant
	Word       string // Optional for wordle, a random word is picked when empty
	Originator model.PlayerID
}

// GuessOutcome is the result of an accepted guess
type GuessOutcome struct {
	GuessResult
	Reaction     string             `json:"reaction"`
	Announcement model.Announcement `json:"announcement"`
}

// Controller runs the game flow: validating starts, applying guesses and
// keeping each conversation's announcement current
type Controller struct {
	registry *Registry
	words    dictionary.WordSource
	picker   WordPicker
	storage  storage.Storage
	board    *board.Service
	channel  announce.Channel
	clock    clock.Clock
	random   random.Random
	config   Config
	logger   *slog.Logger

	mu         sync.Mutex
	starting   map[model.ConversationKey]struct{}
	announcers map[model.ConversationKey]*announcer
}

// announcer serializes announcement updates for one conversation and
// remembers how far the posted board has got
type announcer struct {
	mu        sync.Mutex
	session   *Session
	delivered int
}

// NewController creates a new GameController
func NewController(
	registry *Registry,
	words dictionary.WordSource,
	picker WordPicker,
	storage storage.Storage,
	boardService *board.Service,
	channel announce.Channel,
	clock clock.Clock,
	random random.Random,
	config Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry: registry,
		words:    words,
		picker:   picker,
		storage:  storage,
		board:    boardService,
		channel:  channel,
		clock:    clock,
		random:   random,
		config:   config,
		logger:   logger.With(slog.String("component", "game")),
		starting:   make(map[model.ConversationKey]struct{}),
		announcers: make(map[model.ConversationKey]*announcer),
	}
}

// StartGame validates the suggested word, creates the session and announces it.
//
// If the announcement cannot be delivered the session is returned unpublished
// together with an error wrapping model.ErrAnnouncementFailed; it can be
// replaced by another start.
func (c *Controller) StartGame(ctx context.Context, req StartRequest) (*Session, error) {
	variant, err := model.ParseVariant(string(req.Variant))
	if err != nil {
		return nil, err
	}

	if err := c.claim(req.Key); err != nil {
		return nil, err
	}
	defer c.release(req.Key)

	word, err := c.chooseWord(ctx, variant, req.Word)
	if err != nil {
		return nil, err
	}

	info, err := c.words.Lookup(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("dictionary lookup: %w", err)
	}
	if !info.Found {
		return nil, &NotInDictionaryError{Word: word, Suggestions: info.Suggestions}
	}

	session := c.registry.CreateSession(ctx, req.Key, variant, word, req.Originator, info.Definition)

	if err := c.storage.AddRecentWord(ctx, word, c.config.RecentWordWindow); err != nil {
		c.logger.Error("failed to record recent word",
			slog.String("conversation", string(req.Key)),
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("game created",
		slog.String("conversation", string(req.Key)),
		slog.String("variant", string(variant)),
		slog.String("originator", string(req.Originator)),
		slog.Int("length", len(word)),
	)

	loc, err := c.channel.Post(ctx, req.Key, c.board.Announcement(session.Snapshot()))
	if err != nil {
		return session, fmt.Errorf("%w: %v", model.ErrAnnouncementFailed, err)
	}
	if err := session.Publish(loc); err != nil {
		return session, err
	}

	return session, nil
}

// claim reserves a conversation for a start, rejecting it while a game is
// running or another start is underway
func (c *Controller) claim(key model.ConversationKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.starting[key]; busy {
		return model.ErrGameInProgress
	}
	if existing, ok := c.registry.GetSession(key); ok && existing.Status() == model.StatusInProgress {
		return model.ErrGameInProgress
	}
	c.starting[key] = struct{}{}
	return nil
}

func (c *Controller) release(key model.ConversationKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.starting, key)
}

// chooseWord validates the suggested word, or picks one when none was given.
// Picked words that were used recently are re-picked rather than rejected.
func (c *Controller) chooseWord(ctx context.Context, variant model.Variant, word string) (string, error) {
	word = strings.TrimSpace(word)
	if word != "" {
		word = strings.ToUpper(word)
		return word, c.validateWord(ctx, variant, word)
	}
	if variant != model.VariantWordle || c.picker == nil {
		return "", model.ErrInvalidWord
	}

	for range maxPickAttempts {
		picked, err := c.picker.RandomWord(model.WordleLength, c.random)
		if err != nil {
			return "", err
		}
		picked = strings.ToUpper(picked)

		err = c.validateWord(ctx, variant, picked)
		if errors.Is(err, model.ErrWordRecentlyUsed) {
			continue
		}
		return picked, err
	}
	return "", model.ErrNoWordAvailable
}

func (c *Controller) validateWord(ctx context.Context, variant model.Variant, word string) error {
	if !wordPattern.MatchString(word) {
		return model.ErrInvalidWord
	}
	if len(word) < c.config.MinWordLength {
		return model.ErrWordTooShort
	}
	if variant == model.VariantWordle && len(word) != model.WordleLength {
		return model.ErrInvalidWordLength
	}

	recent, err := c.storage.IsRecentWord(ctx, word)
	if err != nil {
		c.logger.Error("failed to check recent words",
			slog.String("error", err.Error()),
		)
		return nil
	}
	if recent {
		return model.ErrWordRecentlyUsed
	}
	return nil
}

// GetSession returns the conversation's session
func (c *Controller) GetSession(key model.ConversationKey) (*Session, error) {
	session, ok := c.registry.GetSession(key)
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return session, nil
}

// Guess applies a guess and refreshes the conversation's announcement.
// Delivery failures are logged; the guess still stands and the next guess
// delivers the newer board.
func (c *Controller) Guess(ctx context.Context, key model.ConversationKey, raw string, guesser model.PlayerID) (*GuessOutcome, error) {
	session, err := c.GetSession(key)
	if err != nil {
		return nil, err
	}

	result, err := session.Guess(ctx, raw, guesser)
	if err != nil {
		return nil, err
	}

	reactions := failureReactions
	if result.Correct {
		reactions = successReactions
	}

	outcome := &GuessOutcome{
		GuessResult:  result,
		Reaction:     reactions[c.random.Intn(len(reactions))],
		Announcement: c.board.Announcement(result.Snapshot),
	}

	c.refreshAnnouncement(ctx, key, session)

	if result.Status.IsTerminal() {
		c.logger.Info("game complete",
			slog.String("conversation", string(key)),
			slog.String("status", string(result.Status)),
			slog.Int("guesses", len(result.Snapshot.Guesses)),
		)
	}

	return outcome, nil
}

func (c *Controller) announcerFor(key model.ConversationKey) *announcer {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.announcers[key]
	if !ok {
		a = &announcer{}
		c.announcers[key] = a
	}
	return a
}

// refreshAnnouncement edits the posted board to the session's latest state.
// Updates for a conversation run one at a time and the board is snapshotted
// under that lock, so a slow or retried update never lands after a newer one.
func (c *Controller) refreshAnnouncement(ctx context.Context, key model.ConversationKey, session *Session) {
	a := c.announcerFor(key)
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != session {
		a.session = session
		a.delivered = 0
	}

	snap := session.Snapshot()
	if snap.Location == nil || len(snap.Guesses) <= a.delivered {
		return
	}

	if err := c.channel.Update(ctx, *snap.Location, c.board.Announcement(snap)); err != nil {
		c.logger.Error("failed to update announcement",
			slog.String("conversation", string(key)),
			slog.Int("guesses", len(snap.Guesses)),
			slog.String("error", err.Error()),
		)
		return
	}
	a.delivered = len(snap.Guesses)
}

// HandleMessage treats a free-text chat message as a possible guess.
// Messages that don't look like a guess for the running game are ignored and
// return a nil outcome. Duplicate guesses still return model.ErrAlreadyGuessed.
func (c *Controller) HandleMessage(ctx context.Context, key model.ConversationKey, text string, sender model.PlayerID) (*GuessOutcome, error) {
	session, ok := c.registry.GetSession(key)
	if !ok || session.Status() != model.StatusInProgress {
		return nil, nil
	}

	guess, ok := ParseGuessMessage(text, session.Variant(), len(session.Solution()))
	if !ok {
		return nil, nil
	}

	outcome, err := c.Guess(ctx, key, guess, sender)
	if errors.Is(err, model.ErrGameComplete) {
		// Lost a race with the final guess
		return nil, nil
	}
	return outcome, err
}

// ParseGuessMessage extracts a guess from message text: a single letter,
// optionally followed by ! or ?, for hangman, or a whole word of the solution
// length for wordle
func ParseGuessMessage(text string, variant model.Variant, solutionLength int) (string, bool) {
	text = strings.TrimSpace(text)
	if variant == model.VariantWordle {
		if len(text) != solutionLength || !wordPattern.MatchString(text) {
			return "", false
		}
		return strings.ToUpper(text), true
	}

	m := letterGuessPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

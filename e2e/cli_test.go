package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hangbot/internal/api"
	"github.com/mcoot/hangbot/internal/factory"
	"github.com/mcoot/hangbot/internal/testutil"
	"github.com/mcoot/hangbot/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "hangbot-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/hangbot")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

// run executes the CLI as a player with JSON output
func (r *cliRunner) run(player string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "HANGBOT_PLAYER="+player)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	projectRoot := findProjectRoot(t)
	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{
		DictionaryPath: filepath.Join(projectRoot, "data/words.txt"),
		Logger:         logger,
	})
	require.NoError(t, err)
	require.NoError(t, app.Load(context.Background()))

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		StatsService:   app.StatsService,
		BoardService:   app.BoardService,
		HubManager:     app.HubManager,
		ResponseCache:  app.ResponseCache,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		StatsService:   app.StatsService,
		BoardService:   app.BoardService,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			app.HubManager.CloseAll()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameResponse struct {
	Conversation   string   `json:"conversation"`
	Variant        string   `json:"variant"`
	Status         string   `json:"status"`
	Originator     string   `json:"originator"`
	Pattern        string   `json:"pattern"`
	Guesses        []string `json:"guesses"`
	IncorrectCount int      `json:"incorrect_count"`
	Solution       string   `json:"solution"`
	Rows           [][]struct {
		Letter string `json:"letter"`
		State  string `json:"state"`
	} `json:"rows"`
}

type guessResponse struct {
	Guess    string       `json:"guess"`
	Correct  bool         `json:"correct"`
	Winning  bool         `json:"winning"`
	Reaction string       `json:"reaction"`
	Game     gameResponse `json:"game"`
}

type statsResponse struct {
	PlayerID            string `json:"player_id"`
	TotalGuesses        int    `json:"total_guesses"`
	CorrectGuesses      int    `json:"correct_guesses"`
	WinningGuesses      int    `json:"winning_guesses"`
	WordsSuggested      int    `json:"words_suggested"`
	SuggestionsResolved int    `json:"suggestions_resolved"`
	SuggestionsFailed   int    `json:"suggestions_failed"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("", "health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_HangmanGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Alice suggests a word
	output, err := cli.run("alice", "game", "start", "general", "gallows")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "in_progress", game.Status)
	assert.Equal(t, "_______", game.Pattern)

	// Bob plays it out with one miss
	var guess guessResponse
	for _, letter := range []string{"g", "z", "a", "l", "o", "w", "s"} {
		output, err = cli.run("bob", "game", "guess", "general", letter)
		require.NoError(t, err, "guess %s output: %s", letter, output)
		require.NoError(t, json.Unmarshal([]byte(output), &guess))
	}
	assert.True(t, guess.Winning)
	assert.Equal(t, "won", guess.Game.Status)
	assert.Equal(t, "GALLOWS", guess.Game.Solution)
	assert.Equal(t, 1, guess.Game.IncorrectCount)

	// Stats reflect the game
	output, err = cli.run("", "stats", "bob")
	require.NoError(t, err, "output: %s", output)
	var bob statsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))
	assert.Equal(t, 7, bob.TotalGuesses)
	assert.Equal(t, 6, bob.CorrectGuesses)
	assert.Equal(t, 1, bob.WinningGuesses)

	output, err = cli.run("alice", "stats")
	require.NoError(t, err, "output: %s", output)
	var alice statsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))
	assert.Equal(t, 1, alice.WordsSuggested)
	assert.Equal(t, 1, alice.SuggestionsResolved)
}

func TestCLI_WordleGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("alice", "game", "start", "--variant", "wordle", "general", "hotel")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("bob", "game", "guess", "general", "llama")
	require.NoError(t, err, "output: %s", output)

	var guess guessResponse
	require.NoError(t, json.Unmarshal([]byte(output), &guess))
	assert.False(t, guess.Correct)
	require.NotEmpty(t, guess.Game.Rows)

	// Only one L of LLAMA can be present in HOTEL
	states := make([]string, 0, 5)
	for _, tile := range guess.Game.Rows[0] {
		states = append(states, tile.State)
	}
	assert.Equal(t, []string{"present", "absent", "absent", "absent", "absent"}, states)

	output, err = cli.run("bob", "game", "say", "general", "hotel")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"winning": true`)
}

func TestCLI_Events(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, cli.binaryPath, "--server", ts.addr, "events", "general", "--json")
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	defer func() {
		cancel()
		_ = cmd.Wait()
	}()

	lines := bufio.NewScanner(stdout)

	// The stream opens with a connected event
	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"event":"connected"`)

	output, err := cli.run("alice", "game", "start", "general", "crane")
	require.NoError(t, err, "output: %s", output)

	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"event":"announcement_posted"`)

	output, err = cli.run("bob", "game", "guess", "general", "c")
	require.NoError(t, err, "output: %s", output)

	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"event":"announcement_updated"`)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// No game yet
	output, err := cli.run("bob", "game", "get", "general")
	assert.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_FOUND")

	// Word too short
	output, err = cli.run("alice", "game", "start", "general", "ox")
	assert.Error(t, err)
	assert.Contains(t, output, "WORD_TOO_SHORT")

	// Guessing needs a player
	output, err = cli.run("", "game", "guess", "general", "a")
	assert.Error(t, err)
	assert.Contains(t, output, "no player set")

	// Double start
	_, err = cli.run("alice", "game", "start", "general", "crane")
	require.NoError(t, err)
	output, err = cli.run("carol", "game", "start", "general", "slate")
	assert.Error(t, err)
	assert.True(t, strings.Contains(output, "GAME_IN_PROGRESS"), output)
}

// Package console implements terminal input and board rendering for a
// Tic-Tac-Toe session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/twipi/tictactoe/game"
)

// ErrInputClosed is returned once the input stream has no more lines.
var ErrInputClosed = errors.New("input closed")

const clearScreen = "\033[H\033[2J"

// Theme maps each cell to the glyph drawn for it.
type Theme map[game.Cell]string

var (
	ASCIITheme = Theme{
		game.Empty:  ".",
		game.Circle: "O",
		game.Cross:  "X",
	}
	UnicodeTheme = Theme{
		game.Empty:  "⬜",
		game.Circle: "⚫",
		game.Cross:  "❌",
	}
)

// ThemeByName returns the theme called name ("ascii" or "unicode").
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "ascii":
		return ASCIITheme, nil
	case "unicode":
		return UnicodeTheme, nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// Options configures a Console.
type Options struct {
	Theme Theme
	// ClearScreen clears the terminal before each board is drawn.
	ClearScreen bool
}

// Console reads selections from in and draws to out. Once the first selection
// is requested, the Console owns in until the process exits.
type Console struct {
	in   io.Reader
	out  io.Writer
	opts Options

	once  sync.Once
	lines chan string
	err   error // set before lines is closed
}

// New creates a new console.
func New(in io.Reader, out io.Writer, opts Options) *Console {
	if opts.Theme == nil {
		opts.Theme = ASCIITheme
	}
	return &Console{
		in:    in,
		out:   out,
		opts:  opts,
		lines: make(chan string),
	}
}

func (c *Console) readLines() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
	c.err = scanner.Err()
}

// readLine blocks until a line is read or ctx is done.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.once.Do(func() { go c.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.err != nil {
				return "", fmt.Errorf("%w: %w", ErrInputClosed, c.err)
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}

// RequestBoundedInteger prints prompt and reads numbers until one in [1, maxValue]
// is entered.
func (c *Console) RequestBoundedInteger(ctx context.Context, prompt string, maxValue int) (int, error) {
	if prompt != "" {
		fmt.Fprintln(c.out, prompt)
	}

	for {
		fmt.Fprintf(c.out, "Enter a number (up to %d): ", maxValue)

		line, err := c.readLine(ctx)
		if err != nil {
			fmt.Fprintln(c.out)
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			fmt.Fprintln(c.out, "That was not a valid number, try again.")
		case n < 1 || n > maxValue:
			fmt.Fprintf(c.out, "Number must be between 1 and %d, try again.\n", maxValue)
		default:
			return n, nil
		}
	}
}

// Render draws the board with 1-based row and column labels.
func (c *Console) Render(board game.Board) {
	var s strings.Builder
	if c.opts.ClearScreen {
		s.WriteString(clearScreen)
	}

	s.WriteString("  1 2 3\n")
	for r := range 3 {
		s.WriteString(strconv.Itoa(r + 1))
		for col := range 3 {
			s.WriteByte(' ')
			s.WriteString(c.opts.Theme[board[r][col]])
		}
		s.WriteByte('\n')
	}

	io.WriteString(c.out, s.String())
}

// Notify prints a message on its own line.
func (c *Console) Notify(msg string) {
	fmt.Fprintln(c.out, msg)
}

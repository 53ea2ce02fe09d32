package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"connectn/engine"
	"connectn/game"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const playHelp = `commands:
  <row> <col>   play there, the AI answers
  ai            let the AI move for the side to play
  undo          take back the last move
  depth <n>     set the AI search depth
  hints         show the moves the AI considers, heaviest first
  quit          leave the game`

type command struct {
	name string
	args []int
}

// parseCommand reads one line of input. A pair of numbers is a move.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errors.New("empty command")
	}

	if len(fields) == 2 {
		row, errRow := strconv.Atoi(fields[0])
		col, errCol := strconv.Atoi(fields[1])
		if errRow == nil && errCol == nil {
			return command{name: "move", args: []int{row, col}}, nil
		}
	}

	switch fields[0] {
	case "ai", "undo", "hints", "help", "quit", "exit":
		if len(fields) != 1 {
			return command{}, errors.Errorf("%s takes no arguments", fields[0])
		}
		return command{name: fields[0]}, nil
	case "depth":
		if len(fields) != 2 {
			return command{}, errors.New("usage: depth <n>")
		}
		depth, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, errors.Wrap(err, "depth")
		}
		return command{name: "depth", args: []int{depth}}, nil
	}
	return command{}, errors.Errorf("unknown command %q", line)
}

func newPlayCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play against the AI in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := engine.NewManager(opts.settings())
			if err != nil {
				return err
			}
			return playLoop(m, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func playLoop(m *engine.Manager, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "You play %s, %d in a row wins. Type help for commands.\n", m.HumanPlayer(), m.WinLength())

	if !m.PlayerGoesFirst() {
		aiTurn(m, out)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, m.String())
		printStatus(m, out)
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		switch cmd.name {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, playHelp)
		case "move":
			if err := m.Play(game.Position{Row: cmd.args[0], Col: cmd.args[1]}); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if !m.IsOver() {
				aiTurn(m, out)
			}
		case "ai":
			aiTurn(m, out)
		case "undo":
			if err := m.Undo(); err != nil {
				fmt.Fprintln(out, err)
			}
		case "depth":
			if err := m.SetDepth(cmd.args[0]); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "AI depth is now %d\n", m.Depth())
		case "hints":
			for i, c := range m.Candidates() {
				if i == 10 {
					break
				}
				fmt.Fprintf(out, "  %d %d  weight %d\n", c.Position.Row, c.Position.Col, c.Weight)
			}
		}
	}
}

func aiTurn(m *engine.Manager, out io.Writer) {
	player := m.WhoseTurn()
	move, ok := m.PlayAI()
	if !ok {
		fmt.Fprintln(out, "AI has no move")
		return
	}
	fmt.Fprintf(out, "AI plays %s at %d %d\n", player, move.Row, move.Col)
}

func printStatus(m *engine.Manager, out io.Writer) {
	switch {
	case m.Winner() != game.None:
		fmt.Fprintf(out, "%s wins!\n", m.Winner())
	case m.IsFull():
		fmt.Fprintln(out, "Draw.")
	default:
		fmt.Fprintf(out, "%s to play, score %d\n", m.WhoseTurn(), m.Score())
	}
}

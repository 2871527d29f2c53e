package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/engine"
)

// applyCommand creates the apply command.
func (c *CLI) applyCommand() *cobra.Command {
	var f editFlags

	cmd := &cobra.Command{
		Use:   "apply [layout] [commands]",
		Short: "Replay a file of JSON commands against a layout",
		Long: `Apply engine commands to a layout file, one JSON object per line:

  {"type": "move", "id": "a", "x": 4, "y": 0}
  {"type": "resize", "id": "b", "w": 3, "h": 2, "handle": "sw"}
  {"type": "compact", "compactor": "horizontal"}
  {"type": "resolveCollisions", "id": "a", "x": 0, "y": 2, "isUserAction": false}
  {"type": "reflow"}
  {"type": "add", "item": {"id": "c", "x": -1, "y": -1, "w": 2, "h": 1}}
  {"type": "remove", "id": "c"}

Blank lines and lines starting with # are skipped. Use - to read commands
from stdin. The first failing command stops the replay and nothing is written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := readCommands(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			return c.runEdit(args[0], f, func(w *workspace) error {
				for i, ec := range cmds {
					if _, err := w.eng.Dispatch(ec); err != nil {
						return fmt.Errorf("command %d (%s): %w", i+1, engine.String(ec), err)
					}
				}
				loggerFromContext(cmd.Context()).Debug("applied commands", "count", len(cmds))
				return nil
			})
		},
	}

	addEditFlags(cmd, &f)
	return cmd
}

// readCommands decodes one command per non-blank line of path, or of stdin
// when path is "-".
func readCommands(stdin io.Reader, path string) ([]engine.Command, error) {
	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open commands: %w", err)
		}
		defer file.Close()
		r = file
	}

	var cmds []engine.Command
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		ec, err := engine.DecodeCommand(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		cmds = append(cmds, ec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read commands: %w", err)
	}
	return cmds, nil
}

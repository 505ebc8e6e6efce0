package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console prints numbered menus and reads choices from a line-based input.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// PrintMenu writes one item per line, numbered from 1 when numbered is set,
// followed by a blank line.
func (c *Console) PrintMenu(items []string, numbered bool) {
	for i, item := range items {
		if numbered {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, item)
		} else {
			fmt.Fprintln(c.out, item)
		}
	}
	fmt.Fprintln(c.out)
}

// PrintList renders each element with render and writes it on its own line.
func PrintList[T any](c *Console, render func(T) string, list []T, numbered bool) {
	for i, v := range list {
		prefix := ""
		if numbered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		fmt.Fprintf(c.out, "%s%s\n", prefix, render(v))
	}
}

// ReadInt keeps asking until a number in [min, max] is entered.
func (c *Console) ReadInt(min, max int, prompt string) (int, error) {
	for {
		if prompt != "" {
			fmt.Fprint(c.out, prompt)
		}
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}

		n, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err != nil || n < min || n > max {
			fmt.Fprintf(c.out, "Invalid input. Enter a number between %d and %d.\n", min, max)
			continue
		}
		return n, nil
	}
}

// Choose prints the prompt and options and returns the 0-based choice.
func (c *Console) Choose(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to choose from")
	}
	fmt.Fprintln(c.out, prompt)
	c.PrintMenu(options, true)

	n, err := c.ReadInt(1, len(options), "Enter an option number: ")
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func (c *Console) Notify(message string) {
	fmt.Fprintln(c.out, message)
}

// Package prompt implements the interactive console dialogue.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sivchari/carfilter/internal/filter"
)

const invalidNumber = "Please enter a valid number."

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// Selection is what the dialogue asks once the cars are listed.
type Selection struct {
	Mode      filter.Mode
	Criterion filter.Criterion
}

// New creates a new prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Token prints label and returns the next trimmed line.
// End of input is reported as io.ErrUnexpectedEOF.
func (p *Prompter) Token(label string) (string, error) {
	fmt.Fprint(p.out, label)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", io.ErrUnexpectedEOF
	}

	return strings.TrimSpace(p.in.Text()), nil
}

// Int prompts until a well-formed integer is entered.
func (p *Prompter) Int(label string) (int, error) {
	for {
		s, err := p.Token(label)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(p.out, invalidNumber)

			continue
		}

		return n, nil
	}
}

// Count prompts until a non-negative car count is entered.
func (p *Prompter) Count() (int, error) {
	for {
		n, err := p.Int("Enter the number of cars you want to create: ")
		if err != nil {
			return 0, err
		}

		if n >= 0 {
			return n, nil
		}

		fmt.Fprintln(p.out, "Please enter a number that is not negative.")
	}
}

// Selection asks for the delivery mode, the criterion and, for the year
// based criteria, the year.
func (p *Prompter) Selection() (Selection, error) {
	var sel Selection

	for {
		s, err := p.Token("Enter R for return or W for signal: ")
		if err != nil {
			return Selection{}, err
		}

		mode, err := filter.ParseMode(s)
		if errors.Is(err, filter.ErrUnknownMode) {
			fmt.Fprintf(p.out, "Unknown option %q.\n", s)

			continue
		}

		sel.Mode = mode

		break
	}

	var kind filter.Kind

	for {
		s, err := p.Token("Enter the criteria for searching cars (oldest, not older than, youngest, not younger than): ")
		if err != nil {
			return Selection{}, err
		}

		kind, err = filter.ParseKind(s)
		if errors.Is(err, filter.ErrUnknownCriterion) {
			fmt.Fprintf(p.out, "Unknown criteria %q.\n", s)

			continue
		}

		break
	}

	var year *int

	if kind.NeedsYear() {
		y, err := p.Int("Enter the year: ")
		if err != nil {
			return Selection{}, err
		}

		year = &y
	}

	c, err := filter.Parse(kind.String(), year)
	if err != nil {
		return Selection{}, err
	}

	sel.Criterion = c

	return sel, nil
}

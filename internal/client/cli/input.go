package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/kotoba/internal/cryptox"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the terminal fd
// without echo. A newline is printed after the read to keep the UI tidy.
func GetPassword(fd int, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer cryptox.Wipe(pw)
	return string(pw), nil
}

// prompter asks the user for input. Passwords are read without echo when
// the input is a terminal and as plain lines otherwise.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

func (p *prompter) Text(prompt string) (string, error) {
	return GetSimpleText(p.in, prompt, p.out)
}

// TextOr returns v when it is set and asks for it otherwise.
func (p *prompter) TextOr(v, prompt string) (string, error) {
	if v != "" {
		return v, nil
	}
	return p.Text(prompt)
}

func (p *prompter) Password(prompt string) (string, error) {
	if p.fd >= 0 {
		return GetPassword(p.fd, prompt, p.out)
	}
	return p.Text(prompt)
}

// Line reads one line without a prompt.
func (p *prompter) Line() (string, error) {
	return readLine(p.in)
}

// Command passphrase hashes the household passphrase for
// HOUSEHOLD_PASSPHRASE_HASH.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("passphrase", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envLine := fs.Bool("env", true, "Print the hash as an .env line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := newPassphraseReader(stdin)

	fmt.Fprint(stdout, "Passphrase: ")
	passphrase, err := in.read()
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	fmt.Fprintln(stdout)

	fmt.Fprint(stdout, "Repeat passphrase: ")
	repeated, err := in.read()
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	fmt.Fprintln(stdout)

	if err := auth.ValidatePassphrase(passphrase); err != nil {
		return err
	}
	if passphrase != repeated {
		return fmt.Errorf("passphrases do not match")
	}

	hash, err := auth.HashPassword(passphrase)
	if err != nil {
		return err
	}
	if *envLine {
		fmt.Fprintf(stdout, "HOUSEHOLD_PASSPHRASE_HASH=%s\n", hash)
	} else {
		fmt.Fprintln(stdout, hash)
	}
	return nil
}

type passphraseReader struct {
	terminal *os.File
	scanner  *bufio.Scanner
}

func newPassphraseReader(stdin io.Reader) *passphraseReader {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &passphraseReader{terminal: f}
	}
	// Pipes and tests.
	return &passphraseReader{scanner: bufio.NewScanner(stdin)}
}

func (p *passphraseReader) read() (string, error) {
	if p.terminal != nil {
		bytePassphrase, err := term.ReadPassword(int(p.terminal.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassphrase), nil
	}

	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

package client

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type ValidationError struct {
	Arg   string
	Cause string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Arg, e.Cause)
}

// Command is one parsed CLI invocation.
type Command struct {
	Name string

	// send
	To      string
	Subject string
	Text    string
	HTML    string

	// upload / download / delete
	File   string
	Output string
}

// ParseArgs validates a raw argument list into a Command.
func ParseArgs(args []string) (*Command, error) {
	if len(args) == 0 {
		return nil, &ValidationError{Arg: "<command>", Cause: "no command provided"}
	}

	cmd := &Command{Name: args[0]}
	rest := args[1:]

	switch cmd.Name {
	case "health", "list":
		if len(rest) != 0 {
			return nil, &ValidationError{Arg: rest[0], Cause: "unexpected argument"}
		}

	case "send":
		fs := flag.NewFlagSet("send", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.StringVar(&cmd.To, "to", "", "recipient address")
		fs.StringVar(&cmd.Subject, "subject", "", "message subject")
		fs.StringVar(&cmd.Text, "text", "", "plain-text body")
		fs.StringVar(&cmd.HTML, "html", "", "HTML body")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if cmd.To == "" {
			return nil, &ValidationError{Arg: "-to", Cause: "recipient is required"}
		}
		if cmd.Subject == "" {
			return nil, &ValidationError{Arg: "-subject", Cause: "subject is required"}
		}
		if cmd.Text == "" && cmd.HTML == "" {
			return nil, &ValidationError{Arg: "-text/-html", Cause: "a message body is required"}
		}

	case "upload":
		if len(rest) != 1 {
			return nil, &ValidationError{Arg: "<file>", Cause: "exactly one file path required"}
		}
		info, err := os.Stat(rest[0])
		if err != nil {
			return nil, &ValidationError{Arg: rest[0], Cause: "not found or not accessible"}
		}
		if info.IsDir() {
			return nil, &ValidationError{Arg: rest[0], Cause: "is a directory, not a file"}
		}
		cmd.File = rest[0]

	case "download":
		fs := flag.NewFlagSet("download", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.StringVar(&cmd.Output, "o", "", "output path")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if len(fs.Args()) != 1 {
			return nil, &ValidationError{Arg: "<filename>", Cause: "exactly one stored name required"}
		}
		cmd.File = fs.Arg(0)
		if cmd.Output == "" {
			cmd.Output = cmd.File
		}

	case "delete":
		if len(rest) != 1 {
			return nil, &ValidationError{Arg: "<filename>", Cause: "exactly one stored name required"}
		}
		cmd.File = rest[0]

	default:
		return nil, &ValidationError{Arg: cmd.Name, Cause: "unknown command"}
	}

	return cmd, nil
}

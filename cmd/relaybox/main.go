package main

import (
	"context"
	"fmt"
	"os"

	"relaybox/internal/client"
)

const usage = `Usage: relaybox <command> [options]

Commands:
  health                                     check the gateway
  send -to <addr> -subject <s> [-text <t>] [-html <h>]
  upload <file>                              store a local file
  list                                       list stored files
  download [-o <path>] <filename>            fetch a stored file
  delete <filename>                          remove a stored file

The gateway address is taken from RELAYBOX_URL (default http://localhost:3000).`

func main() {
	cmd, err := client.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, usage)
		os.Exit(1)
	}

	baseURL := os.Getenv("RELAYBOX_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	if err := run(context.Background(), client.New(baseURL), cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd *client.Command) error {
	switch cmd.Name {
	case "health":
		msg, err := c.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Println(msg)

	case "send":
		id, err := c.SendMail(ctx, cmd.To, cmd.Subject, cmd.Text, cmd.HTML)
		if err != nil {
			return err
		}
		fmt.Printf("Sent: %s\n", id)

	case "upload":
		file, err := c.Upload(ctx, cmd.File)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%d bytes) as %s\n", file.OriginalName, file.Size, file.Filename)

	case "list":
		entries, err := c.ListFiles(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No files stored.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-12d %-25s %s\n", e.Size, e.UploadedAt, e.Filename)
		}

	case "download":
		n, err := c.Download(ctx, cmd.File, cmd.Output)
		if err != nil {
			return err
		}
		fmt.Printf("Downloaded %d bytes to %s\n", n, cmd.Output)

	case "delete":
		if err := c.Delete(ctx, cmd.File); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", cmd.File)
	}

	return nil
}

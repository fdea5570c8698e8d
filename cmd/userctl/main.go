// userctl is a terminal client for the user-management service.
//
// Usage:
//
//	userctl [-addr URL] [-email EMAIL] <command> [args]
//
// Commands: register, login, list, get <id>, update, passwd,
// admin-passwd <id>, delete <id>, health. Passwords are read from the
// terminal without echo.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"usermgmt/internal/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8000", "service base URL")
	email := flag.String("email", "", "email to authenticate as")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*addr)
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	var err error
	switch args[0] {
	case "register":
		err = runRegister(ctx, c, reader)
	case "login":
		err = withCredentials(c, *email, reader, func() error {
			u, err := c.Login(ctx)
			if err != nil {
				return err
			}
			printUser(u)
			return nil
		})
	case "list":
		err = withCredentials(c, *email, reader, func() error {
			users, err := c.List(ctx)
			if err != nil {
				return err
			}
			for i := range users {
				printUser(&users[i])
			}
			return nil
		})
	case "get":
		id, perr := idArg(args)
		if perr != nil {
			err = perr
			break
		}
		err = withCredentials(c, *email, reader, func() error {
			u, err := c.Get(ctx, id)
			if err != nil {
				return err
			}
			printUser(u)
			return nil
		})
	case "update":
		err = withCredentials(c, *email, reader, func() error {
			return runUpdate(ctx, c, reader)
		})
	case "passwd":
		err = withCredentials(c, *email, reader, func() error {
			return runPasswd(ctx, c)
		})
	case "admin-passwd":
		id, perr := idArg(args)
		if perr != nil {
			err = perr
			break
		}
		err = withCredentials(c, *email, reader, func() error {
			pw, err := promptPassword("New password for user: ")
			if err != nil {
				return err
			}
			return c.AdminChangePassword(ctx, id, pw)
		})
	case "delete":
		id, perr := idArg(args)
		if perr != nil {
			err = perr
			break
		}
		err = withCredentials(c, *email, reader, func() error {
			return c.Delete(ctx, id)
		})
	case "health":
		err = c.Health(ctx)
		if err == nil {
			fmt.Println("healthy")
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: userctl [-addr URL] [-email EMAIL] <register|login|list|get|update|passwd|admin-passwd|delete|health> [id]")
}

func idArg(args []string) (uint64, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s: id argument required", args[0])
	}
	return strconv.ParseUint(args[1], 10, 64)
}

// withCredentials collects the Basic auth pair, then runs fn.
func withCredentials(c *client.Client, email string, reader *bufio.Reader, fn func() error) error {
	var err error
	if email == "" {
		email, err = promptLine(reader, "Email")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	c.SetCredentials(email, password)
	return fn()
}

func runRegister(ctx context.Context, c *client.Client, reader *bufio.Reader) error {
	name, err := promptLine(reader, "Name")
	if err != nil {
		return err
	}
	email, err := promptLine(reader, "Email")
	if err != nil {
		return err
	}
	phoneStr, err := promptLine(reader, "Phone (optional)")
	if err != nil {
		return err
	}
	var phone *string
	if phoneStr != "" {
		phone = &phoneStr
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	u, err := c.Register(ctx, name, email, password, phone)
	if err != nil {
		return err
	}
	printUser(u)
	return nil
}

func runUpdate(ctx context.Context, c *client.Client, reader *bufio.Reader) error {
	fmt.Println("Leave a field empty to keep the current value.")
	name, err := promptLine(reader, "New name")
	if err != nil {
		return err
	}
	email, err := promptLine(reader, "New email")
	if err != nil {
		return err
	}
	phone, err := promptLine(reader, "New phone")
	if err != nil {
		return err
	}
	u, err := c.UpdateProfile(ctx, optional(name), optional(email), optional(phone))
	if err != nil {
		return err
	}
	printUser(u)
	return nil
}

func runPasswd(ctx context.Context, c *client.Client) error {
	newPw, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	repeat, err := promptPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	if err := c.ChangePassword(ctx, newPw, repeat); err != nil {
		return err
	}
	fmt.Println("Password changed.")
	return nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s\n> ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printUser(u *client.User) {
	phone := "-"
	if u.Phone != nil && *u.Phone != "" {
		phone = *u.Phone
	}
	fmt.Printf("#%d  %s  <%s>  phone: %s  created: %s\n",
		u.ID, u.Name, u.Email, phone, u.CreatedAt.Format("2006-01-02 15:04:05"))
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"metra_client/internal/metra"
)

func dispatch(ctx context.Context, opts *Options, client *metra.Session, args []string) error {
	command := strings.ToLower(args[0])
	rest := args[1:]

	switch command {
	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("usage: login <phone> <password>")
		}
		if err := client.Auth.Login(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Logged in.")
		return nil

	case "logout":
		if err := client.Auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Logged out.")
		return nil

	case "whoami":
		user, err := client.Auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(os.Stdout, "Not logged in.")
			return nil
		}
		return write(opts, user, writeUser)

	case "branches":
		search := strings.Join(rest, " ")
		branches, err := client.Branches.List(ctx, search)
		if err != nil {
			return err
		}
		return write(opts, branches, writeBranches)

	case "branch":
		id, err := intArg(rest, 0, "branch <id>")
		if err != nil {
			return err
		}
		branch, err := client.Branches.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return write(opts, []metra.Branch{branch}, writeBranches)

	case "branch-find":
		if len(rest) < 1 {
			return fmt.Errorf("usage: branch-find <name>")
		}
		name := strings.Join(rest, " ")
		id, ok, err := client.Branches.IDByName(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stdout, "No branch named %q.\n", name)
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s -> id=%d\n", name, id)
		return nil

	case "branch-add":
		if len(rest) < 2 {
			return fmt.Errorf("usage: branch-add <name> <type> [description]")
		}
		request := metra.BranchRequest{
			Name:        rest[0],
			Type:        rest[1],
			Description: strings.Join(rest[2:], " "),
		}
		if err := client.Branches.Create(ctx, request); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Branch created.")
		return nil

	case "branch-edit":
		if len(rest) < 3 {
			return fmt.Errorf("usage: branch-edit <id> <name> <type> [description]")
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid branch id %q", rest[0])
		}
		request := metra.BranchRequest{
			Name:        rest[1],
			Type:        rest[2],
			Description: strings.Join(rest[3:], " "),
		}
		if err := client.Branches.Update(ctx, id, request); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Branch updated.")
		return nil

	case "branch-del":
		id, err := intArg(rest, 0, "branch-del <id>")
		if err != nil {
			return err
		}
		if err := client.Branches.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Branch deleted.")
		return nil

	case "clients":
		page := 1
		search := ""
		if len(rest) > 0 {
			if n, err := strconv.Atoi(rest[0]); err == nil {
				page = n
				rest = rest[1:]
			}
		}
		search = strings.Join(rest, " ")
		result, err := client.Clients.List(ctx, page, search, nil)
		if err != nil {
			return err
		}
		return write(opts, result, writeClientPage)

	case "client-options":
		search := strings.Join(rest, " ")
		clients, err := client.Clients.Options(ctx, search)
		if err != nil {
			return err
		}
		return write(opts, clients, writeClients)

	case "client":
		id, err := intArg(rest, 0, "client <id>")
		if err != nil {
			return err
		}
		record, err := client.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return write(opts, []metra.Client{record}, writeClients)

	case "client-add":
		if len(rest) < 2 {
			return fmt.Errorf("usage: client-add <name> <phone>")
		}
		request := metra.ClientRequest{Name: rest[0], Phone: rest[1]}
		if err := client.Clients.Create(ctx, request); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Client created.")
		return nil

	case "client-edit":
		if len(rest) < 3 {
			return fmt.Errorf("usage: client-edit <id> <name> <phone>")
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid client id %q", rest[0])
		}
		request := metra.ClientRequest{Name: rest[1], Phone: rest[2]}
		if err := client.Clients.Update(ctx, id, request); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Client updated.")
		return nil

	case "client-del":
		id, err := intArg(rest, 0, "client-del <id>")
		if err != nil {
			return err
		}
		if err := client.Clients.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Client deleted.")
		return nil

	case "client-image":
		if len(rest) != 1 {
			return fmt.Errorf("usage: client-image <path>")
		}
		file, err := os.Open(rest[0])
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer file.Close()
		path, err := client.Clients.UploadImage(ctx, filepath.Base(rest[0]), file)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Uploaded: %s\n", client.Clients.ImageURL(path))
		return nil

	case "invoice":
		id, err := intArg(rest, 0, "invoice <id>")
		if err != nil {
			return err
		}
		invoice, err := client.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return write(opts, invoice, writeInvoice)

	case "materials":
		rentID, err := intArg(rest, 0, "materials <rentId>")
		if err != nil {
			return err
		}
		materials, err := client.Invoices.Materials(ctx, rentID)
		if err != nil {
			return err
		}
		return write(opts, materials, writeMaterials)

	case "invoice-add":
		if len(rest) < 3 {
			return fmt.Errorf("usage: invoice-add <branchId> <clientId> <rentId>")
		}
		branchID, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid branch id %q", rest[0])
		}
		clientID, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid client id %q", rest[1])
		}
		rentID, err := strconv.Atoi(rest[2])
		if err != nil {
			return fmt.Errorf("invalid rent id %q", rest[2])
		}
		invoice, err := client.Invoices.Create(ctx, metra.InvoiceCreateRequest{
			BranchID: branchID,
			ClientID: clientID,
			RentID:   rentID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Invoice created: %s [%d]\n", invoice.FakturaNumber, invoice.ID)
		return nil

	case "invoice-del":
		id, err := intArg(rest, 0, "invoice-del <id>")
		if err != nil {
			return err
		}
		if err := client.Invoices.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Invoice deleted (restorable).")
		return nil

	case "invoice-restore":
		id, err := intArg(rest, 0, "invoice-restore <id>")
		if err != nil {
			return err
		}
		if err := client.Invoices.Restore(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Invoice restored.")
		return nil

	case "invoice-purge":
		id, err := intArg(rest, 0, "invoice-purge <id>")
		if err != nil {
			return err
		}
		if err := client.Invoices.ForceDelete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Invoice permanently deleted.")
		return nil

	case "search-clients":
		return runLiveSearch(ctx, opts, client)

	default:
		return fmt.Errorf("unknown command %q (try 'help')", command)
	}
}

func intArg(args []string, index int, usage string) (int, error) {
	if len(args) <= index {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q (usage: %s)", args[index], usage)
	}
	return id, nil
}

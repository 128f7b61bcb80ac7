package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"metra_client/internal/metra"
)

// write renders either JSON (machine) or the human writer for the value.
func write[T any](opts *Options, value T, human func(T)) error {
	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
	human(value)
	return nil
}

func writeUser(user *metra.UserInfo) {
	fmt.Fprintf(os.Stdout, "%s (%s)", user.Name, user.Role)
	if user.BranchName != "" {
		fmt.Fprintf(os.Stdout, " @ %s", user.BranchName)
	}
	fmt.Fprintln(os.Stdout)
}

func writeBranches(branches []metra.Branch) {
	if len(branches) == 0 {
		fmt.Fprintln(os.Stdout, "(no branches)")
		return
	}
	for i, branch := range branches {
		fmt.Fprintf(os.Stdout, "%d) [%d] %s, %s", i+1, branch.ID, branch.Name, branch.TypeLabel())
		if branch.ResponsibleWorker != "" {
			fmt.Fprintf(os.Stdout, " (%s)", branch.ResponsibleWorker)
		}
		fmt.Fprintln(os.Stdout)
	}
}

func writeClients(clients []metra.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(os.Stdout, "(no clients)")
		return
	}
	for i, client := range clients {
		fmt.Fprintf(os.Stdout, "%d) [%d] %s, tel %s", i+1, client.ID, client.Name, client.Phone)
		if client.BranchName != "" {
			fmt.Fprintf(os.Stdout, " @ %s", client.BranchName)
		}
		fmt.Fprintln(os.Stdout)
	}
}

func writeClientPage(page *metra.Paginated[metra.Client]) {
	writeClients(page.Data)
	fmt.Fprintf(os.Stdout, "page %d/%d, showing %d-%d of %d\n",
		page.CurrentPage, page.LastPage, page.From, page.To, page.Total)
}

func writeInvoice(invoice metra.Invoice) {
	status := invoice.PaymentStatus
	if invoice.DeletedAt != nil {
		status += ", deleted"
	}
	fmt.Fprintf(os.Stdout, "Faktura %s [%d] (%s)\n", invoice.FakturaNumber, invoice.ID, status)
	fmt.Fprintf(os.Stdout, "  client: %s, branch: %s, rent: %s on %s\n",
		invoice.ClientName, invoice.BranchName, invoice.RentNumber, invoice.RentDate)
	if invoice.DiscountAmount.Valid {
		fmt.Fprintf(os.Stdout, "  discount: %.2f %s\n", invoice.DiscountAmount.Value, invoice.DiscountDescription)
	}
	for _, detail := range invoice.Details {
		fmt.Fprintf(os.Stdout, "  - %s x%d %s", detail.MaterialName, detail.Count, detail.UnitName)
		if detail.Sum.Valid {
			fmt.Fprintf(os.Stdout, " = %.2f", detail.Sum.Value)
		}
		fmt.Fprintln(os.Stdout)
	}
	for _, fine := range invoice.Fines {
		fmt.Fprintf(os.Stdout, "  ! fine %.2f: %s\n", fine.Sum, fine.Description)
	}
}

func writeMaterials(materials []metra.Material) {
	if len(materials) == 0 {
		fmt.Fprintln(os.Stdout, "(no materials)")
		return
	}
	for i, material := range materials {
		fmt.Fprintf(os.Stdout, "%d) [%d] %s x%d %s @ %.2f\n",
			i+1, material.MaterialID, material.MaterialName, material.Count, material.UnitName, material.Price)
	}
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, metra.ErrInvalidCredentials):
		return "Wrong phone number or password."
	case errors.Is(err, metra.ErrUnauthenticated):
		return "Not logged in. Run: login <phone> <password>"
	case errors.Is(err, metra.ErrForbidden):
		return "You do not have access to this resource."
	case errors.Is(err, metra.ErrNotFound):
		return fmt.Sprintf("Not found: %v", err)
	case errors.Is(err, metra.ErrRateLimited):
		return "Too many attempts. Wait a moment and try again."
	case errors.Is(err, metra.ErrServerMisconfigured):
		return "The server returned an error page instead of data. Contact the administrator."
	case errors.Is(err, metra.ErrTransport):
		return "Could not reach the server. Check the connection and try again."
	case errors.Is(err, metra.ErrApplicationFailure):
		return fmt.Sprintf("Rejected: %v", err)
	case errors.Is(err, metra.ErrValidation):
		return fmt.Sprintf("Invalid input: %v", err)
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}

// Package account exposes the ledger over HTTP. The handlers decode and
// validate requests, delegate to the account service, and map domain errors
// to the status codes of the published contract.
package account

import (
	accountsvc "github.com/fintechlab/accounts/pkg/service/account"
	"github.com/fintechlab/accounts/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the account endpoints under /rest/accounts. Static
// segments are registered before the parameterized ones so /all and /owner
// are never captured as ids.
//
//   - POST   /rest/accounts/add          : create an account, returns its id
//   - GET    /rest/accounts/all          : list all accounts
//   - GET    /rest/accounts/owner/:owner : list accounts of one owner
//   - GET    /rest/accounts/:id          : fetch one account
//   - GET    /rest/accounts/:id/balance  : fetch its balance
//   - GET    /rest/accounts/:id/history  : fetch its audit trail
//   - PUT    /rest/accounts/:id          : transfer to another account
//   - DELETE /rest/accounts/:id          : delete the account
func Routes(app *fiber.App, svc *accountsvc.Service) {
	g := app.Group("/rest/accounts")
	g.Post("/add", CreateAccount(svc))
	g.Get("/all", ListAccounts(svc))
	g.Get("/owner/:owner", ListAccountsByOwner(svc))
	g.Get("/:id/balance", GetBalance(svc))
	g.Get("/:id/history", GetHistory(svc))
	g.Get("/:id", GetAccount(svc))
	g.Put("/:id", Transfer(svc))
	g.Delete("/:id", DeleteAccount(svc))
}

// CreateAccount returns a handler creating a new account. On success the
// response body is the plain id string, status 200.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if err != nil {
			return nil // error response already written
		}
		id, err := svc.CreateAccount(c.Context(), input.Owner, input.SingleWithdrawLimit, input.Balance)
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.DomainErrorJSON(c, "Failed to create account", err)
		}
		return c.Status(fiber.StatusOK).SendString(id)
	}
}

// ListAccounts returns a handler listing every account.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accts, err := svc.ListAccounts(c.Context())
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.DomainErrorJSON(c, "Failed to list accounts", err)
		}
		return c.Status(fiber.StatusOK).JSON(toAccountResponses(accts))
	}
}

// ListAccountsByOwner returns a handler listing the accounts held by the
// owner named in the path.
func ListAccountsByOwner(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accts, err := svc.ListAccountsByOwner(c.Context(), c.Params("owner"))
		if err != nil {
			log.Errorf("Failed to list accounts by owner: %v", err)
			return common.DomainErrorJSON(c, "Failed to list accounts", err)
		}
		return c.Status(fiber.StatusOK).JSON(toAccountResponses(accts))
	}
}

// GetAccount returns a handler fetching one account by id.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.GetAccount(c.Context(), c.Params("id"))
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to fetch account", err)
		}
		return c.Status(fiber.StatusOK).JSON(toAccountResponse(a))
	}
}

// GetBalance returns a handler fetching an account's balance. The response
// body is a bare JSON number.
func GetBalance(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		balance, err := svc.GetBalance(c.Context(), c.Params("id"))
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to fetch balance", err)
		}
		return c.Status(fiber.StatusOK).JSON(balance)
	}
}

// GetHistory returns a handler fetching an account's audit trail.
func GetHistory(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.GetHistory(c.Context(), c.Params("id"))
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to fetch history", err)
		}
		return c.Status(fiber.StatusOK).JSON(toHistoryResponses(entries))
	}
}

// Transfer returns a handler moving funds from the account in the path to
// the target named in the body. Success is 204 with no body.
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OperationRequest](c)
		if err != nil {
			return nil // error response already written
		}
		if err := svc.Transfer(c.Context(), c.Params("id"), input.TargetAccountID, input.Value); err != nil {
			log.Errorf("Failed to transfer from %s: %v", c.Params("id"), err)
			return common.DomainErrorJSON(c, "Failed to transfer", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteAccount returns a handler deleting the account in the path. Success
// is 204 with no body.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteAccount(c.Context(), c.Params("id")); err != nil {
			return common.DomainErrorJSON(c, "Failed to delete account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
)

// Account is one member account of the organization.
type Account struct {
	ID          string
	Name        string
	Status      string
	DisplayName string
}

// Label is the human-facing form used in listings: "display-name (id)".
func (a Account) Label() string {
	return fmt.Sprintf("%s (%s)", a.DisplayName, a.ID)
}

// ListAccounts enumerates every account in the organization, sorted by label.
// Each account's display name is resolved through the overrides map first,
// then the Organizations account name, then the bare account ID.
func ListAccounts(ctx context.Context, client *organizations.Client, displayNames map[string]string) ([]Account, error) {
	var accounts []Account

	paginator := organizations.NewListAccountsPaginator(client, &organizations.ListAccountsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list organization accounts: %w", err)
		}
		for _, acct := range page.Accounts {
			account := Account{
				ID:     aws.ToString(acct.Id),
				Name:   aws.ToString(acct.Name),
				Status: string(acct.Status),
			}
			account.DisplayName = displayNameFor(account, displayNames)
			accounts = append(accounts, account)
		}
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Label() < accounts[j].Label() })
	return accounts, nil
}

func displayNameFor(account Account, overrides map[string]string) string {
	if name, ok := overrides[account.ID]; ok {
		return name
	}
	if account.Name != "" {
		return account.Name
	}
	return account.ID
}

// FindAccount returns the account with the given ID from a listing.
func FindAccount(accounts []Account, accountID string) (Account, error) {
	for _, account := range accounts {
		if account.ID == accountID {
			return account, nil
		}
	}
	return Account{}, fmt.Errorf("account %s not found in the organization listing", accountID)
}

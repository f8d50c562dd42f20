package aws

import (
	"fmt"
	"net/url"
)

// SwitchRoleEndpoint is the console's role switching page.
const SwitchRoleEndpoint = "https://signin.aws.amazon.com/switchrole"

// SwitchRoleURL builds the console URL that opens the switch role page with
// the role, account, and display name prefilled. The display name is what the
// console shows in the account menu afterwards.
func SwitchRoleURL(roleName, accountID, displayName string) string {
	return fmt.Sprintf(
		"%s?roleName=%s&account=%s&displayName=%s",
		SwitchRoleEndpoint,
		url.QueryEscape(roleName),
		url.QueryEscape(accountID),
		url.QueryEscape(displayName),
	)
}

package aws

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
)

// newOrganizationsTestClient builds an Organizations client backed by a
// sequence of canned JSON pages, one per ListAccounts call.
func newOrganizationsTestClient(t *testing.T, transport *orgsPageRoundTripper) *organizations.Client {
	t.Helper()
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  &http.Client{Transport: transport},
	}
	cfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: "https://organizations.test", SigningRegion: region, HostnameImmutable: true}, nil
		},
	)
	return organizations.NewFromConfig(cfg)
}

type orgsPageRoundTripper struct {
	pages  []string
	bodies []string
}

func (rt *orgsPageRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	rt.bodies = append(rt.bodies, string(body))

	call := len(rt.bodies) - 1
	if call >= len(rt.pages) {
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader(`{"__type":"AccessDeniedException","Message":"denied"}`)),
			Header:     http.Header{"Content-Type": []string{"application/x-amz-json-1.1"}},
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(rt.pages[call])),
		Header:     http.Header{"Content-Type": []string{"application/x-amz-json-1.1"}},
		Request:    req,
	}, nil
}

func TestListAccountsPaginatesAndResolvesNames(t *testing.T) {
	transport := &orgsPageRoundTripper{pages: []string{
		`{"Accounts":[{"Id":"222222222222","Name":"Beta","Status":"ACTIVE"}],"NextToken":"page2"}`,
		`{"Accounts":[{"Id":"111111111111","Name":"Alpha","Status":"ACTIVE"}]}`,
	}}
	client := newOrganizationsTestClient(t, transport)

	accounts, err := ListAccounts(context.Background(), client, map[string]string{"222222222222": "prod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transport.bodies) != 2 {
		t.Fatalf("expected 2 ListAccounts calls, got %d", len(transport.bodies))
	}
	if !strings.Contains(transport.bodies[1], "page2") {
		t.Errorf("expected the second call to carry the next token, got %s", transport.bodies[1])
	}

	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	// Sorted by label: "Alpha (111111111111)" before "prod (222222222222)".
	if accounts[0].ID != "111111111111" || accounts[0].DisplayName != "Alpha" {
		t.Errorf("unexpected first account %+v", accounts[0])
	}
	if accounts[1].ID != "222222222222" || accounts[1].DisplayName != "prod" {
		t.Errorf("expected the display name override to win, got %+v", accounts[1])
	}
	if accounts[1].Name != "Beta" {
		t.Errorf("expected the original name to be kept, got %s", accounts[1].Name)
	}
	if accounts[0].Label() != "Alpha (111111111111)" {
		t.Errorf("unexpected label %s", accounts[0].Label())
	}
}

func TestListAccountsFailure(t *testing.T) {
	transport := &orgsPageRoundTripper{}
	client := newOrganizationsTestClient(t, transport)

	_, err := ListAccounts(context.Background(), client, nil)
	if err == nil {
		t.Fatal("expected an error from the failing call")
	}
	if !strings.Contains(err.Error(), "failed to list organization accounts") {
		t.Errorf("expected a wrapped listing error, got %v", err)
	}
}

func TestFindAccount(t *testing.T) {
	accounts := []Account{
		{ID: "111111111111", DisplayName: "Alpha"},
		{ID: "222222222222", DisplayName: "Beta"},
	}

	account, err := FindAccount(accounts, "222222222222")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.DisplayName != "Beta" {
		t.Errorf("expected Beta, got %s", account.DisplayName)
	}

	if _, err := FindAccount(accounts, "333333333333"); err == nil {
		t.Error("expected an error for an unknown account")
	}
}

// Package dns points a webhook ingress domain at a bootstrapped host's
// public IP, so a self-hosted forge can reach golden-server over a stable
// hostname instead of a raw address, via the Cloudflare v4 API. Record CRUD
// is folded into a single EnsureIngressRecord entry point, and PublicIP
// looks up the address to pass to it; this engine only ever manages one
// record, so there's no zone-ownership verification or record listing here.
package dns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Record is a Cloudflare DNS A record.
type Record struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type response struct {
	Success bool          `json:"success"`
	Errors  []interface{} `json:"errors"`
	Result  []Record      `json:"result"`
}

// EnsureIngressRecord creates or repoints the A record for domain so it
// resolves to ip, the bootstrapped host's public address.
func EnsureIngressRecord(domain, ip, apiToken, zoneID string) error {
	existing, err := getRecord(domain, apiToken, zoneID)
	if err != nil {
		return fmt.Errorf("look up existing record: %w", err)
	}
	if existing == nil {
		return createRecord(domain, ip, apiToken, zoneID)
	}
	if existing.Content == ip {
		return nil
	}
	return updateRecord(existing.ID, ip, apiToken, zoneID)
}

func getRecord(domain, apiToken, zoneID string) (*Record, error) {
	url := fmt.Sprintf("https://api.cloudflare.com/client/v4/zones/%s/dns_records?type=A&name=%s", zoneID, domain)

	resp, err := doRequest(http.MethodGet, url, nil, apiToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var cf response
	if err := json.NewDecoder(resp.Body).Decode(&cf); err != nil {
		return nil, err
	}
	if !cf.Success {
		return nil, fmt.Errorf("cloudflare API returned errors: %v", cf.Errors)
	}
	if len(cf.Result) == 0 {
		return nil, nil
	}
	return &cf.Result[0], nil
}

func createRecord(domain, ip, apiToken, zoneID string) error {
	url := fmt.Sprintf("https://api.cloudflare.com/client/v4/zones/%s/dns_records", zoneID)
	payload, err := json.Marshal(map[string]any{
		"type": "A", "name": domain, "content": ip, "ttl": 1, "proxied": false,
	})
	if err != nil {
		return err
	}
	return call(http.MethodPost, url, payload, apiToken)
}

func updateRecord(recordID, ip, apiToken, zoneID string) error {
	url := fmt.Sprintf("https://api.cloudflare.com/client/v4/zones/%s/dns_records/%s", zoneID, recordID)
	payload, err := json.Marshal(map[string]any{"content": ip})
	if err != nil {
		return err
	}
	return call(http.MethodPatch, url, payload, apiToken)
}

func call(method, url string, payload []byte, apiToken string) error {
	resp, err := doRequest(method, url, bytes.NewReader(payload), apiToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var cf response
	if err := json.NewDecoder(resp.Body).Decode(&cf); err != nil {
		return err
	}
	if !cf.Success {
		return fmt.Errorf("cloudflare API returned errors: %v", cf.Errors)
	}
	return nil
}

func doRequest(method, url string, body io.Reader, apiToken string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiToken)
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

// PublicIP detects the host's public IP address via an external echo
// service.
func PublicIP() (string, error) {
	resp, err := http.Get("https://api.ipify.org?format=text")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	ip, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(ip)), nil
}

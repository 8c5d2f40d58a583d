package minecraft

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const maxProfileBody = 1 << 20

// MojangResolver turns a Minecraft username into the stable account UUID via
// the Mojang profile API. Names unknown to Mojang resolve to the vanilla
// offline-mode UUID, so resolution only fails on transport errors.
type MojangResolver struct {
	client  *http.Client
	baseURL string
}

func NewMojangResolver() *MojangResolver {
	return &MojangResolver{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.mojang.com",
	}
}

func (r *MojangResolver) ResolveUUID(ctx context.Context, username string) (string, error) {
	endpoint := r.baseURL + "/users/profiles/minecraft/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to resolve profile for %s: %w", username, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return OfflineUUID(username), nil
	default:
		return "", fmt.Errorf("mojang api returned status %d for %s", resp.StatusCode, username)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBody))
	if err != nil {
		return "", fmt.Errorf("failed to read profile response: %w", err)
	}

	var profile struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return "", fmt.Errorf("failed to parse profile response: %w", err)
	}
	if len(profile.ID) != 32 {
		return "", fmt.Errorf("unexpected profile id %q for %s", profile.ID, username)
	}

	return dashUUID(profile.ID), nil
}

// OfflineUUID derives the UUID an offline-mode server assigns: a version 3
// UUID over "OfflinePlayer:<name>".
func OfflineUUID(username string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return dashUUID(hex.EncodeToString(sum[:]))
}

// dashUUID converts the undashed 32-char hex form Mojang returns into the
// canonical 36-char form stored in the link table.
func dashUUID(id string) string {
	return id[0:8] + "-" + id[8:12] + "-" + id[12:16] + "-" + id[16:20] + "-" + id[20:32]
}

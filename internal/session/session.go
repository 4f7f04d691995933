// Package session persists the identity the client acts as between runs.
// Keys match the ones the web client kept in local storage so a database
// can be seeded from an exported browser profile.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/store"
)

// Setting keys.
const (
	KeyIsAdmin       = "isAdmin"
	KeyBranchDetails = "branchDetails"
	KeyID            = "id"
	KeyBranchName    = "branchName"
)

// ErrNoSession is returned by Load when no identity has been saved yet.
var ErrNoSession = errors.New("no saved session")

// Settings is the subset of the store a session needs.
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSettings(ctx context.Context, keys ...string) error
}

type branchDetails struct {
	ID         string `json:"id"`
	BranchName string `json:"branchName"`
}

// Load reads the saved session.
func Load(ctx context.Context, s Settings) (model.Session, error) {
	isAdmin, err := get(ctx, s, KeyIsAdmin)
	if err != nil {
		return model.Session{}, err
	}
	id, err := get(ctx, s, KeyID)
	if err != nil {
		return model.Session{}, err
	}
	if isAdmin == "true" {
		return model.AdminSession(id), nil
	}

	raw, err := get(ctx, s, KeyBranchDetails)
	if err != nil {
		return model.Session{}, err
	}
	if raw == "" {
		return model.Session{}, ErrNoSession
	}

	var bd branchDetails
	if err := json.Unmarshal([]byte(raw), &bd); err != nil {
		return model.Session{}, fmt.Errorf("decoding %s: %w", KeyBranchDetails, err)
	}
	if bd.ID == "" {
		return model.Session{}, fmt.Errorf("decoding %s: missing branch id", KeyBranchDetails)
	}

	sess := model.BranchSession(bd.ID, bd.BranchName)
	if name, _ := get(ctx, s, KeyBranchName); name != "" {
		sess.BranchName = name
	}
	if id != "" {
		sess.ID = id
	}
	return sess, nil
}

// Save replaces the saved session with sess.
func Save(ctx context.Context, s Settings, sess model.Session) error {
	if err := Clear(ctx, s); err != nil {
		return err
	}

	if sess.IsAdmin() {
		if err := s.SetSetting(ctx, KeyIsAdmin, "true"); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		return s.SetSetting(ctx, KeyID, sess.ID)
	}

	if sess.BranchID == "" {
		return errors.New("saving session: branch session without branch id")
	}
	bd, err := json.Marshal(branchDetails{ID: sess.BranchID, BranchName: sess.BranchName})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", KeyBranchDetails, err)
	}

	pairs := [][2]string{
		{KeyBranchDetails, string(bd)},
		{KeyID, sess.ID},
		{KeyBranchName, sess.BranchName},
	}
	for _, p := range pairs {
		if err := s.SetSetting(ctx, p[0], p[1]); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
	}
	return nil
}

// Clear forgets the saved session.
func Clear(ctx context.Context, s Settings) error {
	if err := s.DeleteSettings(ctx, KeyIsAdmin, KeyBranchDetails, KeyID, KeyBranchName); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func get(ctx context.Context, s Settings, key string) (string, error) {
	v, err := s.GetSetting(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return v, err
}

package dashboarding

import "github.com/pkg/errors"

var ErrSessionNotFound = errors.New("dashboarding: view session not found or expired")

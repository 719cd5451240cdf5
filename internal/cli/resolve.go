package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkoval/hirepath/internal/domain"
)

func resolveApplicationID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("application ID is required")
	}

	apps, err := app.Applications.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact UUID match
	for _, a := range apps {
		if a.ID == input {
			return a.ID, nil
		}
	}

	// 2. UUID prefix match
	var matches []string
	for _, a := range apps {
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("application not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("application ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveStage finds a stage by full ID or unique prefix within one
// application's timeline.
func resolveStage(ctx context.Context, app *App, applicationID, input string) (*domain.ApplicationStage, error) {
	if input == "" {
		return nil, fmt.Errorf("stage ID is required")
	}

	stages, err := app.Pipeline.GetVisibleStages(ctx, applicationID, domain.RoleRecruiter)
	if err != nil {
		return nil, err
	}

	for _, s := range stages {
		if s.ID == input {
			return s, nil
		}
	}

	var matches []*domain.ApplicationStage
	for _, s := range stages {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("stage not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("stage ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

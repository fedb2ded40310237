// ABOUTME: TOML seed files for first-time console setup
// ABOUTME: Idempotent apply of departments and a bootstrap operator

package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/helpdeskhq/agent-console/internal/auth"
	"github.com/helpdeskhq/agent-console/internal/store"
)

// File is the parsed shape of a seed file.
type File struct {
	Departments []Department `toml:"departments"`
	Operator    *Operator    `toml:"operator"`
}

// Department is a department entry in a seed file.
type Department struct {
	Code        string `toml:"code"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Operator is the bootstrap operator entry in a seed file. The password is
// hashed before storage; the plaintext never reaches the database.
type Operator struct {
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	Department string `toml:"department"` // department code, optional
}

// Result reports what an apply actually did.
type Result struct {
	DepartmentsCreated int
	DepartmentsSkipped int
	OperatorCreated    bool
}

// Load parses a seed file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &f, nil
}

// Apply writes the seed entries into the store. Departments whose code
// already exists are skipped, and an already-present operator username is
// left untouched, so running the same file twice is safe.
func Apply(ctx context.Context, s store.Store, f *File) (*Result, error) {
	logger := slog.Default().With("component", "seed")
	result := &Result{}

	codes := map[string]string{}

	for _, d := range f.Departments {
		existing, err := s.GetDepartmentByCode(ctx, d.Code)
		if err == nil {
			codes[d.Code] = existing.ID
			result.DepartmentsSkipped++
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("checking department %q: %w", d.Code, err)
		}

		now := time.Now().UTC()
		dept := &store.Department{
			ID:          uuid.NewString(),
			Code:        d.Code,
			Name:        d.Name,
			Description: d.Description,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.CreateDepartment(ctx, dept); err != nil {
			return nil, fmt.Errorf("creating department %q: %w", d.Code, err)
		}

		codes[d.Code] = dept.ID
		result.DepartmentsCreated++
		logger.Info("seeded department", "code", d.Code)
	}

	if f.Operator != nil {
		created, err := applyOperator(ctx, s, f.Operator, codes)
		if err != nil {
			return nil, err
		}
		result.OperatorCreated = created
	}

	return result, nil
}

func applyOperator(ctx context.Context, s store.Store, op *Operator, codes map[string]string) (bool, error) {
	if op.Username == "" || op.Password == "" {
		return false, fmt.Errorf("seed operator requires username and password")
	}

	if _, err := s.GetOperatorByUsername(ctx, op.Username); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("checking operator %q: %w", op.Username, err)
	}

	departmentID := ""
	if op.Department != "" {
		id, ok := codes[op.Department]
		if !ok {
			existing, err := s.GetDepartmentByCode(ctx, op.Department)
			if err != nil {
				return false, fmt.Errorf("operator department %q not found", op.Department)
			}
			id = existing.ID
		}
		departmentID = id
	}

	hash, err := auth.HashPassword(op.Password)
	if err != nil {
		return false, fmt.Errorf("hashing operator password: %w", err)
	}

	if err := s.CreateOperator(ctx, &store.Operator{
		ID:           uuid.NewString(),
		Username:     op.Username,
		PasswordHash: hash,
		DepartmentID: departmentID,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return false, fmt.Errorf("creating operator %q: %w", op.Username, err)
	}

	slog.Default().Info("seeded operator", "component", "seed", "username", op.Username)
	return true, nil
}

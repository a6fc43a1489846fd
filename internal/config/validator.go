package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/git-hours/internal/errors"
	"github.com/rohankatakam/git-hours/internal/output"
	"github.com/rohankatakam/git-hours/internal/temporal"
)

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...any) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...any) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("configuration validation failed:")
	for _, err := range vr.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err)
	}
	return sb.String()
}

// Err returns a validation error when the result has errors, nil otherwise
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}
	return errors.ValidationErrorf("%s", vr.Error())
}

// Validate checks every setting before any repository work starts
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{Valid: true}

	c.validateEstimate(result)
	c.validateTraversal(result)
	c.validateOutput(result)
	c.validateLog(result)

	return result
}

func (c *Config) validateEstimate(result *ValidationResult) {
	if c.Estimate.MaxCommitDiff < 0 {
		result.AddError("estimate.max_commit_diff must not be negative, got %d", c.Estimate.MaxCommitDiff)
	} else if c.Estimate.MaxCommitDiff == 0 {
		result.AddWarning("estimate.max_commit_diff is 0: every commit starts a new session")
	}

	if c.Estimate.FirstCommitAdd < 0 {
		result.AddError("estimate.first_commit_add must not be negative, got %d", c.Estimate.FirstCommitAdd)
	}
}

func (c *Config) validateTraversal(result *ValidationResult) {
	selector := temporal.BranchSelector{Branch: c.Traversal.Branch}
	if selector.IsPattern() && !doublestar.ValidatePattern(temporal.BranchNamespace+c.Traversal.Branch) {
		result.AddError("traversal.branch %q is not a valid pattern", c.Traversal.Branch)
	}
	if strings.HasPrefix(c.Traversal.Branch, "refs/") {
		result.AddWarning("traversal.branch %q is a reference path; branch names are relative to %s", c.Traversal.Branch, temporal.BranchNamespace)
	}
}

func (c *Config) validateOutput(result *ValidationResult) {
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		result.AddError("output.format: %v", err)
	}
	if _, err := output.ParseSortBy(c.Output.Sort); err != nil {
		result.AddError("output.sort: %v", err)
	}
}

func (c *Config) validateLog(result *ValidationResult) {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		result.AddError("log.level: %v", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		result.AddError("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Log.File != "" && c.Log.MaxBackups < 0 {
		result.AddError("log.max_backups must not be negative, got %d", c.Log.MaxBackups)
	}
}

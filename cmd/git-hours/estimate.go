package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/git-hours/internal/errors"
	"github.com/rohankatakam/git-hours/internal/git"
	"github.com/rohankatakam/git-hours/internal/output"
	"github.com/rohankatakam/git-hours/internal/temporal"
)

const shallowMessage = "cannot analyze shallow copies, run `git fetch --unshallow` before continuing"

func (a *app) runEstimate(cmd *cobra.Command, args []string) error {
	log := a.log.WithField("path", a.cfg.Repo.Path)

	repo, err := git.Open(a.cfg.Repo.Path)
	if err != nil {
		return err
	}

	shallow, err := repo.IsShallow()
	if err != nil {
		return err
	}
	if shallow {
		return errors.PreconditionError(shallowMessage).WithContext("path", repo.Path())
	}

	if head, err := repo.HeadBranch(); err == nil {
		log = log.WithField("head", head)
	}

	collector := temporal.NewCollector(repo, temporal.CollectOptions{
		Branch:       a.cfg.Traversal.Branch,
		MergeCommits: a.cfg.Traversal.MergeCommits,
		Identity:     temporal.EmailIdentity{},
	}, log)

	col, err := collector.Collect()
	if err != nil {
		return errors.RepositoryError(err, "failed to enumerate branches")
	}
	if len(col.Heads) == 0 {
		log.WithField("branch", a.cfg.Traversal.Branch).Warn("No branch matched, nothing to estimate")
	}

	// Validated during setup.
	format, _ := output.ParseFormat(a.cfg.Output.Format)
	sortBy, _ := output.ParseSortBy(a.cfg.Output.Sort)

	est := temporal.NewEstimator(a.cfg.SessionConfig())
	thresholds := est.Config()
	log.WithFields(logrus.Fields{
		"max_commit_diff":  thresholds.MaxCommitDiff,
		"first_commit_add": thresholds.FirstCommitAdd,
	}).Debug("Estimating sessions")

	reports := output.BuildReport(col.Times, est, sortBy)

	log.WithFields(logrus.Fields{
		"authors":     len(reports),
		"commits":     col.Attributed,
		"total_hours": output.TotalHours(reports),
	}).Info("Estimate complete")

	return output.NewFormatter(format).Format(reports, cmd.OutOrStdout())
}

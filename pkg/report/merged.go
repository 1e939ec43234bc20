package report

import (
	"github.com/sgaunet/auto-merger/pkg/merge"
)

// FormatMergeReport lists the outcome of each merge attempt, grouped by
// repository in the order the merges ran.
func FormatMergeReport(outcomes []merge.Outcome, opts Options) (plain, html []string) {
	var sections []section
	for _, o := range outcomes {
		if len(sections) == 0 || sections[len(sections)-1].repoKey != o.RepoKey {
			sections = append(sections, section{repoKey: o.RepoKey})
		}
		status := StatusMerged
		if !o.Success {
			status = "FAILED"
			if o.Err != nil {
				status += ": " + o.Err.Error()
			}
		}
		s := &sections[len(sections)-1]
		s.rows = append(s.rows, row{
			url:    opts.url(o.RepoKey, o.ID, o.URL),
			title:  o.Title,
			status: status,
		})
	}
	return render(capitalize(opts.nounPlural())+" merge results", "Merge status", sections, opts)
}

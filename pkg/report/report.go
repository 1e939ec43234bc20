// Package report turns evaluation results into console lines, HTML email
// fragments and a JSON result file.
//
// The Format functions are pure. A repository with an empty bucket is left
// out, and when every repository is empty the output is empty too.
package report

import (
	"fmt"
	"strings"

	"github.com/sgaunet/auto-merger/internal/timeutil"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
)

// DefaultNoun names the requests in headings when Options.Noun is empty.
const DefaultNoun = "pull request"

// Status texts used in the HTML tables.
const (
	StatusMergeable = "CAN BE MERGED"
	StatusMerged    = "MERGED"
)

const (
	statusOpen  = "<p style='color:red;'>"
	statusClose = "</p>"
)

// Linker builds the web URL of a request when the platform did not supply one.
type Linker interface {
	RequestURL(repoKey string, id int) string
}

// Options configures the formatters.
type Options struct {
	Linker         Linker
	Noun           string
	BlockingLabels []string
}

func (o Options) noun() string {
	if o.Noun == "" {
		return DefaultNoun
	}
	return o.Noun
}

func (o Options) nounPlural() string {
	return o.noun() + "s"
}

func (o Options) url(repoKey string, id int, url string) string {
	if url != "" || o.Linker == nil {
		return url
	}
	return o.Linker.RequestURL(repoKey, id)
}

// row is one line of a repository section.
type row struct {
	url    string
	title  string
	status string
}

type section struct {
	repoKey string
	rows    []row
}

// FormatBlockedReport lists the requests held back by blocking labels.
func FormatBlockedReport(results evaluate.Results, opts Options) (plain, html []string) {
	var sections []section
	for _, r := range results.Repos {
		if len(r.Blocked) == 0 {
			continue
		}
		s := section{repoKey: r.RepoKey}
		for _, e := range r.Blocked {
			s.rows = append(s.rows, row{
				url:    opts.url(r.RepoKey, e.ID, e.URL),
				title:  e.Title,
				status: strings.Join(e.MissingLabels, ", "),
			})
		}
		sections = append(sections, s)
	}

	heading := capitalize(opts.nounPlural()) + " that are blocked by labels"
	if len(opts.BlockingLabels) > 0 {
		heading += " [" + strings.Join(opts.BlockingLabels, ", ") + "]"
	}
	return render(heading, "Blocking labels", sections, opts)
}

// FormatMergeableReport lists the requests that can be merged.
func FormatMergeableReport(results evaluate.Results, opts Options) (plain, html []string) {
	var sections []section
	for _, r := range results.Repos {
		if len(r.Mergeable) == 0 {
			continue
		}
		s := section{repoKey: r.RepoKey}
		for _, e := range r.Mergeable {
			s.rows = append(s.rows, row{
				url:    opts.url(r.RepoKey, e.ID, e.URL),
				title:  e.Title,
				status: StatusMergeable,
			})
		}
		sections = append(sections, s)
	}
	return render(capitalize(opts.nounPlural())+" that can be merged", "Approval status", sections, opts)
}

// FormatAwaitingReport lists the requests still waiting for approvals,
// an approval label or enough age.
func FormatAwaitingReport(results evaluate.Results, opts Options) (plain, html []string) {
	var sections []section
	for _, r := range results.Repos {
		if len(r.Awaiting) == 0 {
			continue
		}
		s := section{repoKey: r.RepoKey}
		for _, e := range r.Awaiting {
			s.rows = append(s.rows, row{
				url:    opts.url(r.RepoKey, e.ID, e.URL),
				title:  e.Title,
				status: awaitingStatus(e),
			})
		}
		sections = append(sections, s)
	}
	return render(capitalize(opts.nounPlural())+" waiting for approval", "Approval status", sections, opts)
}

// FormatFailedReport lists the repositories that could not be checked.
func FormatFailedReport(results evaluate.Results, opts Options) (plain, html []string) {
	failed := results.Failed()
	if len(failed) == 0 {
		return nil, nil
	}

	heading := "Repositories that could not be checked"
	plain = append(plain, heading)
	html = append(html, heading+":", "<ul>")
	for _, r := range failed {
		reason := ""
		if r.FetchError != nil {
			reason = r.FetchError.Error()
		}
		plain = append(plain, fmt.Sprintf("  %s: %s", r.RepoKey, reason))
		html = append(html, fmt.Sprintf("<li><b>%s</b>: %s</li>", escapeText(r.RepoKey), escapeText(reason)))
	}
	html = append(html, "</ul>")
	return plain, html
}

func awaitingStatus(e evaluate.AwaitingEntry) string {
	if e.ApprovalsShort > 0 {
		return fmt.Sprintf("Missing %d APPROVAL", e.ApprovalsShort)
	}
	if e.Age == "" || e.Age == timeutil.UnknownAge {
		return e.Reason
	}
	return fmt.Sprintf("%s (opened %s ago)", e.Reason, e.Age)
}

func render(heading, statusHeader string, sections []section, opts Options) (plain, html []string) {
	if len(sections) == 0 {
		return nil, nil
	}

	plain = append(plain, heading)
	html = append(html, escapeText(heading)+":")
	for _, s := range sections {
		plain = append(plain, s.repoKey)
		html = append(html,
			fmt.Sprintf("<b>%s</b>:", escapeText(s.repoKey)),
			fmt.Sprintf("<table><tr><th>%s URL</th><th>Title</th><th>%s</th></tr>",
				escapeText(capitalize(opts.noun())), statusHeader),
		)
		for _, r := range s.rows {
			plain = append(plain, fmt.Sprintf("  %s %s -> %s", r.url, r.title, r.status))
			html = append(html, fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s%s%s</td></tr>",
				escapeText(r.url), renderTitle(r.title), statusOpen, escapeText(r.status), statusClose))
		}
		html = append(html, "</table>")
	}
	return plain, html
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
